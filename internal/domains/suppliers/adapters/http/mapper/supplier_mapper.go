package mapper

import (
	supplierdomain "github.com/Apurer/retail-pos/internal/domains/suppliers/domain"
)

type SupplierPayload struct {
	Name       string   `json:"name" validate:"required,max=200"`
	Email      string   `json:"email" validate:"omitempty,email"`
	Phone      string   `json:"phone" validate:"required,max=50"`
	Address    string   `json:"address" validate:"max=500"`
	Categories []string `json:"categories" validate:"dive,max=100"`
	Active     *bool    `json:"active"`
}

type Supplier struct {
	ID         int64    `json:"id"`
	Name       string   `json:"name"`
	Email      string   `json:"email,omitempty"`
	Phone      string   `json:"phone"`
	Address    string   `json:"address,omitempty"`
	Categories []string `json:"categories"`
	Active     bool     `json:"active"`
}

// ToDomainSupplier converts a payload; an omitted active flag defaults to true.
func ToDomainSupplier(id int64, payload SupplierPayload) (*supplierdomain.Supplier, error) {
	supplier, err := supplierdomain.NewSupplier(id, payload.Name, payload.Phone)
	if err != nil {
		return nil, err
	}
	if err := supplier.UpdateContact(payload.Email, payload.Address); err != nil {
		return nil, err
	}
	supplier.SetCategories(payload.Categories)
	if payload.Active != nil {
		supplier.Active = *payload.Active
	}
	return supplier, nil
}

func FromDomainSupplier(s *supplierdomain.Supplier) Supplier {
	if s == nil {
		return Supplier{}
	}
	categories := s.Categories
	if categories == nil {
		categories = []string{}
	}
	return Supplier{
		ID:         s.ID,
		Name:       s.Name,
		Email:      s.Email,
		Phone:      s.Phone,
		Address:    s.Address,
		Categories: categories,
		Active:     s.Active,
	}
}

func FromDomainSuppliers(suppliers []*supplierdomain.Supplier) []Supplier {
	result := make([]Supplier, 0, len(suppliers))
	for _, s := range suppliers {
		result = append(result, FromDomainSupplier(s))
	}
	return result
}
