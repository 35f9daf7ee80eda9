package domain

import (
	"errors"
	"strings"
)

var (
	ErrEmptyName    = errors.New("supplier name is required")
	ErrEmptyPhone   = errors.New("supplier phone is required")
	ErrInvalidEmail = errors.New("email must contain '@'")
)

// Supplier is a vendor the store buys stock from.
type Supplier struct {
	ID         int64
	Name       string
	Email      string
	Phone      string
	Address    string
	Categories []string
	Active     bool
}

// NewSupplier builds an active supplier ensuring required invariants.
func NewSupplier(id int64, name, phone string) (*Supplier, error) {
	supplier := &Supplier{ID: id, Name: strings.TrimSpace(name), Phone: strings.TrimSpace(phone), Active: true}
	if err := supplier.Validate(); err != nil {
		return nil, err
	}
	return supplier, nil
}

// UpdateContact applies optional contact fields and validates email if present.
func (s *Supplier) UpdateContact(email, address string) error {
	email = strings.TrimSpace(email)
	if email != "" && !strings.Contains(email, "@") {
		return ErrInvalidEmail
	}
	s.Email = email
	s.Address = strings.TrimSpace(address)
	return nil
}

// SetCategories stores the trimmed, de-duplicated product categories the supplier provides.
func (s *Supplier) SetCategories(categories []string) {
	seen := make(map[string]struct{}, len(categories))
	result := make([]string, 0, len(categories))
	for _, c := range categories {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		key := strings.ToLower(c)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		result = append(result, c)
	}
	s.Categories = result
}

// Validate re-applies core invariants for persistence.
func (s *Supplier) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return ErrEmptyName
	}
	if strings.TrimSpace(s.Phone) == "" {
		return ErrEmptyPhone
	}
	if s.Email != "" && !strings.Contains(s.Email, "@") {
		return ErrInvalidEmail
	}
	return nil
}

// Matches reports a case-insensitive substring match on name, email or phone.
func (s *Supplier) Matches(query string) bool {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(s.Name), query) ||
		strings.Contains(strings.ToLower(s.Email), query) ||
		strings.Contains(s.Phone, query)
}
