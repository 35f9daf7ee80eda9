package mapper

import (
	"github.com/shopspring/decimal"

	employeedomain "github.com/Apurer/retail-pos/internal/domains/employees/domain"
)

type EmployeePayload struct {
	Name     string          `json:"name" validate:"required,max=200"`
	Position string          `json:"position" validate:"max=100"`
	Email    string          `json:"email" validate:"omitempty,email"`
	Phone    string          `json:"phone" validate:"max=50"`
	Salary   decimal.Decimal `json:"salary"`
	Active   *bool           `json:"active"`
}

type Employee struct {
	ID       int64           `json:"id"`
	Name     string          `json:"name"`
	Position string          `json:"position"`
	Email    string          `json:"email,omitempty"`
	Phone    string          `json:"phone,omitempty"`
	Salary   decimal.Decimal `json:"salary"`
	Active   bool            `json:"active"`
}

func ToDomainEmployee(id int64, payload EmployeePayload) (*employeedomain.Employee, error) {
	employee, err := employeedomain.NewEmployee(id, payload.Name, payload.Position, payload.Salary)
	if err != nil {
		return nil, err
	}
	if err := employee.UpdateContact(payload.Email, payload.Phone); err != nil {
		return nil, err
	}
	if payload.Active != nil {
		employee.Active = *payload.Active
	}
	return employee, nil
}

func FromDomainEmployee(e *employeedomain.Employee) Employee {
	if e == nil {
		return Employee{}
	}
	return Employee{
		ID:       e.ID,
		Name:     e.Name,
		Position: e.Position,
		Email:    e.Email,
		Phone:    e.Phone,
		Salary:   e.Salary,
		Active:   e.Active,
	}
}

func FromDomainEmployees(employees []*employeedomain.Employee) []Employee {
	result := make([]Employee, 0, len(employees))
	for _, e := range employees {
		result = append(result, FromDomainEmployee(e))
	}
	return result
}
