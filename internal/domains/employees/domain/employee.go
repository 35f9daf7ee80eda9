package domain

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrEmptyName      = errors.New("employee name is required")
	ErrNegativeSalary = errors.New("salary cannot be negative")
	ErrInvalidEmail   = errors.New("email must contain '@'")
)

// Employee is a member of store staff. Employees are records only and do not log in.
type Employee struct {
	ID       int64
	Name     string
	Position string
	Email    string
	Phone    string
	Salary   decimal.Decimal
	Active   bool
}

func NewEmployee(id int64, name, position string, salary decimal.Decimal) (*Employee, error) {
	employee := &Employee{
		ID:       id,
		Name:     strings.TrimSpace(name),
		Position: strings.TrimSpace(position),
		Salary:   salary,
		Active:   true,
	}
	if err := employee.Validate(); err != nil {
		return nil, err
	}
	return employee, nil
}

func (e *Employee) UpdateContact(email, phone string) error {
	email = strings.TrimSpace(email)
	if email != "" && !strings.Contains(email, "@") {
		return ErrInvalidEmail
	}
	e.Email = email
	e.Phone = strings.TrimSpace(phone)
	return nil
}

func (e *Employee) Validate() error {
	if strings.TrimSpace(e.Name) == "" {
		return ErrEmptyName
	}
	if e.Salary.IsNegative() {
		return ErrNegativeSalary
	}
	if e.Email != "" && !strings.Contains(e.Email, "@") {
		return ErrInvalidEmail
	}
	return nil
}

// Matches reports a case-insensitive substring match on name or position.
func (e *Employee) Matches(query string) bool {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(e.Name), query) ||
		strings.Contains(strings.ToLower(e.Position), query)
}
