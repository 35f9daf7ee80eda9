package application

import (
	"context"
	"errors"

	"github.com/Apurer/retail-pos/internal/domains/employees/domain"
	"github.com/Apurer/retail-pos/internal/domains/employees/ports"
)

type Service struct {
	repo ports.Repository
}

func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Add(ctx context.Context, employee *domain.Employee) (*domain.Employee, error) {
	if employee == nil {
		return nil, errors.New("employee is nil")
	}
	if err := employee.Validate(); err != nil {
		return nil, mapError(err)
	}
	clone := *employee
	clone.ID = 0
	return s.repo.Save(ctx, &clone)
}

func (s *Service) List(ctx context.Context) ([]*domain.Employee, error) {
	return s.repo.List(ctx)
}

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Employee, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, employee *domain.Employee) (*domain.Employee, error) {
	if employee == nil {
		return nil, errors.New("employee is nil")
	}
	if err := employee.Validate(); err != nil {
		return nil, mapError(err)
	}
	if _, err := s.repo.GetByID(ctx, employee.ID); err != nil {
		return nil, err
	}
	return s.repo.Save(ctx, employee)
}

// Delete removes an employee; deleting an unknown id is not an error.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil && !errors.Is(err, ports.ErrNotFound) {
		return err
	}
	return nil
}

func (s *Service) Search(ctx context.Context, query string) ([]*domain.Employee, error) {
	employees, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]*domain.Employee, 0, len(employees))
	for _, employee := range employees {
		if employee.Matches(query) {
			result = append(result, employee)
		}
	}
	return result, nil
}

var _ ports.Service = (*Service)(nil)
