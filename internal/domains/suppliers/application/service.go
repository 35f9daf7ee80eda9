package application

import (
	"context"
	"errors"

	"github.com/Apurer/retail-pos/internal/domains/suppliers/domain"
	"github.com/Apurer/retail-pos/internal/domains/suppliers/ports"
)

type Service struct {
	repo ports.Repository
}

func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Add(ctx context.Context, supplier *domain.Supplier) (*domain.Supplier, error) {
	if supplier == nil {
		return nil, errors.New("supplier is nil")
	}
	if err := supplier.Validate(); err != nil {
		return nil, mapError(err)
	}
	clone := *supplier
	clone.ID = 0
	return s.repo.Save(ctx, &clone)
}

func (s *Service) List(ctx context.Context) ([]*domain.Supplier, error) {
	return s.repo.List(ctx)
}

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Supplier, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, supplier *domain.Supplier) (*domain.Supplier, error) {
	if supplier == nil {
		return nil, errors.New("supplier is nil")
	}
	if err := supplier.Validate(); err != nil {
		return nil, mapError(err)
	}
	if _, err := s.repo.GetByID(ctx, supplier.ID); err != nil {
		return nil, err
	}
	return s.repo.Save(ctx, supplier)
}

// Delete removes a supplier; products naming it keep their supplier text.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil && !errors.Is(err, ports.ErrNotFound) {
		return err
	}
	return nil
}

func (s *Service) Search(ctx context.Context, query string) ([]*domain.Supplier, error) {
	suppliers, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]*domain.Supplier, 0, len(suppliers))
	for _, supplier := range suppliers {
		if supplier.Matches(query) {
			result = append(result, supplier)
		}
	}
	return result, nil
}

var _ ports.Service = (*Service)(nil)
