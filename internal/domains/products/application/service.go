package application

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/Apurer/retail-pos/internal/domains/products/domain"
	"github.com/Apurer/retail-pos/internal/domains/products/ports"
)

// Service orchestrates product and inventory use cases.
type Service struct {
	repo ports.Repository
}

func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Add(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if product == nil {
		return nil, errors.New("product is nil")
	}
	if err := product.Validate(); err != nil {
		return nil, mapError(err)
	}
	clone := *product
	clone.ID = 0
	return s.repo.Save(ctx, &clone)
}

func (s *Service) List(ctx context.Context) ([]*domain.Product, error) {
	return s.repo.List(ctx)
}

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// Update replaces every field of an existing product.
func (s *Service) Update(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if product == nil {
		return nil, errors.New("product is nil")
	}
	if err := product.Validate(); err != nil {
		return nil, mapError(err)
	}
	if _, err := s.repo.GetByID(ctx, product.ID); err != nil {
		return nil, err
	}
	return s.repo.Save(ctx, product)
}

// Delete removes a product; deleting an unknown id is not an error.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil && !errors.Is(err, ports.ErrNotFound) {
		return err
	}
	return nil
}

// ListLowStock returns products with 0 < quantity < domain.LowStockThreshold.
func (s *Service) ListLowStock(ctx context.Context) ([]*domain.Product, error) {
	return s.filter(ctx, func(p *domain.Product) bool { return p.Level() == domain.StockLevelLow })
}

func (s *Service) ListOutOfStock(ctx context.Context) ([]*domain.Product, error) {
	return s.filter(ctx, func(p *domain.Product) bool { return p.Level() == domain.StockLevelOut })
}

// Search matches name or category, case-insensitively.
func (s *Service) Search(ctx context.Context, query string) ([]*domain.Product, error) {
	return s.filter(ctx, func(p *domain.Product) bool { return p.Matches(query) })
}

func (s *Service) Inventory(ctx context.Context, filter domain.InventoryFilter) (*domain.Inventory, error) {
	filter, err := domain.ParseInventoryFilter(string(filter))
	if err != nil {
		return nil, mapError(err)
	}
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	inventory := domain.BuildInventory(products, filter)
	return &inventory, nil
}

// InventoryValue is the sum of price times quantity over the whole catalog.
func (s *Service) InventoryValue(ctx context.Context) (decimal.Decimal, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return domain.BuildInventory(products, domain.InventoryAll).TotalValue, nil
}

func (s *Service) filter(ctx context.Context, keep func(*domain.Product) bool) ([]*domain.Product, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]*domain.Product, 0, len(products))
	for _, p := range products {
		if keep(p) {
			result = append(result, p)
		}
	}
	return result, nil
}

var _ ports.Service = (*Service)(nil)
