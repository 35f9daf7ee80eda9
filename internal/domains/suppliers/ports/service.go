package ports

import (
	"context"

	"github.com/Apurer/retail-pos/internal/domains/suppliers/domain"
)

// Service exposes supplier use cases to adapters.
type Service interface {
	Add(ctx context.Context, supplier *domain.Supplier) (*domain.Supplier, error)
	List(ctx context.Context) ([]*domain.Supplier, error)
	GetByID(ctx context.Context, id int64) (*domain.Supplier, error)
	Update(ctx context.Context, supplier *domain.Supplier) (*domain.Supplier, error)
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, query string) ([]*domain.Supplier, error)
}
