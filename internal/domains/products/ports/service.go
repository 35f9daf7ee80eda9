package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/Apurer/retail-pos/internal/domains/products/domain"
)

// Service exposes product and inventory use cases to adapters.
type Service interface {
	Add(ctx context.Context, product *domain.Product) (*domain.Product, error)
	List(ctx context.Context) ([]*domain.Product, error)
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	Update(ctx context.Context, product *domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, id int64) error
	ListLowStock(ctx context.Context) ([]*domain.Product, error)
	ListOutOfStock(ctx context.Context) ([]*domain.Product, error)
	Search(ctx context.Context, query string) ([]*domain.Product, error)
	Inventory(ctx context.Context, filter domain.InventoryFilter) (*domain.Inventory, error)
	InventoryValue(ctx context.Context) (decimal.Decimal, error)
}
