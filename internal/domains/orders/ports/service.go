package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/Apurer/retail-pos/internal/domains/orders/domain"
)

// Service exposes order history use cases to adapters.
type Service interface {
	Add(ctx context.Context, order *domain.Order) (*domain.Order, error)
	List(ctx context.Context) ([]*domain.Order, error)
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	Update(ctx context.Context, order *domain.Order) (*domain.Order, error)
	Delete(ctx context.Context, id int64) error
	ListToday(ctx context.Context) ([]*domain.Order, error)
	SumTodayTotal(ctx context.Context) (decimal.Decimal, error)
}
