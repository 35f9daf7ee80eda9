package ports

import (
	"context"
	"errors"

	"github.com/Apurer/retail-pos/internal/domains/products/domain"
)

var (
	ErrNotFound = errors.New("product not found")
	// ErrInsufficientStock is returned when a conditional decrement would drive quantity below zero.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// Repository persists products.
type Repository interface {
	Save(ctx context.Context, product *domain.Product) (*domain.Product, error)
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*domain.Product, error)
	// DecrementStock subtracts qty only when at least qty units remain, in a single step.
	DecrementStock(ctx context.Context, id int64, qty int32) (*domain.Product, error)
}
