package ports

import (
	"context"
	"errors"
	"time"

	"github.com/Apurer/retail-pos/internal/domains/orders/domain"
)

var (
	ErrNotFound = errors.New("order not found")

	// ErrDuplicateCheckout reports a second order for an already recorded checkout.
	ErrDuplicateCheckout = errors.New("order already recorded for this checkout")
)

// Repository persists orders.
type Repository interface {
	Save(ctx context.Context, order *domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*domain.Order, error)
	// ListBetween returns orders created in [from, to), oldest first.
	ListBetween(ctx context.Context, from, to time.Time) ([]*domain.Order, error)
	// GetByCheckoutKey returns the order committed for a checkout, or ErrNotFound.
	GetByCheckoutKey(ctx context.Context, key string) (*domain.Order, error)
}
