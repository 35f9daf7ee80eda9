package ports

import (
	"context"
	"errors"

	"github.com/Apurer/retail-pos/internal/domains/sales/domain"
)

var ErrCartNotFound = errors.New("cart not found")

// CartStore keeps in-progress carts.
type CartStore interface {
	Create(ctx context.Context, cart *domain.Cart) error
	Get(ctx context.Context, id string) (*domain.Cart, error)
	// Update applies fn to the stored cart atomically; the cart is saved only when fn returns nil.
	Update(ctx context.Context, id string, fn func(cart *domain.Cart) error) (*domain.Cart, error)
	Delete(ctx context.Context, id string) error
}
