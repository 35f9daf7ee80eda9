package ports

import (
	"context"

	orderdomain "github.com/Apurer/retail-pos/internal/domains/orders/domain"
	"github.com/Apurer/retail-pos/internal/domains/sales/domain"
)

// Service exposes point-of-sale use cases to adapters.
type Service interface {
	NewCart(ctx context.Context) (*domain.Cart, error)
	GetCart(ctx context.Context, cartID string) (*domain.Cart, error)
	AddToCart(ctx context.Context, cartID string, productID int64, quantity int32) (*domain.Cart, error)
	RemoveFromCart(ctx context.Context, cartID string, productID int64) (*domain.Cart, error)
	ClearCart(ctx context.Context, cartID string) (*domain.Cart, error)
	Checkout(ctx context.Context, cartID, customerName string) (*orderdomain.Order, error)
}
