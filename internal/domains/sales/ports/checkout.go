package ports

import (
	"context"
	"strconv"

	"github.com/shopspring/decimal"

	orderdomain "github.com/Apurer/retail-pos/internal/domains/orders/domain"
	orderports "github.com/Apurer/retail-pos/internal/domains/orders/ports"
	productports "github.com/Apurer/retail-pos/internal/domains/products/ports"
	"github.com/Apurer/retail-pos/internal/domains/sales/domain"
)

// CheckoutRequest is the frozen content of a cart handed to the sale recorder.
type CheckoutRequest struct {
	CartID       string
	CartVersion  int64
	CustomerName string
	Lines        []CheckoutLine
}

type CheckoutLine struct {
	ProductID int64
	Name      string
	Quantity  int32
	UnitPrice decimal.Decimal
}

// NewCheckoutRequest snapshots cart lines for a checkout attempt.
func NewCheckoutRequest(cart *domain.Cart, customerName string) CheckoutRequest {
	lines := make([]CheckoutLine, 0, len(cart.Lines))
	for _, l := range cart.Lines {
		lines = append(lines, CheckoutLine{ProductID: l.ProductID, Name: l.Name, Quantity: l.Quantity, UnitPrice: l.UnitPrice})
	}
	return CheckoutRequest{CartID: cart.ID, CartVersion: cart.Version, CustomerName: customerName, Lines: lines}
}

// Key identifies one checkout attempt of one cart state. An empty cart id yields no key.
func (r CheckoutRequest) Key() string {
	if r.CartID == "" {
		return ""
	}
	return r.CartID + ":" + strconv.FormatInt(r.CartVersion, 10)
}

// Stores are the repositories bound to one unit of work.
type Stores interface {
	Products() productports.Repository
	Orders() orderports.Repository
}

// UnitOfWork runs fn atomically: every write made through stores commits together or not at all.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(ctx context.Context, stores Stores) error) error
}

// SaleRecorder commits a checkout: one order plus one stock decrement per line.
type SaleRecorder interface {
	Record(ctx context.Context, req CheckoutRequest) (*orderdomain.Order, error)
}

// WorkflowOrchestrator runs the checkout, durably or inline.
type WorkflowOrchestrator interface {
	Checkout(ctx context.Context, req CheckoutRequest) (*orderdomain.Order, error)
}

// EventPublisher announces committed sales to downstream consumers.
type EventPublisher interface {
	PublishSaleCompleted(ctx context.Context, event domain.SaleCompleted) error
}
