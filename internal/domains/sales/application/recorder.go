package application

import (
	"context"
	"errors"
	"time"

	orderdomain "github.com/Apurer/retail-pos/internal/domains/orders/domain"
	orderports "github.com/Apurer/retail-pos/internal/domains/orders/ports"
	"github.com/Apurer/retail-pos/internal/domains/sales/domain"
	"github.com/Apurer/retail-pos/internal/domains/sales/ports"
)

// Recorder commits a sale inside one unit of work so the order and every stock
// decrement land together.
type Recorder struct {
	uow ports.UnitOfWork
	now func() time.Time
}

func NewRecorder(uow ports.UnitOfWork, now func() time.Time) *Recorder {
	if now == nil {
		now = time.Now
	}
	return &Recorder{uow: uow, now: now}
}

// Record is idempotent per checkout key: a repeated request returns the order
// already committed for it and decrements no stock.
func (r *Recorder) Record(ctx context.Context, req ports.CheckoutRequest) (*orderdomain.Order, error) {
	if len(req.Lines) == 0 {
		return nil, domain.ErrEmptyCart
	}
	key := req.Key()
	var saved *orderdomain.Order
	err := r.uow.Do(ctx, func(ctx context.Context, stores ports.Stores) error {
		if key != "" {
			existing, err := stores.Orders().GetByCheckoutKey(ctx, key)
			if err == nil {
				saved = existing
				return nil
			}
			if !errors.Is(err, orderports.ErrNotFound) {
				return err
			}
		}
		lines := make([]orderdomain.Line, 0, len(req.Lines))
		for _, l := range req.Lines {
			if _, err := stores.Products().DecrementStock(ctx, l.ProductID, l.Quantity); err != nil {
				return mapStockError(l.ProductID, err)
			}
			lines = append(lines, orderdomain.NewLine(l.ProductID, l.Name, l.Quantity, l.UnitPrice))
		}
		order, err := orderdomain.NewOrder(req.CustomerName, lines, r.now())
		if err != nil {
			return mapError(err)
		}
		order.CheckoutKey = key
		saved, err = stores.Orders().Save(ctx, order)
		return err
	})
	if errors.Is(err, orderports.ErrDuplicateCheckout) {
		// a concurrent attempt committed first
		return r.committed(ctx, key)
	}
	if err != nil {
		return nil, err
	}
	return saved, nil
}

func (r *Recorder) committed(ctx context.Context, key string) (*orderdomain.Order, error) {
	var order *orderdomain.Order
	err := r.uow.Do(ctx, func(ctx context.Context, stores ports.Stores) error {
		var err error
		order, err = stores.Orders().GetByCheckoutKey(ctx, key)
		return err
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

var _ ports.SaleRecorder = (*Recorder)(nil)
