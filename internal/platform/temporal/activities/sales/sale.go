package sales

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"

	orderdomain "github.com/Apurer/retail-pos/internal/domains/orders/domain"
	salesdomain "github.com/Apurer/retail-pos/internal/domains/sales/domain"
	salesports "github.com/Apurer/retail-pos/internal/domains/sales/ports"
)

const (
	// CommitSaleActivityName records the order and stock decrements in one transaction.
	CommitSaleActivityName = "sales.activities.CommitSale"
	// PublishSaleCompletedActivityName announces a committed sale.
	PublishSaleCompletedActivityName = "sales.activities.PublishSaleCompleted"
)

// Activities groups activities that operate on the sales bounded context.
type Activities struct {
	recorder  salesports.SaleRecorder
	publisher salesports.EventPublisher
}

func NewActivities(recorder salesports.SaleRecorder, publisher salesports.EventPublisher) *Activities {
	return &Activities{recorder: recorder, publisher: publisher}
}

// CommitSale stores the sale atomically and returns the created order.
func (a *Activities) CommitSale(ctx context.Context, req salesports.CheckoutRequest) (*orderdomain.Order, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.recorder == nil {
		logger.Error("commit sale activity not initialized", "cartId", req.CartID)
		return nil, errors.New("commit sale activity not initialized")
	}

	var hb commitHeartbeat
	if activity.HasHeartbeatDetails(ctx) {
		_ = activity.GetHeartbeatDetails(ctx, &hb)
	}
	if hb.Order != nil {
		logger.Info("CommitSale already committed in prior attempt; skipping", "cartId", req.CartID, "orderId", hb.Order.ID)
		return hb.Order, nil
	}

	logger.Info("CommitSale activity started", "cartId", req.CartID, "lines", len(req.Lines))
	order, err := a.recorder.Record(ctx, req)
	if err != nil {
		logger.Error("CommitSale activity failed", "cartId", req.CartID, "error", err)
		return nil, toApplicationError(err)
	}
	activity.RecordHeartbeat(ctx, commitHeartbeat{Order: order})
	logger.Info("CommitSale activity completed", "cartId", req.CartID, "orderId", order.ID)
	return order, nil
}

// PublishSaleCompleted sends the sale.completed event.
func (a *Activities) PublishSaleCompleted(ctx context.Context, event salesdomain.SaleCompleted) error {
	logger := activity.GetLogger(ctx)
	if a == nil {
		return errors.New("publish sale activity not initialized")
	}
	if a.publisher == nil {
		logger.Info("event publisher not configured; skipping", "orderId", event.OrderID)
		return nil
	}
	logger.Info("PublishSaleCompleted activity started", "orderId", event.OrderID)
	if err := a.publisher.PublishSaleCompleted(ctx, event); err != nil {
		logger.Error("PublishSaleCompleted activity failed", "orderId", event.OrderID, "error", err)
		return err
	}
	logger.Info("PublishSaleCompleted activity completed", "orderId", event.OrderID)
	return nil
}

type commitHeartbeat struct {
	Order *orderdomain.Order
}
