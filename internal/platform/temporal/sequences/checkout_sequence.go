package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	orderdomain "github.com/Apurer/retail-pos/internal/domains/orders/domain"
	salesdomain "github.com/Apurer/retail-pos/internal/domains/sales/domain"
	salesports "github.com/Apurer/retail-pos/internal/domains/sales/ports"
	salesactivities "github.com/Apurer/retail-pos/internal/platform/temporal/activities/sales"
)

// RunCheckoutSequence commits the sale, then publishes sale.completed with its own retry policy.
// A publish failure is logged and does not fail the checkout: the order is already committed.
func RunCheckoutSequence(ctx workflow.Context, req salesports.CheckoutRequest) (*orderdomain.Order, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("checkout sequence started", "cartId", req.CartID)
	commitOptions := workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    10 * time.Second,
			MaximumAttempts:    5,
		},
	}
	publishOptions := workflow.ActivityOptions{
		StartToCloseTimeout: 15 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    time.Minute,
			MaximumAttempts:    10,
		},
	}

	var order orderdomain.Order
	err := workflow.ExecuteActivity(workflow.WithActivityOptions(ctx, commitOptions), salesactivities.CommitSaleActivityName, req).Get(ctx, &order)
	if err != nil {
		logger.Error("checkout sequence commit failed", "cartId", req.CartID, "error", err)
		return nil, err
	}
	logger.Info("checkout sequence committed", "cartId", req.CartID, "orderId", order.ID)

	event := salesdomain.NewSaleCompleted(req.CartID, &order)
	if err := workflow.ExecuteActivity(workflow.WithActivityOptions(ctx, publishOptions), salesactivities.PublishSaleCompletedActivityName, event).Get(ctx, nil); err != nil {
		logger.Error("checkout sequence publish failed", "orderId", order.ID, "error", err)
		return &order, nil
	}
	logger.Info("checkout sequence published", "orderId", order.ID)
	return &order, nil
}
