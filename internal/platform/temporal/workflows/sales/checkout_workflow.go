package sales

import (
	"go.temporal.io/sdk/workflow"

	orderdomain "github.com/Apurer/retail-pos/internal/domains/orders/domain"
	salesports "github.com/Apurer/retail-pos/internal/domains/sales/ports"
	"github.com/Apurer/retail-pos/internal/platform/temporal/sequences"
)

const (
	// CheckoutWorkflowName is the public identifier for registering the workflow.
	CheckoutWorkflowName = "sales.workflows.Checkout"
	// CheckoutTaskQueue is the queue consumed by the worker processing checkouts.
	CheckoutTaskQueue = "POS_CHECKOUT"
)

// CheckoutWorkflowInput captures the frozen cart and the caller's trace id.
type CheckoutWorkflowInput struct {
	Request salesports.CheckoutRequest
	TraceID string
}

// CheckoutWorkflow records a sale and announces it.
func CheckoutWorkflow(ctx workflow.Context, input CheckoutWorkflowInput) (*orderdomain.Order, error) {
	logger := workflow.GetLogger(ctx)
	cartID := input.Request.CartID
	logger.Info("CheckoutWorkflow started", withTraceID(input.TraceID, "cartId", cartID)...)
	order, err := sequences.RunCheckoutSequence(ctx, input.Request)
	if err != nil {
		logger.Error("CheckoutWorkflow failed", withTraceID(input.TraceID, "cartId", cartID, "error", err)...)
		return nil, err
	}
	logger.Info("CheckoutWorkflow completed", withTraceID(input.TraceID, "cartId", cartID, "orderId", order.ID)...)
	return order, nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
