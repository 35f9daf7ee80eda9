package workflows

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	oteltrace "go.opentelemetry.io/otel/trace"
	enumspb "go.temporal.io/api/enums/v1"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"

	orderdomain "github.com/Apurer/retail-pos/internal/domains/orders/domain"
	"github.com/Apurer/retail-pos/internal/domains/sales/domain"
	"github.com/Apurer/retail-pos/internal/domains/sales/ports"
	salesactivities "github.com/Apurer/retail-pos/internal/platform/temporal/activities/sales"
	salesworkflows "github.com/Apurer/retail-pos/internal/platform/temporal/workflows/sales"
)

var (
	_ ports.WorkflowOrchestrator = (*TemporalCheckout)(nil)
	_ ports.WorkflowOrchestrator = (*InlineCheckout)(nil)
)

// TemporalCheckout starts checkout workflows on a Temporal cluster.
type TemporalCheckout struct {
	client    client.Client
	taskQueue string
}

func NewTemporalCheckout(c client.Client) *TemporalCheckout {
	return &TemporalCheckout{client: c, taskQueue: salesworkflows.CheckoutTaskQueue}
}

// Checkout runs the workflow and waits for the order it produced.
// A retry for the same cart version attaches to the running execution instead of starting a second one.
func (o *TemporalCheckout) Checkout(ctx context.Context, req ports.CheckoutRequest) (*orderdomain.Order, error) {
	if o == nil || o.client == nil {
		return nil, errors.New("temporal checkout not configured")
	}
	workflowID := buildCheckoutWorkflowID(req)
	options := client.StartWorkflowOptions{
		ID:                    workflowID,
		TaskQueue:             o.taskQueue,
		WorkflowIDReusePolicy: enumspb.WORKFLOW_ID_REUSE_POLICY_ALLOW_DUPLICATE_FAILED_ONLY,
	}
	run, err := o.client.ExecuteWorkflow(
		ctx,
		options,
		salesworkflows.CheckoutWorkflow,
		salesworkflows.CheckoutWorkflowInput{Request: req, TraceID: workflowTraceID(ctx)},
	)
	if err != nil {
		var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
		if !errors.As(err, &alreadyStarted) {
			return nil, err
		}
		run = o.client.GetWorkflow(ctx, workflowID, alreadyStarted.RunId)
	}
	var order orderdomain.Order
	if err := run.Get(ctx, &order); err != nil {
		return nil, salesactivities.RestoreError(err)
	}
	return &order, nil
}

func buildCheckoutWorkflowID(req ports.CheckoutRequest) string {
	return fmt.Sprintf("sales-checkout-%s-v%d", req.CartID, req.CartVersion)
}

func workflowTraceID(ctx context.Context) string {
	spanCtx := oteltrace.SpanFromContext(ctx).SpanContext()
	if !spanCtx.IsValid() {
		return ""
	}
	return spanCtx.TraceID().String()
}

// InlineCheckout records the sale in-process, for development and tests without Temporal.
type InlineCheckout struct {
	recorder  ports.SaleRecorder
	publisher ports.EventPublisher
	logger    *slog.Logger
}

func NewInlineCheckout(recorder ports.SaleRecorder, publisher ports.EventPublisher, logger *slog.Logger) *InlineCheckout {
	if logger == nil {
		logger = slog.Default()
	}
	return &InlineCheckout{recorder: recorder, publisher: publisher, logger: logger}
}

// Checkout commits the sale, then publishes the event. A publish failure does not undo the sale.
func (o *InlineCheckout) Checkout(ctx context.Context, req ports.CheckoutRequest) (*orderdomain.Order, error) {
	if o == nil || o.recorder == nil {
		return nil, errors.New("inline checkout not configured")
	}
	order, err := o.recorder.Record(ctx, req)
	if err != nil {
		return nil, err
	}
	if o.publisher != nil {
		if err := o.publisher.PublishSaleCompleted(ctx, domain.NewSaleCompleted(req.CartID, order)); err != nil {
			o.logger.WarnContext(ctx, "publish sale completed failed",
				slog.Int64("order_id", order.ID),
				slog.String("cart_id", req.CartID),
				slog.String("error", err.Error()),
			)
		}
	}
	return order, nil
}
