package sales

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/testsuite"
	"go.temporal.io/sdk/workflow"

	orderdomain "github.com/Apurer/retail-pos/internal/domains/orders/domain"
	salesdomain "github.com/Apurer/retail-pos/internal/domains/sales/domain"
	salesports "github.com/Apurer/retail-pos/internal/domains/sales/ports"
	salesactivities "github.com/Apurer/retail-pos/internal/platform/temporal/activities/sales"
	"github.com/Apurer/retail-pos/internal/shared/persistence"
)

type stubRecorder struct {
	err error
}

func (r stubRecorder) Record(_ context.Context, req salesports.CheckoutRequest) (*orderdomain.Order, error) {
	if r.err != nil {
		return nil, r.err
	}
	lines := make([]orderdomain.Line, 0, len(req.Lines))
	for _, l := range req.Lines {
		lines = append(lines, orderdomain.NewLine(l.ProductID, l.Name, l.Quantity, l.UnitPrice))
	}
	order, err := orderdomain.NewOrder(req.CustomerName, lines, time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	if err != nil {
		return nil, err
	}
	order.ID = 77
	return order, nil
}

type stubPublisher struct {
	err    error
	events []salesdomain.SaleCompleted
}

func (p *stubPublisher) PublishSaleCompleted(_ context.Context, event salesdomain.SaleCompleted) error {
	p.events = append(p.events, event)
	return p.err
}

func runCheckout(t *testing.T, recorder salesports.SaleRecorder, publisher salesports.EventPublisher) *testsuite.TestWorkflowEnvironment {
	t.Helper()
	var suite testsuite.WorkflowTestSuite
	env := suite.NewTestWorkflowEnvironment()
	acts := salesactivities.NewActivities(recorder, publisher)
	env.RegisterWorkflowWithOptions(CheckoutWorkflow, workflow.RegisterOptions{Name: CheckoutWorkflowName})
	env.RegisterActivityWithOptions(acts.CommitSale, activity.RegisterOptions{Name: salesactivities.CommitSaleActivityName})
	env.RegisterActivityWithOptions(acts.PublishSaleCompleted, activity.RegisterOptions{Name: salesactivities.PublishSaleCompletedActivityName})

	env.ExecuteWorkflow(CheckoutWorkflow, CheckoutWorkflowInput{
		Request: salesports.CheckoutRequest{
			CartID:       "cart-1",
			CartVersion:  3,
			CustomerName: "Jane",
			Lines: []salesports.CheckoutLine{
				{ProductID: 1, Name: "Linen Shirt", Quantity: 2, UnitPrice: decimal.RequireFromString("19.99")},
				{ProductID: 2, Name: "Socks", Quantity: 1, UnitPrice: decimal.RequireFromString("5.00")},
			},
		},
		TraceID: "trace-1",
	})
	require.True(t, env.IsWorkflowCompleted())
	return env
}

func TestCheckoutWorkflow_CommitsAndPublishes(t *testing.T) {
	publisher := &stubPublisher{}
	env := runCheckout(t, stubRecorder{}, publisher)
	require.NoError(t, env.GetWorkflowError())

	var order orderdomain.Order
	require.NoError(t, env.GetWorkflowResult(&order))
	assert.Equal(t, int64(77), order.ID)
	assert.Equal(t, "44.98", order.Total.StringFixed(2))

	require.Len(t, publisher.events, 1)
	assert.Equal(t, "cart-1", publisher.events[0].CartID)
	assert.Equal(t, int64(77), publisher.events[0].OrderID)
}

func TestCheckoutWorkflow_OutOfStockIsNotRetried(t *testing.T) {
	publisher := &stubPublisher{}
	env := runCheckout(t, stubRecorder{err: fmt.Errorf("%w: product 2", salesdomain.ErrOutOfStock)}, publisher)

	err := env.GetWorkflowError()
	require.Error(t, err)
	require.ErrorIs(t, salesactivities.RestoreError(err), salesdomain.ErrOutOfStock)
	assert.Empty(t, publisher.events)
}

func TestCheckoutWorkflow_OutOfStockKeepsProductID(t *testing.T) {
	publisher := &stubPublisher{}
	env := runCheckout(t, stubRecorder{err: &salesdomain.OutOfStockError{ProductID: 2}}, publisher)

	err := env.GetWorkflowError()
	require.Error(t, err)
	var shortage *salesdomain.OutOfStockError
	require.ErrorAs(t, salesactivities.RestoreError(err), &shortage)
	assert.Equal(t, int64(2), shortage.ProductID)
}

func TestCheckoutWorkflow_StoreFailureRestoresAsPersistenceError(t *testing.T) {
	publisher := &stubPublisher{}
	env := runCheckout(t, stubRecorder{err: persistence.Wrap("orders.save", errors.New("connection refused"))}, publisher)

	err := env.GetWorkflowError()
	require.Error(t, err)
	restored := salesactivities.RestoreError(err)
	require.ErrorIs(t, restored, persistence.ErrFailure)
	assert.Contains(t, restored.Error(), "connection refused")
	assert.Empty(t, publisher.events)
}

func TestCheckoutWorkflow_PublishFailureKeepsOrder(t *testing.T) {
	publisher := &stubPublisher{err: errors.New("broker down")}
	env := runCheckout(t, stubRecorder{}, publisher)
	require.NoError(t, env.GetWorkflowError())

	var order orderdomain.Order
	require.NoError(t, env.GetWorkflowResult(&order))
	assert.Equal(t, int64(77), order.ID)
	assert.NotEmpty(t, publisher.events)
}
