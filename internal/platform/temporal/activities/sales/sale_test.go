package sales

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/testsuite"

	ordermemory "github.com/Apurer/retail-pos/internal/domains/orders/adapters/memory"
	orderdomain "github.com/Apurer/retail-pos/internal/domains/orders/domain"
	productmemory "github.com/Apurer/retail-pos/internal/domains/products/adapters/memory"
	productdomain "github.com/Apurer/retail-pos/internal/domains/products/domain"
	salesmemory "github.com/Apurer/retail-pos/internal/domains/sales/adapters/memory"
	salesapplication "github.com/Apurer/retail-pos/internal/domains/sales/application"
	salesports "github.com/Apurer/retail-pos/internal/domains/sales/ports"
)

// A retried attempt without heartbeat details, as after a worker crash, must not commit twice.
func TestCommitSale_RetryWithoutHeartbeatCommitsOnce(t *testing.T) {
	ctx := context.Background()
	products := productmemory.NewRepository()
	orders := ordermemory.NewRepository()
	tee, err := products.Save(ctx, &productdomain.Product{Name: "Tee", Price: decimal.NewFromInt(10), Quantity: 5})
	require.NoError(t, err)

	recorder := salesapplication.NewRecorder(salesmemory.NewUnitOfWork(products, orders), time.Now)
	acts := NewActivities(recorder, nil)
	req := salesports.CheckoutRequest{
		CartID:       "cart-1",
		CartVersion:  1,
		CustomerName: "Jane",
		Lines:        []salesports.CheckoutLine{{ProductID: tee.ID, Name: tee.Name, Quantity: 2, UnitPrice: tee.Price}},
	}

	var ids []int64
	for attempt := 0; attempt < 2; attempt++ {
		var suite testsuite.WorkflowTestSuite
		env := suite.NewTestActivityEnvironment()
		env.RegisterActivity(acts.CommitSale)
		val, err := env.ExecuteActivity(acts.CommitSale, req)
		require.NoError(t, err)
		var order orderdomain.Order
		require.NoError(t, val.Get(&order))
		ids = append(ids, order.ID)
	}
	assert.Equal(t, ids[0], ids[1])

	stock, err := products.GetByID(ctx, tee.ID)
	require.NoError(t, err)
	assert.Equal(t, int32(3), stock.Quantity)
	list, err := orders.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
