package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ordermemory "github.com/Apurer/retail-pos/internal/domains/orders/adapters/memory"
	orderdomain "github.com/Apurer/retail-pos/internal/domains/orders/domain"
	productmemory "github.com/Apurer/retail-pos/internal/domains/products/adapters/memory"
	productdomain "github.com/Apurer/retail-pos/internal/domains/products/domain"
	"github.com/Apurer/retail-pos/internal/domains/sales/ports"
)

func TestUnitOfWork_CompensatesOnFailure(t *testing.T) {
	ctx := context.Background()
	products := productmemory.NewRepository()
	orders := ordermemory.NewRepository()
	tee, err := products.Save(ctx, &productdomain.Product{Name: "Tee", Price: decimal.NewFromInt(10), Quantity: 4})
	require.NoError(t, err)

	uow := NewUnitOfWork(products, orders)
	err = uow.Do(ctx, func(ctx context.Context, stores ports.Stores) error {
		if _, err := stores.Products().DecrementStock(ctx, tee.ID, 3); err != nil {
			return err
		}
		order, err := orderdomain.NewOrder("Jane", []orderdomain.Line{orderdomain.NewLine(tee.ID, "Tee", 3, tee.Price)}, time.Now())
		require.NoError(t, err)
		if _, err := stores.Orders().Save(ctx, order); err != nil {
			return err
		}
		return errors.New("late failure")
	})
	require.EqualError(t, err, "late failure")

	got, err := products.GetByID(ctx, tee.ID)
	require.NoError(t, err)
	assert.Equal(t, int32(4), got.Quantity)
	list, err := orders.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestUnitOfWork_KeepsWritesOnSuccess(t *testing.T) {
	ctx := context.Background()
	products := productmemory.NewRepository()
	orders := ordermemory.NewRepository()
	tee, err := products.Save(ctx, &productdomain.Product{Name: "Tee", Price: decimal.NewFromInt(10), Quantity: 4})
	require.NoError(t, err)

	err = NewUnitOfWork(products, orders).Do(ctx, func(ctx context.Context, stores ports.Stores) error {
		_, err := stores.Products().DecrementStock(ctx, tee.ID, 1)
		return err
	})
	require.NoError(t, err)

	got, err := products.GetByID(ctx, tee.ID)
	require.NoError(t, err)
	assert.Equal(t, int32(3), got.Quantity)
}

func TestUnitOfWork_RejectsUnjournaledWrites(t *testing.T) {
	ctx := context.Background()
	uow := NewUnitOfWork(productmemory.NewRepository(), ordermemory.NewRepository())
	err := uow.Do(ctx, func(ctx context.Context, stores ports.Stores) error {
		return stores.Products().Delete(ctx, 1)
	})
	require.Error(t, err)
}
