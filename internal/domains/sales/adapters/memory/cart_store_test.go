package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/retail-pos/internal/domains/sales/domain"
	"github.com/Apurer/retail-pos/internal/domains/sales/ports"
)

func TestCartStore_UpdateIsAllOrNothing(t *testing.T) {
	ctx := context.Background()
	store := NewCartStore()
	now := time.Now()
	require.NoError(t, store.Create(ctx, domain.NewCart("c1", now)))

	_, err := store.Update(ctx, "c1", func(cart *domain.Cart) error {
		if err := cart.Add(domain.Item{ProductID: 1, UnitPrice: decimal.NewFromInt(2), Stock: 5}, 1, now); err != nil {
			return err
		}
		return errors.New("abort")
	})
	require.EqualError(t, err, "abort")

	cart, err := store.Get(ctx, "c1")
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())
	assert.Zero(t, cart.Version)
}

func TestCartStore_GetReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := NewCartStore()
	now := time.Now()
	require.NoError(t, store.Create(ctx, domain.NewCart("c1", now)))

	updated, err := store.Update(ctx, "c1", func(cart *domain.Cart) error {
		return cart.Add(domain.Item{ProductID: 1, UnitPrice: decimal.NewFromInt(2), Stock: 5}, 2, now)
	})
	require.NoError(t, err)
	updated.Lines[0].Quantity = 99

	cart, err := store.Get(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, int32(2), cart.Lines[0].Quantity)
}

func TestCartStore_Missing(t *testing.T) {
	ctx := context.Background()
	store := NewCartStore()
	_, err := store.Get(ctx, "nope")
	require.ErrorIs(t, err, ports.ErrCartNotFound)
	_, err = store.Update(ctx, "nope", func(*domain.Cart) error { return nil })
	require.ErrorIs(t, err, ports.ErrCartNotFound)
	require.ErrorIs(t, store.Delete(ctx, "nope"), ports.ErrCartNotFound)
	require.Error(t, store.Create(ctx, &domain.Cart{}))
}
