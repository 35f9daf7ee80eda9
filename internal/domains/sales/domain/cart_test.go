package domain

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 4, 1, 10, 0, 0, 0, time.UTC)

func item(id int64, price string, stock int32) Item {
	return Item{ProductID: id, Name: "p", UnitPrice: decimal.RequireFromString(price), Stock: stock}
}

func TestCart_AddOutOfStockLeavesCartUnchanged(t *testing.T) {
	cart := NewCart("c1", now)
	require.NoError(t, cart.Add(item(2, "5.00", 3), 1, now))
	before := cart.Clone()

	err := cart.Add(item(1, "19.99", 0), 1, now)
	require.ErrorIs(t, err, ErrOutOfStock)
	assert.Equal(t, before, cart)
}

func TestCart_AddSameProductTwiceMergesLine(t *testing.T) {
	cart := NewCart("c1", now)
	require.NoError(t, cart.Add(item(1, "19.99", 5), 1, now))
	require.NoError(t, cart.Add(item(1, "19.99", 5), 1, now))

	require.Len(t, cart.Lines, 1)
	assert.Equal(t, int32(2), cart.Lines[0].Quantity)
	assert.Equal(t, "39.98", cart.Lines[0].Total().StringFixed(2))
}

func TestCart_TotalIsExact(t *testing.T) {
	cart := NewCart("c1", now)
	require.NoError(t, cart.Add(item(1, "19.99", 10), 2, now))
	require.NoError(t, cart.Add(item(2, "5.00", 10), 1, now))
	assert.Equal(t, "44.98", cart.Total().StringFixed(2))

	cart = NewCart("c2", now)
	for i := 0; i < 3; i++ {
		require.NoError(t, cart.Add(item(3, "0.10", 10), 1, now))
	}
	assert.True(t, decimal.RequireFromString("0.30").Equal(cart.Total()))
}

func TestCart_StockCap(t *testing.T) {
	cart := NewCart("c1", now)
	for i := 0; i < 10; i++ {
		require.NoError(t, cart.Add(item(1, "1.00", 10), 1, now), "add #%d", i+1)
	}
	require.ErrorIs(t, cart.Add(item(1, "1.00", 10), 1, now), ErrOutOfStock)
	assert.Equal(t, int32(10), cart.Lines[0].Quantity)
}

func TestCart_AddRejectsNonPositiveQuantity(t *testing.T) {
	cart := NewCart("c1", now)
	require.ErrorIs(t, cart.Add(item(1, "1.00", 10), 0, now), ErrInvalidQuantity)
}

func TestCart_RemoveAndClear(t *testing.T) {
	cart := NewCart("c1", now)
	require.NoError(t, cart.Add(item(1, "1.00", 10), 1, now))
	require.NoError(t, cart.Add(item(2, "2.00", 10), 1, now))

	require.ErrorIs(t, cart.Remove(9, now), ErrLineNotFound)
	require.NoError(t, cart.Remove(1, now))
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, int64(2), cart.Lines[0].ProductID)

	require.NoError(t, cart.Clear(now))
	assert.True(t, cart.IsEmpty())
	assert.True(t, cart.Total().IsZero())
}

func TestCart_CheckoutLock(t *testing.T) {
	cart := NewCart("c1", now)
	require.ErrorIs(t, cart.BeginCheckout(), ErrEmptyCart)

	require.NoError(t, cart.Add(item(1, "1.00", 10), 1, now))
	version := cart.Version
	require.NoError(t, cart.BeginCheckout())
	require.ErrorIs(t, cart.BeginCheckout(), ErrCheckoutInProgress)
	require.ErrorIs(t, cart.Add(item(1, "1.00", 10), 1, now), ErrCheckoutInProgress)
	assert.Equal(t, version, cart.Version)

	cart.AbortCheckout()
	assert.False(t, cart.IsEmpty())

	require.NoError(t, cart.BeginCheckout())
	cart.CompleteCheckout(now)
	assert.True(t, cart.IsEmpty())
	assert.False(t, cart.CheckingOut)
}

func TestCustomerPolicy_Resolve(t *testing.T) {
	strict := CustomerPolicy{RequireName: true}
	_, err := strict.Resolve("  ")
	require.ErrorIs(t, err, ErrMissingCustomerName)

	lenient := CustomerPolicy{WalkInLabel: "Walk-in Customer"}
	name, err := lenient.Resolve("")
	require.NoError(t, err)
	assert.Equal(t, "Walk-in Customer", name)

	name, err = strict.Resolve(" Jane ")
	require.NoError(t, err)
	assert.Equal(t, "Jane", name)
}

func TestOutOfStockError_MatchesSentinelAndCause(t *testing.T) {
	cause := errors.New("insufficient stock")
	err := fmt.Errorf("checkout: %w", &OutOfStockError{ProductID: 7, Cause: cause})

	require.ErrorIs(t, err, ErrOutOfStock)
	require.ErrorIs(t, err, cause)
	assert.Equal(t, "checkout: product is out of stock: product 7: insufficient stock", err.Error())
	assert.Equal(t, "product is out of stock: product 3", (&OutOfStockError{ProductID: 3, Cause: ErrOutOfStock}).Error())
}
