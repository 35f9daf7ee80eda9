package memory

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/retail-pos/internal/domains/orders/domain"
	"github.com/Apurer/retail-pos/internal/domains/orders/ports"
)

func TestRepository_ListBetweenIsHalfOpen(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository()
	day := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	for _, at := range []time.Time{day.Add(-time.Second), day, day.Add(23 * time.Hour), day.AddDate(0, 0, 1)} {
		_, err := repo.Save(ctx, &domain.Order{CreatedAt: at, Total: decimal.NewFromInt(1), Status: domain.StatusCompleted})
		require.NoError(t, err)
	}

	got, err := repo.ListBetween(ctx, day, day.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.True(t, got[0].CreatedAt.Equal(day))
}

func TestRepository_GetUnknown(t *testing.T) {
	_, err := NewRepository().GetByID(context.Background(), 1)
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestRepository_CheckoutKeyIsUnique(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository()
	saved, err := repo.Save(ctx, &domain.Order{Total: decimal.NewFromInt(1), Status: domain.StatusCompleted, CheckoutKey: "cart-1:1"})
	require.NoError(t, err)

	_, err = repo.Save(ctx, &domain.Order{Total: decimal.NewFromInt(2), Status: domain.StatusCompleted, CheckoutKey: "cart-1:1"})
	require.ErrorIs(t, err, ports.ErrDuplicateCheckout)

	got, err := repo.GetByCheckoutKey(ctx, "cart-1:1")
	require.NoError(t, err)
	assert.Equal(t, saved.ID, got.ID)

	_, err = repo.GetByCheckoutKey(ctx, "")
	require.ErrorIs(t, err, ports.ErrNotFound)
	_, err = repo.Save(ctx, &domain.Order{Total: decimal.NewFromInt(3), Status: domain.StatusCompleted})
	require.NoError(t, err)
	_, err = repo.Save(ctx, &domain.Order{Total: decimal.NewFromInt(4), Status: domain.StatusCompleted})
	require.NoError(t, err)
}
