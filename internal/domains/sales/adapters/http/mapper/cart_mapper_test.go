package mapper

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	salesdomain "github.com/Apurer/retail-pos/internal/domains/sales/domain"
)

func TestFromDomainCart(t *testing.T) {
	now := time.Date(2026, 1, 5, 12, 0, 0, 0, time.UTC)
	cart := salesdomain.NewCart("c1", now)
	require.NoError(t, cart.Add(salesdomain.Item{ProductID: 1, Name: "Tea", UnitPrice: decimal.RequireFromString("2.50"), Stock: 5}, 2, now))

	got := FromDomainCart(cart)
	assert.Equal(t, "c1", got.ID)
	require.Len(t, got.Lines, 1)
	assert.True(t, decimal.RequireFromString("5").Equal(got.Lines[0].LineTotal))
	assert.True(t, decimal.RequireFromString("5").Equal(got.Total))
	assert.Equal(t, int64(1), got.Version)
}

func TestFromDomainCart_Nil(t *testing.T) {
	got := FromDomainCart(nil)
	assert.NotNil(t, got.Lines)
	assert.Empty(t, got.Lines)
}
