package memory

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/retail-pos/internal/domains/employees/domain"
	"github.com/Apurer/retail-pos/internal/domains/employees/ports"
)

func TestRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository()

	saved, err := repo.Save(ctx, &domain.Employee{Name: "Ana", Salary: decimal.RequireFromString("1200.50")})
	require.NoError(t, err)
	assert.Equal(t, int64(1), saved.ID)

	saved.Position = "Cashier"
	_, err = repo.Save(ctx, saved)
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "Cashier", got.Position)

	require.NoError(t, repo.Delete(ctx, saved.ID))
	_, err = repo.GetByID(ctx, saved.ID)
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestRepository_SaveRejectsInvalid(t *testing.T) {
	_, err := NewRepository().Save(context.Background(), &domain.Employee{})
	require.ErrorIs(t, err, domain.ErrEmptyName)
}
