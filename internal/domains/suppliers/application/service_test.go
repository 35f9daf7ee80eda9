package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/retail-pos/internal/domains/suppliers/adapters/memory"
	"github.com/Apurer/retail-pos/internal/domains/suppliers/domain"
	"github.com/Apurer/retail-pos/internal/domains/suppliers/ports"
)

func TestService_AddAssignsID(t *testing.T) {
	svc := NewService(memory.NewRepository())
	saved, err := svc.Add(context.Background(), &domain.Supplier{ID: 99, Name: "Acme", Phone: "555"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), saved.ID)
}

func TestService_AddRejectsInvalid(t *testing.T) {
	svc := NewService(memory.NewRepository())
	_, err := svc.Add(context.Background(), &domain.Supplier{Name: "Acme"})
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrEmptyPhone)
}

func TestService_UpdateUnknown(t *testing.T) {
	svc := NewService(memory.NewRepository())
	_, err := svc.Update(context.Background(), &domain.Supplier{ID: 7, Name: "Acme", Phone: "555"})
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestService_DeleteIsAbsentTolerant(t *testing.T) {
	svc := NewService(memory.NewRepository())
	require.NoError(t, svc.Delete(context.Background(), 42))
}

func TestService_Search(t *testing.T) {
	ctx := context.Background()
	svc := NewService(memory.NewRepository())
	_, err := svc.Add(ctx, &domain.Supplier{Name: "Acme Textiles", Phone: "555-0100", Email: "a@acme.test"})
	require.NoError(t, err)
	_, err = svc.Add(ctx, &domain.Supplier{Name: "Denim Works", Phone: "555-0200"})
	require.NoError(t, err)

	found, err := svc.Search(ctx, "denim")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Denim Works", found[0].Name)

	all, err := svc.Search(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
