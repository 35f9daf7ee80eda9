package ports

import (
	"context"
	"errors"

	"github.com/Apurer/retail-pos/internal/domains/suppliers/domain"
)

var ErrNotFound = errors.New("supplier not found")

type Repository interface {
	Save(ctx context.Context, supplier *domain.Supplier) (*domain.Supplier, error)
	GetByID(ctx context.Context, id int64) (*domain.Supplier, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*domain.Supplier, error)
}
