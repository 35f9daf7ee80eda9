package ports

import (
	"context"
	"errors"

	"github.com/Apurer/retail-pos/internal/domains/employees/domain"
)

var ErrNotFound = errors.New("employee not found")

type Repository interface {
	Save(ctx context.Context, employee *domain.Employee) (*domain.Employee, error)
	GetByID(ctx context.Context, id int64) (*domain.Employee, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*domain.Employee, error)
}
