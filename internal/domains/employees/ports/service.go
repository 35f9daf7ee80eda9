package ports

import (
	"context"

	"github.com/Apurer/retail-pos/internal/domains/employees/domain"
)

type Service interface {
	Add(ctx context.Context, employee *domain.Employee) (*domain.Employee, error)
	List(ctx context.Context) ([]*domain.Employee, error)
	GetByID(ctx context.Context, id int64) (*domain.Employee, error)
	Update(ctx context.Context, employee *domain.Employee) (*domain.Employee, error)
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, query string) ([]*domain.Employee, error)
}
