package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	orderpostgres "github.com/Apurer/retail-pos/internal/domains/orders/adapters/persistence/postgres"
	orderports "github.com/Apurer/retail-pos/internal/domains/orders/ports"
	productpostgres "github.com/Apurer/retail-pos/internal/domains/products/adapters/persistence/postgres"
	productports "github.com/Apurer/retail-pos/internal/domains/products/ports"
	"github.com/Apurer/retail-pos/internal/domains/sales/ports"
	"github.com/Apurer/retail-pos/internal/shared/persistence"
)

var _ ports.UnitOfWork = (*UnitOfWork)(nil)

// UnitOfWork runs each unit in one database transaction.
type UnitOfWork struct {
	db       *gorm.DB
	products *productpostgres.Repository
	orders   *orderpostgres.Repository
}

func NewUnitOfWork(db *gorm.DB) *UnitOfWork {
	return &UnitOfWork{
		db:       db,
		products: productpostgres.NewRepository(db),
		orders:   orderpostgres.NewRepository(db),
	}
}

// Do commits when fn returns nil and rolls back otherwise. Errors from fn are returned as is.
func (u *UnitOfWork) Do(ctx context.Context, fn func(ctx context.Context, stores ports.Stores) error) error {
	if u == nil || u.db == nil {
		return errors.New("postgres unit of work not configured")
	}
	var fnErr error
	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		fnErr = fn(ctx, txStores{
			products: u.products.WithDB(tx),
			orders:   u.orders.WithDB(tx),
		})
		return fnErr
	})
	if fnErr != nil {
		return fnErr
	}
	if err != nil {
		return persistence.Wrap("commit unit of work", err)
	}
	return nil
}

type txStores struct {
	products productports.Repository
	orders   orderports.Repository
}

func (s txStores) Products() productports.Repository { return s.products }
func (s txStores) Orders() orderports.Repository     { return s.orders }
