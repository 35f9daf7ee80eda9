// Package wiring selects the storage and messaging adapters shared by the POS processes.
package wiring

import (
	"context"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	employeememory "github.com/Apurer/retail-pos/internal/domains/employees/adapters/memory"
	employeepostgres "github.com/Apurer/retail-pos/internal/domains/employees/adapters/persistence/postgres"
	employeeports "github.com/Apurer/retail-pos/internal/domains/employees/ports"
	ordermemory "github.com/Apurer/retail-pos/internal/domains/orders/adapters/memory"
	orderpostgres "github.com/Apurer/retail-pos/internal/domains/orders/adapters/persistence/postgres"
	orderports "github.com/Apurer/retail-pos/internal/domains/orders/ports"
	productmemory "github.com/Apurer/retail-pos/internal/domains/products/adapters/memory"
	productpostgres "github.com/Apurer/retail-pos/internal/domains/products/adapters/persistence/postgres"
	productports "github.com/Apurer/retail-pos/internal/domains/products/ports"
	salesmemory "github.com/Apurer/retail-pos/internal/domains/sales/adapters/memory"
	salespostgres "github.com/Apurer/retail-pos/internal/domains/sales/adapters/persistence/postgres"
	salesports "github.com/Apurer/retail-pos/internal/domains/sales/ports"
	suppliermemory "github.com/Apurer/retail-pos/internal/domains/suppliers/adapters/memory"
	supplierpostgres "github.com/Apurer/retail-pos/internal/domains/suppliers/adapters/persistence/postgres"
	supplierports "github.com/Apurer/retail-pos/internal/domains/suppliers/ports"
	usermemory "github.com/Apurer/retail-pos/internal/domains/users/adapters/memory"
	userpostgres "github.com/Apurer/retail-pos/internal/domains/users/adapters/persistence/postgres"
	userports "github.com/Apurer/retail-pos/internal/domains/users/ports"
)

const (
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

// Repositories is one consistent set of adapters: all postgres or all memory.
type Repositories struct {
	Backend    string
	Products   productports.Repository
	Suppliers  supplierports.Repository
	Employees  employeeports.Repository
	Orders     orderports.Repository
	Users      userports.Repository
	Sessions   userports.SessionStore
	UnitOfWork salesports.UnitOfWork
}

// NewRepositories returns postgres adapters when db is set and in-memory adapters otherwise.
func NewRepositories(db *gorm.DB, logger *slog.Logger) Repositories {
	if logger == nil {
		logger = slog.Default()
	}
	if db != nil {
		logger.Info("repositories configured", slog.String("backend", BackendPostgres))
		return Repositories{
			Backend:    BackendPostgres,
			Products:   productpostgres.NewRepository(db),
			Suppliers:  supplierpostgres.NewRepository(db),
			Employees:  employeepostgres.NewRepository(db),
			Orders:     orderpostgres.NewRepository(db),
			Users:      userpostgres.NewRepository(db),
			Sessions:   userpostgres.NewSessionStore(db),
			UnitOfWork: salespostgres.NewUnitOfWork(db),
		}
	}
	products := productmemory.NewRepository()
	orders := ordermemory.NewRepository()
	logger.Warn("repositories configured, data is lost on restart", slog.String("backend", BackendMemory))
	return Repositories{
		Backend:    BackendMemory,
		Products:   products,
		Suppliers:  suppliermemory.NewRepository(),
		Employees:  employeememory.NewRepository(),
		Orders:     orders,
		Users:      usermemory.NewRepository(),
		Sessions:   usermemory.NewSessionStore(),
		UnitOfWork: salesmemory.NewUnitOfWork(products, orders),
	}
}

// PingDB returns a health probe for db.
func PingDB(db *gorm.DB) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return fmt.Errorf("unwrap sql db: %w", err)
		}
		return sqlDB.PingContext(ctx)
	}
}
