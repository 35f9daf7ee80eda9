package ports

import (
	"context"

	productdomain "github.com/Apurer/retail-pos/internal/domains/products/domain"
	"github.com/Apurer/retail-pos/internal/domains/reports/domain"
)

// Service exposes read-only reporting use cases to adapters.
type Service interface {
	Dashboard(ctx context.Context) (*domain.Dashboard, error)
	Sales(ctx context.Context, filter domain.SalesFilter) (*domain.SalesReport, error)
	Inventory(ctx context.Context, filter productdomain.InventoryFilter) (*productdomain.Inventory, error)
}
