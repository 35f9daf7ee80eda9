package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	orderdomain "github.com/Apurer/retail-pos/internal/domains/orders/domain"
	productdomain "github.com/Apurer/retail-pos/internal/domains/products/domain"
)

var ErrInvalidSalesFilter = errors.New("sales filter must be one of today, all")

// SalesFilter selects the order window of the sales report.
type SalesFilter string

const (
	SalesToday SalesFilter = "today"
	SalesAll   SalesFilter = "all"
)

// ParseSalesFilter accepts "today" or "all"; empty means today.
func ParseSalesFilter(raw string) (SalesFilter, error) {
	switch SalesFilter(strings.ToLower(strings.TrimSpace(raw))) {
	case "", SalesToday:
		return SalesToday, nil
	case SalesAll:
		return SalesAll, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidSalesFilter, raw)
	}
}

// Dashboard is the landing summary shown after login.
type Dashboard struct {
	GeneratedAt     time.Time
	TodaySales      decimal.Decimal
	TodayOrders     int
	TotalProducts   int
	LowStockCount   int
	OutOfStockCount int
	InventoryValue  decimal.Decimal
}

// NewDashboard combines today's orders with an inventory view of the whole catalog.
func NewDashboard(now time.Time, today []*orderdomain.Order, inventory productdomain.Inventory) Dashboard {
	return Dashboard{
		GeneratedAt:     now,
		TodaySales:      orderdomain.SumTotals(today),
		TodayOrders:     len(today),
		TotalProducts:   inventory.InStock + inventory.LowStock + inventory.OutOfStock,
		LowStockCount:   inventory.LowStock,
		OutOfStockCount: inventory.OutOfStock,
		InventoryValue:  inventory.TotalValue,
	}
}

// SalesReport lists orders in the selected window with their sum.
type SalesReport struct {
	Filter SalesFilter
	Orders []*orderdomain.Order
	Total  decimal.Decimal
}

func NewSalesReport(filter SalesFilter, orders []*orderdomain.Order) SalesReport {
	if orders == nil {
		orders = []*orderdomain.Order{}
	}
	return SalesReport{Filter: filter, Orders: orders, Total: orderdomain.SumTotals(orders)}
}
