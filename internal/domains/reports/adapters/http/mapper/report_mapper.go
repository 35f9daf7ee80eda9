package mapper

import (
	"time"

	"github.com/shopspring/decimal"

	ordermapper "github.com/Apurer/retail-pos/internal/domains/orders/adapters/http/mapper"
	reportdomain "github.com/Apurer/retail-pos/internal/domains/reports/domain"
)

type Dashboard struct {
	GeneratedAt     time.Time       `json:"generatedAt"`
	TodaySales      decimal.Decimal `json:"todaySales"`
	TodayOrders     int             `json:"todayOrders"`
	TotalProducts   int             `json:"totalProducts"`
	LowStockCount   int             `json:"lowStockCount"`
	OutOfStockCount int             `json:"outOfStockCount"`
	InventoryValue  decimal.Decimal `json:"inventoryValue"`
}

type SalesReport struct {
	Filter string              `json:"filter"`
	Count  int                 `json:"count"`
	Total  decimal.Decimal     `json:"total"`
	Orders []ordermapper.Order `json:"orders"`
}

func FromDomainDashboard(d *reportdomain.Dashboard) Dashboard {
	if d == nil {
		return Dashboard{}
	}
	return Dashboard{
		GeneratedAt:     d.GeneratedAt,
		TodaySales:      d.TodaySales,
		TodayOrders:     d.TodayOrders,
		TotalProducts:   d.TotalProducts,
		LowStockCount:   d.LowStockCount,
		OutOfStockCount: d.OutOfStockCount,
		InventoryValue:  d.InventoryValue,
	}
}

func FromDomainSalesReport(r *reportdomain.SalesReport) SalesReport {
	if r == nil {
		return SalesReport{Orders: []ordermapper.Order{}}
	}
	return SalesReport{
		Filter: string(r.Filter),
		Count:  len(r.Orders),
		Total:  r.Total,
		Orders: ordermapper.FromDomainOrders(r.Orders),
	}
}
