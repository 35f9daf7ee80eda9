package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// InventoryFilter selects a stock bucket for the inventory view.
type InventoryFilter string

const (
	InventoryAll        InventoryFilter = "all"
	InventoryLowStock   InventoryFilter = "low"
	InventoryOutOfStock InventoryFilter = "out"
)

// ParseInventoryFilter accepts the filter names used by the inventory screen; empty means all.
func ParseInventoryFilter(raw string) (InventoryFilter, error) {
	switch InventoryFilter(strings.ToLower(strings.TrimSpace(raw))) {
	case "", InventoryAll:
		return InventoryAll, nil
	case InventoryLowStock:
		return InventoryLowStock, nil
	case InventoryOutOfStock:
		return InventoryOutOfStock, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidInventoryFilter, raw)
	}
}

// Inventory is a filtered product view plus totals computed over the whole catalog.
type Inventory struct {
	Filter     InventoryFilter
	Products   []*Product
	TotalValue decimal.Decimal
	InStock    int
	LowStock   int
	OutOfStock int
}

// BuildInventory buckets products and sums stock value across all of them.
func BuildInventory(products []*Product, filter InventoryFilter) Inventory {
	inv := Inventory{Filter: filter, TotalValue: decimal.Zero, Products: []*Product{}}
	for _, p := range products {
		if p == nil {
			continue
		}
		inv.TotalValue = inv.TotalValue.Add(p.StockValue())
		level := p.Level()
		switch level {
		case StockLevelOut:
			inv.OutOfStock++
		case StockLevelLow:
			inv.LowStock++
		default:
			inv.InStock++
		}
		if filter.includes(level) {
			inv.Products = append(inv.Products, p)
		}
	}
	return inv
}

func (f InventoryFilter) includes(level StockLevel) bool {
	switch f {
	case InventoryLowStock:
		return level == StockLevelLow
	case InventoryOutOfStock:
		return level == StockLevelOut
	default:
		return true
	}
}
