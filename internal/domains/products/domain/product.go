package domain

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// LowStockThreshold is the exclusive upper bound of the low stock bucket.
const LowStockThreshold int32 = 10

var (
	ErrEmptyName        = errors.New("product name is required")
	ErrNegativePrice    = errors.New("product price must not be negative")
	ErrNegativeQuantity = errors.New("product quantity must not be negative")

	ErrInvalidInventoryFilter = errors.New("inventory filter must be one of all, low, out")
)

// StockLevel classifies a product for inventory reports.
type StockLevel string

const (
	StockLevelOut StockLevel = "out_of_stock"
	StockLevelLow StockLevel = "low_stock"
	StockLevelIn  StockLevel = "in_stock"
)

// Product is a sellable catalog item with its quantity on hand.
type Product struct {
	ID       int64
	Name     string
	Category string
	Price    decimal.Decimal
	Quantity int32
	// Supplier is a free-text supplier name, not a reference.
	Supplier string
}

// NewProduct validates and constructs a Product.
func NewProduct(id int64, name, category string, price decimal.Decimal, quantity int32, supplier string) (*Product, error) {
	product := &Product{
		ID:       id,
		Name:     strings.TrimSpace(name),
		Category: strings.TrimSpace(category),
		Price:    price,
		Quantity: quantity,
		Supplier: strings.TrimSpace(supplier),
	}
	if err := product.Validate(); err != nil {
		return nil, err
	}
	return product, nil
}

// Validate enforces invariants on the aggregate.
func (p *Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrEmptyName
	}
	if p.Price.IsNegative() {
		return ErrNegativePrice
	}
	if p.Quantity < 0 {
		return ErrNegativeQuantity
	}
	return nil
}

// Level reports which stock bucket the product falls into.
func (p *Product) Level() StockLevel {
	switch {
	case p.Quantity <= 0:
		return StockLevelOut
	case p.Quantity < LowStockThreshold:
		return StockLevelLow
	default:
		return StockLevelIn
	}
}

// InStock reports whether at least one unit is available.
func (p *Product) InStock() bool {
	return p.Quantity > 0
}

// StockValue is price times quantity on hand.
func (p *Product) StockValue() decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt32(p.Quantity))
}

// Matches reports a case-insensitive substring match on name or category.
func (p *Product) Matches(query string) bool {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Name), query) ||
		strings.Contains(strings.ToLower(p.Category), query)
}
