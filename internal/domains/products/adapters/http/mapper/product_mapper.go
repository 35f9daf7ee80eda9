package mapper

import (
	"github.com/shopspring/decimal"

	productdomain "github.com/Apurer/retail-pos/internal/domains/products/domain"
)

// ProductPayload is the request body for creating or replacing a product.
type ProductPayload struct {
	Name     string          `json:"name" validate:"required,max=200"`
	Category string          `json:"category" validate:"max=100"`
	Price    decimal.Decimal `json:"price"`
	Quantity int32           `json:"quantity" validate:"gte=0"`
	Supplier string          `json:"supplier" validate:"max=200"`
}

// Product is the transport representation returned to clients.
type Product struct {
	ID         int64           `json:"id"`
	Name       string          `json:"name"`
	Category   string          `json:"category"`
	Price      decimal.Decimal `json:"price"`
	Quantity   int32           `json:"quantity"`
	Supplier   string          `json:"supplier,omitempty"`
	StockLevel string          `json:"stockLevel"`
}

// Inventory is the transport shape of the inventory report.
type Inventory struct {
	Filter     string          `json:"filter"`
	Products   []Product       `json:"products"`
	TotalValue decimal.Decimal `json:"totalValue"`
	InStock    int             `json:"inStock"`
	LowStock   int             `json:"lowStock"`
	OutOfStock int             `json:"outOfStock"`
}

// ToDomainProduct converts a payload into the product domain model.
func ToDomainProduct(id int64, payload ProductPayload) (*productdomain.Product, error) {
	return productdomain.NewProduct(id, payload.Name, payload.Category, payload.Price, payload.Quantity, payload.Supplier)
}

// FromDomainProduct converts a domain product to the transport representation.
func FromDomainProduct(product *productdomain.Product) Product {
	if product == nil {
		return Product{}
	}
	return Product{
		ID:         product.ID,
		Name:       product.Name,
		Category:   product.Category,
		Price:      product.Price,
		Quantity:   product.Quantity,
		Supplier:   product.Supplier,
		StockLevel: string(product.Level()),
	}
}

// FromDomainProducts converts a slice of domain products.
func FromDomainProducts(products []*productdomain.Product) []Product {
	result := make([]Product, 0, len(products))
	for _, product := range products {
		result = append(result, FromDomainProduct(product))
	}
	return result
}

// FromDomainInventory converts the inventory report.
func FromDomainInventory(inv *productdomain.Inventory) Inventory {
	if inv == nil {
		return Inventory{Products: []Product{}}
	}
	return Inventory{
		Filter:     string(inv.Filter),
		Products:   FromDomainProducts(inv.Products),
		TotalValue: inv.TotalValue,
		InStock:    inv.InStock,
		LowStock:   inv.LowStock,
		OutOfStock: inv.OutOfStock,
	}
}
