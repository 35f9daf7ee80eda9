package mapper

import (
	"time"

	"github.com/shopspring/decimal"

	salesdomain "github.com/Apurer/retail-pos/internal/domains/sales/domain"
)

// AddItemPayload adds a product to a cart. An omitted quantity means one unit.
type AddItemPayload struct {
	ProductID int64 `json:"productId" validate:"gt=0"`
	Quantity  int32 `json:"quantity" validate:"gte=0"`
}

type CheckoutPayload struct {
	CustomerName string `json:"customerName" validate:"max=200"`
}

type CartLine struct {
	ProductID int64           `json:"productId"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Quantity  int32           `json:"quantity"`
	LineTotal decimal.Decimal `json:"lineTotal"`
}

// Cart is the transport shape of an in-progress sale.
type Cart struct {
	ID          string          `json:"id"`
	Lines       []CartLine      `json:"lines"`
	Total       decimal.Decimal `json:"total"`
	Version     int64           `json:"version"`
	CheckingOut bool            `json:"checkingOut"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

func FromDomainCart(cart *salesdomain.Cart) Cart {
	if cart == nil {
		return Cart{Lines: []CartLine{}}
	}
	lines := make([]CartLine, 0, len(cart.Lines))
	for _, l := range cart.Lines {
		lines = append(lines, CartLine{
			ProductID: l.ProductID,
			Name:      l.Name,
			UnitPrice: l.UnitPrice,
			Quantity:  l.Quantity,
			LineTotal: l.Total(),
		})
	}
	return Cart{
		ID:          cart.ID,
		Lines:       lines,
		Total:       cart.Total(),
		Version:     cart.Version,
		CheckingOut: cart.CheckingOut,
		UpdatedAt:   cart.UpdatedAt,
	}
}
