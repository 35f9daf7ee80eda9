package mapper

import (
	"time"

	"github.com/shopspring/decimal"

	orderdomain "github.com/Apurer/retail-pos/internal/domains/orders/domain"
)

// OrderPayload is the request body for recording or replacing an order.
type OrderPayload struct {
	CreatedAt    time.Time       `json:"createdAt"`
	CustomerName string          `json:"customerName" validate:"max=200"`
	Total        decimal.Decimal `json:"total"`
	Lines        []OrderLine     `json:"lines" validate:"dive"`
}

type OrderLine struct {
	ProductID int64           `json:"productId" validate:"gt=0"`
	Name      string          `json:"name"`
	Quantity  int32           `json:"quantity" validate:"gt=0"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	LineTotal decimal.Decimal `json:"lineTotal"`
}

// Order represents the transport-layer shape of a completed sale.
type Order struct {
	ID           int64           `json:"id"`
	CreatedAt    time.Time       `json:"createdAt"`
	CustomerName string          `json:"customerName"`
	Total        decimal.Decimal `json:"total"`
	Status       string          `json:"status"`
	Lines        []OrderLine     `json:"lines"`
}

// TodayTotal is the response of the daily sales total endpoint.
type TodayTotal struct {
	Date  string          `json:"date"`
	Total decimal.Decimal `json:"total"`
}

// ToDomainOrder converts a payload into the order domain model. Line totals are recomputed.
func ToDomainOrder(id int64, payload OrderPayload) *orderdomain.Order {
	lines := make([]orderdomain.Line, 0, len(payload.Lines))
	for _, l := range payload.Lines {
		lines = append(lines, orderdomain.NewLine(l.ProductID, l.Name, l.Quantity, l.UnitPrice))
	}
	return &orderdomain.Order{
		ID:           id,
		CreatedAt:    payload.CreatedAt,
		CustomerName: payload.CustomerName,
		Total:        payload.Total,
		Lines:        lines,
	}
}

func FromDomainOrder(order *orderdomain.Order) Order {
	if order == nil {
		return Order{}
	}
	lines := make([]OrderLine, 0, len(order.Lines))
	for _, l := range order.Lines {
		lines = append(lines, OrderLine{
			ProductID: l.ProductID,
			Name:      l.Name,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			LineTotal: l.LineTotal,
		})
	}
	return Order{
		ID:           order.ID,
		CreatedAt:    order.CreatedAt,
		CustomerName: order.CustomerName,
		Total:        order.Total,
		Status:       string(order.Status),
		Lines:        lines,
	}
}

func FromDomainOrders(orders []*orderdomain.Order) []Order {
	result := make([]Order, 0, len(orders))
	for _, o := range orders {
		result = append(result, FromDomainOrder(o))
	}
	return result
}
