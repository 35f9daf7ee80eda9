package domain

import (
	"time"

	"github.com/shopspring/decimal"

	orderdomain "github.com/Apurer/retail-pos/internal/domains/orders/domain"
)

// SaleCompleted is announced once a checkout has been committed.
type SaleCompleted struct {
	OrderID      int64
	CartID       string
	CustomerName string
	Total        decimal.Decimal
	Lines        []orderdomain.Line
	OccurredAt   time.Time
}

func NewSaleCompleted(cartID string, order *orderdomain.Order) SaleCompleted {
	return SaleCompleted{
		OrderID:      order.ID,
		CartID:       cartID,
		CustomerName: order.CustomerName,
		Total:        order.Total,
		Lines:        append([]orderdomain.Line(nil), order.Lines...),
		OccurredAt:   order.CreatedAt,
	}
}
