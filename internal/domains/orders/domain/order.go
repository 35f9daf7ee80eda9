package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Status is fixed to completed; orders are only written when a sale closes.
type Status string

const StatusCompleted Status = "completed"

var (
	ErrNegativeTotal = errors.New("order total cannot be negative")
	ErrInvalidLine   = errors.New("order line needs a product, a positive quantity and a non-negative price")
	ErrInvalidStatus = errors.New("order status is invalid")
	ErrTotalMismatch = errors.New("order total must equal the sum of its lines")
)

// Line is the receipt snapshot of one sold product.
type Line struct {
	ProductID int64
	Name      string
	Quantity  int32
	UnitPrice decimal.Decimal
	LineTotal decimal.Decimal
}

// NewLine builds a line whose total is unit price times quantity.
func NewLine(productID int64, name string, quantity int32, unitPrice decimal.Decimal) Line {
	return Line{
		ProductID: productID,
		Name:      name,
		Quantity:  quantity,
		UnitPrice: unitPrice,
		LineTotal: unitPrice.Mul(decimal.NewFromInt32(quantity)),
	}
}

func (l Line) validate() error {
	if l.ProductID <= 0 || l.Quantity <= 0 || l.UnitPrice.IsNegative() {
		return ErrInvalidLine
	}
	if !l.LineTotal.Equal(l.UnitPrice.Mul(decimal.NewFromInt32(l.Quantity))) {
		return ErrInvalidLine
	}
	return nil
}

// Order is a completed sale.
type Order struct {
	ID           int64
	CreatedAt    time.Time
	CustomerName string
	Total        decimal.Decimal
	Status       Status
	Lines        []Line

	// CheckoutKey identifies the cart checkout that produced the order; empty for manual orders.
	CheckoutKey string
}

// NewOrder builds a completed order whose total is derived from lines.
func NewOrder(customerName string, lines []Line, createdAt time.Time) (*Order, error) {
	order := &Order{
		CreatedAt:    createdAt,
		CustomerName: strings.TrimSpace(customerName),
		Status:       StatusCompleted,
		Lines:        append([]Line(nil), lines...),
	}
	order.Total = order.LinesTotal()
	if err := order.Validate(); err != nil {
		return nil, err
	}
	return order, nil
}

// LinesTotal sums the line totals.
func (o *Order) LinesTotal() decimal.Decimal {
	total := decimal.Zero
	for _, line := range o.Lines {
		total = total.Add(line.LineTotal)
	}
	return total
}

// Validate enforces invariants on the aggregate. Orders without lines carry a free total.
func (o *Order) Validate() error {
	if o.Total.IsNegative() {
		return ErrNegativeTotal
	}
	if o.Status != StatusCompleted {
		return ErrInvalidStatus
	}
	for _, line := range o.Lines {
		if err := line.validate(); err != nil {
			return err
		}
	}
	if len(o.Lines) > 0 && !o.Total.Equal(o.LinesTotal()) {
		return ErrTotalMismatch
	}
	return nil
}

// DayBounds returns the half-open [start, end) calendar day containing t in loc.
func DayBounds(t time.Time, loc *time.Location) (time.Time, time.Time) {
	if loc == nil {
		loc = time.UTC
	}
	local := t.In(loc)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 1)
}

// SumTotals adds order totals using exact decimal arithmetic.
func SumTotals(orders []*Order) decimal.Decimal {
	total := decimal.Zero
	for _, o := range orders {
		total = total.Add(o.Total)
	}
	return total
}
