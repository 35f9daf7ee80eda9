package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrOutOfStock          = errors.New("product is out of stock")
	ErrEmptyCart           = errors.New("cart is empty")
	ErrMissingCustomerName = errors.New("customer name is required")
	ErrInvalidQuantity     = errors.New("quantity must be greater than zero")
	ErrLineNotFound        = errors.New("product is not in the cart")
	ErrCheckoutInProgress  = errors.New("cart checkout already in progress")
)

// OutOfStockError names the product whose stock could not cover a request.
// It matches ErrOutOfStock and its cause with errors.Is.
type OutOfStockError struct {
	ProductID int64
	Cause     error
}

func (e *OutOfStockError) Error() string {
	if e.Cause == nil || errors.Is(e.Cause, ErrOutOfStock) {
		return fmt.Sprintf("%s: product %d", ErrOutOfStock, e.ProductID)
	}
	return fmt.Sprintf("%s: product %d: %s", ErrOutOfStock, e.ProductID, e.Cause)
}

func (e *OutOfStockError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrOutOfStock}
	}
	return []error{ErrOutOfStock, e.Cause}
}

// Item is the product snapshot offered to the cart: current price and stock on hand.
type Item struct {
	ProductID int64
	Name      string
	UnitPrice decimal.Decimal
	Stock     int32
}

// Line is one product entry in an in-progress sale.
type Line struct {
	ProductID int64
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int32
}

// Total is unit price times quantity.
func (l Line) Total() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt32(l.Quantity))
}

// Cart accumulates lines for one customer transaction.
// Version increases on every mutation and identifies a checkout attempt.
type Cart struct {
	ID          string
	Lines       []Line
	Version     int64
	CheckingOut bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func NewCart(id string, now time.Time) *Cart {
	return &Cart{ID: id, Lines: []Line{}, CreatedAt: now, UpdatedAt: now}
}

// Add puts qty units of item in the cart. The cart quantity of a product never exceeds its stock.
func (c *Cart) Add(item Item, qty int32, now time.Time) error {
	if c.CheckingOut {
		return ErrCheckoutInProgress
	}
	if qty <= 0 {
		return ErrInvalidQuantity
	}
	if item.Stock <= 0 {
		return ErrOutOfStock
	}
	idx := c.indexOf(item.ProductID)
	current := int32(0)
	if idx >= 0 {
		current = c.Lines[idx].Quantity
	}
	if int64(current)+int64(qty) > int64(item.Stock) {
		return ErrOutOfStock
	}
	line := Line{ProductID: item.ProductID, Name: item.Name, UnitPrice: item.UnitPrice, Quantity: current + qty}
	if idx >= 0 {
		c.Lines[idx] = line
	} else {
		c.Lines = append(c.Lines, line)
	}
	c.touch(now)
	return nil
}

// Remove drops the line for productID.
func (c *Cart) Remove(productID int64, now time.Time) error {
	if c.CheckingOut {
		return ErrCheckoutInProgress
	}
	idx := c.indexOf(productID)
	if idx < 0 {
		return ErrLineNotFound
	}
	c.Lines = append(c.Lines[:idx], c.Lines[idx+1:]...)
	c.touch(now)
	return nil
}

// Clear empties the cart.
func (c *Cart) Clear(now time.Time) error {
	if c.CheckingOut {
		return ErrCheckoutInProgress
	}
	c.Lines = []Line{}
	c.touch(now)
	return nil
}

// Total is derived from the lines on every call.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.Lines {
		total = total.Add(l.Total())
	}
	return total
}

func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// BeginCheckout locks the cart against mutation until the checkout completes or aborts.
func (c *Cart) BeginCheckout() error {
	if c.CheckingOut {
		return ErrCheckoutInProgress
	}
	if c.IsEmpty() {
		return ErrEmptyCart
	}
	c.CheckingOut = true
	return nil
}

// CompleteCheckout empties and unlocks the cart after a committed sale.
func (c *Cart) CompleteCheckout(now time.Time) {
	c.CheckingOut = false
	c.Lines = []Line{}
	c.touch(now)
}

// AbortCheckout unlocks the cart leaving its lines intact.
func (c *Cart) AbortCheckout() {
	c.CheckingOut = false
}

// Clone returns a deep copy.
func (c *Cart) Clone() *Cart {
	clone := *c
	clone.Lines = append([]Line{}, c.Lines...)
	return &clone
}

func (c *Cart) indexOf(productID int64) int {
	for i, l := range c.Lines {
		if l.ProductID == productID {
			return i
		}
	}
	return -1
}

func (c *Cart) touch(now time.Time) {
	c.Version++
	c.UpdatedAt = now
}
