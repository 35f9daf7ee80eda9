package application

import (
	"errors"
	"fmt"

	orderdomain "github.com/Apurer/retail-pos/internal/domains/orders/domain"
	productports "github.com/Apurer/retail-pos/internal/domains/products/ports"
	"github.com/Apurer/retail-pos/internal/domains/sales/domain"
)

var (
	// ErrInvalidInput signals the request violated a cart invariant.
	ErrInvalidInput = errors.New("invalid sale input")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrInvalidQuantity) ||
		errors.Is(err, orderdomain.ErrInvalidLine) ||
		errors.Is(err, orderdomain.ErrNegativeTotal) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}

// mapStockError turns a failed decrement into OutOfStock while keeping the cause matchable.
func mapStockError(productID int64, err error) error {
	if errors.Is(err, productports.ErrInsufficientStock) || errors.Is(err, productports.ErrNotFound) {
		return &domain.OutOfStockError{ProductID: productID, Cause: err}
	}
	return err
}
