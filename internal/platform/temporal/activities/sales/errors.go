package sales

import (
	"errors"
	"fmt"

	"go.temporal.io/sdk/temporal"

	orderapplication "github.com/Apurer/retail-pos/internal/domains/orders/application"
	salesapplication "github.com/Apurer/retail-pos/internal/domains/sales/application"
	salesdomain "github.com/Apurer/retail-pos/internal/domains/sales/domain"
	"github.com/Apurer/retail-pos/internal/shared/persistence"
)

// Application error types carried across the Temporal boundary.
const (
	ErrTypeOutOfStock         = "sales.OutOfStock"
	ErrTypeEmptyCart          = "sales.EmptyCart"
	ErrTypeInvalidInput       = "sales.InvalidInput"
	ErrTypePersistenceFailure = "sales.PersistenceFailure"
)

// toApplicationError marks business failures as non-retryable.
// An out-of-stock failure carries the short product id as its detail.
// Store failures stay retryable but keep their type once retries run out.
func toApplicationError(err error) error {
	var shortage *salesdomain.OutOfStockError
	switch {
	case errors.As(err, &shortage):
		return temporal.NewNonRetryableApplicationError(err.Error(), ErrTypeOutOfStock, err, shortage.ProductID)
	case errors.Is(err, salesdomain.ErrOutOfStock):
		return temporal.NewNonRetryableApplicationError(err.Error(), ErrTypeOutOfStock, err)
	case errors.Is(err, salesdomain.ErrEmptyCart):
		return temporal.NewNonRetryableApplicationError(err.Error(), ErrTypeEmptyCart, err)
	case errors.Is(err, salesapplication.ErrInvalidInput), errors.Is(err, orderapplication.ErrInvalidInput):
		return temporal.NewNonRetryableApplicationError(err.Error(), ErrTypeInvalidInput, err)
	case errors.Is(err, persistence.ErrFailure):
		return temporal.NewApplicationError(err.Error(), ErrTypePersistenceFailure, err)
	default:
		return err
	}
}

// RestoreError maps a workflow failure back to the sentinel it started from.
func RestoreError(err error) error {
	var appErr *temporal.ApplicationError
	if !errors.As(err, &appErr) {
		return err
	}
	switch appErr.Type() {
	case ErrTypeOutOfStock:
		var productID int64
		if appErr.HasDetails() && appErr.Details(&productID) == nil {
			return &salesdomain.OutOfStockError{ProductID: productID}
		}
		return fmt.Errorf("%w: %s", salesdomain.ErrOutOfStock, appErr.Message())
	case ErrTypeEmptyCart:
		return fmt.Errorf("%w: %s", salesdomain.ErrEmptyCart, appErr.Message())
	case ErrTypeInvalidInput:
		return fmt.Errorf("%w: %s", salesapplication.ErrInvalidInput, appErr.Message())
	case ErrTypePersistenceFailure:
		return persistence.Wrap("sales.commit", errors.New(appErr.Message()))
	default:
		return err
	}
}
