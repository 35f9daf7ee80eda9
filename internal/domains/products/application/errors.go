package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/retail-pos/internal/domains/products/domain"
)

var (
	// ErrInvalidInput signals the request violated a domain invariant.
	ErrInvalidInput = errors.New("invalid product input")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyName) ||
		errors.Is(err, domain.ErrNegativePrice) ||
		errors.Is(err, domain.ErrNegativeQuantity) ||
		errors.Is(err, domain.ErrInvalidInventoryFilter) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
