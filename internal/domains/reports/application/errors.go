package application

import (
	"errors"
	"fmt"

	productdomain "github.com/Apurer/retail-pos/internal/domains/products/domain"
	"github.com/Apurer/retail-pos/internal/domains/reports/domain"
)

var ErrInvalidInput = errors.New("invalid report input")

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrInvalidSalesFilter) ||
		errors.Is(err, productdomain.ErrInvalidInventoryFilter) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
