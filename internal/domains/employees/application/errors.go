package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/retail-pos/internal/domains/employees/domain"
)

var ErrInvalidInput = errors.New("invalid employee input")

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyName) ||
		errors.Is(err, domain.ErrNegativeSalary) ||
		errors.Is(err, domain.ErrInvalidEmail) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
