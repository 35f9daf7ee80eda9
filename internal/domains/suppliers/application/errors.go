package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/retail-pos/internal/domains/suppliers/domain"
)

var ErrInvalidInput = errors.New("invalid supplier input")

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyName) ||
		errors.Is(err, domain.ErrEmptyPhone) ||
		errors.Is(err, domain.ErrInvalidEmail) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
