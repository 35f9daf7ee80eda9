package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/retail-pos/internal/domains/users/domain"
)

// ErrInvalidInput signals the request violated a domain invariant.
var ErrInvalidInput = errors.New("invalid user input")

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyUsername) ||
		errors.Is(err, domain.ErrEmptyPassword) ||
		errors.Is(err, domain.ErrWeakPassword) ||
		errors.Is(err, domain.ErrInvalidRole) ||
		errors.Is(err, domain.ErrMissingHash) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
