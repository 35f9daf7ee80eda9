// Package persistence holds the store failure sentinel shared by every repository adapter.
package persistence

import (
	"errors"
	"fmt"
)

// ErrFailure marks an unavailable store or a rejected write.
var ErrFailure = errors.New("persistence failure")

// Wrap tags err with ErrFailure, keeping the original error in the chain.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrFailure) {
		return err
	}
	return fmt.Errorf("%s: %w: %w", op, ErrFailure, err)
}
