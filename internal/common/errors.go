// Package common defines shared sentinel errors used across the story client
// layers. Callers should use errors.Is to match these values.
package common

import (
	"errors"
	"fmt"
)

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")
	ErrStorage  = errors.New("storage unavailable")

	// Remote gateway errors (unreachable host, timeout, non-2xx).
	ErrNetwork = errors.New("network error")

	// Submission errors resolved locally, before any storage or network call.
	ErrValidation = errors.New("validation error")

	// Sync engine flow control.
	ErrSyncInProgress = errors.New("sync already in progress")
)

// StorageError wraps a backend failure so callers can match ErrStorage with
// errors.Is while keeping the driver error text.
func StorageError(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, ErrStorage, err)
}
