package services

import (
	"errors"
	"fmt"

	"internhub-api/internal/storage"
)

// Service errors. Handlers translate these into HTTP statuses.
var (
	ErrUnauthorized    = errors.New("unauthorized")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("resource not found")
	ErrConflict        = errors.New("conflict")
	ErrValidation      = errors.New("validation failed")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrInvalidState    = errors.New("invalid state for operation")
)

// mapRepoError maps storage errors to service errors.
func mapRepoError(err error, operation string) error {
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrNotFound, operation)
	}
	if errors.Is(err, storage.ErrStaleState) {
		return fmt.Errorf("%w: %s: changed by a concurrent request", ErrInvalidState, operation)
	}
	if errors.Is(err, storage.ErrConflict) {
		return fmt.Errorf("%w: %s (%v)", ErrConflict, operation, err)
	}
	return fmt.Errorf("internal error during %s: %w", operation, err)
}
