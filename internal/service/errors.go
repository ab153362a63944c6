package service

import (
	"errors"

	"secure-bank-console/internal/core/ports"
	"secure-bank-console/pkg/apperror"
)

// backendError maps a bank API failure onto the console's error codes.
func backendError(err error, entity string) error {
	if errors.Is(err, ports.ErrBackendNotFound) {
		return apperror.ErrNotFound(entity)
	}
	return apperror.ErrBackend(err)
}
