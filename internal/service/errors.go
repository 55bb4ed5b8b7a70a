package service

import "github.com/pkg/errors"

// Error kinds returned by the services. Callers match them with errors.Is;
// the wrapped message carries the detail for logs.
var (
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrStorage      = errors.New("storage failure")
)

func storageError(err error, op string) error {
	return errors.Wrapf(ErrStorage, "%s: %v", op, err)
}
