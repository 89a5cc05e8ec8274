package service

import "errors"

// Base errors the handlers translate to HTTP statuses. Services wrap
// these with fmt.Errorf("%w: ...") to carry a human-readable message.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
)
