package services

import "errors"

// Service-level error kinds. Handlers map these onto HTTP statuses; anything
// that doesn't match one of them is treated as an internal storage failure.
var (
	ErrValidation   = errors.New("missing or invalid field")
	ErrConflict     = errors.New("already exists")
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("not the owner")
	ErrUnauthorized = errors.New("invalid credentials")
	ErrInternal     = errors.New("internal error")
)
