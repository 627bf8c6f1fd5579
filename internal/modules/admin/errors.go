package admin

import "errors"

var (
	ErrNotFound    = errors.New("not found")
	ErrInvalidRole = errors.New("invalid role")
	ErrValidation  = errors.New("validation error")
)
