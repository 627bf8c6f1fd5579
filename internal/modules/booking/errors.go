package booking

import "errors"

var (
	ErrValidation              = errors.New("validation error")
	ErrBarberNotFound          = errors.New("barber not found")
	ErrNotFound                = errors.New("appointment not found")
	ErrForbidden               = errors.New("forbidden")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
)
