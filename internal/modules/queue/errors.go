package queue

import "errors"

var (
	ErrQueueEmpty           = errors.New("queue has no next customer")
	ErrNoCurrentCustomer    = errors.New("no customer is being served")
	ErrStationPaused        = errors.New("station is not active")
	ErrInvalidTransition    = errors.New("invalid station transition")
	ErrConfirmationRequired = errors.New("confirmation required")
)
