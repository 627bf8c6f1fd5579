package booking

import (
	"context"

	"barberq/internal/domain"
)

// AppointmentRepository defines the interface for appointment storage
type AppointmentRepository interface {
	Create(ctx context.Context, a *domain.Appointment) error
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	GetByCode(ctx context.Context, code string) (*domain.Appointment, error)
	GetByCustomer(ctx context.Context, customerID int64, limit, offset int) ([]domain.Appointment, error)
	UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error
}

// BarberRepository — only the lookup the booking flow needs
type BarberRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Barber, error)
}

// UserRepository — used to stamp the customer's display name onto the record
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}
