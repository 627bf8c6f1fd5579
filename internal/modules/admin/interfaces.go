package admin

import (
	"context"
	"encoding/json"

	"barberq/internal/domain"
	"barberq/internal/repository"
)

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	UpdateRole(ctx context.Context, userID int64, role domain.UserRole) error
}

type BarberRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Barber, error)
	GetByUserID(ctx context.Context, userID int64) (*domain.Barber, error)
	Create(ctx context.Context, b *domain.Barber) error
	UpdateSchedule(ctx context.Context, barberID int64, schedule json.RawMessage) error
}

type AppointmentRepository interface {
	List(ctx context.Context, f repository.AppointmentFilter) ([]domain.Appointment, error)
}
