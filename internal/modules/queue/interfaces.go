package queue

import (
	"context"
	"time"

	"barberq/internal/domain"
)

// AppointmentRepository — only the methods the queue engine uses
type AppointmentRepository interface {
	Create(ctx context.Context, a *domain.Appointment) error
	GetForBarberDay(ctx context.Context, barberID int64, day time.Time) ([]domain.Appointment, error)
	UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error
}

// StationRepository — persisted per-barber operational state
type StationRepository interface {
	GetOrCreate(ctx context.Context, barberID int64) (*domain.Station, error)
	UpdateStatus(ctx context.Context, barberID int64, status domain.StationStatus) error
}

// Publisher pushes fresh snapshots to connected queue displays. Optional:
// the service nil-checks it.
type Publisher interface {
	Publish(barberID int64, message interface{})
}
