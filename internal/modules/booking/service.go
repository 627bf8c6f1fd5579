package booking

import (
	"context"
	"errors"
	"math"
	"time"

	"barberq/internal/domain"
	"barberq/internal/modules/queue"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type Service struct {
	appointments AppointmentRepository
	barbers      BarberRepository
	users        UserRepository
	now          func() time.Time
}

func NewService(appointments AppointmentRepository, barbers BarberRepository, users UserRepository) *Service {
	return &Service{
		appointments: appointments,
		barbers:      barbers,
		users:        users,
		now:          time.Now,
	}
}

func (s *Service) CreateAppointment(ctx context.Context, customerID int64, req CreateAppointmentRequest) (*domain.Appointment, error) {
	if len(req.Services) == 0 {
		return nil, ErrValidation
	}
	if _, ok := queue.ParseClock(req.Time); !ok {
		return nil, ErrValidation
	}

	day, err := time.ParseInLocation("2006-01-02", req.Date, s.now().Location())
	if err != nil {
		return nil, ErrValidation
	}

	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if day.Before(today) {
		return nil, ErrValidation
	}

	if _, err := s.barbers.GetByID(ctx, req.BarberID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBarberNotFound
		}
		return nil, err
	}

	customerName := "Customer"
	if u, err := s.users.GetByID(ctx, customerID); err == nil && u.Name != "" {
		customerName = u.Name
	}

	services := make([]domain.ServiceLine, 0, len(req.Services))
	var totalPrice float64
	var totalDuration int
	for _, line := range req.Services {
		name := line.Name
		if name == "" {
			name = "Haircut"
		}
		services = append(services, domain.ServiceLine{
			Name:     name,
			Price:    line.Price,
			Duration: line.Duration,
		})
		totalPrice += line.Price
		totalDuration += line.Duration
	}
	totalPrice = math.Round(totalPrice*100) / 100

	a := &domain.Appointment{
		Code:          uuid.NewString(),
		BarberID:      req.BarberID,
		CustomerID:    &customerID,
		CustomerName:  customerName,
		Services:      services,
		Date:          day,
		TimeLabel:     req.Time,
		Status:        domain.AppointmentConfirmed,
		TotalPrice:    totalPrice,
		TotalDuration: totalDuration,
	}

	if err := s.appointments.Create(ctx, a); err != nil {
		// Two bookings can race for the same appointment number; the unique
		// index rejects the loser, so allocate again once.
		if isUniqueViolation(err) {
			a.AppointmentNumber = 0
			if retryErr := s.appointments.Create(ctx, a); retryErr == nil {
				return a, nil
			}
		}
		return nil, err
	}

	return a, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

func (s *Service) GetMyAppointments(ctx context.Context, customerID int64, limit, offset int) ([]domain.Appointment, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.appointments.GetByCustomer(ctx, customerID, limit, offset)
}

func (s *Service) GetByCode(ctx context.Context, code string) (*domain.Appointment, error) {
	a, err := s.appointments.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

// Cancel lets a customer withdraw their own appointment; admins may cancel
// any. Completed and already-cancelled appointments stay as they are.
func (s *Service) Cancel(ctx context.Context, appointmentID, actorUserID int64, actorRole string) (*domain.Appointment, error) {
	a, err := s.appointments.GetByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if actorRole != string(domain.RoleAdmin) {
		if a.CustomerID == nil || *a.CustomerID != actorUserID {
			return nil, ErrForbidden
		}
	}

	if a.Status == domain.AppointmentCompleted || a.Status == domain.AppointmentCancelled {
		return nil, ErrInvalidStatusTransition
	}

	if err := s.appointments.UpdateStatus(ctx, appointmentID, domain.AppointmentCancelled); err != nil {
		return nil, err
	}

	return s.appointments.GetByID(ctx, appointmentID)
}
