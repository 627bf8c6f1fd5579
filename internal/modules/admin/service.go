package admin

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"barberq/internal/domain"
	"barberq/internal/repository"

	"gorm.io/gorm"
)

type Service struct {
	users        UserRepository
	barbers      BarberRepository
	appointments AppointmentRepository
}

func NewService(users UserRepository, barbers BarberRepository, appointments AppointmentRepository) *Service {
	return &Service{users: users, barbers: barbers, appointments: appointments}
}

var validRoles = map[domain.UserRole]bool{
	domain.RoleCustomer: true,
	domain.RoleBarber:   true,
	domain.RoleAdmin:    true,
}

// UpdateUserRole changes a user's role. Promoting to barber creates the
// barber profile on first promotion so the user can open a station.
func (s *Service) UpdateUserRole(ctx context.Context, userID int64, role domain.UserRole) (*domain.User, error) {
	if !validRoles[role] {
		return nil, ErrInvalidRole
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := s.users.UpdateRole(ctx, userID, role); err != nil {
		return nil, err
	}
	user.Role = role

	if role == domain.RoleBarber {
		if _, err := s.barbers.GetByUserID(ctx, userID); errors.Is(err, gorm.ErrRecordNotFound) {
			b := &domain.Barber{
				UserID: userID,
				Name:   user.Name,
				Active: true,
			}
			if err := s.barbers.Create(ctx, b); err != nil {
				return nil, err
			}
		}
	}

	user.PasswordHash = ""
	return user, nil
}

type weekDay struct {
	Open  string `json:"open"`
	Close string `json:"close"`
}

// UpsertBarberSchedule validates and stores a weekly schedule for the barber.
func (s *Service) UpsertBarberSchedule(ctx context.Context, barberID int64, schedule json.RawMessage) (*domain.Barber, error) {
	if _, err := s.barbers.GetByID(ctx, barberID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var week map[string]weekDay
	if err := json.Unmarshal(schedule, &week); err != nil {
		return nil, ErrValidation
	}
	for _, day := range week {
		if (day.Open == "") != (day.Close == "") {
			return nil, ErrValidation
		}
		if day.Open != "" {
			if _, err := time.Parse("15:04", day.Open); err != nil {
				return nil, ErrValidation
			}
			if _, err := time.Parse("15:04", day.Close); err != nil {
				return nil, ErrValidation
			}
		}
	}

	if err := s.barbers.UpdateSchedule(ctx, barberID, schedule); err != nil {
		return nil, err
	}

	return s.barbers.GetByID(ctx, barberID)
}

func (s *Service) ListAppointments(ctx context.Context, f repository.AppointmentFilter) ([]domain.Appointment, error) {
	if f.Limit <= 0 || f.Limit > 200 {
		f.Limit = 50
	}
	return s.appointments.List(ctx, f)
}
