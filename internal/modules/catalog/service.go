package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"barberq/internal/domain"

	"gorm.io/gorm"
)

const (
	defaultOpen  = "09:00"
	defaultClose = "19:00"
)

type Service struct {
	barbers  BarberRepository
	services ServiceRepository
}

func NewService(barbers BarberRepository, services ServiceRepository) *Service {
	return &Service{barbers: barbers, services: services}
}

func (s *Service) ListBarbers(ctx context.Context) ([]domain.Barber, error) {
	return s.barbers.ListActive(ctx)
}

func (s *Service) GetBarber(ctx context.Context, id int64) (*domain.Barber, error) {
	b, err := s.barbers.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

func (s *Service) ListServices(ctx context.Context) ([]domain.CatalogService, error) {
	return s.services.ListActive(ctx)
}

type scheduleDay struct {
	Open  string `json:"open"`
	Close string `json:"close"`
}

// ScheduleFor resolves the barber's working hours on a calendar day from the
// weekly schedule JSON; barbers without one get the shop default.
func (s *Service) ScheduleFor(ctx context.Context, barberID int64, day time.Time) (*DaySchedule, error) {
	b, err := s.GetBarber(ctx, barberID)
	if err != nil {
		return nil, err
	}

	out := &DaySchedule{
		Date:  day.Format("2006-01-02"),
		Open:  defaultOpen,
		Close: defaultClose,
	}

	if len(b.Schedule) == 0 {
		return out, nil
	}

	var week map[string]scheduleDay
	if err := json.Unmarshal(b.Schedule, &week); err != nil {
		return nil, err
	}

	v, ok := week[weekdayKey(day.Weekday())]
	if !ok || v.Open == "" || v.Close == "" {
		out.Open = ""
		out.Close = ""
		out.Closed = true
		return out, nil
	}

	out.Open = v.Open
	out.Close = v.Close
	return out, nil
}

func weekdayKey(w time.Weekday) string {
	switch w {
	case time.Monday:
		return "monday"
	case time.Tuesday:
		return "tuesday"
	case time.Wednesday:
		return "wednesday"
	case time.Thursday:
		return "thursday"
	case time.Friday:
		return "friday"
	case time.Saturday:
		return "saturday"
	default:
		return "sunday"
	}
}
