package queue

import (
	"context"
	"sync"
	"time"

	"barberq/internal/domain"

	"github.com/google/uuid"
)

// Snapshot is what every queue surface renders: the station state plus the
// derived queue for today.
type Snapshot struct {
	BarberID    int64                `json:"barber_id"`
	Station     domain.StationStatus `json:"station_status"`
	Entries     []domain.QueueEntry  `json:"entries"`
	NowServing  *domain.QueueEntry   `json:"now_serving,omitempty"`
	GeneratedAt time.Time            `json:"generated_at"`
}

// stationTransitions maps an action to the station states it may fire from.
var stationTransitions = map[string][]domain.StationStatus{
	"start_break":       {domain.StationActive},
	"end_break":         {domain.StationBreak},
	"trigger_emergency": {domain.StationActive, domain.StationBreak, domain.StationEmergency},
	"resolve_emergency": {domain.StationEmergency},
}

func validTransition(action string, from domain.StationStatus) bool {
	for _, s := range stationTransitions[action] {
		if s == from {
			return true
		}
	}
	return false
}

// Service is the queue transition engine. All queue mutations for one barber
// are serialized through a per-barber lock, so two sessions driving the same
// station cannot race each other into a lost update.
type Service struct {
	appointments       AppointmentRepository
	stations           StationRepository
	publisher          Publisher
	perCustomerMinutes int
	now                func() time.Time

	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func NewService(appointments AppointmentRepository, stations StationRepository, publisher Publisher, perCustomerMinutes int) *Service {
	return &Service{
		appointments:       appointments,
		stations:           stations,
		publisher:          publisher,
		perCustomerMinutes: perCustomerMinutes,
		now:                time.Now,
		locks:              make(map[int64]*sync.Mutex),
	}
}

func (s *Service) stationLock(barberID int64) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.locks[barberID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[barberID] = l
	}
	return l
}

// Snapshot derives the barber's current queue. Read-only, no lock needed.
func (s *Service) Snapshot(ctx context.Context, barberID int64) (*Snapshot, error) {
	station, err := s.stations.GetOrCreate(ctx, barberID)
	if err != nil {
		return nil, err
	}
	return s.snapshotFor(ctx, barberID, station.Status)
}

func (s *Service) snapshotFor(ctx context.Context, barberID int64, status domain.StationStatus) (*Snapshot, error) {
	day := s.now()
	appts, err := s.appointments.GetForBarberDay(ctx, barberID, day)
	if err != nil {
		return nil, err
	}

	entries := Derive(appts, barberID, day, s.perCustomerMinutes)

	snap := &Snapshot{
		BarberID:    barberID,
		Station:     status,
		Entries:     entries,
		GeneratedAt: s.now(),
	}
	if len(entries) > 0 {
		head := entries[0]
		snap.NowServing = &head
	}
	return snap, nil
}

func (s *Service) publish(snap *Snapshot) {
	if s.publisher != nil && snap != nil {
		s.publisher.Publish(snap.BarberID, snap)
	}
}

// updateStatusRetried retries a failed store write once before giving up.
// On failure nothing is re-derived, so clients keep the last-known-good queue.
func (s *Service) updateStatusRetried(ctx context.Context, id int64, status domain.AppointmentStatus) error {
	if err := s.appointments.UpdateStatus(ctx, id, status); err == nil {
		return nil
	}
	return s.appointments.UpdateStatus(ctx, id, status)
}

// CallNext completes the customer being served and promotes the next one.
// Requires at least two active entries; with one the barber should use
// CompleteCurrent instead.
func (s *Service) CallNext(ctx context.Context, barberID int64) (*Snapshot, error) {
	l := s.stationLock(barberID)
	l.Lock()
	defer l.Unlock()

	station, err := s.stations.GetOrCreate(ctx, barberID)
	if err != nil {
		return nil, err
	}
	if station.Status != domain.StationActive {
		return nil, ErrStationPaused
	}

	snap, err := s.snapshotFor(ctx, barberID, station.Status)
	if err != nil {
		return nil, err
	}
	if len(snap.Entries) < 2 {
		return nil, ErrQueueEmpty
	}

	if err := s.updateStatusRetried(ctx, snap.Entries[0].AppointmentID, domain.AppointmentCompleted); err != nil {
		return nil, err
	}

	next, err := s.snapshotFor(ctx, barberID, station.Status)
	if err != nil {
		return nil, err
	}
	s.publish(next)
	return next, nil
}

// CompleteCurrent finishes the customer being served. An empty queue
// afterwards is a normal outcome, not an error.
func (s *Service) CompleteCurrent(ctx context.Context, barberID int64) (*Snapshot, error) {
	l := s.stationLock(barberID)
	l.Lock()
	defer l.Unlock()

	station, err := s.stations.GetOrCreate(ctx, barberID)
	if err != nil {
		return nil, err
	}
	if station.Status != domain.StationActive {
		return nil, ErrStationPaused
	}

	snap, err := s.snapshotFor(ctx, barberID, station.Status)
	if err != nil {
		return nil, err
	}
	if len(snap.Entries) == 0 {
		return nil, ErrNoCurrentCustomer
	}

	if err := s.updateStatusRetried(ctx, snap.Entries[0].AppointmentID, domain.AppointmentCompleted); err != nil {
		return nil, err
	}

	next, err := s.snapshotFor(ctx, barberID, station.Status)
	if err != nil {
		return nil, err
	}
	s.publish(next)
	return next, nil
}

type WalkInInput struct {
	CustomerName string
	ServiceName  string
	Price        float64
	Duration     int
}

// AddWalkIn creates an ad hoc appointment for right now. The time label is
// the current wall clock, so chronological derivation places the walk-in
// after everyone already booked earlier today.
func (s *Service) AddWalkIn(ctx context.Context, barberID int64, in WalkInInput) (*Snapshot, error) {
	l := s.stationLock(barberID)
	l.Lock()
	defer l.Unlock()

	station, err := s.stations.GetOrCreate(ctx, barberID)
	if err != nil {
		return nil, err
	}
	if station.Status != domain.StationActive {
		return nil, ErrStationPaused
	}

	if in.CustomerName == "" {
		in.CustomerName = fallbackCustomerName
	}
	if in.ServiceName == "" {
		in.ServiceName = fallbackServiceName
	}
	if in.Duration <= 0 {
		in.Duration = s.perCustomerMinutes
	}

	now := s.now()
	appt := &domain.Appointment{
		Code:         uuid.NewString(),
		BarberID:     barberID,
		CustomerName: in.CustomerName,
		Services: []domain.ServiceLine{
			{Name: in.ServiceName, Price: in.Price, Duration: in.Duration},
		},
		Date:          time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()),
		TimeLabel:     now.Format("3:04 PM"),
		Status:        domain.AppointmentConfirmed,
		WalkIn:        true,
		TotalPrice:    in.Price,
		TotalDuration: in.Duration,
	}

	if err := s.appointments.Create(ctx, appt); err != nil {
		return nil, err
	}

	next, err := s.snapshotFor(ctx, barberID, station.Status)
	if err != nil {
		return nil, err
	}
	s.publish(next)
	return next, nil
}

func (s *Service) StartBreak(ctx context.Context, barberID int64) (*Snapshot, error) {
	return s.transition(ctx, barberID, "start_break", domain.StationBreak)
}

func (s *Service) EndBreak(ctx context.Context, barberID int64) (*Snapshot, error) {
	return s.transition(ctx, barberID, "end_break", domain.StationActive)
}

// TriggerEmergency pauses the station hard. The two-step confirmation lives
// at the API boundary: callers must pass confirm=true or nothing happens.
func (s *Service) TriggerEmergency(ctx context.Context, barberID int64, confirm bool) (*Snapshot, error) {
	if !confirm {
		return nil, ErrConfirmationRequired
	}
	return s.transition(ctx, barberID, "trigger_emergency", domain.StationEmergency)
}

// ResolveEmergency returns an emergency-stopped station to active. Gated by
// the same confirmation pattern as the entry transition.
func (s *Service) ResolveEmergency(ctx context.Context, barberID int64, confirm bool) (*Snapshot, error) {
	if !confirm {
		return nil, ErrConfirmationRequired
	}
	return s.transition(ctx, barberID, "resolve_emergency", domain.StationActive)
}

func (s *Service) transition(ctx context.Context, barberID int64, action string, to domain.StationStatus) (*Snapshot, error) {
	l := s.stationLock(barberID)
	l.Lock()
	defer l.Unlock()

	station, err := s.stations.GetOrCreate(ctx, barberID)
	if err != nil {
		return nil, err
	}
	if !validTransition(action, station.Status) {
		return nil, ErrInvalidTransition
	}

	if station.Status != to {
		if err := s.stations.UpdateStatus(ctx, barberID, to); err != nil {
			return nil, err
		}
	}

	next, err := s.snapshotFor(ctx, barberID, to)
	if err != nil {
		return nil, err
	}
	s.publish(next)
	return next, nil
}
