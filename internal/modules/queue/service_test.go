package queue

import (
	"context"
	"errors"
	"testing"
	"time"

	"barberq/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Mock repositories
type MockAppointmentRepo struct {
	mock.Mock
}

func (m *MockAppointmentRepo) Create(ctx context.Context, a *domain.Appointment) error {
	args := m.Called(ctx, a)
	if a != nil {
		a.ID = 999
		a.AppointmentNumber = 1099
	}
	return args.Error(0)
}

func (m *MockAppointmentRepo) GetForBarberDay(ctx context.Context, barberID int64, day time.Time) ([]domain.Appointment, error) {
	args := m.Called(ctx, barberID, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Appointment), args.Error(1)
}

func (m *MockAppointmentRepo) UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

type MockStationRepo struct {
	mock.Mock
}

func (m *MockStationRepo) GetOrCreate(ctx context.Context, barberID int64) (*domain.Station, error) {
	args := m.Called(ctx, barberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Station), args.Error(1)
}

func (m *MockStationRepo) UpdateStatus(ctx context.Context, barberID int64, status domain.StationStatus) error {
	args := m.Called(ctx, barberID, status)
	return args.Error(0)
}

var testNow = time.Date(2026, 3, 14, 11, 0, 0, 0, time.UTC)

func newTestService(appts *MockAppointmentRepo, stations *MockStationRepo) *Service {
	svc := NewService(appts, stations, nil, DefaultPerCustomerMinutes)
	svc.now = func() time.Time { return testNow }
	return svc
}

func activeStation() *domain.Station {
	return &domain.Station{ID: 1, BarberID: 1, Status: domain.StationActive}
}

func TestService_CallNext_Success(t *testing.T) {
	appts := new(MockAppointmentRepo)
	stations := new(MockStationRepo)

	queued := []domain.Appointment{
		appt(1001, 1, "9:00 AM", domain.AppointmentConfirmed),
		appt(1002, 1, "10:30 AM", domain.AppointmentConfirmed),
	}
	after := []domain.Appointment{
		appt(1001, 1, "9:00 AM", domain.AppointmentCompleted),
		appt(1002, 1, "10:30 AM", domain.AppointmentConfirmed),
	}

	stations.On("GetOrCreate", mock.Anything, int64(1)).Return(activeStation(), nil)
	appts.On("GetForBarberDay", mock.Anything, int64(1), testNow).Return(queued, nil).Once()
	appts.On("UpdateStatus", mock.Anything, int64(1001), domain.AppointmentCompleted).Return(nil).Once()
	appts.On("GetForBarberDay", mock.Anything, int64(1), testNow).Return(after, nil).Once()

	svc := newTestService(appts, stations)
	snap, err := svc.CallNext(context.Background(), 1)

	require.NoError(t, err)
	require.Len(t, snap.Entries, 1)
	assert.Equal(t, int64(1002), snap.Entries[0].AppointmentNumber)
	assert.Equal(t, domain.QueueNowServing, snap.Entries[0].QueueStatus)
	require.NotNil(t, snap.NowServing)
	assert.Equal(t, int64(1002), snap.NowServing.AppointmentNumber)
	appts.AssertExpectations(t)
}

func TestService_CallNext_SingleEntryIsNoOp(t *testing.T) {
	appts := new(MockAppointmentRepo)
	stations := new(MockStationRepo)

	queued := []domain.Appointment{
		appt(1001, 1, "9:00 AM", domain.AppointmentConfirmed),
	}

	stations.On("GetOrCreate", mock.Anything, int64(1)).Return(activeStation(), nil)
	appts.On("GetForBarberDay", mock.Anything, int64(1), testNow).Return(queued, nil)

	svc := newTestService(appts, stations)
	_, err := svc.CallNext(context.Background(), 1)

	assert.ErrorIs(t, err, ErrQueueEmpty)
	appts.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_CallNext_PausedStation(t *testing.T) {
	appts := new(MockAppointmentRepo)
	stations := new(MockStationRepo)

	stations.On("GetOrCreate", mock.Anything, int64(1)).
		Return(&domain.Station{ID: 1, BarberID: 1, Status: domain.StationBreak}, nil)

	svc := newTestService(appts, stations)
	_, err := svc.CallNext(context.Background(), 1)

	assert.ErrorIs(t, err, ErrStationPaused)
}

func TestService_CallNext_RetriesFailedWrite(t *testing.T) {
	appts := new(MockAppointmentRepo)
	stations := new(MockStationRepo)

	queued := []domain.Appointment{
		appt(1001, 1, "9:00 AM", domain.AppointmentConfirmed),
		appt(1002, 1, "10:30 AM", domain.AppointmentConfirmed),
	}
	after := []domain.Appointment{
		appt(1002, 1, "10:30 AM", domain.AppointmentConfirmed),
	}

	stations.On("GetOrCreate", mock.Anything, int64(1)).Return(activeStation(), nil)
	appts.On("GetForBarberDay", mock.Anything, int64(1), testNow).Return(queued, nil).Once()
	appts.On("UpdateStatus", mock.Anything, int64(1001), domain.AppointmentCompleted).
		Return(errors.New("connection reset")).Once()
	appts.On("UpdateStatus", mock.Anything, int64(1001), domain.AppointmentCompleted).
		Return(nil).Once()
	appts.On("GetForBarberDay", mock.Anything, int64(1), testNow).Return(after, nil).Once()

	svc := newTestService(appts, stations)
	snap, err := svc.CallNext(context.Background(), 1)

	require.NoError(t, err)
	require.Len(t, snap.Entries, 1)
	appts.AssertExpectations(t)
}

func TestService_CompleteCurrent_EmptiesQueue(t *testing.T) {
	appts := new(MockAppointmentRepo)
	stations := new(MockStationRepo)

	queued := []domain.Appointment{
		appt(1001, 1, "9:00 AM", domain.AppointmentConfirmed),
	}

	stations.On("GetOrCreate", mock.Anything, int64(1)).Return(activeStation(), nil)
	appts.On("GetForBarberDay", mock.Anything, int64(1), testNow).Return(queued, nil).Once()
	appts.On("UpdateStatus", mock.Anything, int64(1001), domain.AppointmentCompleted).Return(nil).Once()
	appts.On("GetForBarberDay", mock.Anything, int64(1), testNow).Return([]domain.Appointment{}, nil).Once()

	svc := newTestService(appts, stations)
	snap, err := svc.CompleteCurrent(context.Background(), 1)

	require.NoError(t, err)
	assert.Empty(t, snap.Entries)
	assert.Nil(t, snap.NowServing)
}

func TestService_CompleteCurrent_EmptyQueue(t *testing.T) {
	appts := new(MockAppointmentRepo)
	stations := new(MockStationRepo)

	stations.On("GetOrCreate", mock.Anything, int64(1)).Return(activeStation(), nil)
	appts.On("GetForBarberDay", mock.Anything, int64(1), testNow).Return([]domain.Appointment{}, nil)

	svc := newTestService(appts, stations)
	_, err := svc.CompleteCurrent(context.Background(), 1)

	assert.ErrorIs(t, err, ErrNoCurrentCustomer)
}

func TestService_AddWalkIn_AppendsAtWallClock(t *testing.T) {
	appts := new(MockAppointmentRepo)
	stations := new(MockStationRepo)

	existing := appt(1001, 1, "9:00 AM", domain.AppointmentConfirmed)

	walkedIn := appt(1099, 1, "11:00 AM", domain.AppointmentConfirmed)
	walkedIn.WalkIn = true

	var created *domain.Appointment
	stations.On("GetOrCreate", mock.Anything, int64(1)).Return(activeStation(), nil)
	appts.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		created = args.Get(1).(*domain.Appointment)
	}).Return(nil)
	appts.On("GetForBarberDay", mock.Anything, int64(1), testNow).
		Return([]domain.Appointment{existing, walkedIn}, nil)

	svc := newTestService(appts, stations)
	snap, err := svc.AddWalkIn(context.Background(), 1, WalkInInput{})

	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, "11:00 AM", created.TimeLabel)
	assert.Equal(t, domain.AppointmentConfirmed, created.Status)
	assert.True(t, created.WalkIn)
	assert.Equal(t, "Customer", created.CustomerName)
	assert.Equal(t, "Haircut", created.Services[0].Name)

	// walk-in at 11:00 AM lands behind the 9:00 AM booking
	require.Len(t, snap.Entries, 2)
	assert.Equal(t, int64(1099), snap.Entries[1].AppointmentNumber)
	assert.Equal(t, domain.QueueWaiting, snap.Entries[1].QueueStatus)
}

func TestService_AddWalkIn_PausedStation(t *testing.T) {
	appts := new(MockAppointmentRepo)
	stations := new(MockStationRepo)

	stations.On("GetOrCreate", mock.Anything, int64(1)).
		Return(&domain.Station{ID: 1, BarberID: 1, Status: domain.StationEmergency}, nil)

	svc := newTestService(appts, stations)
	_, err := svc.AddWalkIn(context.Background(), 1, WalkInInput{CustomerName: "Drop In"})

	assert.ErrorIs(t, err, ErrStationPaused)
	appts.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_BreakTransitions(t *testing.T) {
	appts := new(MockAppointmentRepo)
	stations := new(MockStationRepo)

	stations.On("GetOrCreate", mock.Anything, int64(1)).Return(activeStation(), nil)
	stations.On("UpdateStatus", mock.Anything, int64(1), domain.StationBreak).Return(nil)
	appts.On("GetForBarberDay", mock.Anything, int64(1), testNow).Return([]domain.Appointment{}, nil)

	svc := newTestService(appts, stations)
	snap, err := svc.StartBreak(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, domain.StationBreak, snap.Station)
}

func TestService_EndBreak_WhileActiveIsInvalid(t *testing.T) {
	appts := new(MockAppointmentRepo)
	stations := new(MockStationRepo)

	stations.On("GetOrCreate", mock.Anything, int64(1)).Return(activeStation(), nil)

	svc := newTestService(appts, stations)
	_, err := svc.EndBreak(context.Background(), 1)

	assert.ErrorIs(t, err, ErrInvalidTransition)
	stations.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_TriggerEmergency_RequiresConfirmation(t *testing.T) {
	svc := newTestService(new(MockAppointmentRepo), new(MockStationRepo))

	_, err := svc.TriggerEmergency(context.Background(), 1, false)
	assert.ErrorIs(t, err, ErrConfirmationRequired)

	_, err = svc.ResolveEmergency(context.Background(), 1, false)
	assert.ErrorIs(t, err, ErrConfirmationRequired)
}

func TestService_EmergencyRoundTrip(t *testing.T) {
	appts := new(MockAppointmentRepo)
	stations := new(MockStationRepo)

	stations.On("GetOrCreate", mock.Anything, int64(1)).Return(activeStation(), nil).Once()
	stations.On("UpdateStatus", mock.Anything, int64(1), domain.StationEmergency).Return(nil).Once()
	appts.On("GetForBarberDay", mock.Anything, int64(1), testNow).Return([]domain.Appointment{}, nil)

	svc := newTestService(appts, stations)
	snap, err := svc.TriggerEmergency(context.Background(), 1, true)
	require.NoError(t, err)
	assert.Equal(t, domain.StationEmergency, snap.Station)

	stations.On("GetOrCreate", mock.Anything, int64(1)).
		Return(&domain.Station{ID: 1, BarberID: 1, Status: domain.StationEmergency}, nil).Once()
	stations.On("UpdateStatus", mock.Anything, int64(1), domain.StationActive).Return(nil).Once()

	snap, err = svc.ResolveEmergency(context.Background(), 1, true)
	require.NoError(t, err)
	assert.Equal(t, domain.StationActive, snap.Station)
	stations.AssertExpectations(t)
}
