package booking

import (
	"context"
	"testing"
	"time"

	"barberq/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Mock repositories
type MockAppointmentRepository struct {
	mock.Mock
}

func (m *MockAppointmentRepository) Create(ctx context.Context, a *domain.Appointment) error {
	args := m.Called(ctx, a)
	if a != nil {
		a.ID = 999
		a.AppointmentNumber = 1001
	}
	return args.Error(0)
}

func (m *MockAppointmentRepository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) GetByCode(ctx context.Context, code string) (*domain.Appointment, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) GetByCustomer(ctx context.Context, customerID int64, limit, offset int) ([]domain.Appointment, error) {
	args := m.Called(ctx, customerID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

type MockBarberRepository struct {
	mock.Mock
}

func (m *MockBarberRepository) GetByID(ctx context.Context, id int64) (*domain.Barber, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Barber), args.Error(1)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

var testNow = time.Date(2026, 3, 14, 11, 0, 0, 0, time.UTC)

func newTestService(appts *MockAppointmentRepository, barbers *MockBarberRepository, users *MockUserRepository) *Service {
	svc := NewService(appts, barbers, users)
	svc.now = func() time.Time { return testNow }
	return svc
}

func validRequest() CreateAppointmentRequest {
	return CreateAppointmentRequest{
		BarberID: 5,
		Services: []ServiceLineRequest{
			{Name: "Haircut", Price: 25, Duration: 30},
			{Name: "Beard Trim", Price: 15, Duration: 15},
		},
		Date: "2026-03-14",
		Time: "3:00 PM",
	}
}

func TestService_CreateAppointment_Success(t *testing.T) {
	appts := new(MockAppointmentRepository)
	barbers := new(MockBarberRepository)
	users := new(MockUserRepository)

	barbers.On("GetByID", mock.Anything, int64(5)).Return(&domain.Barber{ID: 5, Name: "Marcus"}, nil)
	users.On("GetByID", mock.Anything, int64(42)).Return(&domain.User{ID: 42, Name: "James Carter"}, nil)
	appts.On("Create", mock.Anything, mock.Anything).Return(nil)

	svc := newTestService(appts, barbers, users)
	a, err := svc.CreateAppointment(context.Background(), 42, validRequest())

	require.NoError(t, err)
	require.NotNil(t, a)
	assert.Equal(t, int64(1001), a.AppointmentNumber)
	assert.Equal(t, 40.0, a.TotalPrice)
	assert.Equal(t, 45, a.TotalDuration)
	assert.Equal(t, domain.AppointmentConfirmed, a.Status)
	assert.Equal(t, "James Carter", a.CustomerName)
	assert.NotEmpty(t, a.Code)
	require.NotNil(t, a.CustomerID)
	assert.Equal(t, int64(42), *a.CustomerID)
}

func TestService_CreateAppointment_RetriesOnNumberCollision(t *testing.T) {
	appts := new(MockAppointmentRepository)
	barbers := new(MockBarberRepository)
	users := new(MockUserRepository)

	barbers.On("GetByID", mock.Anything, int64(5)).Return(&domain.Barber{ID: 5, Name: "Marcus"}, nil)
	users.On("GetByID", mock.Anything, int64(42)).Return(&domain.User{ID: 42, Name: "James Carter"}, nil)
	appts.On("Create", mock.Anything, mock.Anything).Return(gorm.ErrDuplicatedKey).Once()
	appts.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

	svc := newTestService(appts, barbers, users)
	a, err := svc.CreateAppointment(context.Background(), 42, validRequest())

	require.NoError(t, err)
	require.NotNil(t, a)
	appts.AssertNumberOfCalls(t, "Create", 2)
}

func TestService_CreateAppointment_NoServices(t *testing.T) {
	svc := newTestService(new(MockAppointmentRepository), new(MockBarberRepository), new(MockUserRepository))

	req := validRequest()
	req.Services = nil

	_, err := svc.CreateAppointment(context.Background(), 42, req)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestService_CreateAppointment_BadTimeLabel(t *testing.T) {
	svc := newTestService(new(MockAppointmentRepository), new(MockBarberRepository), new(MockUserRepository))

	req := validRequest()
	req.Time = "sometime after lunch"

	_, err := svc.CreateAppointment(context.Background(), 42, req)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestService_CreateAppointment_PastDate(t *testing.T) {
	svc := newTestService(new(MockAppointmentRepository), new(MockBarberRepository), new(MockUserRepository))

	req := validRequest()
	req.Date = "2026-03-13"

	_, err := svc.CreateAppointment(context.Background(), 42, req)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestService_Cancel_OwnAppointment(t *testing.T) {
	appts := new(MockAppointmentRepository)

	customerID := int64(42)
	stored := &domain.Appointment{
		ID:         7,
		CustomerID: &customerID,
		Status:     domain.AppointmentConfirmed,
	}
	cancelled := &domain.Appointment{
		ID:         7,
		CustomerID: &customerID,
		Status:     domain.AppointmentCancelled,
	}

	appts.On("GetByID", mock.Anything, int64(7)).Return(stored, nil).Once()
	appts.On("UpdateStatus", mock.Anything, int64(7), domain.AppointmentCancelled).Return(nil).Once()
	appts.On("GetByID", mock.Anything, int64(7)).Return(cancelled, nil).Once()

	svc := newTestService(appts, new(MockBarberRepository), new(MockUserRepository))
	a, err := svc.Cancel(context.Background(), 7, 42, string(domain.RoleCustomer))

	require.NoError(t, err)
	assert.Equal(t, domain.AppointmentCancelled, a.Status)
}

func TestService_Cancel_SomeoneElses(t *testing.T) {
	appts := new(MockAppointmentRepository)

	ownerID := int64(1)
	appts.On("GetByID", mock.Anything, int64(7)).
		Return(&domain.Appointment{ID: 7, CustomerID: &ownerID, Status: domain.AppointmentConfirmed}, nil)

	svc := newTestService(appts, new(MockBarberRepository), new(MockUserRepository))
	_, err := svc.Cancel(context.Background(), 7, 42, string(domain.RoleCustomer))

	assert.ErrorIs(t, err, ErrForbidden)
	appts.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Cancel_AlreadyCompleted(t *testing.T) {
	appts := new(MockAppointmentRepository)

	customerID := int64(42)
	appts.On("GetByID", mock.Anything, int64(7)).
		Return(&domain.Appointment{ID: 7, CustomerID: &customerID, Status: domain.AppointmentCompleted}, nil)

	svc := newTestService(appts, new(MockBarberRepository), new(MockUserRepository))
	_, err := svc.Cancel(context.Background(), 7, 42, string(domain.RoleCustomer))

	assert.ErrorIs(t, err, ErrInvalidStatusTransition)
}
