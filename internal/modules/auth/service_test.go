package auth

import (
	"context"
	"testing"

	"barberq/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	if u != nil {
		u.ID = 1
	}
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

type stubJWT struct{}

func (stubJWT) GenerateToken(userID int64, role string) (string, error) {
	return "test-token", nil
}

func TestService_Register_Success(t *testing.T) {
	users := new(MockUserRepository)
	users.On("ExistsByEmail", mock.Anything, "new@mail.com").Return(false, nil)
	users.On("Create", mock.Anything, mock.Anything).Return(nil)

	svc := NewService(users, stubJWT{})
	user, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "new@mail.com",
		Password: "secret123",
		Name:     "New Customer",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.RoleCustomer, user.Role)
	assert.Equal(t, "new@mail.com", user.Email)
	assert.Empty(t, user.PasswordHash)
	users.AssertExpectations(t)
}

func TestService_Register_DuplicateEmail(t *testing.T) {
	users := new(MockUserRepository)
	users.On("ExistsByEmail", mock.Anything, "taken@mail.com").Return(true, nil)

	svc := NewService(users, stubJWT{})
	_, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "taken@mail.com",
		Password: "secret123",
		Name:     "Dup",
	})

	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_Login_Success(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)

	users := new(MockUserRepository)
	users.On("GetByEmail", mock.Anything, "user@mail.com").Return(&domain.User{
		ID:           7,
		Email:        "user@mail.com",
		PasswordHash: string(hash),
		Role:         domain.RoleCustomer,
	}, nil)

	svc := NewService(users, stubJWT{})
	result, err := svc.Login(context.Background(), LoginRequest{
		Email:    "user@mail.com",
		Password: "secret123",
	})

	require.NoError(t, err)
	assert.Equal(t, "test-token", result.AccessToken)
	assert.Empty(t, result.User.PasswordHash)
}

func TestService_Login_WrongPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)

	users := new(MockUserRepository)
	users.On("GetByEmail", mock.Anything, "user@mail.com").Return(&domain.User{
		ID:           7,
		Email:        "user@mail.com",
		PasswordHash: string(hash),
	}, nil)

	svc := NewService(users, stubJWT{})
	_, err = svc.Login(context.Background(), LoginRequest{
		Email:    "user@mail.com",
		Password: "not-it",
	})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_Login_UnknownEmail(t *testing.T) {
	users := new(MockUserRepository)
	users.On("GetByEmail", mock.Anything, "ghost@mail.com").Return(nil, gorm.ErrRecordNotFound)

	svc := NewService(users, stubJWT{})
	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "ghost@mail.com",
		Password: "whatever",
	})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
