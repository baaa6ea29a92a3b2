package services_test

import (
	"fmt"
	"log"
	"os"
	"testing"

	"bozor/internal/models"
	"bozor/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// MockUserRepository is a mock implementation of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByPhone(phone string) (*models.User, error) {
	args := m.Called(phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(id uint) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// MockEventPublisher is a mock implementation of services.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(event string, data map[string]interface{}) error {
	args := m.Called(event, data)
	return args.Error(0)
}

func TestMain(m *testing.M) {
	// Suppress logging during tests for cleaner output
	log.SetOutput(os.Stdout)
	code := m.Run()
	os.Exit(code)
}

func notFoundErr(what string) error {
	return fmt.Errorf("failed to get user by %s: %w", what, gorm.ErrRecordNotFound)
}

func registerInput() services.RegisterInput {
	return services.RegisterInput{
		FullName:  "A B",
		Phone:     "1",
		Email:     "a@x.com",
		Password1: "p1",
		Password2: "p1",
	}
}

func TestAuthService_Register(t *testing.T) {
	mockRepo := new(MockUserRepository)
	tokens := services.NewTokenService(testSecret)
	authService := services.NewAuthService(mockRepo, tokens, nil)

	input := registerInput()

	mockRepo.On("GetByPhone", input.Phone).Return(nil, notFoundErr("phone 1")).Once()
	mockRepo.On("GetByEmail", input.Email).Return(nil, notFoundErr("email a@x.com")).Once()
	mockRepo.On("Create", mock.MatchedBy(func(u *models.User) bool {
		// The stored password is a bcrypt digest of the confirmation,
		// and the registration marks the user active.
		return u.Password != input.Password2 &&
			bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(input.Password2)) == nil &&
			u.IsActive &&
			!u.RegisterAt.IsZero()
	})).Return(nil).Once()

	info, err := authService.Register(input)
	assert.NoError(t, err)
	assert.Equal(t, "A B", info.FullName)
	assert.Equal(t, "1", info.Phone)
	assert.Equal(t, "a@x.com", info.Email)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_RegisterPasswordMismatch(t *testing.T) {
	mockRepo := new(MockUserRepository)
	tokens := services.NewTokenService(testSecret)
	authService := services.NewAuthService(mockRepo, tokens, nil)

	input := registerInput()
	input.Password2 = "something-else"

	_, err := authService.Register(input)
	assert.ErrorIs(t, err, services.ErrPasswordMismatch)
	// The mismatch is caught before any lookup
	mockRepo.AssertNotCalled(t, "GetByPhone", mock.Anything)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestAuthService_RegisterDuplicatePhone(t *testing.T) {
	mockRepo := new(MockUserRepository)
	tokens := services.NewTokenService(testSecret)
	authService := services.NewAuthService(mockRepo, tokens, nil)

	input := registerInput()
	mockRepo.On("GetByPhone", input.Phone).Return(&models.User{ID: 1}, nil).Once()

	_, err := authService.Register(input)
	assert.ErrorIs(t, err, services.ErrDuplicateCredential)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestAuthService_RegisterDuplicateEmail(t *testing.T) {
	mockRepo := new(MockUserRepository)
	tokens := services.NewTokenService(testSecret)
	authService := services.NewAuthService(mockRepo, tokens, nil)

	input := registerInput()
	mockRepo.On("GetByPhone", input.Phone).Return(nil, notFoundErr("phone 1")).Once()
	mockRepo.On("GetByEmail", input.Email).Return(&models.User{ID: 1}, nil).Once()

	_, err := authService.Register(input)
	assert.ErrorIs(t, err, services.ErrDuplicateCredential)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestAuthService_RegisterLosesInsertRace(t *testing.T) {
	mockRepo := new(MockUserRepository)
	tokens := services.NewTokenService(testSecret)
	authService := services.NewAuthService(mockRepo, tokens, nil)

	input := registerInput()
	// Pre-checks saw nothing, but a concurrent insert took the email:
	// the unique constraint is the authoritative guard.
	mockRepo.On("GetByPhone", input.Phone).Return(nil, notFoundErr("phone 1")).Once()
	mockRepo.On("GetByEmail", input.Email).Return(nil, notFoundErr("email a@x.com")).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).
		Return(fmt.Errorf("failed to create user: %w", gorm.ErrDuplicatedKey)).Once()

	_, err := authService.Register(input)
	assert.ErrorIs(t, err, services.ErrDuplicateCredential)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_RegisterPublishesEvent(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockEvents := new(MockEventPublisher)
	tokens := services.NewTokenService(testSecret)
	authService := services.NewAuthService(mockRepo, tokens, mockEvents)

	input := registerInput()
	mockRepo.On("GetByPhone", input.Phone).Return(nil, notFoundErr("phone 1")).Once()
	mockRepo.On("GetByEmail", input.Email).Return(nil, notFoundErr("email a@x.com")).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Return(nil).Once()
	mockEvents.On("Publish", services.EventUserRegistered, mock.Anything).Return(nil).Once()

	_, err := authService.Register(input)
	assert.NoError(t, err)
	mockEvents.AssertExpectations(t)
}

func TestAuthService_Login(t *testing.T) {
	mockRepo := new(MockUserRepository)
	tokens := services.NewTokenService(testSecret)
	authService := services.NewAuthService(mockRepo, tokens, nil)

	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &models.User{
		ID:       123,
		FullName: "Test User",
		Phone:    "998901234567",
		Email:    "test@example.com",
		Password: string(hashed),
		IsActive: true,
	}

	mockRepo.On("GetByEmail", user.Email).Return(user, nil).Once()

	result, err := authService.Login(user.Email, "password123")
	assert.NoError(t, err)
	assert.Equal(t, uint(123), result.UserID)
	assert.NotEmpty(t, result.Access)
	assert.NotEmpty(t, result.Refresh)

	// The issued access token identifies the user
	claims, err := tokens.Verify(result.Access)
	assert.NoError(t, err)
	userID, err := tokens.CurrentUser(claims)
	assert.NoError(t, err)
	assert.Equal(t, user.ID, userID)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_LoginUserNotFound(t *testing.T) {
	mockRepo := new(MockUserRepository)
	tokens := services.NewTokenService(testSecret)
	authService := services.NewAuthService(mockRepo, tokens, nil)

	mockRepo.On("GetByEmail", "missing@example.com").
		Return(nil, notFoundErr("email missing@example.com")).Once()

	_, err := authService.Login("missing@example.com", "whatever")
	assert.ErrorIs(t, err, services.ErrUserNotFound)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_LoginWrongPassword(t *testing.T) {
	mockRepo := new(MockUserRepository)
	tokens := services.NewTokenService(testSecret)
	authService := services.NewAuthService(mockRepo, tokens, nil)

	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &models.User{ID: 123, Email: "test@example.com", Password: string(hashed)}

	mockRepo.On("GetByEmail", user.Email).Return(user, nil).Once()

	_, err := authService.Login(user.Email, "wrong")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	mockRepo.AssertExpectations(t)
}

func TestHashPassword(t *testing.T) {
	digest, err := services.HashPassword("s3cret")
	assert.NoError(t, err)
	assert.NotEqual(t, "s3cret", digest)
	assert.True(t, services.CheckPassword("s3cret", digest))
	assert.False(t, services.CheckPassword("S3cret", digest))

	// A fresh salt per call yields distinct digests for the same input
	again, err := services.HashPassword("s3cret")
	assert.NoError(t, err)
	assert.NotEqual(t, digest, again)
	assert.True(t, services.CheckPassword("s3cret", again))
}
