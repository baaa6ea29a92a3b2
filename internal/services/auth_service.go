package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"bozor/internal/models"
	"bozor/internal/repositories"

	"gorm.io/gorm"
)

// RegisterInput carries the registration form. The password is
// submitted twice as a confirmation.
type RegisterInput struct {
	FullName  string
	Phone     string
	Email     string
	Password1 string
	Password2 string
	ImageID   *uint
}

// LoginResult is returned on successful login.
type LoginResult struct {
	UserID  uint   `json:"user_id"`
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// AuthService handles registration and login.
type AuthService struct {
	userRepo repositories.UserRepository
	tokens   *TokenService
	events   EventPublisher
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, tokens *TokenService, events EventPublisher) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
		events:   events,
	}
}

// Register creates a new user. The password confirmation must match and
// the phone and email must both be unused. The returned info never
// contains the password hash.
func (s *AuthService) Register(input RegisterInput) (*models.UserInfo, error) {
	if input.Password1 != input.Password2 {
		return nil, ErrPasswordMismatch
	}

	// Best-effort pre-checks; the unique indexes on phone and email are
	// the authoritative guard. Phone and email are checked independently,
	// a record matching either blocks registration.
	if existing, err := s.userRepo.GetByPhone(input.Phone); err == nil && existing != nil {
		return nil, ErrDuplicateCredential
	}
	if existing, err := s.userRepo.GetByEmail(input.Email); err == nil && existing != nil {
		return nil, ErrDuplicateCredential
	}

	hashed, err := HashPassword(input.Password2)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		FullName:   input.FullName,
		Phone:      input.Phone,
		Email:      input.Email,
		Password:   hashed,
		ImageID:    input.ImageID,
		IsActive:   true,
		RegisterAt: time.Now().UTC(),
	}
	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost the check-then-insert race; the constraint wins.
			return nil, ErrDuplicateCredential
		}
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	s.publish(EventUserRegistered, map[string]interface{}{
		"user_id": user.ID,
		"email":   user.Email,
	})

	info := user.PublicInfo()
	return &info, nil
}

// Login verifies the credentials and issues an access/refresh token pair.
func (s *AuthService) Login(email, password string) (*LoginResult, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !CheckPassword(password, user.Password) {
		return nil, ErrInvalidCredentials
	}

	pair, err := s.tokens.IssueTokenPair(user.ID)
	if err != nil {
		return nil, err
	}
	return &LoginResult{
		UserID:  user.ID,
		Access:  pair.Access,
		Refresh: pair.Refresh,
	}, nil
}

func (s *AuthService) publish(event string, data map[string]interface{}) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(event, data); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", event, err)
	}
}
