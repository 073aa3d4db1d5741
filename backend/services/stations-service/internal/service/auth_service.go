package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"stationhub/backend/services/stations-service/internal/models"
	"stationhub/backend/services/stations-service/internal/password"
	"stationhub/backend/services/stations-service/internal/repository"
)

const minPasswordLength = 6

var (
	// ErrEmailInUse is returned when attempting to register duplicate email.
	ErrEmailInUse = errors.New("auth: email already registered")
	// ErrInvalidCredentials represents login failure.
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
)

// UserRepository defines storage contract used by the account service.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// AuthService contains registration/login logic.
type AuthService struct {
	repo      UserRepository
	hasher    password.Hasher
	tokenizer *TokenService
	logger    *zap.Logger
}

// NewAuthService builds AuthService.
func NewAuthService(repo UserRepository, hasher password.Hasher, tokenizer *TokenService, logger *zap.Logger) *AuthService {
	return &AuthService{
		repo:      repo,
		hasher:    hasher,
		tokenizer: tokenizer,
		logger:    logger,
	}
}

// Register creates a standard user and issues a credential for it. Admin accounts are
// provisioned out of band.
func (s *AuthService) Register(ctx context.Context, name, email, pass string) (string, *models.User, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))

	var fieldErrs []models.FieldError
	if name == "" || utf8.RuneCountInString(name) > models.MaxNameLength {
		fieldErrs = append(fieldErrs, models.FieldError{Field: "name", Message: "name must be 1-100 characters"})
	}
	if _, err := mail.ParseAddress(email); err != nil || email == "" {
		fieldErrs = append(fieldErrs, models.FieldError{Field: "email", Message: "valid email is required"})
	}
	if len(pass) < minPasswordLength {
		fieldErrs = append(fieldErrs, models.FieldError{Field: "password", Message: "password must be at least 6 characters"})
	}
	if len(fieldErrs) > 0 {
		return "", nil, &ValidationError{Fields: fieldErrs}
	}

	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return "", nil, ErrEmailInUse
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return "", nil, storeUnavailable("lookup email", err)
	}

	hash, err := s.hasher.Hash(pass)
	if err != nil {
		return "", nil, err
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         models.RoleStandard,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return "", nil, storeUnavailable("create user", err)
	}

	token, err := s.tokenizer.GenerateToken(user.ID, user.Role)
	if err != nil {
		return "", nil, err
	}

	s.logger.Info("user registered", zap.Int64("user_id", user.ID), zap.String("email", user.Email))
	return token, user, nil
}

// Login authenticates a user and produces a JWT.
func (s *AuthService) Login(ctx context.Context, email, pass string) (string, *models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || pass == "" {
		return "", nil, ErrInvalidCredentials
	}

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, storeUnavailable("lookup email", err)
	}

	if err := s.hasher.Compare(user.PasswordHash, pass); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.tokenizer.GenerateToken(user.ID, user.Role)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}
