package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"

	"github.com/platewise/platewise/internal/auth"
	"github.com/platewise/platewise/internal/metrics"
	"github.com/platewise/platewise/internal/model"
	"github.com/platewise/platewise/internal/repository"
)

// Auth service errors.
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailExists        = errors.New("email already registered")
)

const minPasswordLength = 6

// AuthService verifies credentials and issues session tokens.
type AuthService struct {
	repo    *repository.Repository
	tokens  *auth.TokenManager
	metrics metrics.Recorder
}

// NewAuthService creates a new AuthService.
func NewAuthService(repo *repository.Repository, tokens *auth.TokenManager, recorder metrics.Recorder) *AuthService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &AuthService{
		repo:    repo,
		tokens:  tokens,
		metrics: recorder,
	}
}

// RegisterInput defines input for registering a new account.
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Role      model.Role // optional, defaults to RoleUser
}

// Register creates a new user account and returns its id.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*model.User, error) {
	var invalid []string
	if _, err := mail.ParseAddress(input.Email); err != nil {
		invalid = append(invalid, "email")
	}
	if len(input.Password) < minPasswordLength {
		invalid = append(invalid, "password")
	}

	role := input.Role
	if role == "" {
		role = model.RoleUser
	}
	if !role.IsValid() {
		invalid = append(invalid, "role")
	}

	if len(invalid) > 0 {
		return nil, newValidationError(invalid...)
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Email:        input.Email,
		PasswordHash: hash,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Role:         role,
	}

	if _, err := s.repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.metrics.IncUserRegistered()

	return user, nil
}

// LoginOutput carries the authenticated actor and their session token.
type LoginOutput struct {
	Actor model.Actor
	Token string
}

// Login verifies credentials and issues a session token. Unknown email and
// wrong password produce the same error so accounts cannot be enumerated.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginOutput, error) {
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			s.metrics.IncLoginFailure()
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	match, err := auth.VerifyPassword(password, user.PasswordHash)
	if err != nil || !match {
		s.metrics.IncLoginFailure()
		return nil, ErrInvalidCredentials
	}

	actor := user.Actor()
	token, err := s.tokens.Issue(actor)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	s.metrics.IncLoginSuccess()

	return &LoginOutput{Actor: actor, Token: token}, nil
}

// Me returns the full user record for the authenticated actor.
func (s *AuthService) Me(ctx context.Context, actor model.Actor) (*model.User, error) {
	user, err := s.repo.GetUserByID(ctx, actor.ID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}
