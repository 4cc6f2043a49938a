// Package service implements user registration and authentication.
package service

import (
	"context"
	"errors"
	"log/slog"

	usererrors "github.com/avlasov/sneakerhub/internal/user/errors"
	"github.com/avlasov/sneakerhub/internal/user/store"
	"github.com/avlasov/sneakerhub/pkg/auth"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 10

// UserService defines registration and login operations.
type UserService interface {
	// Register creates a new account and returns a fresh bearer token.
	// Returns ErrUserAlreadyExists for a duplicate email.
	Register(ctx context.Context, creds CredentialsDto) (*AuthResultDto, error)

	// Login authenticates an existing account. Unknown email and wrong
	// password both yield ErrInvalidCredentials.
	Login(ctx context.Context, creds CredentialsDto) (*AuthResultDto, error)
}

// Service implements UserService with bcrypt password hashing and a token
// manager for bearer credentials.
type Service struct {
	userStore store.UserStore
	tokens    *auth.Manager
	logger    *slog.Logger
}

func NewService(userStore store.UserStore, tokens *auth.Manager, logger *slog.Logger) *Service {
	return &Service{
		userStore: userStore,
		tokens:    tokens,
		logger:    logger.With("component", "user_service"),
	}
}

// CredentialsDto carries the registration/login payload.
type CredentialsDto struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type UserDto struct {
	Email string `json:"email"`
}

// AuthResultDto is the outcome of a successful register or login.
type AuthResultDto struct {
	Token string  `json:"token"`
	User  UserDto `json:"user"`
}

func (s *Service) Register(ctx context.Context, creds CredentialsDto) (*AuthResultDto, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), bcryptCost)
	if err != nil {
		return nil, usererrors.ErrCreateUser
	}

	user := &store.User{
		ID:           uuid.New(),
		Email:        creds.Email,
		PasswordHash: string(hash),
	}
	if err := s.userStore.Create(ctx, user); err != nil {
		return nil, err
	}

	return s.authResult(ctx, user)
}

func (s *Service) Login(ctx context.Context, creds CredentialsDto) (*AuthResultDto, error) {
	user, err := s.userStore.FindByEmail(ctx, creds.Email)
	if err != nil {
		if errors.Is(err, usererrors.ErrUserNotFound) {
			// Uniform failure: do not reveal whether the account exists.
			return nil, usererrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)); err != nil {
		return nil, usererrors.ErrInvalidCredentials
	}

	return s.authResult(ctx, user)
}

func (s *Service) authResult(ctx context.Context, user *store.User) (*AuthResultDto, error) {
	token, err := s.tokens.Issue(user.ID.String(), user.Email)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to issue token", "error", err)
		return nil, err
	}
	return &AuthResultDto{
		Token: token,
		User:  UserDto{Email: user.Email},
	}, nil
}
