// Package service provides business logic for authentication and todo
// management, delegating persistence to repository interfaces.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/akoreshkov/taskkeeper/internal/models"
	"github.com/akoreshkov/taskkeeper/internal/repository"
)

var (
	// ErrEmailExists is returned by Register when the email is taken.
	ErrEmailExists = errors.New("email already registered")

	// ErrInvalidCredentials is returned by Login for both an unknown email
	// and a wrong password, so callers cannot enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// UserRepository defines the persistence operations required by AuthService.
type UserRepository interface {
	// Create persists a new identity; a taken email yields
	// repository.ErrDuplicateEmail.
	Create(ctx context.Context, user *models.User) error
	// FindByEmail returns the identity registered under email, or
	// repository.ErrNotFound.
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, hash string) bool
}

// TokenIssuer issues a signed bearer token for a verified identity.
type TokenIssuer interface {
	Issue(userID, email string) (string, error)
}

// AuthService implements registration and login.
type AuthService struct {
	repo   UserRepository
	hasher PasswordHasher
	tokens TokenIssuer
}

// NewAuthService constructs an AuthService from its collaborators.
func NewAuthService(repo UserRepository, hasher PasswordHasher, tokens TokenIssuer) *AuthService {
	return &AuthService{repo: repo, hasher: hasher, tokens: tokens}
}

// Register creates a new identity and issues a token for it. Email
// uniqueness is case-sensitive; a taken email yields ErrEmailExists.
// The returned view never contains the password hash.
func (s *AuthService) Register(ctx context.Context, email, password string) (*models.PublicUser, string, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, "", ErrEmailExists
		}
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	tok, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}
	pub := user.Public()
	return &pub, tok, nil
}

// Login verifies the credentials and issues a fresh token. An unknown email
// and a wrong password both return ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.PublicUser, string, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("find user: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}

	tok, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}
	pub := user.Public()
	return &pub, tok, nil
}
