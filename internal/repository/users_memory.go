package repository

import (
	"context"
	"sync"

	"github.com/akoreshkov/taskkeeper/internal/models"
)

// MemoryUserRepository keeps user identities in process memory, keyed by
// email. Contents live for the process lifetime only.
type MemoryUserRepository struct {
	mu      sync.RWMutex
	byEmail map[string]*models.User
}

// NewMemoryUserRepository creates an empty in-memory user store.
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{byEmail: make(map[string]*models.User)}
}

// Create persists a new identity. Email uniqueness is case-sensitive;
// a taken email yields ErrDuplicateEmail.
func (r *MemoryUserRepository) Create(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[user.Email]; ok {
		return ErrDuplicateEmail
	}
	u := *user
	r.byEmail[user.Email] = &u
	return nil
}

// FindByEmail returns the identity registered under email, or ErrNotFound.
func (r *MemoryUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byEmail[email]
	if !ok {
		return nil, ErrNotFound
	}
	found := *u
	return &found, nil
}
