package repository

import (
	"context"
	"sync"

	"github.com/akoreshkov/taskkeeper/internal/models"
)

// MemoryTodoRepository stores todo records in process memory, preserving
// insertion order. Contents live for the process lifetime only.
type MemoryTodoRepository struct {
	mu    sync.RWMutex
	todos []*models.Todo
}

// NewMemoryTodoRepository creates an empty in-memory todo store.
func NewMemoryTodoRepository() *MemoryTodoRepository {
	return &MemoryTodoRepository{}
}

// ListByOwner returns copies of all todos owned by ownerID, in the order
// they were created.
func (r *MemoryTodoRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.Todo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.Todo
	for _, t := range r.todos {
		if t.OwnerID == ownerID {
			out = append(out, *t)
		}
	}
	return out, nil
}

// Create appends a copy of todo to the store.
func (r *MemoryTodoRepository) Create(ctx context.Context, todo *models.Todo) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t := *todo
	r.todos = append(r.todos, &t)
	return nil
}

// GetByOwnerAndID returns the todo with the given id if it is owned by
// ownerID; any miss, including an id owned by someone else, is ErrNotFound.
func (r *MemoryTodoRepository) GetByOwnerAndID(ctx context.Context, ownerID, id string) (*models.Todo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, t := range r.todos {
		if t.ID == id && t.OwnerID == ownerID {
			found := *t
			return &found, nil
		}
	}
	return nil, ErrNotFound
}

// Update replaces the stored record matching todo's id and owner.
// Returns ErrNotFound if no such record exists.
func (r *MemoryTodoRepository) Update(ctx context.Context, todo *models.Todo) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, t := range r.todos {
		if t.ID == todo.ID && t.OwnerID == todo.OwnerID {
			updated := *todo
			r.todos[i] = &updated
			return nil
		}
	}
	return ErrNotFound
}

// Delete removes the todo with the given id and owner and returns its
// prior state, or ErrNotFound.
func (r *MemoryTodoRepository) Delete(ctx context.Context, ownerID, id string) (*models.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, t := range r.todos {
		if t.ID == id && t.OwnerID == ownerID {
			removed := *t
			r.todos = append(r.todos[:i], r.todos[i+1:]...)
			return &removed, nil
		}
	}
	return nil, ErrNotFound
}
