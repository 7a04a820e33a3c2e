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

// ErrTodoNotFound is returned when a todo does not exist for the caller.
// A todo owned by another user produces the same error as an absent id.
var ErrTodoNotFound = errors.New("todo not found")

// TodoRepository defines the persistence operations required by TodoService.
// Every method is scoped to an owner id.
type TodoRepository interface {
	ListByOwner(ctx context.Context, ownerID string) ([]models.Todo, error)
	Create(ctx context.Context, todo *models.Todo) error
	GetByOwnerAndID(ctx context.Context, ownerID, id string) (*models.Todo, error)
	Update(ctx context.Context, todo *models.Todo) error
	Delete(ctx context.Context, ownerID, id string) (*models.Todo, error)
}

// NewTodo carries the caller-supplied fields of a todo being created.
type NewTodo struct {
	Title     string
	Completed bool
	Location  *models.Location
	PhotoURI  *string
}

// TodoPatch carries the fields of a partial update. Nil fields are left
// untouched on the record.
type TodoPatch struct {
	Title     *string
	Completed *bool
	Location  *models.Location
	PhotoURI  *string
}

// TodoService implements owner-scoped todo operations. The owner id passed
// to every method must come from a verified token; the service never widens
// a query beyond it.
type TodoService struct {
	repo TodoRepository
}

// NewTodoService constructs a TodoService with the provided repository.
func NewTodoService(repo TodoRepository) *TodoService {
	return &TodoService{repo: repo}
}

// List returns all todos owned by ownerID in insertion order.
func (s *TodoService) List(ctx context.Context, ownerID string) ([]models.Todo, error) {
	todos, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	return todos, nil
}

// Create persists a new todo for ownerID and returns it.
func (s *TodoService) Create(ctx context.Context, ownerID string, input NewTodo) (*models.Todo, error) {
	now := time.Now().UTC()
	todo := &models.Todo{
		ID:        uuid.NewString(),
		OwnerID:   ownerID,
		Title:     input.Title,
		Completed: input.Completed,
		Location:  input.Location,
		PhotoURI:  input.PhotoURI,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, todo); err != nil {
		return nil, fmt.Errorf("create todo: %w", err)
	}
	return todo, nil
}

// Update applies a partial patch to the todo with the given id if ownerID
// owns it. Only non-nil patch fields overwrite the record; UpdatedAt is
// refreshed, CreatedAt is preserved.
func (s *TodoService) Update(ctx context.Context, ownerID, id string, patch TodoPatch) (*models.Todo, error) {
	todo, err := s.repo.GetByOwnerAndID(ctx, ownerID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTodoNotFound
		}
		return nil, fmt.Errorf("get todo: %w", err)
	}

	if patch.Title != nil {
		todo.Title = *patch.Title
	}
	if patch.Completed != nil {
		todo.Completed = *patch.Completed
	}
	if patch.Location != nil {
		todo.Location = patch.Location
	}
	if patch.PhotoURI != nil {
		todo.PhotoURI = patch.PhotoURI
	}
	todo.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, todo); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTodoNotFound
		}
		return nil, fmt.Errorf("update todo: %w", err)
	}
	return todo, nil
}

// Delete removes the todo with the given id if ownerID owns it and returns
// the removed record's prior state.
func (s *TodoService) Delete(ctx context.Context, ownerID, id string) (*models.Todo, error) {
	todo, err := s.repo.Delete(ctx, ownerID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTodoNotFound
		}
		return nil, fmt.Errorf("delete todo: %w", err)
	}
	return todo, nil
}
