package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/akoreshkov/taskkeeper/internal/models"
)

// PostgresTodoRepository implements todo persistence against a PostgreSQL
// database. Every query is scoped by owner id, so a record owned by another
// user is indistinguishable from an absent one.
type PostgresTodoRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresTodoRepository creates a PostgresTodoRepository with the given
// database connection.
func NewPostgresTodoRepository(db *sql.DB) *PostgresTodoRepository {
	return &PostgresTodoRepository{DB: db}
}

// todoColumns is the column list shared by all todo queries; scanTodo
// must stay in sync with it.
const todoColumns = `id, owner_id, title, completed, latitude, longitude, photo_uri, created_at, updated_at`

// rowScanner abstracts *sql.Row and *sql.Rows for scanTodo.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanTodo(row rowScanner) (*models.Todo, error) {
	var (
		todo     models.Todo
		lat, lng sql.NullFloat64
		photo    sql.NullString
	)
	err := row.Scan(&todo.ID, &todo.OwnerID, &todo.Title, &todo.Completed,
		&lat, &lng, &photo, &todo.CreatedAt, &todo.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if lat.Valid && lng.Valid {
		todo.Location = &models.Location{Latitude: lat.Float64, Longitude: lng.Float64}
	}
	if photo.Valid {
		todo.PhotoURI = &photo.String
	}
	return &todo, nil
}

func locationColumns(todo *models.Todo) (lat, lng sql.NullFloat64) {
	if todo.Location != nil {
		lat = sql.NullFloat64{Float64: todo.Location.Latitude, Valid: true}
		lng = sql.NullFloat64{Float64: todo.Location.Longitude, Valid: true}
	}
	return lat, lng
}

// ListByOwner fetches all todos owned by ownerID in insertion order.
func (r *PostgresTodoRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.Todo, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+todoColumns+` FROM todos WHERE owner_id = $1 ORDER BY seq
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	defer rows.Close()

	var todos []models.Todo
	for rows.Next() {
		todo, err := scanTodo(rows)
		if err != nil {
			return nil, fmt.Errorf("scan todo: %w", err)
		}
		todos = append(todos, *todo)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	return todos, nil
}

// Create inserts a new todo row.
func (r *PostgresTodoRepository) Create(ctx context.Context, todo *models.Todo) error {
	lat, lng := locationColumns(todo)
	var photo sql.NullString
	if todo.PhotoURI != nil {
		photo = sql.NullString{String: *todo.PhotoURI, Valid: true}
	}
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO todos (id, owner_id, title, completed, latitude, longitude, photo_uri, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, todo.ID, todo.OwnerID, todo.Title, todo.Completed, lat, lng, photo, todo.CreatedAt, todo.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create todo: %w", err)
	}
	return nil
}

// GetByOwnerAndID fetches a single todo by id for the given owner.
// Any miss is ErrNotFound.
func (r *PostgresTodoRepository) GetByOwnerAndID(ctx context.Context, ownerID, id string) (*models.Todo, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT `+todoColumns+` FROM todos WHERE id = $1 AND owner_id = $2
	`, id, ownerID)
	todo, err := scanTodo(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get todo: %w", err)
	}
	return todo, nil
}

// Update rewrites the mutable columns of the row matching todo's id and
// owner. Returns ErrNotFound if no row matched.
func (r *PostgresTodoRepository) Update(ctx context.Context, todo *models.Todo) error {
	lat, lng := locationColumns(todo)
	var photo sql.NullString
	if todo.PhotoURI != nil {
		photo = sql.NullString{String: *todo.PhotoURI, Valid: true}
	}
	res, err := r.DB.ExecContext(ctx, `
		UPDATE todos SET title = $1, completed = $2, latitude = $3, longitude = $4, photo_uri = $5, updated_at = $6
		WHERE id = $7 AND owner_id = $8
	`, todo.Title, todo.Completed, lat, lng, photo, todo.UpdatedAt, todo.ID, todo.OwnerID)
	if err != nil {
		return fmt.Errorf("update todo: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update todo: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the todo with the given id and owner and returns its
// prior state, or ErrNotFound.
func (r *PostgresTodoRepository) Delete(ctx context.Context, ownerID, id string) (*models.Todo, error) {
	row := r.DB.QueryRowContext(ctx, `
		DELETE FROM todos WHERE id = $1 AND owner_id = $2
		RETURNING `+todoColumns+`
	`, id, ownerID)
	todo, err := scanTodo(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("delete todo: %w", err)
	}
	return todo, nil
}
