// Package models defines the core data structures for users and todos.
package models

import "time"

// User represents an application user with credentials.
// It is never serialized directly; responses use PublicUser.
type User struct {
	// ID is the unique identifier for the user.
	ID string
	// Email is the login key, unique across all users (case-sensitive).
	Email string
	// PasswordHash is the bcrypt hash of the user's password.
	PasswordHash string
	// CreatedAt is set once when the user registers.
	CreatedAt time.Time
	// UpdatedAt mirrors CreatedAt; no profile-edit operation exists yet.
	UpdatedAt time.Time
}

// PublicUser is the view of a user that is safe to include in responses.
type PublicUser struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Public returns the response-safe view of the user.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// Location is an optional coordinate pair attached to a todo.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Todo is a single task record owned by exactly one user.
type Todo struct {
	// ID is the unique identifier for the todo.
	ID string `json:"id"`
	// OwnerID is the id of the user that created the todo; immutable.
	OwnerID string `json:"ownerId"`
	// Title is the task text.
	Title string `json:"title"`
	// Completed marks the task as done.
	Completed bool `json:"completed"`
	// Location is an optional coordinate pair; null when absent.
	Location *Location `json:"location"`
	// PhotoURI is an optional photo reference; null when absent.
	PhotoURI *string `json:"photoUri"`
	// CreatedAt is set once at creation.
	CreatedAt time.Time `json:"createdAt"`
	// UpdatedAt is refreshed on every successful mutation.
	UpdatedAt time.Time `json:"updatedAt"`
}
