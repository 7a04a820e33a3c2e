// Package repository provides user and todo persistence with in-memory and
// PostgreSQL implementations behind the same method sets.
package repository

import "errors"

var (
	// ErrNotFound is returned when a record does not exist or belongs to
	// another owner; the two cases are indistinguishable to callers.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateEmail is returned when creating a user whose email is
	// already registered.
	ErrDuplicateEmail = errors.New("email already registered")
)
