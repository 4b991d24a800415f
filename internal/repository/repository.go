package repository

// Package repository contains data access layer abstractions.
// Implementations live in subpackages (e.g., sqlrepo) inside this directory.

import "context"

// Repository is the uniform CRUD contract every entity repository satisfies.
//
// Not-found is never an error: Read returns a nil entity, Update and Delete
// return false. Errors are reserved for store failures.
type Repository[T any] interface {
	// Create inserts a new row and returns the identifier assigned by the store.
	Create(ctx context.Context, entity *T) (int64, error)

	// Read returns the entity with the given id, or nil if no row matches.
	Read(ctx context.Context, id int64) (*T, error)

	// Update overwrites every non-id field of the row identified by the entity's id.
	// It reports whether a row matched.
	Update(ctx context.Context, entity *T) (bool, error)

	// Delete removes the row with the given id and reports whether one existed.
	Delete(ctx context.Context, id int64) (bool, error)
}
