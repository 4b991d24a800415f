package repository

import (
	"context"

	"customerlib/internal/model"
)

// CustomerRepository is the customer table's data access. No business logic here.
type CustomerRepository interface {
	Repository[model.Customer]

	// DeleteAll removes every customer row and returns how many were removed.
	// Intended for test resets and administrative tooling only.
	DeleteAll(ctx context.Context) (int64, error)
}
