package sqlrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"customerlib/internal/model"
	"customerlib/internal/repository"
)

// CustomerSQL is a database/sql implementation of repository.CustomerRepository.
// Queries are written with '?' placeholders and rebound to the driver's bind
// style, so the same statements run on PostgreSQL and SQLite.
type CustomerSQL struct {
	db *sqlx.DB
}

// NewCustomerSQL creates a new CustomerSQL repository.
func NewCustomerSQL(db *sqlx.DB) *CustomerSQL {
	return &CustomerSQL{db: db}
}

var _ repository.CustomerRepository = (*CustomerSQL)(nil)

// Create inserts a new customer row and returns the store-generated id.
func (r *CustomerSQL) Create(ctx context.Context, c *model.Customer) (int64, error) {
	q := r.db.Rebind(`
		INSERT INTO customers (first_name, last_name, phone_number, email, total_purchases_amount)
		VALUES (?, ?, ?, ?, ?)
		RETURNING customer_id
	`)
	var id int64
	err := r.db.QueryRowxContext(ctx, q,
		c.FirstName,
		c.LastName,
		c.PhoneNumber,
		c.Email,
		c.TotalPurchasesAmount,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert customer: %w", err)
	}
	return id, nil
}

// Read fetches a single customer by id. A missing row yields nil, nil.
func (r *CustomerSQL) Read(ctx context.Context, id int64) (*model.Customer, error) {
	q := r.db.Rebind(`
		SELECT customer_id, first_name, last_name, phone_number, email, total_purchases_amount
		FROM customers
		WHERE customer_id = ?
	`)
	var c model.Customer
	if err := r.db.GetContext(ctx, &c, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select customer %d: %w", id, err)
	}
	return &c, nil
}

// Update overwrites all mutable columns for c.CustomerID.
// An unknown id is a no-op and reports false.
func (r *CustomerSQL) Update(ctx context.Context, c *model.Customer) (bool, error) {
	q := r.db.Rebind(`
		UPDATE customers
		SET first_name = ?, last_name = ?, phone_number = ?, email = ?, total_purchases_amount = ?
		WHERE customer_id = ?
	`)
	res, err := r.db.ExecContext(ctx, q,
		c.FirstName,
		c.LastName,
		c.PhoneNumber,
		c.Email,
		c.TotalPurchasesAmount,
		c.CustomerID,
	)
	if err != nil {
		return false, fmt.Errorf("update customer %d: %w", c.CustomerID, err)
	}
	return affected(res)
}

// Delete removes a customer by id and reports whether a row existed.
func (r *CustomerSQL) Delete(ctx context.Context, id int64) (bool, error) {
	q := r.db.Rebind(`DELETE FROM customers WHERE customer_id = ?`)
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return false, fmt.Errorf("delete customer %d: %w", id, err)
	}
	return affected(res)
}

// DeleteAll removes every customer row.
func (r *CustomerSQL) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM customers`)
	if err != nil {
		return 0, fmt.Errorf("delete all customers: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return n, nil
}

func affected(res sql.Result) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n > 0, nil
}
