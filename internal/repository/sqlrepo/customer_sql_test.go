package sqlrepo

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"customerlib/internal/model"
)

var customerColumns = []string{"customer_id", "first_name", "last_name", "phone_number", "email", "total_purchases_amount"}

func newMockRepo(t *testing.T) (*CustomerSQL, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	t.Cleanup(func() { db.Close() })

	return NewCustomerSQL(sqlx.NewDb(db, "pgx")), mock
}

func defaultCustomer() *model.Customer {
	return &model.Customer{
		FirstName:            "first",
		LastName:             "last",
		PhoneNumber:          "+12002000000",
		Email:                "a@b.c",
		TotalPurchasesAmount: decimal.Zero,
	}
}

func TestCustomerSQL_Create(t *testing.T) {
	repo, mock := newMockRepo(t)
	ctx := context.Background()
	c := defaultCustomer()

	t.Run("success", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO customers \(first_name, last_name, phone_number, email, total_purchases_amount\)\s+VALUES \(\$1, \$2, \$3, \$4, \$5\)\s+RETURNING customer_id`).
			WithArgs(c.FirstName, c.LastName, c.PhoneNumber, c.Email, c.TotalPurchasesAmount).
			WillReturnRows(sqlmock.NewRows([]string{"customer_id"}).AddRow(int64(42)))

		id, err := repo.Create(ctx, c)

		assert.NoError(t, err)
		assert.Equal(t, int64(42), id)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("store error", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO customers").
			WillReturnError(errors.New("null value in column \"first_name\""))

		id, err := repo.Create(ctx, &model.Customer{})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "insert customer")
		assert.Zero(t, id)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCustomerSQL_Read(t *testing.T) {
	repo, mock := newMockRepo(t)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		rows := sqlmock.NewRows(customerColumns).
			AddRow(int64(7), "first", "last", "+12002000000", "a@b.c", "10.25")

		mock.ExpectQuery("SELECT (.+) FROM customers WHERE customer_id = ?").
			WithArgs(int64(7)).
			WillReturnRows(rows)

		c, err := repo.Read(ctx, 7)

		require.NoError(t, err)
		require.NotNil(t, c)
		assert.Equal(t, int64(7), c.CustomerID)
		assert.Equal(t, "first", c.FirstName)
		assert.Equal(t, "last", c.LastName)
		assert.Equal(t, "+12002000000", c.PhoneNumber)
		assert.Equal(t, "a@b.c", c.Email)
		assert.True(t, decimal.RequireFromString("10.25").Equal(c.TotalPurchasesAmount))
	})

	t.Run("not found is not an error", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM customers WHERE customer_id = ?").
			WithArgs(int64(8)).
			WillReturnRows(sqlmock.NewRows(customerColumns))

		c, err := repo.Read(ctx, 8)

		assert.NoError(t, err)
		assert.Nil(t, c)
	})

	t.Run("store error", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM customers WHERE customer_id = ?").
			WithArgs(int64(9)).
			WillReturnError(errors.New("connection reset"))

		c, err := repo.Read(ctx, 9)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "connection reset")
		assert.Nil(t, c)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCustomerSQL_Update(t *testing.T) {
	repo, mock := newMockRepo(t)
	ctx := context.Background()

	c := defaultCustomer()
	c.CustomerID = 3
	c.PhoneNumber = "+12112111111"

	t.Run("matched", func(t *testing.T) {
		mock.ExpectExec(`UPDATE customers\s+SET first_name = \$1, last_name = \$2, phone_number = \$3, email = \$4, total_purchases_amount = \$5\s+WHERE customer_id = \$6`).
			WithArgs(c.FirstName, c.LastName, c.PhoneNumber, c.Email, c.TotalPurchasesAmount, c.CustomerID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		ok, err := repo.Update(ctx, c)

		assert.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("unknown id", func(t *testing.T) {
		mock.ExpectExec("UPDATE customers").
			WillReturnResult(sqlmock.NewResult(0, 0))

		ok, err := repo.Update(ctx, c)

		assert.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("store error", func(t *testing.T) {
		mock.ExpectExec("UPDATE customers").
			WillReturnError(errors.New("db down"))

		ok, err := repo.Update(ctx, c)

		assert.Error(t, err)
		assert.False(t, ok)
	})

	t.Run("rows affected error", func(t *testing.T) {
		mock.ExpectExec("UPDATE customers").
			WillReturnResult(sqlmock.NewErrorResult(errors.New("no count")))

		ok, err := repo.Update(ctx, c)

		assert.Error(t, err)
		assert.False(t, ok)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCustomerSQL_Delete(t *testing.T) {
	repo, mock := newMockRepo(t)
	ctx := context.Background()

	t.Run("deleted", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM customers WHERE customer_id = ?").
			WithArgs(int64(5)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		ok, err := repo.Delete(ctx, 5)

		assert.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("missing", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM customers WHERE customer_id = ?").
			WithArgs(int64(6)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		ok, err := repo.Delete(ctx, 6)

		assert.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("store error", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM customers WHERE customer_id = ?").
			WithArgs(int64(6)).
			WillReturnError(errors.New("db down"))

		ok, err := repo.Delete(ctx, 6)

		assert.Error(t, err)
		assert.False(t, ok)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCustomerSQL_DeleteAll(t *testing.T) {
	repo, mock := newMockRepo(t)
	ctx := context.Background()

	mock.ExpectExec("^DELETE FROM customers$").
		WillReturnResult(sqlmock.NewResult(0, 4))

	n, err := repo.DeleteAll(ctx)

	assert.NoError(t, err)
	assert.Equal(t, int64(4), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
