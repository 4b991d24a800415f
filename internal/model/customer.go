package model

import "github.com/shopspring/decimal"

// Customer represents a purchasing customer.
// CustomerID is assigned by the store on creation; zero means not yet persisted.
type Customer struct {
	CustomerID           int64           `db:"customer_id" json:"customer_id"`
	FirstName            string          `db:"first_name" json:"first_name"`
	LastName             string          `db:"last_name" json:"last_name"`
	PhoneNumber          string          `db:"phone_number" json:"phone_number"`
	Email                string          `db:"email" json:"email"`
	TotalPurchasesAmount decimal.Decimal `db:"total_purchases_amount" json:"total_purchases_amount"`
}

// IsPersisted reports whether the store has assigned an id.
func (c *Customer) IsPersisted() bool {
	return c.CustomerID > 0
}
