package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment is the payments table row. Immutable after insert.
type Payment struct {
	PaymentID  string          `db:"payment_id"`
	CustomerID string          `db:"customer_id"`
	InvoiceID  *string         `db:"invoice_id"`
	Method     string          `db:"method"`
	Amount     decimal.Decimal `db:"amount"`
	Fee        decimal.Decimal `db:"fee"`
	Note       string          `db:"note"`
	CreatedAt  time.Time       `db:"created_at"`
	CreatedBy  string          `db:"created_by"`
}
