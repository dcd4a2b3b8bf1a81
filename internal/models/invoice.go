package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice is the invoices table row. Only status mutates after insert.
type Invoice struct {
	InvoiceID  string          `db:"invoice_id"`
	InvoiceNo  string          `db:"invoice_no"`
	CustomerID string          `db:"customer_id"`
	Subtotal   decimal.Decimal `db:"subtotal"`
	VATRate    decimal.Decimal `db:"vat_rate"`
	Discount   decimal.Decimal `db:"discount"`
	Total      decimal.Decimal `db:"total"`
	Status     string          `db:"status"`
	DueDate    *time.Time      `db:"due_date"`
	Note       string          `db:"note"`
	AuditFields
}
