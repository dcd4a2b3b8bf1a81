package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus indicates the lifecycle state of an invoice.
type InvoiceStatus string

const (
	InvoiceDraft   InvoiceStatus = "draft"
	InvoiceOpen    InvoiceStatus = "open"
	InvoicePaid    InvoiceStatus = "paid"
	InvoiceOverdue InvoiceStatus = "overdue"
	InvoiceVoid    InvoiceStatus = "void"
)

// Invoice represents a customer invoice. Status is the only field that
// changes after creation, flipping to paid once cumulative payments reach
// the total.
type Invoice struct {
	InvoiceID  string          `json:"invoiceID"`
	InvoiceNo  string          `json:"invoiceNo"`
	CustomerID string          `json:"customerID"`
	Subtotal   decimal.Decimal `json:"subtotal"`
	VATRate    decimal.Decimal `json:"vatRate"`  // percentage, e.g. 20
	Discount   decimal.Decimal `json:"discount"` // absolute amount
	Total      decimal.Decimal `json:"total"`
	Status     InvoiceStatus   `json:"status"`
	DueDate    *time.Time      `json:"dueDate,omitempty"`
	Note       string          `json:"note,omitempty"`
	AuditFields
}

// InvoiceTotal computes (subtotal - discount) * (1 + vatRate/100), rounded to
// two decimal places.
func InvoiceTotal(subtotal, discount, vatRate decimal.Decimal) decimal.Decimal {
	hundred := decimal.NewFromInt(100)
	net := subtotal.Sub(discount)
	return net.Mul(hundred.Add(vatRate)).Div(hundred).Round(2)
}
