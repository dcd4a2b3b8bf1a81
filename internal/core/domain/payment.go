package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod is how a customer payment or expense was settled.
type PaymentMethod string

const (
	MethodCash     PaymentMethod = "cash"
	MethodCard     PaymentMethod = "card"
	MethodTransfer PaymentMethod = "transfer"
)

// CashAccountCode maps a payment method to the cash-like account it moves
// money through: card terminals and the cash drawer both settle into CASH,
// transfers land on BANK.
func (m PaymentMethod) CashAccountCode() string {
	if m == MethodTransfer {
		return CodeBank
	}
	return CodeCash
}

// Payment is one collection from a customer, optionally allocated to an
// invoice. Created once, never mutated.
type Payment struct {
	PaymentID  string          `json:"paymentID"`
	CustomerID string          `json:"customerID"`
	InvoiceID  *string         `json:"invoiceID,omitempty"`
	Method     PaymentMethod   `json:"method"`
	Amount     decimal.Decimal `json:"amount"`
	Fee        decimal.Decimal `json:"fee"` // non-zero only for card payments
	Note       string          `json:"note,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
	CreatedBy  string          `json:"createdBy"`
}
