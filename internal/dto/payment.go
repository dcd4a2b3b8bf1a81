package dto

import (
	"time"

	"github.com/fixhub-app/fixhub_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RecordCollectionRequest defines the data needed to record a customer
// payment.
type RecordCollectionRequest struct {
	CustomerID string               `json:"customerID" binding:"required"`
	InvoiceID  *string              `json:"invoiceID"`
	Amount     decimal.Decimal      `json:"amount" binding:"required"`
	Method     domain.PaymentMethod `json:"method" binding:"required,oneof=cash card transfer"`
	Fee        *decimal.Decimal     `json:"fee"` // defaults to 0; card payments only
	Note       string               `json:"note"`
}

// PaymentResponse defines the data returned for a payment.
type PaymentResponse struct {
	PaymentID   string               `json:"paymentID"`
	CustomerID  string               `json:"customerID"`
	InvoiceID   *string              `json:"invoiceID,omitempty"`
	Method      domain.PaymentMethod `json:"method"`
	Amount      decimal.Decimal      `json:"amount"`
	Fee         decimal.Decimal      `json:"fee"`
	Note        string               `json:"note,omitempty"`
	CreatedAt   time.Time            `json:"createdAt"`
	InvoicePaid bool                 `json:"invoicePaid"` // true when this payment flipped the invoice to paid
}

// ToPaymentResponse converts a domain.Payment to PaymentResponse DTO
func ToPaymentResponse(p *domain.Payment, invoicePaid bool) PaymentResponse {
	return PaymentResponse{
		PaymentID:   p.PaymentID,
		CustomerID:  p.CustomerID,
		InvoiceID:   p.InvoiceID,
		Method:      p.Method,
		Amount:      p.Amount,
		Fee:         p.Fee,
		Note:        p.Note,
		CreatedAt:   p.CreatedAt,
		InvoicePaid: invoicePaid,
	}
}

// ToPaymentResponses converts a slice of domain.Payment to []PaymentResponse.
// invoicePaid applies to every payment; callers use it for payments listed
// under one invoice.
func ToPaymentResponses(payments []domain.Payment, invoicePaid bool) []PaymentResponse {
	responses := make([]PaymentResponse, len(payments))
	for i := range payments {
		responses[i] = ToPaymentResponse(&payments[i], invoicePaid)
	}
	return responses
}

// RecordExpenseRequest defines the data needed to record a business expense.
type RecordExpenseRequest struct {
	Amount   decimal.Decimal      `json:"amount" binding:"required"`
	Category string               `json:"category" binding:"required"`
	Note     string               `json:"note"`
	Date     *time.Time           `json:"date"` // defaults to now
	Method   domain.PaymentMethod `json:"method" binding:"omitempty,oneof=cash card transfer"`
}
