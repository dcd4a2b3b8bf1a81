package dto

import (
	"time"

	"github.com/fixhub-app/fixhub_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// IssueInvoiceRequest defines the data needed to issue an invoice.
type IssueInvoiceRequest struct {
	CustomerID string           `json:"customerID" binding:"required"`
	InvoiceNo  string           `json:"invoiceNo" binding:"required"`
	Subtotal   decimal.Decimal  `json:"subtotal" binding:"required"`
	VATRate    *decimal.Decimal `json:"vatRate"`  // defaults to 20
	Discount   *decimal.Decimal `json:"discount"` // defaults to 0
	DueDate    *time.Time       `json:"dueDate"`
	Note       string           `json:"note"`
}

// InvoiceResponse defines the data returned for an invoice.
type InvoiceResponse struct {
	InvoiceID  string               `json:"invoiceID"`
	InvoiceNo  string               `json:"invoiceNo"`
	CustomerID string               `json:"customerID"`
	Subtotal   decimal.Decimal      `json:"subtotal"`
	VATRate    decimal.Decimal      `json:"vatRate"`
	Discount   decimal.Decimal      `json:"discount"`
	Total      decimal.Decimal      `json:"total"`
	Status     domain.InvoiceStatus `json:"status"`
	DueDate    *time.Time           `json:"dueDate,omitempty"`
	Note       string               `json:"note,omitempty"`
	CreatedAt  time.Time            `json:"createdAt"`
}

// ToInvoiceResponse converts a domain.Invoice to InvoiceResponse DTO
func ToInvoiceResponse(inv *domain.Invoice) InvoiceResponse {
	return InvoiceResponse{
		InvoiceID:  inv.InvoiceID,
		InvoiceNo:  inv.InvoiceNo,
		CustomerID: inv.CustomerID,
		Subtotal:   inv.Subtotal,
		VATRate:    inv.VATRate,
		Discount:   inv.Discount,
		Total:      inv.Total,
		Status:     inv.Status,
		DueDate:    inv.DueDate,
		Note:       inv.Note,
		CreatedAt:  inv.CreatedAt,
	}
}
