package mapping

import (
	"github.com/fixhub-app/fixhub_backend/internal/core/domain"
	"github.com/fixhub-app/fixhub_backend/internal/models"
)

// ToModelInvoice converts a domain Invoice to a model Invoice
func ToModelInvoice(d domain.Invoice) models.Invoice {
	return models.Invoice{
		InvoiceID:   d.InvoiceID,
		InvoiceNo:   d.InvoiceNo,
		CustomerID:  d.CustomerID,
		Subtotal:    d.Subtotal,
		VATRate:     d.VATRate,
		Discount:    d.Discount,
		Total:       d.Total,
		Status:      string(d.Status),
		DueDate:     d.DueDate,
		Note:        d.Note,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainInvoice converts a model Invoice to a domain Invoice
func ToDomainInvoice(m models.Invoice) domain.Invoice {
	return domain.Invoice{
		InvoiceID:   m.InvoiceID,
		InvoiceNo:   m.InvoiceNo,
		CustomerID:  m.CustomerID,
		Subtotal:    m.Subtotal,
		VATRate:     m.VATRate,
		Discount:    m.Discount,
		Total:       m.Total,
		Status:      domain.InvoiceStatus(m.Status),
		DueDate:     m.DueDate,
		Note:        m.Note,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelPayment converts a domain Payment to a model Payment
func ToModelPayment(d domain.Payment) models.Payment {
	return models.Payment{
		PaymentID:  d.PaymentID,
		CustomerID: d.CustomerID,
		InvoiceID:  d.InvoiceID,
		Method:     string(d.Method),
		Amount:     d.Amount,
		Fee:        d.Fee,
		Note:       d.Note,
		CreatedAt:  d.CreatedAt,
		CreatedBy:  d.CreatedBy,
	}
}

// ToDomainPayment converts a model Payment to a domain Payment
func ToDomainPayment(m models.Payment) domain.Payment {
	return domain.Payment{
		PaymentID:  m.PaymentID,
		CustomerID: m.CustomerID,
		InvoiceID:  m.InvoiceID,
		Method:     domain.PaymentMethod(m.Method),
		Amount:     m.Amount,
		Fee:        m.Fee,
		Note:       m.Note,
		CreatedAt:  m.CreatedAt,
		CreatedBy:  m.CreatedBy,
	}
}
