package repositories

import (
	"context"

	"github.com/fixhub-app/fixhub_backend/internal/core/domain"
)

// InvoiceRepositoryFacade persists invoices together with their opening
// postings.
type InvoiceRepositoryFacade interface {
	// SaveInvoiceWithEntry inserts the invoice row and its receivables
	// posting within a single database transaction.
	SaveInvoiceWithEntry(ctx context.Context, invoice domain.Invoice, entry domain.LedgerEntry) error

	// FindInvoiceByID returns the invoice or apperrors.ErrNotFound.
	FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error)

	// FindInvoiceByNo returns the invoice with the given invoice number, or
	// apperrors.ErrNotFound.
	FindInvoiceByNo(ctx context.Context, invoiceNo string) (*domain.Invoice, error)
}

// PaymentRepositoryFacade persists collections.
type PaymentRepositoryFacade interface {
	// SaveCollection inserts the payment row, the given ledger entries and
	// cash notes within a single database transaction. When the payment is
	// allocated to an invoice, it also re-sums that invoice's payments and
	// conditionally flips its status to paid in the same transaction.
	// It reports whether the invoice was flipped.
	SaveCollection(ctx context.Context, payment domain.Payment, entries []domain.LedgerEntry, notes []domain.CashNote) (bool, error)

	// FindPaymentByID returns the payment or apperrors.ErrNotFound.
	FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error)

	// ListPaymentsByInvoiceID returns all payments allocated to an invoice.
	ListPaymentsByInvoiceID(ctx context.Context, invoiceID string) ([]domain.Payment, error)
}
