package services

import (
	"context"

	"github.com/fixhub-app/fixhub_backend/internal/core/domain"
	"github.com/fixhub-app/fixhub_backend/internal/dto"
)

// BillingSvcFacade exposes the business-meaningful transaction recipes.
// Each recipe composes one or more postings plus an invoice/payment side
// effect inside one atomic scope.
type BillingSvcFacade interface {
	// IssueInvoice creates an open invoice and posts its receivables entry.
	IssueInvoice(ctx context.Context, req dto.IssueInvoiceRequest, actorID string) (*domain.Invoice, error)

	// RecordCollection records a customer payment: a payment row, a cash
	// posting with its note, an optional card-fee posting, and the atomic
	// invoice paid flip. The returned bool reports whether the invoice was
	// flipped to paid.
	RecordCollection(ctx context.Context, req dto.RecordCollectionRequest, actorID string) (*domain.Payment, bool, error)

	// RecordExpense posts a business expense against a cash-like account.
	RecordExpense(ctx context.Context, req dto.RecordExpenseRequest, actorID string) (*domain.LedgerEntry, error)

	GetInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error)

	// GetPaymentByID retrieves one payment. The returned bool reports whether
	// the invoice it is allocated to is currently paid; it is false for
	// unallocated payments.
	GetPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, bool, error)

	// ListPaymentsForInvoice returns every payment allocated to an invoice,
	// plus whether that invoice is currently paid.
	ListPaymentsForInvoice(ctx context.Context, invoiceID string) ([]domain.Payment, bool, error)
}
