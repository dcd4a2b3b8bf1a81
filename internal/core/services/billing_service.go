package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fixhub-app/fixhub_backend/internal/apperrors"
	"github.com/fixhub-app/fixhub_backend/internal/core/domain"
	portsrepo "github.com/fixhub-app/fixhub_backend/internal/core/ports/repositories"
	portssvc "github.com/fixhub-app/fixhub_backend/internal/core/ports/services"
	"github.com/fixhub-app/fixhub_backend/internal/dto"
	"github.com/fixhub-app/fixhub_backend/internal/middleware"
	"github.com/fixhub-app/fixhub_backend/internal/utils/summarize"
)

var (
	ErrFeeWithoutCard = errors.New("processing fee only applies to card payments")
	ErrNegativeFee    = errors.New("fee must not be negative")
)

// defaultVATRate applies when an invoice request omits the rate.
var defaultVATRate = decimal.NewFromInt(20)

// billingService implements the business-meaningful transaction recipes.
// Each recipe's writes (invoice/payment row, one or two postings, cash notes)
// happen inside one repository call that owns a single database transaction.
type billingService struct {
	accountSvc  portssvc.AccountSvcFacade
	ledgerSvc   portssvc.LedgerSvcFacade
	invoiceRepo portsrepo.InvoiceRepositoryFacade
	paymentRepo portsrepo.PaymentRepositoryFacade
}

// NewBillingService creates a new BillingService.
func NewBillingService(
	invoiceRepo portsrepo.InvoiceRepositoryFacade,
	paymentRepo portsrepo.PaymentRepositoryFacade,
	accountSvc portssvc.AccountSvcFacade,
	ledgerSvc portssvc.LedgerSvcFacade,
) portssvc.BillingSvcFacade {
	return &billingService{
		accountSvc:  accountSvc,
		ledgerSvc:   ledgerSvc,
		invoiceRepo: invoiceRepo,
		paymentRepo: paymentRepo,
	}
}

var _ portssvc.BillingSvcFacade = (*billingService)(nil)

// resolveAccounts fetches the given codes and fails with ErrAccountNotFound
// when any is missing from the chart.
func (s *billingService) resolveAccounts(ctx context.Context, codes ...string) (map[string]domain.Account, error) {
	accounts, err := s.accountSvc.GetAccountsByCodes(ctx, codes)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve accounts: %w", err)
	}
	for _, code := range codes {
		if _, found := accounts[code]; !found {
			return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, code)
		}
	}
	return accounts, nil
}

// IssueInvoice computes the invoice total, creates the invoice as open and
// posts the receivables entry. Receivables and revenue are not cash-like, so
// no cash note is produced.
func (s *billingService) IssueInvoice(ctx context.Context, req dto.IssueInvoiceRequest, actorID string) (*domain.Invoice, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	vatRate := defaultVATRate
	if req.VATRate != nil {
		vatRate = *req.VATRate
	}
	discount := decimal.Zero
	if req.Discount != nil {
		discount = *req.Discount
	}

	total := domain.InvoiceTotal(req.Subtotal, discount, vatRate)
	if total.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: invoice total is %s", ErrInvalidAmount, total.String())
	}

	if _, err := s.resolveAccounts(ctx, domain.CodeReceivables, domain.CodeSales); err != nil {
		return nil, err
	}

	// Concurrent issuers that pass this check are still caught by the unique
	// index on invoice_no.
	if _, err := s.invoiceRepo.FindInvoiceByNo(ctx, req.InvoiceNo); err == nil {
		return nil, fmt.Errorf("invoice number %s: %w", req.InvoiceNo, apperrors.ErrDuplicate)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check invoice number %s: %w", req.InvoiceNo, err)
	}

	now := time.Now().UTC()
	invoice := domain.Invoice{
		InvoiceID:  uuid.NewString(),
		InvoiceNo:  req.InvoiceNo,
		CustomerID: req.CustomerID,
		Subtotal:   req.Subtotal,
		VATRate:    vatRate,
		Discount:   discount,
		Total:      total,
		Status:     domain.InvoiceOpen,
		DueDate:    req.DueDate,
		Note:       req.Note,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}

	entry := domain.LedgerEntry{
		EntryID:           uuid.NewString(),
		EntryDate:         now,
		DebitAccountCode:  domain.CodeReceivables,
		CreditAccountCode: domain.CodeSales,
		Amount:            total,
		Reference:         domain.Reference{Type: domain.RefInvoice, ID: invoice.InvoiceID},
		Note:              fmt.Sprintf("Invoice %s", invoice.InvoiceNo),
		AuditFields:       invoice.AuditFields,
	}

	if err := s.invoiceRepo.SaveInvoiceWithEntry(ctx, invoice, entry); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("invoice number %s: %w", req.InvoiceNo, apperrors.ErrDuplicate)
		}
		logger.Error("Failed to save invoice", slog.String("invoice_no", req.InvoiceNo), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save invoice: %w", err)
	}

	logger.Info("Invoice issued",
		slog.String("invoice_id", invoice.InvoiceID),
		slog.String("invoice_no", invoice.InvoiceNo),
		slog.String("total", total.String()),
	)
	return &invoice, nil
}

// RecordCollection records a customer payment: one payment row, one cash
// posting (plus a card-fee posting when applicable), their cash notes, and
// the atomic invoice paid flip, all in one transaction.
func (s *billingService) RecordCollection(ctx context.Context, req dto.RecordCollectionRequest, actorID string) (*domain.Payment, bool, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, false, fmt.Errorf("%w: got %s", ErrInvalidAmount, req.Amount.String())
	}
	fee := decimal.Zero
	if req.Fee != nil {
		fee = *req.Fee
	}
	if fee.IsNegative() {
		return nil, false, ErrNegativeFee
	}
	if fee.IsPositive() && req.Method != domain.MethodCard {
		return nil, false, fmt.Errorf("%w: method is %s", ErrFeeWithoutCard, req.Method)
	}

	cashCode := req.Method.CashAccountCode()
	accounts, err := s.resolveAccounts(ctx, cashCode, domain.CodeReceivables, domain.CodeCardFees)
	if err != nil {
		return nil, false, err
	}
	if !accounts[cashCode].IsCashLike {
		return nil, false, fmt.Errorf("%w: account %s is not cash-like", apperrors.ErrInternal, cashCode)
	}

	var invoiceNo string
	if req.InvoiceID != nil {
		invoice, err := s.GetInvoiceByID(ctx, *req.InvoiceID)
		if err != nil {
			return nil, false, err
		}
		invoiceNo = invoice.InvoiceNo
	}

	now := time.Now().UTC()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     actorID,
		LastUpdatedAt: now,
		LastUpdatedBy: actorID,
	}

	payment := domain.Payment{
		PaymentID:  uuid.NewString(),
		CustomerID: req.CustomerID,
		InvoiceID:  req.InvoiceID,
		Method:     req.Method,
		Amount:     req.Amount,
		Fee:        fee,
		Note:       req.Note,
		CreatedAt:  now,
		CreatedBy:  actorID,
	}
	reference := domain.Reference{Type: domain.RefPayment, ID: payment.PaymentID}

	collection := domain.LedgerEntry{
		EntryID:           uuid.NewString(),
		EntryDate:         now,
		DebitAccountCode:  cashCode,
		CreditAccountCode: domain.CodeReceivables,
		Amount:            req.Amount,
		Reference:         reference,
		Note:              req.Note,
		AuditFields:       audit,
	}
	entries := []domain.LedgerEntry{collection}
	notes := []domain.CashNote{{
		NoteID:  uuid.NewString(),
		EntryID: collection.EntryID,
		Summary: summarize.Summary(domain.RefPayment, cashCode, domain.CodeReceivables, summarize.Context{
			Customer:  req.CustomerID,
			InvoiceNo: invoiceNo,
		}),
		Tags:      []string{"collection", string(req.Method)},
		CreatedAt: now,
	}}

	if fee.IsPositive() {
		feeEntry := domain.LedgerEntry{
			EntryID:           uuid.NewString(),
			EntryDate:         now,
			DebitAccountCode:  domain.CodeCardFees,
			CreditAccountCode: cashCode,
			Amount:            fee,
			Reference:         reference,
			AuditFields:       audit,
		}
		entries = append(entries, feeEntry)
		notes = append(notes, domain.CashNote{
			NoteID:    uuid.NewString(),
			EntryID:   feeEntry.EntryID,
			Summary:   summarize.Summary(domain.RefPayment, domain.CodeCardFees, cashCode, summarize.Context{}),
			Tags:      []string{"fee", string(req.Method)},
			CreatedAt: now,
		})
	}

	invoicePaid, err := s.paymentRepo.SaveCollection(ctx, payment, entries, notes)
	if err != nil {
		logger.Error("Failed to save collection", slog.String("payment_id", payment.PaymentID), slog.String("error", err.Error()))
		return nil, false, fmt.Errorf("failed to save collection: %w", err)
	}

	logger.Info("Collection recorded",
		slog.String("payment_id", payment.PaymentID),
		slog.String("method", string(req.Method)),
		slog.String("amount", req.Amount.String()),
		slog.Bool("invoice_paid", invoicePaid),
	)
	return &payment, invoicePaid, nil
}

// RecordExpense posts one expense entry against a cash-like account through
// the posting engine, which also writes the cash note atomically.
func (s *billingService) RecordExpense(ctx context.Context, req dto.RecordExpenseRequest, actorID string) (*domain.LedgerEntry, error) {
	method := req.Method
	if method == "" {
		method = domain.MethodCash
	}
	cashCode := method.CashAccountCode()

	summary := summarize.Summary(domain.RefExpense, domain.CodeOpex, cashCode, summarize.Context{
		Category: req.Category,
		Note:     req.Note,
	})

	entry, err := s.ledgerSvc.Post(ctx, dto.PostEntryRequest{
		DebitCode:   domain.CodeOpex,
		CreditCode:  cashCode,
		Amount:      req.Amount,
		Date:        req.Date,
		RefType:     domain.RefExpense,
		RefID:       uuid.NewString(),
		Note:        req.Note,
		CashSummary: summary,
		Tags:        []string{"expense", req.Category},
		Meta:        map[string]string{"category": req.Category},
	}, actorID)
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// GetInvoiceByID retrieves an invoice.
func (s *billingService) GetInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("invoice %s: %w", invoiceID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find invoice %s: %w", invoiceID, err)
	}
	return invoice, nil
}

// GetPaymentByID retrieves one payment and, when it is allocated to an
// invoice, whether that invoice is currently paid.
func (s *billingService) GetPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, bool, error) {
	payment, err := s.paymentRepo.FindPaymentByID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, false, fmt.Errorf("payment %s: %w", paymentID, apperrors.ErrNotFound)
		}
		return nil, false, fmt.Errorf("failed to find payment %s: %w", paymentID, err)
	}

	invoicePaid := false
	if payment.InvoiceID != nil {
		invoice, err := s.GetInvoiceByID(ctx, *payment.InvoiceID)
		if err != nil {
			return nil, false, err
		}
		invoicePaid = invoice.Status == domain.InvoicePaid
	}
	return payment, invoicePaid, nil
}

// ListPaymentsForInvoice returns the payments allocated to an invoice, oldest
// first, plus whether the invoice is currently paid.
func (s *billingService) ListPaymentsForInvoice(ctx context.Context, invoiceID string) ([]domain.Payment, bool, error) {
	invoice, err := s.GetInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, false, err
	}

	payments, err := s.paymentRepo.ListPaymentsByInvoiceID(ctx, invoiceID)
	if err != nil {
		return nil, false, fmt.Errorf("failed to list payments for invoice %s: %w", invoiceID, err)
	}
	return payments, invoice.Status == domain.InvoicePaid, nil
}
