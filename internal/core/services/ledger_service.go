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
)

var (
	ErrAccountNotFound = errors.New("account not found")
	ErrInvalidAmount   = errors.New("amount must be greater than zero")
	ErrSameAccount     = errors.New("debit and credit accounts must differ")

	// Reversal guards wrap apperrors.ErrConflict so the HTTP layer maps
	// both to 409 without enumerating them.
	ErrAlreadyReversed = fmt.Errorf("entry has already been reversed: %w", apperrors.ErrConflict)
	ErrIsReversal      = fmt.Errorf("cannot reverse a compensating entry: %w", apperrors.ErrConflict)
)

// ledgerService is the posting engine. Every write produces exactly one new
// entry (plus at most one cash note) inside one atomic scope; nothing is ever
// updated or deleted.
type ledgerService struct {
	accountSvc portssvc.AccountSvcFacade
	ledgerRepo portsrepo.LedgerRepositoryFacade
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(ledgerRepo portsrepo.LedgerRepositoryFacade, accountSvc portssvc.AccountSvcFacade) portssvc.LedgerSvcFacade {
	return &ledgerService{
		accountSvc: accountSvc,
		ledgerRepo: ledgerRepo,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// resolvePair validates and resolves both sides of a posting against the
// chart of accounts. Validation happens before any write.
func (s *ledgerService) resolvePair(ctx context.Context, debitCode, creditCode string, amount decimal.Decimal) (debit, credit domain.Account, err error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return debit, credit, fmt.Errorf("%w: got %s", ErrInvalidAmount, amount.String())
	}
	if debitCode == creditCode {
		return debit, credit, fmt.Errorf("%w: %s", ErrSameAccount, debitCode)
	}

	accounts, err := s.accountSvc.GetAccountsByCodes(ctx, []string{debitCode, creditCode})
	if err != nil {
		return debit, credit, fmt.Errorf("failed to resolve accounts: %w", err)
	}

	debit, found := accounts[debitCode]
	if !found {
		return debit, credit, fmt.Errorf("%w: %s", ErrAccountNotFound, debitCode)
	}
	credit, found = accounts[creditCode]
	if !found {
		return debit, credit, fmt.Errorf("%w: %s", ErrAccountNotFound, creditCode)
	}
	return debit, credit, nil
}

// Post validates and persists one balanced ledger entry. When cashSummary is
// supplied and either resolved account is cash-like, a cash note is written
// in the same transaction.
func (s *ledgerService) Post(ctx context.Context, req dto.PostEntryRequest, actorID string) (*domain.LedgerEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	debit, credit, err := s.resolvePair(ctx, req.DebitCode, req.CreditCode, req.Amount)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	entryDate := now
	if req.Date != nil {
		entryDate = req.Date.UTC()
	}

	entry := domain.LedgerEntry{
		EntryID:           uuid.NewString(),
		EntryDate:         entryDate,
		DebitAccountCode:  debit.Code,
		CreditAccountCode: credit.Code,
		Amount:            req.Amount,
		Reference:         req.Reference(),
		Note:              req.Note,
		Meta:              req.Meta,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}

	note := cashNoteFor(entry, debit, credit, req.CashSummary, req.Tags, now)

	if err := s.ledgerRepo.SaveEntry(ctx, entry, note); err != nil {
		logger.Error("Failed to save ledger entry", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save ledger entry: %w", err)
	}

	logger.Info("Ledger entry posted",
		slog.String("entry_id", entry.EntryID),
		slog.String("debit", entry.DebitAccountCode),
		slog.String("credit", entry.CreditAccountCode),
		slog.String("amount", entry.Amount.String()),
	)
	return &entry, nil
}

// cashNoteFor builds the cash note for an entry, or nil when the posting does
// not touch funds or no summary was supplied.
func cashNoteFor(entry domain.LedgerEntry, debit, credit domain.Account, summary string, tags []string, now time.Time) *domain.CashNote {
	if summary == "" {
		return nil
	}
	if !debit.IsCashLike && !credit.IsCashLike {
		return nil
	}
	return &domain.CashNote{
		NoteID:    uuid.NewString(),
		EntryID:   entry.EntryID,
		Summary:   summary,
		Tags:      tags,
		CreatedAt: now,
	}
}

// ReverseEntry posts the mirrored compensating entry for entryID. The
// original entry stays untouched; the link lives on the new entry.
func (s *ledgerService) ReverseEntry(ctx context.Context, entryID string, actorID string) (*domain.LedgerEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	original, err := s.ledgerRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("original entry %s: %w", entryID, apperrors.ErrNotFound)
		}
		logger.Error("Failed to fetch entry for reversal", slog.String("entry_id", entryID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to retrieve entry %s: %w", entryID, err)
	}

	if original.IsReversal() {
		return nil, fmt.Errorf("%w: %s", ErrIsReversal, entryID)
	}

	if _, err := s.ledgerRepo.FindReversalOf(ctx, entryID); err == nil {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyReversed, entryID)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check for existing reversal of %s: %w", entryID, err)
	}

	now := time.Now().UTC()
	reversal := domain.LedgerEntry{
		EntryID:           uuid.NewString(),
		EntryDate:         now,
		DebitAccountCode:  original.CreditAccountCode,
		CreditAccountCode: original.DebitAccountCode,
		Amount:            original.Amount,
		Reference:         original.Reference,
		Note:              fmt.Sprintf("Reversal of entry %s", original.EntryID),
		ReversesEntryID:   &original.EntryID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}

	if err := s.ledgerRepo.SaveEntry(ctx, reversal, nil); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			// A concurrent reversal won the unique index race.
			return nil, fmt.Errorf("%w: %s", ErrAlreadyReversed, entryID)
		}
		logger.Error("Failed to save compensating entry", slog.String("entry_id", entryID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save compensating entry: %w", err)
	}

	logger.Info("Entry reversed", slog.String("entry_id", entryID), slog.String("reversal_id", reversal.EntryID))
	return &reversal, nil
}

// GetEntryByID retrieves a single ledger entry.
func (s *ledgerService) GetEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error) {
	entry, err := s.ledgerRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to find entry %s: %w", entryID, err)
	}
	return entry, nil
}

// GetCashNoteForEntry retrieves the cash note attached to an entry, if any.
func (s *ledgerService) GetCashNoteForEntry(ctx context.Context, entryID string) (*domain.CashNote, error) {
	note, err := s.ledgerRepo.FindCashNoteByEntryID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to find cash note for entry %s: %w", entryID, err)
	}
	return note, nil
}

// ListEntries retrieves a page of the entry log, newest first.
func (s *ledgerService) ListEntries(ctx context.Context, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	entries, nextToken, err := s.ledgerRepo.ListEntries(ctx, limit, params.NextToken)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list ledger entries", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to retrieve entries: %w", err)
	}

	return &dto.ListEntriesResponse{
		Entries:   dto.ToEntryResponses(entries),
		NextToken: nextToken,
	}, nil
}

// ListEntriesByReference retrieves all entries tagged with a business event.
func (s *ledgerService) ListEntriesByReference(ctx context.Context, refType domain.RefType, refID string) ([]domain.LedgerEntry, error) {
	entries, err := s.ledgerRepo.FindEntriesByReference(ctx, refType, refID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve entries for %s/%s: %w", refType, refID, err)
	}
	return entries, nil
}
