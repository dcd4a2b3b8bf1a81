package repositories

import (
	"context"

	"github.com/fixhub-app/fixhub_backend/internal/core/domain"
)

// LedgerRepositoryFacade persists and reads the append-only entry log.
type LedgerRepositoryFacade interface {
	// SaveEntry inserts one ledger entry and, when note is non-nil, its cash
	// note, within a single database transaction. Existing rows are never
	// modified.
	SaveEntry(ctx context.Context, entry domain.LedgerEntry, note *domain.CashNote) error

	// FindEntryByID returns the entry or apperrors.ErrNotFound.
	FindEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error)

	// FindCashNoteByEntryID returns the cash note attached to an entry, or
	// apperrors.ErrNotFound when the entry has none.
	FindCashNoteByEntryID(ctx context.Context, entryID string) (*domain.CashNote, error)

	// ListEntries returns a page of entries ordered by (entry_date,
	// created_at) descending, plus the token for the next page.
	ListEntries(ctx context.Context, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error)

	// FindEntriesByReference returns all entries tagged with the given
	// business reference.
	FindEntriesByReference(ctx context.Context, refType domain.RefType, refID string) ([]domain.LedgerEntry, error)

	// FindReversalOf returns the compensating entry that reverses entryID,
	// or apperrors.ErrNotFound when none exists.
	FindReversalOf(ctx context.Context, entryID string) (*domain.LedgerEntry, error)
}
