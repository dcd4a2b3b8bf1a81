package services

import (
	"context"

	"github.com/fixhub-app/fixhub_backend/internal/core/domain"
	"github.com/fixhub-app/fixhub_backend/internal/dto"
)

// LedgerSvcFacade is the posting engine: it writes balanced entries to the
// append-only log and reads them back.
type LedgerSvcFacade interface {
	// Post validates and persists one balanced ledger entry, plus a cash
	// note when the posting touches a cash-like account and a summary was
	// supplied.
	Post(ctx context.Context, req dto.PostEntryRequest, actorID string) (*domain.LedgerEntry, error)

	// ReverseEntry posts the mirrored compensating entry for a mis-posted
	// entry. Historical rows are never mutated.
	ReverseEntry(ctx context.Context, entryID string, actorID string) (*domain.LedgerEntry, error)

	GetEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error)
	GetCashNoteForEntry(ctx context.Context, entryID string) (*domain.CashNote, error)
	ListEntries(ctx context.Context, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error)
	ListEntriesByReference(ctx context.Context, refType domain.RefType, refID string) ([]domain.LedgerEntry, error)
}
