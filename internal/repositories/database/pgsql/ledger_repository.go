package pgsql

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/fixhub-app/fixhub_backend/internal/apperrors"
	"github.com/fixhub-app/fixhub_backend/internal/core/domain"
	portsrepo "github.com/fixhub-app/fixhub_backend/internal/core/ports/repositories"
	"github.com/fixhub-app/fixhub_backend/internal/models"
	"github.com/fixhub-app/fixhub_backend/internal/utils/mapping"
	"github.com/fixhub-app/fixhub_backend/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxLedgerRepository struct {
	BaseRepository
}

// newPgxLedgerRepository creates a new repository for the entry log.
func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepositoryFacade {
	return &PgxLedgerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

const entryColumns = `entry_id, entry_date, debit_account_code, credit_account_code, amount, ref_type, ref_id, note, meta, reverses_entry_id, created_at, created_by, last_updated_at, last_updated_by`

// insertEntryTx appends one entry row inside an open transaction.
func insertEntryTx(ctx context.Context, tx pgx.Tx, m models.LedgerEntry) error {
	var metaJSON []byte
	if len(m.Meta) > 0 {
		var err error
		metaJSON, err = json.Marshal(m.Meta)
		if err != nil {
			return apperrors.NewAppError(500, "failed to encode entry meta for "+m.EntryID, err)
		}
	}

	query := `
		INSERT INTO ledger_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := tx.Exec(ctx, query,
		m.EntryID,
		m.EntryDate,
		m.DebitAccountCode,
		m.CreditAccountCode,
		m.Amount,
		m.RefType,
		m.RefID,
		m.Note,
		metaJSON,
		m.ReversesEntryID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert ledger entry "+m.EntryID, err)
	}
	return nil
}

// insertCashNoteTx appends one cash note row inside an open transaction.
func insertCashNoteTx(ctx context.Context, tx pgx.Tx, m models.CashNote) error {
	query := `
		INSERT INTO cash_notes (note_id, entry_id, summary, tags, created_at)
		VALUES ($1, $2, $3, $4, $5);
	`
	_, err := tx.Exec(ctx, query, m.NoteID, m.EntryID, m.Summary, m.Tags, m.CreatedAt)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert cash note for entry "+m.EntryID, err)
	}
	return nil
}

// SaveEntry inserts one ledger entry and its optional cash note within a
// single database transaction. The log is append-only: this is the only
// statement in the codebase that writes to ledger_entries.
func (r *PgxLedgerRepository) SaveEntry(ctx context.Context, entry domain.LedgerEntry, note *domain.CashNote) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := insertEntryTx(ctx, tx, mapping.ToModelLedgerEntry(entry)); err != nil {
		return err
	}
	if note != nil {
		if err := insertCashNoteTx(ctx, tx, mapping.ToModelCashNote(*note)); err != nil {
			return err
		}
	}

	return r.Commit(ctx, tx)
}

func scanEntry(row pgx.Row) (models.LedgerEntry, error) {
	var m models.LedgerEntry
	var metaJSON []byte
	err := row.Scan(
		&m.EntryID,
		&m.EntryDate,
		&m.DebitAccountCode,
		&m.CreditAccountCode,
		&m.Amount,
		&m.RefType,
		&m.RefID,
		&m.Note,
		&metaJSON,
		&m.ReversesEntryID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return m, err
	}
	if len(metaJSON) > 0 {
		if err := json.Unmarshal(metaJSON, &m.Meta); err != nil {
			return m, err
		}
	}
	return m, nil
}

// FindEntryByID retrieves an entry by its ID.
func (r *PgxLedgerRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM ledger_entries WHERE entry_id = $1;`

	m, err := scanEntry(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find entry by ID "+entryID, err)
	}

	entry := mapping.ToDomainLedgerEntry(m)
	return &entry, nil
}

// FindCashNoteByEntryID retrieves the cash note attached to an entry.
func (r *PgxLedgerRepository) FindCashNoteByEntryID(ctx context.Context, entryID string) (*domain.CashNote, error) {
	query := `SELECT note_id, entry_id, summary, tags, created_at FROM cash_notes WHERE entry_id = $1;`

	var m models.CashNote
	err := r.Pool.QueryRow(ctx, query, entryID).Scan(&m.NoteID, &m.EntryID, &m.Summary, &m.Tags, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find cash note for entry "+entryID, err)
	}

	note := mapping.ToDomainCashNote(m)
	return &note, nil
}

// FindReversalOf retrieves the compensating entry that reverses entryID.
func (r *PgxLedgerRepository) FindReversalOf(ctx context.Context, entryID string) (*domain.LedgerEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM ledger_entries WHERE reverses_entry_id = $1;`

	m, err := scanEntry(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find reversal of entry "+entryID, err)
	}

	entry := mapping.ToDomainLedgerEntry(m)
	return &entry, nil
}

// ListEntries retrieves a page of entries using token-based pagination,
// ordered by (entry_date, created_at) descending.
func (r *PgxLedgerRepository) ListEntries(ctx context.Context, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra row to determine whether a next page exists.
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + entryColumns + ` FROM ledger_entries`
	orderByClause := `ORDER BY entry_date DESC, created_at DESC`

	var rows pgx.Rows
	var err error

	if nextToken != nil && *nextToken != "" {
		lastEntryDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		query := baseQuery + ` WHERE (entry_date, created_at) < ($1, $2) ` + orderByClause + ` LIMIT $3;`
		rows, err = r.Pool.Query(ctx, query, lastEntryDate, lastCreatedAt, fetchLimit)
	} else {
		query := baseQuery + ` ` + orderByClause + ` LIMIT $1;`
		rows, err = r.Pool.Query(ctx, query, fetchLimit)
	}
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query ledger entries", err)
	}
	defer rows.Close()

	entries := make([]models.LedgerEntry, 0, fetchLimit)
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan ledger entry row", err)
		}
		entries = append(entries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating ledger entry rows", err)
	}

	var newNextToken *string
	if len(entries) > limit {
		entries = entries[:limit]
		last := entries[limit-1]
		token := pagination.EncodeToken(last.EntryDate, last.CreatedAt)
		newNextToken = &token
	}

	return mapping.ToDomainLedgerEntrySlice(entries), newNextToken, nil
}

// FindEntriesByReference retrieves all entries tagged with a business event,
// oldest first.
func (r *PgxLedgerRepository) FindEntriesByReference(ctx context.Context, refType domain.RefType, refID string) ([]domain.LedgerEntry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM ledger_entries
		WHERE ref_type = $1 AND ref_id = $2
		ORDER BY created_at;
	`
	rows, err := r.Pool.Query(ctx, query, string(refType), refID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query entries for reference "+string(refType)+"/"+refID, err)
	}
	defer rows.Close()

	entries := []models.LedgerEntry{}
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan ledger entry row", err)
		}
		entries = append(entries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating ledger entry rows", err)
	}

	return mapping.ToDomainLedgerEntrySlice(entries), nil
}
