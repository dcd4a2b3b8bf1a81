package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry is the ledger_entries table row. Append-only: no update or
// delete statement in the codebase touches this table.
type LedgerEntry struct {
	EntryID           string            `db:"entry_id"`
	EntryDate         time.Time         `db:"entry_date"`
	DebitAccountCode  string            `db:"debit_account_code"`
	CreditAccountCode string            `db:"credit_account_code"`
	Amount            decimal.Decimal   `db:"amount"`
	RefType           string            `db:"ref_type"`
	RefID             *string           `db:"ref_id"`
	Note              string            `db:"note"`
	Meta              map[string]string `db:"meta"` // stored as jsonb
	ReversesEntryID   *string           `db:"reverses_entry_id"`
	AuditFields
}

// CashNote is the cash_notes table row, 1:1 with a cash-affecting entry.
type CashNote struct {
	NoteID    string    `db:"note_id"`
	EntryID   string    `db:"entry_id"`
	Summary   string    `db:"summary"`
	Tags      []string  `db:"tags"`
	CreatedAt time.Time `db:"created_at"`
}
