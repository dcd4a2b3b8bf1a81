package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RefType tags the business event a ledger entry originates from.
type RefType string

const (
	RefInvoice RefType = "INVOICE"
	RefPayment RefType = "PAYMENT"
	RefExpense RefType = "EXPENSE"
	RefNone    RefType = "NONE"
)

// Reference identifies the originating business event of a posting.
// The ID is an opaque correlation id; it is not enforced unique, so repeated
// recipe calls with the same id produce distinct entries.
type Reference struct {
	Type RefType `json:"type"`
	ID   string  `json:"id,omitempty"`
}

// NoReference is the zero reference for standalone postings.
func NoReference() Reference {
	return Reference{Type: RefNone}
}

// LedgerEntry is one immutable fact of the append-only log: a balanced pair
// of account movements of equal amount. Entries are never updated or deleted;
// mistakes are corrected with a compensating entry (see ReversesEntryID).
type LedgerEntry struct {
	EntryID           string            `json:"entryID"`
	EntryDate         time.Time         `json:"entryDate"`
	DebitAccountCode  string            `json:"debitAccountCode"`
	CreditAccountCode string            `json:"creditAccountCode"`
	Amount            decimal.Decimal   `json:"amount"` // always > 0
	Reference         Reference         `json:"reference"`
	Note              string            `json:"note,omitempty"`
	Meta              map[string]string `json:"meta,omitempty"`
	ReversesEntryID   *string           `json:"reversesEntryID,omitempty"`
	AuditFields
}

// IsReversal reports whether the entry compensates an earlier one.
func (e LedgerEntry) IsReversal() bool {
	return e.ReversesEntryID != nil
}

// CashNote is a human-readable companion to a cash-affecting ledger entry.
// It exists iff at least one side of the entry is a cash-like account.
// Purely descriptive; balance queries never read it.
type CashNote struct {
	NoteID    string    `json:"noteID"`
	EntryID   string    `json:"entryID"`
	Summary   string    `json:"summary"`
	Tags      []string  `json:"tags,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
