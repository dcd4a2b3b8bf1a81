package dto

import (
	"time"

	"github.com/fixhub-app/fixhub_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PostEntryRequest defines the data needed to post one balanced ledger entry.
type PostEntryRequest struct {
	DebitCode   string            `json:"debitCode" binding:"required"`
	CreditCode  string            `json:"creditCode" binding:"required"`
	Amount      decimal.Decimal   `json:"amount" binding:"required"`
	Date        *time.Time        `json:"date"` // defaults to now
	RefType     domain.RefType    `json:"refType" binding:"omitempty,oneof=INVOICE PAYMENT EXPENSE NONE"`
	RefID       string            `json:"refID"`
	Note        string            `json:"note"`
	CashSummary string            `json:"cashSummary"` // optional; only used when a side is cash-like
	Tags        []string          `json:"tags"`
	Meta        map[string]string `json:"meta" binding:"omitempty,max=16,dive,keys,min=1,max=64,endkeys,max=256"`
}

// Reference builds the typed reference from the request fields.
func (r PostEntryRequest) Reference() domain.Reference {
	if r.RefType == "" || r.RefType == domain.RefNone {
		return domain.NoReference()
	}
	return domain.Reference{Type: r.RefType, ID: r.RefID}
}

// EntryResponse defines the data returned for a ledger entry.
type EntryResponse struct {
	EntryID           string            `json:"entryID"`
	EntryDate         time.Time         `json:"entryDate"`
	DebitAccountCode  string            `json:"debitAccountCode"`
	CreditAccountCode string            `json:"creditAccountCode"`
	Amount            decimal.Decimal   `json:"amount"`
	RefType           domain.RefType    `json:"refType"`
	RefID             string            `json:"refID,omitempty"`
	Note              string            `json:"note,omitempty"`
	Meta              map[string]string `json:"meta,omitempty"`
	ReversesEntryID   *string           `json:"reversesEntryID,omitempty"`
	CreatedAt         time.Time         `json:"createdAt"`
	CreatedBy         string            `json:"createdBy"`
}

// CashNoteResponse defines the data returned for a cash note.
type CashNoteResponse struct {
	NoteID  string   `json:"noteID"`
	EntryID string   `json:"entryID"`
	Summary string   `json:"summary"`
	Tags    []string `json:"tags,omitempty"`
}

// GetEntryResponse combines an entry with its cash note, if any.
type GetEntryResponse struct {
	Entry    EntryResponse     `json:"entry"`
	CashNote *CashNoteResponse `json:"cashNote,omitempty"`
}

// ListEntriesParams defines query parameters for listing ledger entries.
type ListEntriesParams struct {
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}

// ListEntriesResponse wraps a page of entries and the cursor for the next one.
type ListEntriesResponse struct {
	Entries   []EntryResponse `json:"entries"`
	NextToken *string         `json:"nextToken,omitempty"`
}

// ToEntryResponse converts a domain.LedgerEntry to EntryResponse DTO
func ToEntryResponse(e *domain.LedgerEntry) EntryResponse {
	return EntryResponse{
		EntryID:           e.EntryID,
		EntryDate:         e.EntryDate,
		DebitAccountCode:  e.DebitAccountCode,
		CreditAccountCode: e.CreditAccountCode,
		Amount:            e.Amount,
		RefType:           e.Reference.Type,
		RefID:             e.Reference.ID,
		Note:              e.Note,
		Meta:              e.Meta,
		ReversesEntryID:   e.ReversesEntryID,
		CreatedAt:         e.CreatedAt,
		CreatedBy:         e.CreatedBy,
	}
}

// ToEntryResponses converts a slice of domain.LedgerEntry to []EntryResponse.
func ToEntryResponses(entries []domain.LedgerEntry) []EntryResponse {
	responses := make([]EntryResponse, len(entries))
	for i := range entries {
		responses[i] = ToEntryResponse(&entries[i])
	}
	return responses
}

// ToCashNoteResponse converts a domain.CashNote to CashNoteResponse DTO
func ToCashNoteResponse(n *domain.CashNote) *CashNoteResponse {
	if n == nil {
		return nil
	}
	return &CashNoteResponse{
		NoteID:  n.NoteID,
		EntryID: n.EntryID,
		Summary: n.Summary,
		Tags:    n.Tags,
	}
}
