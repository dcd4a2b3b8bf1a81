package mapping

import (
	"github.com/fixhub-app/fixhub_backend/internal/core/domain"
	"github.com/fixhub-app/fixhub_backend/internal/models"
)

// ToModelLedgerEntry converts a domain LedgerEntry to a model LedgerEntry.
// A RefNone reference maps to a NULL ref_id.
func ToModelLedgerEntry(d domain.LedgerEntry) models.LedgerEntry {
	var refID *string
	if d.Reference.Type != domain.RefNone && d.Reference.ID != "" {
		id := d.Reference.ID
		refID = &id
	}
	return models.LedgerEntry{
		EntryID:           d.EntryID,
		EntryDate:         d.EntryDate,
		DebitAccountCode:  d.DebitAccountCode,
		CreditAccountCode: d.CreditAccountCode,
		Amount:            d.Amount,
		RefType:           string(d.Reference.Type),
		RefID:             refID,
		Note:              d.Note,
		Meta:              d.Meta,
		ReversesEntryID:   d.ReversesEntryID,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainLedgerEntry converts a model LedgerEntry to a domain LedgerEntry
func ToDomainLedgerEntry(m models.LedgerEntry) domain.LedgerEntry {
	ref := domain.Reference{Type: domain.RefType(m.RefType)}
	if ref.Type == "" {
		ref.Type = domain.RefNone
	}
	if m.RefID != nil {
		ref.ID = *m.RefID
	}
	return domain.LedgerEntry{
		EntryID:           m.EntryID,
		EntryDate:         m.EntryDate,
		DebitAccountCode:  m.DebitAccountCode,
		CreditAccountCode: m.CreditAccountCode,
		Amount:            m.Amount,
		Reference:         ref,
		Note:              m.Note,
		Meta:              m.Meta,
		ReversesEntryID:   m.ReversesEntryID,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainLedgerEntrySlice converts model entries to domain entries.
func ToDomainLedgerEntrySlice(ms []models.LedgerEntry) []domain.LedgerEntry {
	out := make([]domain.LedgerEntry, len(ms))
	for i, m := range ms {
		out[i] = ToDomainLedgerEntry(m)
	}
	return out
}

// ToModelCashNote converts a domain CashNote to a model CashNote
func ToModelCashNote(d domain.CashNote) models.CashNote {
	return models.CashNote{
		NoteID:    d.NoteID,
		EntryID:   d.EntryID,
		Summary:   d.Summary,
		Tags:      d.Tags,
		CreatedAt: d.CreatedAt,
	}
}

// ToDomainCashNote converts a model CashNote to a domain CashNote
func ToDomainCashNote(m models.CashNote) domain.CashNote {
	return domain.CashNote{
		NoteID:    m.NoteID,
		EntryID:   m.EntryID,
		Summary:   m.Summary,
		Tags:      m.Tags,
		CreatedAt: m.CreatedAt,
	}
}
