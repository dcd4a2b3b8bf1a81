// Package summarize builds human-readable descriptions for cash-affecting
// postings. It is pure: no I/O, no store access, just pattern matching on the
// posting's reference type and account pair.
package summarize

import (
	"fmt"

	"github.com/fixhub-app/fixhub_backend/internal/core/domain"
)

// Context carries the optional business details a summary can mention.
type Context struct {
	Customer  string
	InvoiceNo string
	Category  string
	Note      string
}

// Summary produces a localized one-line description for a posting identified
// by its reference type and debit/credit account codes. Unrecognized
// combinations fall back to a generic "{refType} – {debit} → {credit}" line.
func Summary(refType domain.RefType, debitCode, creditCode string, ctx Context) string {
	switch {
	case refType == domain.RefPayment && creditCode == domain.CodeReceivables:
		if ctx.InvoiceNo != "" {
			return fmt.Sprintf("Customer collection – %s (Invoice %s)", orUnknown(ctx.Customer), ctx.InvoiceNo)
		}
		return fmt.Sprintf("Customer collection – %s", orUnknown(ctx.Customer))

	case refType == domain.RefPayment && debitCode == domain.CodeCardFees:
		return "Card processing fee"

	case refType == domain.RefExpense && debitCode == domain.CodeOpex:
		if ctx.Note != "" {
			return fmt.Sprintf("Expense paid – %s (%s)", orUnknown(ctx.Category), ctx.Note)
		}
		return fmt.Sprintf("Expense paid – %s", orUnknown(ctx.Category))

	case refType == domain.RefInvoice && debitCode == domain.CodeReceivables:
		return fmt.Sprintf("Invoice issued – %s (Invoice %s)", orUnknown(ctx.Customer), ctx.InvoiceNo)
	}

	return fmt.Sprintf("%s – %s → %s", refType, debitCode, creditCode)
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
