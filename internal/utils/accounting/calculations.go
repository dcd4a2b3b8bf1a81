package accounting

import (
	"fmt"

	"github.com/fixhub-app/fixhub_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// EntrySide is which side of a posting an account sits on.
type EntrySide string

const (
	DebitSide  EntrySide = "DEBIT"
	CreditSide EntrySide = "CREDIT"
)

// SignedAmount applies the normal-balance convention to a movement amount.
// The convention is applied uniformly to every account type:
//
//	DEBIT to ASSET/EXPENSE -> Positive (+)
//	CREDIT to ASSET/EXPENSE -> Negative (-)
//	DEBIT to LIABILITY/EQUITY/REVENUE -> Negative (-)
//	CREDIT to LIABILITY/EQUITY/REVENUE -> Positive (+)
func SignedAmount(amount decimal.Decimal, side EntrySide, accountType domain.AccountType) (decimal.Decimal, error) {
	isDebit := side == DebitSide

	switch accountType {
	case domain.Asset, domain.Expense:
		if !isDebit {
			return amount.Neg(), nil
		}
	case domain.Liability, domain.Equity, domain.Revenue:
		if isDebit {
			return amount.Neg(), nil
		}
	default:
		return decimal.Zero, fmt.Errorf("unknown account type '%s'", accountType)
	}
	return amount, nil
}

// NormalBalance nets aggregated debit and credit totals into an account's
// normal balance: debit-minus-credit for ASSET/EXPENSE, credit-minus-debit
// for LIABILITY/EQUITY/REVENUE.
func NormalBalance(accountType domain.AccountType, debits, credits decimal.Decimal) (decimal.Decimal, error) {
	signedDebits, err := SignedAmount(debits, DebitSide, accountType)
	if err != nil {
		return decimal.Zero, err
	}
	signedCredits, err := SignedAmount(credits, CreditSide, accountType)
	if err != nil {
		return decimal.Zero, err
	}
	return signedDebits.Add(signedCredits), nil
}
