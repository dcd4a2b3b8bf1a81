package repositories

import (
	"context"
	"time"

	"github.com/fixhub-app/fixhub_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReportingRepositoryFacade derives balances and aggregates from the entry
// log. All methods are read-only and recompute from the full log; no stored
// running balance exists anywhere.
type ReportingRepositoryFacade interface {
	// CashBalance sums debit-minus-credit over every cash-like account.
	CashBalance(ctx context.Context) (decimal.Decimal, error)

	// AccountBalance computes the normal-balance of a single account:
	// debit-minus-credit for asset/expense, credit-minus-debit for
	// liability/equity/revenue.
	AccountBalance(ctx context.Context, code string) (decimal.Decimal, error)

	// TotalRevenue sums amounts credited to revenue accounts within the
	// optional date window.
	TotalRevenue(ctx context.Context, from, to *time.Time) (decimal.Decimal, error)

	// TotalExpenses sums amounts debited to expense accounts within the
	// optional date window.
	TotalExpenses(ctx context.Context, from, to *time.Time) (decimal.Decimal, error)

	// GetTrialBalanceData returns per-account debit and credit totals as of
	// a date.
	GetTrialBalanceData(ctx context.Context, asOf time.Time) ([]domain.TrialBalanceRow, error)

	// GetProfitAndLossData returns revenue and expense breakdowns for a
	// period.
	GetProfitAndLossData(ctx context.Context, from, to time.Time) ([]domain.AccountAmount, []domain.AccountAmount, error)
}
