package services

import (
	"context"
	"time"

	"github.com/fixhub-app/fixhub_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReportingSvcFacade answers balance and aggregate questions from the entry
// log. All methods are read-only and side-effect free.
type ReportingSvcFacade interface {
	CashBalance(ctx context.Context) (decimal.Decimal, error)
	AccountsReceivable(ctx context.Context) (decimal.Decimal, error)
	AccountBalance(ctx context.Context, code string) (decimal.Decimal, error)
	TotalRevenue(ctx context.Context, from, to *time.Time) (decimal.Decimal, error)
	TotalExpenses(ctx context.Context, from, to *time.Time) (decimal.Decimal, error)
	TrialBalance(ctx context.Context, asOf time.Time) ([]domain.TrialBalanceRow, error)
	ProfitAndLoss(ctx context.Context, from, to time.Time) (*domain.PAndLReport, error)
}
