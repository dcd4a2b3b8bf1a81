package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fixhub-app/fixhub_backend/internal/core/domain"
	portsrepo "github.com/fixhub-app/fixhub_backend/internal/core/ports/repositories"
	portssvc "github.com/fixhub-app/fixhub_backend/internal/core/ports/services"
	"github.com/fixhub-app/fixhub_backend/internal/middleware"
	"github.com/shopspring/decimal"
)

// reportingService derives balances and aggregates from the entry log.
// Everything is recomputed per call; no balance is cached anywhere.
type reportingService struct {
	reportingRepo portsrepo.ReportingRepositoryFacade
}

// NewReportingService creates a new reporting service.
func NewReportingService(repo portsrepo.ReportingRepositoryFacade) portssvc.ReportingSvcFacade {
	return &reportingService{reportingRepo: repo}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// CashBalance sums debit-minus-credit across every cash-like account.
func (s *reportingService) CashBalance(ctx context.Context) (decimal.Decimal, error) {
	balance, err := s.reportingRepo.CashBalance(ctx)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to compute cash balance", slog.String("error", err.Error()))
		return decimal.Zero, fmt.Errorf("failed to compute cash balance: %w", err)
	}
	return balance, nil
}

// AccountsReceivable returns the balance of the designated receivables account.
func (s *reportingService) AccountsReceivable(ctx context.Context) (decimal.Decimal, error) {
	return s.AccountBalance(ctx, domain.CodeReceivables)
}

// AccountBalance computes the normal-balance of one account.
func (s *reportingService) AccountBalance(ctx context.Context, code string) (decimal.Decimal, error) {
	balance, err := s.reportingRepo.AccountBalance(ctx, code)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to compute account balance", slog.String("code", code), slog.String("error", err.Error()))
		return decimal.Zero, fmt.Errorf("failed to compute balance for %s: %w", code, err)
	}
	return balance, nil
}

// TotalRevenue sums amounts credited to revenue accounts in the window.
func (s *reportingService) TotalRevenue(ctx context.Context, from, to *time.Time) (decimal.Decimal, error) {
	total, err := s.reportingRepo.TotalRevenue(ctx, from, to)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to compute total revenue", slog.String("error", err.Error()))
		return decimal.Zero, fmt.Errorf("failed to compute total revenue: %w", err)
	}
	return total, nil
}

// TotalExpenses sums amounts debited to expense accounts in the window.
func (s *reportingService) TotalExpenses(ctx context.Context, from, to *time.Time) (decimal.Decimal, error) {
	total, err := s.reportingRepo.TotalExpenses(ctx, from, to)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to compute total expenses", slog.String("error", err.Error()))
		return decimal.Zero, fmt.Errorf("failed to compute total expenses: %w", err)
	}
	return total, nil
}

// TrialBalance returns per-account debit and credit totals as of a date.
func (s *reportingService) TrialBalance(ctx context.Context, asOf time.Time) ([]domain.TrialBalanceRow, error) {
	rows, err := s.reportingRepo.GetTrialBalanceData(ctx, asOf)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to retrieve trial balance data",
			slog.String("asOf", asOf.Format(time.RFC3339)), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to retrieve trial balance data: %w", err)
	}
	return rows, nil
}

// ProfitAndLoss aggregates revenue and expenses over a period.
func (s *reportingService) ProfitAndLoss(ctx context.Context, from, to time.Time) (*domain.PAndLReport, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	revenue, expenses, err := s.reportingRepo.GetProfitAndLossData(ctx, from, to)
	if err != nil {
		logger.Error("Failed to retrieve profit and loss data",
			slog.String("from", from.Format(time.RFC3339)),
			slog.String("to", to.Format(time.RFC3339)),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to retrieve profit and loss data: %w", err)
	}

	totalRevenue := decimal.Zero
	for _, r := range revenue {
		totalRevenue = totalRevenue.Add(r.NetAmount)
	}
	totalExpenses := decimal.Zero
	for _, e := range expenses {
		totalExpenses = totalExpenses.Add(e.NetAmount)
	}

	report := &domain.PAndLReport{
		Revenue:   revenue,
		Expenses:  expenses,
		NetProfit: totalRevenue.Sub(totalExpenses),
	}

	logger.Info("Profit and loss report generated",
		slog.Int("revenue_accounts", len(revenue)),
		slog.Int("expense_accounts", len(expenses)))
	return report, nil
}
