package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/fixhub-app/fixhub_backend/internal/apperrors"
	"github.com/fixhub-app/fixhub_backend/internal/core/domain"
	portsrepo "github.com/fixhub-app/fixhub_backend/internal/core/ports/repositories"
	"github.com/fixhub-app/fixhub_backend/internal/utils/accounting"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxReportingRepository struct {
	BaseRepository
}

// newPgxReportingRepository creates a new read-only repository that derives
// balances from the entry log.
func newPgxReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepositoryFacade {
	return &PgxReportingRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ReportingRepositoryFacade = (*PgxReportingRepository)(nil)

// CashBalance sums debit-minus-credit over every cash-like account. The cash
// position is always derived from the log, never stored.
func (r *PgxReportingRepository) CashBalance(ctx context.Context) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(signed.amount), 0)
		FROM (
			SELECT e.amount AS amount
			FROM ledger_entries e
			JOIN accounts a ON a.code = e.debit_account_code
			WHERE a.is_cash_like
			UNION ALL
			SELECT -e.amount AS amount
			FROM ledger_entries e
			JOIN accounts a ON a.code = e.credit_account_code
			WHERE a.is_cash_like
		) signed;
	`
	var balance decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query).Scan(&balance); err != nil {
		return decimal.Zero, apperrors.NewAppError(500, "failed to compute cash balance", err)
	}
	return balance, nil
}

// AccountBalance computes the normal balance of one account from the log:
// debit-minus-credit for asset and expense accounts, credit-minus-debit for
// liability, equity and revenue accounts.
func (r *PgxReportingRepository) AccountBalance(ctx context.Context, code string) (decimal.Decimal, error) {
	query := `
		SELECT
			a.account_type,
			COALESCE((SELECT SUM(amount) FROM ledger_entries WHERE debit_account_code = a.code), 0),
			COALESCE((SELECT SUM(amount) FROM ledger_entries WHERE credit_account_code = a.code), 0)
		FROM accounts a
		WHERE a.code = $1;
	`
	var accountType string
	var debits, credits decimal.Decimal
	err := r.Pool.QueryRow(ctx, query, code).Scan(&accountType, &debits, &credits)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, apperrors.ErrNotFound
		}
		return decimal.Zero, apperrors.NewAppError(500, "failed to compute balance of account "+code, err)
	}

	balance, err := accounting.NormalBalance(domain.AccountType(accountType), debits, credits)
	if err != nil {
		return decimal.Zero, apperrors.NewAppError(500, "failed to compute balance of account "+code, err)
	}
	return balance, nil
}

// sumBySide totals entry amounts hitting accounts of one type on one side of
// the entry, within an optional date window on entry_date.
func (r *PgxReportingRepository) sumBySide(ctx context.Context, accountType domain.AccountType, sideColumn string, from, to *time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(e.amount), 0)
		FROM ledger_entries e
		JOIN accounts a ON a.code = e.` + sideColumn + `
		WHERE a.account_type = $1
	`
	args := []any{string(accountType)}
	if from != nil {
		args = append(args, *from)
		query += ` AND e.entry_date >= $2`
	}
	if to != nil {
		args = append(args, *to)
		if from != nil {
			query += ` AND e.entry_date <= $3`
		} else {
			query += ` AND e.entry_date <= $2`
		}
	}
	query += `;`

	var total decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return decimal.Zero, apperrors.NewAppError(500, "failed to sum "+sideColumn+" amounts for "+string(accountType), err)
	}
	return total, nil
}

// TotalRevenue sums amounts credited to revenue accounts within the optional
// date window.
func (r *PgxReportingRepository) TotalRevenue(ctx context.Context, from, to *time.Time) (decimal.Decimal, error) {
	return r.sumBySide(ctx, domain.Revenue, "credit_account_code", from, to)
}

// TotalExpenses sums amounts debited to expense accounts within the optional
// date window.
func (r *PgxReportingRepository) TotalExpenses(ctx context.Context, from, to *time.Time) (decimal.Decimal, error) {
	return r.sumBySide(ctx, domain.Expense, "debit_account_code", from, to)
}

// GetTrialBalanceData aggregates debit and credit totals per account as of a
// date. Accounts with no postings yet appear with zero totals.
func (r *PgxReportingRepository) GetTrialBalanceData(ctx context.Context, asOf time.Time) ([]domain.TrialBalanceRow, error) {
	query := `
		SELECT
			a.code,
			a.name,
			a.account_type,
			COALESCE((SELECT SUM(amount) FROM ledger_entries WHERE debit_account_code = a.code AND entry_date <= $1), 0),
			COALESCE((SELECT SUM(amount) FROM ledger_entries WHERE credit_account_code = a.code AND entry_date <= $1), 0)
		FROM accounts a
		ORDER BY a.code;
	`
	rows, err := r.Pool.Query(ctx, query, asOf)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query trial balance data", err)
	}
	defer rows.Close()

	result := []domain.TrialBalanceRow{}
	for rows.Next() {
		var row domain.TrialBalanceRow
		if err := rows.Scan(&row.AccountCode, &row.AccountName, &row.AccountType, &row.Debit, &row.Credit); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan trial balance row", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating trial balance rows", err)
	}
	return result, nil
}

// GetProfitAndLossData returns the per-account revenue and expense nets for a
// period. Revenue nets are credit-minus-debit, expense nets debit-minus-credit,
// so reversals within the period cancel out.
func (r *PgxReportingRepository) GetProfitAndLossData(ctx context.Context, from, to time.Time) ([]domain.AccountAmount, []domain.AccountAmount, error) {
	query := `
		SELECT
			a.code,
			a.name,
			a.account_type,
			COALESCE((SELECT SUM(amount) FROM ledger_entries WHERE debit_account_code = a.code AND entry_date >= $1 AND entry_date <= $2), 0),
			COALESCE((SELECT SUM(amount) FROM ledger_entries WHERE credit_account_code = a.code AND entry_date >= $1 AND entry_date <= $2), 0)
		FROM accounts a
		WHERE a.account_type IN ($3, $4)
		ORDER BY a.code;
	`
	rows, err := r.Pool.Query(ctx, query, from, to, string(domain.Revenue), string(domain.Expense))
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query profit and loss data", err)
	}
	defer rows.Close()

	revenue := []domain.AccountAmount{}
	expenses := []domain.AccountAmount{}
	for rows.Next() {
		var code, name, accountType string
		var debits, credits decimal.Decimal
		if err := rows.Scan(&code, &name, &accountType, &debits, &credits); err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan profit and loss row", err)
		}
		net, err := accounting.NormalBalance(domain.AccountType(accountType), debits, credits)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to net profit and loss row for "+code, err)
		}
		switch domain.AccountType(accountType) {
		case domain.Revenue:
			revenue = append(revenue, domain.AccountAmount{AccountCode: code, Name: name, NetAmount: net})
		case domain.Expense:
			expenses = append(expenses, domain.AccountAmount{AccountCode: code, Name: name, NetAmount: net})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating profit and loss rows", err)
	}
	return revenue, expenses, nil
}
