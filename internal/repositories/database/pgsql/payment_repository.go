package pgsql

import (
	"context"
	"errors"

	"github.com/fixhub-app/fixhub_backend/internal/apperrors"
	"github.com/fixhub-app/fixhub_backend/internal/core/domain"
	portsrepo "github.com/fixhub-app/fixhub_backend/internal/core/ports/repositories"
	"github.com/fixhub-app/fixhub_backend/internal/models"
	"github.com/fixhub-app/fixhub_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxPaymentRepository struct {
	BaseRepository
}

// newPgxPaymentRepository creates a new repository for collections.
func newPgxPaymentRepository(pool *pgxpool.Pool) portsrepo.PaymentRepositoryFacade {
	return &PgxPaymentRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PaymentRepositoryFacade = (*PgxPaymentRepository)(nil)

const paymentColumns = `payment_id, customer_id, invoice_id, method, amount, fee, note, created_at, created_by`

// SaveCollection inserts the payment, its ledger entries and cash notes in one
// transaction. When the payment is allocated to an invoice it also re-sums the
// invoice's payments and flips the status to paid with a conditional UPDATE,
// so concurrent collections against the same invoice cannot both claim the
// flip or leave a covered invoice open.
func (r *PgxPaymentRepository) SaveCollection(ctx context.Context, payment domain.Payment, entries []domain.LedgerEntry, notes []domain.CashNote) (bool, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelPayment(payment)
	query := `
		INSERT INTO payments (` + paymentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err = tx.Exec(ctx, query,
		m.PaymentID,
		m.CustomerID,
		m.InvoiceID,
		m.Method,
		m.Amount,
		m.Fee,
		m.Note,
		m.CreatedAt,
		m.CreatedBy,
	)
	if err != nil {
		return false, apperrors.NewAppError(500, "failed to insert payment "+m.PaymentID, err)
	}

	for _, entry := range entries {
		if err := insertEntryTx(ctx, tx, mapping.ToModelLedgerEntry(entry)); err != nil {
			return false, err
		}
	}
	for _, note := range notes {
		if err := insertCashNoteTx(ctx, tx, mapping.ToModelCashNote(note)); err != nil {
			return false, err
		}
	}

	flipped := false
	if m.InvoiceID != nil {
		flipped, err = r.markPaidIfCovered(ctx, tx, *m.InvoiceID, payment.CreatedBy)
		if err != nil {
			return false, err
		}
	}

	if err := r.Commit(ctx, tx); err != nil {
		return false, err
	}
	return flipped, nil
}

// markPaidIfCovered flips an open invoice to paid when its payments now cover
// the total. The payment sum is recomputed inside the UPDATE so the check and
// the flip are a single atomic statement.
func (r *PgxPaymentRepository) markPaidIfCovered(ctx context.Context, tx pgx.Tx, invoiceID string, actorID string) (bool, error) {
	query := `
		UPDATE invoices i
		SET status = $1, last_updated_at = now(), last_updated_by = $2
		WHERE i.invoice_id = $3
		  AND i.status = $4
		  AND (SELECT COALESCE(SUM(p.amount), 0) FROM payments p WHERE p.invoice_id = i.invoice_id) >= i.total;
	`
	tag, err := tx.Exec(ctx, query, string(domain.InvoicePaid), actorID, invoiceID, string(domain.InvoiceOpen))
	if err != nil {
		return false, apperrors.NewAppError(500, "failed to update status of invoice "+invoiceID, err)
	}
	return tag.RowsAffected() > 0, nil
}

func scanPayment(row pgx.Row) (models.Payment, error) {
	var m models.Payment
	err := row.Scan(
		&m.PaymentID,
		&m.CustomerID,
		&m.InvoiceID,
		&m.Method,
		&m.Amount,
		&m.Fee,
		&m.Note,
		&m.CreatedAt,
		&m.CreatedBy,
	)
	return m, err
}

// FindPaymentByID retrieves a payment by its ID.
func (r *PgxPaymentRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE payment_id = $1;`

	m, err := scanPayment(r.Pool.QueryRow(ctx, query, paymentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find payment by ID "+paymentID, err)
	}

	payment := mapping.ToDomainPayment(m)
	return &payment, nil
}

// ListPaymentsByInvoiceID retrieves all payments allocated to an invoice,
// oldest first.
func (r *PgxPaymentRepository) ListPaymentsByInvoiceID(ctx context.Context, invoiceID string) ([]domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE invoice_id = $1 ORDER BY created_at;`

	rows, err := r.Pool.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query payments for invoice "+invoiceID, err)
	}
	defer rows.Close()

	payments := []domain.Payment{}
	for rows.Next() {
		m, err := scanPayment(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan payment row", err)
		}
		payments = append(payments, mapping.ToDomainPayment(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating payment rows", err)
	}

	return payments, nil
}
