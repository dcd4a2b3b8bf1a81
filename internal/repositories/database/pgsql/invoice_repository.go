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

type PgxInvoiceRepository struct {
	BaseRepository
}

// newPgxInvoiceRepository creates a new repository for invoices.
func newPgxInvoiceRepository(pool *pgxpool.Pool) portsrepo.InvoiceRepositoryFacade {
	return &PgxInvoiceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.InvoiceRepositoryFacade = (*PgxInvoiceRepository)(nil)

const invoiceColumns = `invoice_id, invoice_no, customer_id, subtotal, vat_rate, discount, total, status, due_date, note, created_at, created_by, last_updated_at, last_updated_by`

// SaveInvoiceWithEntry inserts the invoice and its receivables posting within
// a single database transaction, so an invoice can never exist without the
// entry that put it on the books.
func (r *PgxInvoiceRepository) SaveInvoiceWithEntry(ctx context.Context, invoice domain.Invoice, entry domain.LedgerEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelInvoice(invoice)
	query := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err = tx.Exec(ctx, query,
		m.InvoiceID,
		m.InvoiceNo,
		m.CustomerID,
		m.Subtotal,
		m.VATRate,
		m.Discount,
		m.Total,
		m.Status,
		m.DueDate,
		m.Note,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert invoice "+m.InvoiceID, err)
	}

	if err := insertEntryTx(ctx, tx, mapping.ToModelLedgerEntry(entry)); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

func scanInvoice(row pgx.Row) (models.Invoice, error) {
	var m models.Invoice
	err := row.Scan(
		&m.InvoiceID,
		&m.InvoiceNo,
		&m.CustomerID,
		&m.Subtotal,
		&m.VATRate,
		&m.Discount,
		&m.Total,
		&m.Status,
		&m.DueDate,
		&m.Note,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// FindInvoiceByID retrieves an invoice by its ID.
func (r *PgxInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE invoice_id = $1;`

	m, err := scanInvoice(r.Pool.QueryRow(ctx, query, invoiceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find invoice by ID "+invoiceID, err)
	}

	invoice := mapping.ToDomainInvoice(m)
	return &invoice, nil
}

// FindInvoiceByNo retrieves an invoice by its business number.
func (r *PgxInvoiceRepository) FindInvoiceByNo(ctx context.Context, invoiceNo string) (*domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE invoice_no = $1;`

	m, err := scanInvoice(r.Pool.QueryRow(ctx, query, invoiceNo))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find invoice by number "+invoiceNo, err)
	}

	invoice := mapping.ToDomainInvoice(m)
	return &invoice, nil
}
