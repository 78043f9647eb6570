package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aerodesk/flightops_backend/internal/apperrors"
	"github.com/aerodesk/flightops_backend/internal/core/domain"
	portsrepo "github.com/aerodesk/flightops_backend/internal/core/ports/repositories"
	"github.com/aerodesk/flightops_backend/internal/models"
	"github.com/aerodesk/flightops_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxInvoiceRepository struct {
	BaseRepository
}

// newPgxInvoiceRepository creates a new repository for invoice and invoice item data.
func newPgxInvoiceRepository(pool *pgxpool.Pool) portsrepo.InvoiceRepositoryFacade {
	return &PgxInvoiceRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxInvoiceRepository implements portsrepo.InvoiceRepositoryFacade
var _ portsrepo.InvoiceRepositoryFacade = (*PgxInvoiceRepository)(nil)

const invoiceColumns = `invoice_id, invoice_number, user_id, booking_id, status, reference, notes,
	subtotal, tax_total, total_amount, total_paid, balance_due, tax_rate,
	issue_date, due_date, deleted_at,
	created_at, created_by, last_updated_at, last_updated_by`

const invoiceItemColumns = `item_id, invoice_id, chargeable_id, description, quantity, unit_price,
	tax_rate, tax_rate_source, amount, tax_amount, line_total, rate_inclusive,
	created_at, created_by, last_updated_at, last_updated_by`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanInvoice(row rowScanner) (models.Invoice, error) {
	var m models.Invoice
	err := row.Scan(
		&m.InvoiceID,
		&m.InvoiceNumber,
		&m.UserID,
		&m.BookingID,
		&m.Status,
		&m.Reference,
		&m.Notes,
		&m.Subtotal,
		&m.TaxTotal,
		&m.TotalAmount,
		&m.TotalPaid,
		&m.BalanceDue,
		&m.TaxRate,
		&m.IssueDate,
		&m.DueDate,
		&m.DeletedAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func scanInvoiceItem(row rowScanner) (models.InvoiceItem, error) {
	var m models.InvoiceItem
	err := row.Scan(
		&m.ItemID,
		&m.InvoiceID,
		&m.ChargeableID,
		&m.Description,
		&m.Quantity,
		&m.UnitPrice,
		&m.TaxRate,
		&m.TaxRateSource,
		&m.Amount,
		&m.TaxAmount,
		&m.LineTotal,
		&m.RateInclusive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// findInvoiceForUpdate loads and row-locks an invoice inside an open
// transaction. Concurrent item writes against the same invoice serialize here.
func findInvoiceForUpdate(ctx context.Context, tx pgx.Tx, invoiceID string) (models.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE invoice_id = $1 AND deleted_at IS NULL FOR UPDATE;`
	m, err := scanInvoice(tx.QueryRow(ctx, query, invoiceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Invoice{}, apperrors.ErrNotFound
		}
		return models.Invoice{}, apperrors.NewAppError(500, "failed to lock invoice "+invoiceID, err)
	}
	return m, nil
}

// recomputeInvoiceAggregates rewrites the invoice's monetary aggregates from
// the current item set, inside the caller's transaction. Aggregates are plain
// sums of already-rounded line values; no re-rounding happens here.
func recomputeInvoiceAggregates(ctx context.Context, tx pgx.Tx, invoiceID string, actorUserID string, at time.Time) (models.Invoice, error) {
	query := `
		UPDATE invoices i
		SET subtotal = s.subtotal,
		    tax_total = s.tax_total,
		    total_amount = s.total_amount,
		    balance_due = s.total_amount - i.total_paid,
		    last_updated_at = $2,
		    last_updated_by = $3
		FROM (
			SELECT COALESCE(SUM(amount), 0) AS subtotal,
			       COALESCE(SUM(tax_amount), 0) AS tax_total,
			       COALESCE(SUM(line_total), 0) AS total_amount
			FROM invoice_items
			WHERE invoice_id = $1
		) s
		WHERE i.invoice_id = $1
		RETURNING ` + invoiceColumnsQualified("i") + `;`

	m, err := scanInvoice(tx.QueryRow(ctx, query, invoiceID, at, actorUserID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Invoice{}, apperrors.ErrNotFound
		}
		return models.Invoice{}, apperrors.NewAppError(500, "failed to recompute invoice aggregates for "+invoiceID, err)
	}
	return m, nil
}

func invoiceColumnsQualified(alias string) string {
	return alias + `.invoice_id, ` + alias + `.invoice_number, ` + alias + `.user_id, ` + alias + `.booking_id, ` +
		alias + `.status, ` + alias + `.reference, ` + alias + `.notes, ` +
		alias + `.subtotal, ` + alias + `.tax_total, ` + alias + `.total_amount, ` + alias + `.total_paid, ` +
		alias + `.balance_due, ` + alias + `.tax_rate, ` + alias + `.issue_date, ` + alias + `.due_date, ` +
		alias + `.deleted_at, ` + alias + `.created_at, ` + alias + `.created_by, ` +
		alias + `.last_updated_at, ` + alias + `.last_updated_by`
}

// adjustUserBalance shifts a member's stored account balance inside the
// caller's transaction. Positive delta means the member owes more.
func adjustUserBalance(ctx context.Context, tx pgx.Tx, userID string, delta decimal.Decimal, actorUserID string, at time.Time) error {
	if delta.IsZero() {
		return nil
	}
	cmdTag, err := tx.Exec(ctx, `
		UPDATE users
		SET account_balance = account_balance + $2,
		    last_updated_at = $3,
		    last_updated_by = $4
		WHERE user_id = $1;`,
		userID, delta, at, actorUserID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to adjust account balance for user "+userID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("user " + userID + " not found for balance adjustment")
	}
	return nil
}

// invoiceCountsTowardBalance reports whether the invoice's total currently
// contributes to the member's stored account balance.
func invoiceCountsTowardBalance(status string) bool {
	switch domain.InvoiceStatus(status) {
	case domain.InvoicePending, domain.InvoiceOverdue, domain.InvoicePaid:
		return true
	}
	return false
}

func insertInvoiceItemTx(ctx context.Context, tx pgx.Tx, m models.InvoiceItem) error {
	query := `
		INSERT INTO invoice_items (` + invoiceItemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err := tx.Exec(ctx, query,
		m.ItemID,
		m.InvoiceID,
		m.ChargeableID,
		m.Description,
		m.Quantity,
		m.UnitPrice,
		m.TaxRate,
		m.TaxRateSource,
		m.Amount,
		m.TaxAmount,
		m.LineTotal,
		m.RateInclusive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert invoice item "+m.ItemID, err)
	}
	return nil
}

// FindInvoiceByID retrieves an invoice header by its ID, excluding soft-deleted rows.
func (r *PgxInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE invoice_id = $1 AND deleted_at IS NULL;`
	m, err := scanInvoice(r.Pool.QueryRow(ctx, query, invoiceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find invoice by ID "+invoiceID, err)
	}
	d := mapping.ToDomainInvoice(m)
	return &d, nil
}

// FindInvoiceItems retrieves all items of an invoice, ordered by creation time.
func (r *PgxInvoiceRepository) FindInvoiceItems(ctx context.Context, invoiceID string) ([]domain.InvoiceItem, error) {
	query := `SELECT ` + invoiceItemColumns + ` FROM invoice_items WHERE invoice_id = $1 ORDER BY created_at, item_id;`
	rows, err := r.Pool.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query items for invoice "+invoiceID, err)
	}
	defer rows.Close()

	items := []models.InvoiceItem{}
	for rows.Next() {
		m, err := scanInvoiceItem(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan item row for invoice "+invoiceID, err)
		}
		items = append(items, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating item rows for invoice "+invoiceID, err)
	}

	return mapping.ToDomainInvoiceItemSlice(items), nil
}

// FindItemByID retrieves a single invoice item.
func (r *PgxInvoiceRepository) FindItemByID(ctx context.Context, itemID string) (*domain.InvoiceItem, error) {
	query := `SELECT ` + invoiceItemColumns + ` FROM invoice_items WHERE item_id = $1;`
	m, err := scanInvoiceItem(r.Pool.QueryRow(ctx, query, itemID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find invoice item by ID "+itemID, err)
	}
	d := mapping.ToDomainInvoiceItem(m)
	return &d, nil
}

// ListInvoicesByUser retrieves all non-deleted invoices of a member, ordered by issue date.
func (r *PgxInvoiceRepository) ListInvoicesByUser(ctx context.Context, userID string) ([]domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE user_id = $1 AND deleted_at IS NULL ORDER BY issue_date, created_at;`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query invoices for user "+userID, err)
	}
	defer rows.Close()

	invoices := []models.Invoice{}
	for rows.Next() {
		m, err := scanInvoice(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan invoice row for user "+userID, err)
		}
		invoices = append(invoices, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating invoice rows for user "+userID, err)
	}

	return mapping.ToDomainInvoiceSlice(invoices), nil
}

// CreateInvoice inserts an invoice header with its number assigned from the
// document sequence, plus any initial items, in one transaction.
func (r *PgxInvoiceRepository) CreateInvoice(ctx context.Context, invoice domain.Invoice, items []domain.InvoiceItem) (*domain.Invoice, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	number, err := nextDocumentNumber(ctx, tx, seqInvoice)
	if err != nil {
		return nil, err
	}
	invoice.InvoiceNumber = number

	m := mapping.ToModelInvoice(invoice)
	query := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20);
	`
	_, err = tx.Exec(ctx, query,
		m.InvoiceID,
		m.InvoiceNumber,
		m.UserID,
		m.BookingID,
		m.Status,
		m.Reference,
		m.Notes,
		m.Subtotal,
		m.TaxTotal,
		m.TotalAmount,
		m.TotalPaid,
		m.BalanceDue,
		m.TaxRate,
		m.IssueDate,
		m.DueDate,
		m.DeletedAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to insert invoice "+m.InvoiceID, err)
	}

	for _, item := range items {
		if err := insertInvoiceItemTx(ctx, tx, mapping.ToModelInvoiceItem(item)); err != nil {
			return nil, err
		}
	}

	updated := m
	if len(items) > 0 {
		updated, err = recomputeInvoiceAggregates(ctx, tx, m.InvoiceID, m.CreatedBy, m.CreatedAt)
		if err != nil {
			return nil, err
		}
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	d := mapping.ToDomainInvoice(updated)
	return &d, nil
}

// InsertItem adds an item to an invoice and recomputes the parent aggregates.
// When the invoice is issued, the member's account balance absorbs the total
// delta in the same transaction.
func (r *PgxInvoiceRepository) InsertItem(ctx context.Context, item domain.InvoiceItem) (*domain.Invoice, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	before, err := findInvoiceForUpdate(ctx, tx, item.InvoiceID)
	if err != nil {
		return nil, err
	}

	m := mapping.ToModelInvoiceItem(item)
	if err := insertInvoiceItemTx(ctx, tx, m); err != nil {
		return nil, err
	}

	after, err := recomputeInvoiceAggregates(ctx, tx, item.InvoiceID, m.CreatedBy, m.CreatedAt)
	if err != nil {
		return nil, err
	}

	if invoiceCountsTowardBalance(before.Status) {
		delta := after.TotalAmount.Sub(before.TotalAmount)
		if err := adjustUserBalance(ctx, tx, before.UserID, delta, m.CreatedBy, m.CreatedAt); err != nil {
			return nil, err
		}
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	d := mapping.ToDomainInvoice(after)
	return &d, nil
}

// UpdateItem rewrites an item and recomputes the parent aggregates.
func (r *PgxInvoiceRepository) UpdateItem(ctx context.Context, item domain.InvoiceItem) (*domain.Invoice, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	before, err := findInvoiceForUpdate(ctx, tx, item.InvoiceID)
	if err != nil {
		return nil, err
	}

	m := mapping.ToModelInvoiceItem(item)
	query := `
		UPDATE invoice_items
		SET chargeable_id = $2,
		    description = $3,
		    quantity = $4,
		    unit_price = $5,
		    tax_rate = $6,
		    tax_rate_source = $7,
		    amount = $8,
		    tax_amount = $9,
		    line_total = $10,
		    rate_inclusive = $11,
		    last_updated_at = $12,
		    last_updated_by = $13
		WHERE item_id = $1;
	`
	cmdTag, err := tx.Exec(ctx, query,
		m.ItemID,
		m.ChargeableID,
		m.Description,
		m.Quantity,
		m.UnitPrice,
		m.TaxRate,
		m.TaxRateSource,
		m.Amount,
		m.TaxAmount,
		m.LineTotal,
		m.RateInclusive,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to update invoice item "+m.ItemID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return nil, apperrors.NewNotFoundError("invoice item " + m.ItemID + " not found for update")
	}

	after, err := recomputeInvoiceAggregates(ctx, tx, item.InvoiceID, m.LastUpdatedBy, m.LastUpdatedAt)
	if err != nil {
		return nil, err
	}

	if invoiceCountsTowardBalance(before.Status) {
		delta := after.TotalAmount.Sub(before.TotalAmount)
		if err := adjustUserBalance(ctx, tx, before.UserID, delta, m.LastUpdatedBy, m.LastUpdatedAt); err != nil {
			return nil, err
		}
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	d := mapping.ToDomainInvoice(after)
	return &d, nil
}

// DeleteItem removes an item and recomputes the parent aggregates.
func (r *PgxInvoiceRepository) DeleteItem(ctx context.Context, itemID string, actorUserID string, at time.Time) (*domain.Invoice, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	// Resolve the parent before removal so it can be locked and resynchronized.
	var invoiceID string
	err = tx.QueryRow(ctx, `SELECT invoice_id FROM invoice_items WHERE item_id = $1;`, itemID).Scan(&invoiceID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to resolve parent invoice for item "+itemID, err)
	}

	before, err := findInvoiceForUpdate(ctx, tx, invoiceID)
	if err != nil {
		return nil, err
	}

	cmdTag, err := tx.Exec(ctx, `DELETE FROM invoice_items WHERE item_id = $1;`, itemID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to delete invoice item "+itemID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return nil, apperrors.NewNotFoundError("invoice item " + itemID + " not found for delete")
	}

	after, err := recomputeInvoiceAggregates(ctx, tx, invoiceID, actorUserID, at)
	if err != nil {
		return nil, err
	}

	if invoiceCountsTowardBalance(before.Status) {
		delta := after.TotalAmount.Sub(before.TotalAmount)
		if err := adjustUserBalance(ctx, tx, before.UserID, delta, actorUserID, at); err != nil {
			return nil, err
		}
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	d := mapping.ToDomainInvoice(after)
	return &d, nil
}

// UpdateInvoiceFields persists header field changes. Status and monetary
// aggregates are never written here.
func (r *PgxInvoiceRepository) UpdateInvoiceFields(ctx context.Context, invoice domain.Invoice) error {
	m := mapping.ToModelInvoice(invoice)
	query := `
		UPDATE invoices
		SET reference = $2,
		    issue_date = $3,
		    due_date = $4,
		    user_id = $5,
		    notes = $6,
		    last_updated_at = $7,
		    last_updated_by = $8
		WHERE invoice_id = $1 AND deleted_at IS NULL;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.InvoiceID,
		m.Reference,
		m.IssueDate,
		m.DueDate,
		m.UserID,
		m.Notes,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update invoice "+m.InvoiceID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("invoice " + m.InvoiceID + " not found for update")
	}
	return nil
}

// TransitionInvoiceStatus writes the new status with its balance side effects:
// issuing an invoice (draft to pending) adds its outstanding balance to the
// member's account, cancelling removes whatever is still outstanding.
func (r *PgxInvoiceRepository) TransitionInvoiceStatus(ctx context.Context, invoiceID string, next domain.InvoiceStatus, actorUserID string, at time.Time) (*domain.Invoice, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	before, err := findInvoiceForUpdate(ctx, tx, invoiceID)
	if err != nil {
		return nil, err
	}

	current := domain.InvoiceStatus(before.Status)
	if !current.CanTransition(next) {
		return nil, fmt.Errorf("invoice %s cannot move from %s to %s: %w", before.InvoiceNumber, current, next, apperrors.ErrConflict)
	}

	cmdTag, err := tx.Exec(ctx, `
		UPDATE invoices
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE invoice_id = $1;`,
		invoiceID, string(next), at, actorUserID,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to transition invoice "+invoiceID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return nil, apperrors.NewNotFoundError("invoice " + invoiceID + " not found for transition")
	}

	// Balance side effects apply when the invoice enters or leaves the set of
	// issued documents the member owes.
	switch {
	case current == domain.InvoiceDraft && next == domain.InvoicePending:
		if err := adjustUserBalance(ctx, tx, before.UserID, before.BalanceDue, actorUserID, at); err != nil {
			return nil, err
		}
	case next == domain.InvoiceCancelled && invoiceCountsTowardBalance(before.Status):
		if err := adjustUserBalance(ctx, tx, before.UserID, before.BalanceDue.Neg(), actorUserID, at); err != nil {
			return nil, err
		}
	}

	updated := before
	updated.Status = string(next)
	updated.LastUpdatedAt = at
	updated.LastUpdatedBy = actorUserID

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	d := mapping.ToDomainInvoice(updated)
	return &d, nil
}

// SoftDeleteDraftInvoice marks a draft invoice deleted and removes its
// now-orphaned items, reporting how many were removed. Non-draft invoices are
// rejected; cancellation is the path for issued documents.
func (r *PgxInvoiceRepository) SoftDeleteDraftInvoice(ctx context.Context, invoiceID string, actorUserID string, at time.Time) (int, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer r.Rollback(ctx, tx)

	before, err := findInvoiceForUpdate(ctx, tx, invoiceID)
	if err != nil {
		return 0, err
	}
	if domain.InvoiceStatus(before.Status) != domain.InvoiceDraft {
		return 0, fmt.Errorf("invoice %s is not a draft: %w", before.InvoiceNumber, apperrors.ErrConflict)
	}

	if _, err := tx.Exec(ctx, `
		UPDATE invoices
		SET deleted_at = $2, last_updated_at = $2, last_updated_by = $3
		WHERE invoice_id = $1;`,
		invoiceID, at, actorUserID,
	); err != nil {
		return 0, apperrors.NewAppError(500, "failed to soft delete invoice "+invoiceID, err)
	}

	cmdTag, err := tx.Exec(ctx, `DELETE FROM invoice_items WHERE invoice_id = $1;`, invoiceID)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to delete items of invoice "+invoiceID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return 0, err
	}

	return int(cmdTag.RowsAffected()), nil
}
