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

type PgxCreditNoteRepository struct {
	BaseRepository
}

// newPgxCreditNoteRepository creates a new repository for credit note data.
func newPgxCreditNoteRepository(pool *pgxpool.Pool) portsrepo.CreditNoteRepositoryFacade {
	return &PgxCreditNoteRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxCreditNoteRepository implements portsrepo.CreditNoteRepositoryFacade
var _ portsrepo.CreditNoteRepositoryFacade = (*PgxCreditNoteRepository)(nil)

const creditNoteColumns = `credit_note_id, credit_note_number, invoice_id, user_id, status, reason,
	subtotal, tax_total, total_amount, issue_date, applied_at,
	created_at, created_by, last_updated_at, last_updated_by`

const creditNoteItemColumns = `item_id, credit_note_id, description, quantity, unit_price, tax_rate,
	amount, tax_amount, line_total, rate_inclusive,
	created_at, created_by, last_updated_at, last_updated_by`

func scanCreditNote(row rowScanner) (models.CreditNote, error) {
	var m models.CreditNote
	err := row.Scan(
		&m.CreditNoteID,
		&m.CreditNoteNumber,
		&m.InvoiceID,
		&m.UserID,
		&m.Status,
		&m.Reason,
		&m.Subtotal,
		&m.TaxTotal,
		&m.TotalAmount,
		&m.IssueDate,
		&m.AppliedAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// CreateCreditNote inserts the note and its items in one transaction, with the
// note number assigned from the document sequence.
func (r *PgxCreditNoteRepository) CreateCreditNote(ctx context.Context, note domain.CreditNote, items []domain.CreditNoteItem) (*domain.CreditNote, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	number, err := nextDocumentNumber(ctx, tx, seqCreditNote)
	if err != nil {
		return nil, err
	}
	note.CreditNoteNumber = number

	m := mapping.ToModelCreditNote(note)
	query := `
		INSERT INTO credit_notes (` + creditNoteColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err = tx.Exec(ctx, query,
		m.CreditNoteID,
		m.CreditNoteNumber,
		m.InvoiceID,
		m.UserID,
		m.Status,
		m.Reason,
		m.Subtotal,
		m.TaxTotal,
		m.TotalAmount,
		m.IssueDate,
		m.AppliedAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to insert credit note "+m.CreditNoteID, err)
	}

	batch := &pgx.Batch{}
	itemQuery := `
		INSERT INTO credit_note_items (` + creditNoteItemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	for _, item := range items {
		mi := mapping.ToModelCreditNoteItem(item)
		batch.Queue(itemQuery,
			mi.ItemID,
			mi.CreditNoteID,
			mi.Description,
			mi.Quantity,
			mi.UnitPrice,
			mi.TaxRate,
			mi.Amount,
			mi.TaxAmount,
			mi.LineTotal,
			mi.RateInclusive,
			mi.CreatedAt,
			mi.CreatedBy,
			mi.LastUpdatedAt,
			mi.LastUpdatedBy,
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to insert items for credit note "+m.CreditNoteID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	d := mapping.ToDomainCreditNote(m)
	d.Items = items
	return &d, nil
}

// FindCreditNoteByID retrieves a credit note together with its items.
func (r *PgxCreditNoteRepository) FindCreditNoteByID(ctx context.Context, creditNoteID string) (*domain.CreditNote, error) {
	query := `SELECT ` + creditNoteColumns + ` FROM credit_notes WHERE credit_note_id = $1;`
	m, err := scanCreditNote(r.Pool.QueryRow(ctx, query, creditNoteID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find credit note by ID "+creditNoteID, err)
	}

	itemQuery := `SELECT ` + creditNoteItemColumns + ` FROM credit_note_items WHERE credit_note_id = $1 ORDER BY created_at, item_id;`
	rows, err := r.Pool.Query(ctx, itemQuery, creditNoteID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query items for credit note "+creditNoteID, err)
	}
	defer rows.Close()

	items := []models.CreditNoteItem{}
	for rows.Next() {
		var mi models.CreditNoteItem
		err := rows.Scan(
			&mi.ItemID,
			&mi.CreditNoteID,
			&mi.Description,
			&mi.Quantity,
			&mi.UnitPrice,
			&mi.TaxRate,
			&mi.Amount,
			&mi.TaxAmount,
			&mi.LineTotal,
			&mi.RateInclusive,
			&mi.CreatedAt,
			&mi.CreatedBy,
			&mi.LastUpdatedAt,
			&mi.LastUpdatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan item row for credit note "+creditNoteID, err)
		}
		items = append(items, mi)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating item rows for credit note "+creditNoteID, err)
	}

	d := mapping.ToDomainCreditNote(m)
	d.Items = mapping.ToDomainCreditNoteItemSlice(items)
	return &d, nil
}

// applyCreditToInvoice settles a credit note total like a payment. A credit
// against an already-paid invoice is a refund; otherwise a fully covered
// invoice becomes paid.
func applyCreditToInvoice(inv models.Invoice, amount decimal.Decimal) models.Invoice {
	inv.TotalPaid = inv.TotalPaid.Add(amount)
	inv.BalanceDue = inv.TotalAmount.Sub(inv.TotalPaid)
	switch domain.InvoiceStatus(inv.Status) {
	case domain.InvoicePaid:
		inv.Status = string(domain.InvoiceRefunded)
	case domain.InvoicePending, domain.InvoiceOverdue:
		if !inv.BalanceDue.IsPositive() {
			inv.Status = string(domain.InvoicePaid)
		}
	}
	return inv
}

// ApplyCreditNote atomically marks the note applied, credits its total against
// the invoice and the member's account balance. A note that was already
// applied fails with ErrImmutable and adjusts nothing.
func (r *PgxCreditNoteRepository) ApplyCreditNote(ctx context.Context, creditNoteID string, actorUserID string, at time.Time) (*domain.CreditNote, *domain.Invoice, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer r.Rollback(ctx, tx)

	query := `SELECT ` + creditNoteColumns + ` FROM credit_notes WHERE credit_note_id = $1 FOR UPDATE;`
	note, err := scanCreditNote(tx.QueryRow(ctx, query, creditNoteID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, apperrors.ErrNotFound
		}
		return nil, nil, apperrors.NewAppError(500, "failed to lock credit note "+creditNoteID, err)
	}
	if domain.CreditNoteStatus(note.Status) == domain.CreditNoteApplied {
		return nil, nil, fmt.Errorf("credit note %s is already applied: %w", note.CreditNoteNumber, apperrors.ErrImmutable)
	}

	inv, err := findInvoiceForUpdate(ctx, tx, note.InvoiceID)
	if err != nil {
		return nil, nil, err
	}

	note.Status = string(domain.CreditNoteApplied)
	note.AppliedAt = &at
	note.LastUpdatedAt = at
	note.LastUpdatedBy = actorUserID
	if _, err := tx.Exec(ctx, `
		UPDATE credit_notes
		SET status = $2, applied_at = $3, last_updated_at = $3, last_updated_by = $4
		WHERE credit_note_id = $1;`,
		creditNoteID, note.Status, at, actorUserID,
	); err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to mark credit note "+creditNoteID+" applied", err)
	}

	inv = applyCreditToInvoice(inv, note.TotalAmount)
	inv.LastUpdatedAt = at
	inv.LastUpdatedBy = actorUserID

	if _, err := tx.Exec(ctx, `
		UPDATE invoices
		SET total_paid = $2, balance_due = $3, status = $4, last_updated_at = $5, last_updated_by = $6
		WHERE invoice_id = $1;`,
		inv.InvoiceID, inv.TotalPaid, inv.BalanceDue, inv.Status, at, actorUserID,
	); err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to credit invoice "+inv.InvoiceID, err)
	}

	if err := adjustUserBalance(ctx, tx, note.UserID, note.TotalAmount.Neg(), actorUserID, at); err != nil {
		return nil, nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, nil, err
	}

	dNote := mapping.ToDomainCreditNote(note)
	dInv := mapping.ToDomainInvoice(inv)
	return &dNote, &dInv, nil
}

// ListAppliedCreditNotesByUser retrieves the member's applied notes, ordered
// by application date.
func (r *PgxCreditNoteRepository) ListAppliedCreditNotesByUser(ctx context.Context, userID string) ([]domain.CreditNote, error) {
	query := `SELECT ` + creditNoteColumns + ` FROM credit_notes WHERE user_id = $1 AND status = $2 ORDER BY applied_at, created_at;`
	rows, err := r.Pool.Query(ctx, query, userID, string(domain.CreditNoteApplied))
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query credit notes for user "+userID, err)
	}
	defer rows.Close()

	notes := []models.CreditNote{}
	for rows.Next() {
		m, err := scanCreditNote(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan credit note row for user "+userID, err)
		}
		notes = append(notes, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating credit note rows for user "+userID, err)
	}

	return mapping.ToDomainCreditNoteSlice(notes), nil
}
