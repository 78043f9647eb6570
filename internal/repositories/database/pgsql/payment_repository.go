package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/aerodesk/flightops_backend/internal/apperrors"
	"github.com/aerodesk/flightops_backend/internal/core/domain"
	portsrepo "github.com/aerodesk/flightops_backend/internal/core/ports/repositories"
	"github.com/aerodesk/flightops_backend/internal/models"
	"github.com/aerodesk/flightops_backend/internal/utils"
	"github.com/aerodesk/flightops_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxPaymentRepository struct {
	BaseRepository
}

// newPgxPaymentRepository creates a new repository for payment data.
func newPgxPaymentRepository(pool *pgxpool.Pool) portsrepo.PaymentRepositoryFacade {
	return &PgxPaymentRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxPaymentRepository implements portsrepo.PaymentRepositoryFacade
var _ portsrepo.PaymentRepositoryFacade = (*PgxPaymentRepository)(nil)

const paymentColumns = `payment_id, payment_number, invoice_id, user_id, amount, method, reference, notes,
	reversal_of, payment_date,
	created_at, created_by, last_updated_at, last_updated_by`

func scanPayment(row rowScanner) (models.Payment, error) {
	var m models.Payment
	err := row.Scan(
		&m.PaymentID,
		&m.PaymentNumber,
		&m.InvoiceID,
		&m.UserID,
		&m.Amount,
		&m.Method,
		&m.Reference,
		&m.Notes,
		&m.ReversalOf,
		&m.PaymentDate,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func insertPaymentTx(ctx context.Context, tx pgx.Tx, m models.Payment) error {
	query := `
		INSERT INTO payments (` + paymentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := tx.Exec(ctx, query,
		m.PaymentID,
		m.PaymentNumber,
		m.InvoiceID,
		m.UserID,
		m.Amount,
		m.Method,
		m.Reference,
		m.Notes,
		m.ReversalOf,
		m.PaymentDate,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert payment "+m.PaymentID, err)
	}
	return nil
}

// applyPaymentToInvoice folds a payment row into the invoice's paid totals:
// balance due follows, and the status adjusts in both directions. A fully
// settled pending or overdue invoice becomes paid; a paid invoice whose
// settlement no longer covers the total (after a reversal) drops back to
// pending, or to overdue when the payment date is past due.
func applyPaymentToInvoice(inv models.Invoice, p models.Payment) models.Invoice {
	inv.TotalPaid = inv.TotalPaid.Add(p.Amount)
	inv.BalanceDue = inv.TotalAmount.Sub(inv.TotalPaid)

	status := domain.InvoiceStatus(inv.Status)
	switch {
	case !inv.BalanceDue.IsPositive() && (status == domain.InvoicePending || status == domain.InvoiceOverdue):
		inv.Status = string(domain.InvoicePaid)
	case inv.BalanceDue.IsPositive() && status == domain.InvoicePaid:
		if p.PaymentDate.After(inv.DueDate) {
			inv.Status = string(domain.InvoiceOverdue)
		} else {
			inv.Status = string(domain.InvoicePending)
		}
	}
	return inv
}

// settlePaymentAgainstInvoice applies an already-inserted payment row to its
// locked invoice and persists the result.
func settlePaymentAgainstInvoice(ctx context.Context, tx pgx.Tx, inv models.Invoice, p models.Payment) (models.Invoice, error) {
	inv = applyPaymentToInvoice(inv, p)

	cmdTag, err := tx.Exec(ctx, `
		UPDATE invoices
		SET total_paid = $2, balance_due = $3, status = $4, last_updated_at = $5, last_updated_by = $6
		WHERE invoice_id = $1;`,
		inv.InvoiceID, inv.TotalPaid, inv.BalanceDue, inv.Status, p.LastUpdatedAt, p.LastUpdatedBy,
	)
	if err != nil {
		return models.Invoice{}, apperrors.NewAppError(500, "failed to settle payment against invoice "+inv.InvoiceID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return models.Invoice{}, apperrors.NewNotFoundError("invoice " + inv.InvoiceID + " not found for settlement")
	}

	inv.LastUpdatedAt = p.LastUpdatedAt
	inv.LastUpdatedBy = p.LastUpdatedBy
	return inv, nil
}

// CreatePayment inserts a payment in one transaction: the payment number is
// allocated under the sequence lock, the referenced invoice (if any) is locked
// and settled, and the member's account balance drops by the amount received.
func (r *PgxPaymentRepository) CreatePayment(ctx context.Context, payment domain.Payment, strict bool) (*domain.Payment, *domain.Invoice, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer r.Rollback(ctx, tx)

	var lockedInvoice *models.Invoice
	if payment.InvoiceID != nil {
		inv, err := findInvoiceForUpdate(ctx, tx, *payment.InvoiceID)
		if err != nil {
			return nil, nil, err
		}
		status := domain.InvoiceStatus(inv.Status)
		if status == domain.InvoiceDraft || status == domain.InvoiceCancelled || status == domain.InvoiceRefunded {
			return nil, nil, fmt.Errorf("invoice %s is %s and cannot accept payments: %w", inv.InvoiceNumber, inv.Status, apperrors.ErrConflict)
		}
		if strict && payment.Amount.GreaterThan(inv.BalanceDue) {
			return nil, nil, fmt.Errorf("payment of %s exceeds balance due %s on invoice %s: %w",
				utils.FormatMoney(payment.Amount), utils.FormatMoney(inv.BalanceDue), inv.InvoiceNumber, apperrors.ErrValidation)
		}
		lockedInvoice = &inv
	}

	number, err := nextDocumentNumber(ctx, tx, seqPayment)
	if err != nil {
		return nil, nil, err
	}
	payment.PaymentNumber = number

	m := mapping.ToModelPayment(payment)
	if err := insertPaymentTx(ctx, tx, m); err != nil {
		return nil, nil, err
	}

	var updatedInvoice *domain.Invoice
	if lockedInvoice != nil {
		settled, err := settlePaymentAgainstInvoice(ctx, tx, *lockedInvoice, m)
		if err != nil {
			return nil, nil, err
		}
		d := mapping.ToDomainInvoice(settled)
		updatedInvoice = &d
	}

	if err := adjustUserBalance(ctx, tx, m.UserID, m.Amount.Neg(), m.CreatedBy, m.CreatedAt); err != nil {
		return nil, nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, nil, err
	}

	d := mapping.ToDomainPayment(m)
	return &d, updatedInvoice, nil
}

// ReversePayment inserts the compensating payment and the optional corrective
// payment in one transaction. The original row is never mutated; a second
// reversal of the same payment is rejected.
func (r *PgxPaymentRepository) ReversePayment(ctx context.Context, reversal domain.Payment, corrective *domain.Payment) (*domain.Invoice, error) {
	if reversal.ReversalOf == nil {
		return nil, fmt.Errorf("reversal must reference the original payment: %w", apperrors.ErrValidation)
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	// Lock the original row so concurrent reversals of the same payment
	// serialize here; a standalone credit has no invoice row to lock on.
	var originalID string
	err = tx.QueryRow(ctx, `SELECT payment_id FROM payments WHERE payment_id = $1 FOR UPDATE;`, *reversal.ReversalOf).Scan(&originalID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to lock payment "+*reversal.ReversalOf, err)
	}

	// Reject double reversal. The partial unique index on reversal_of backs
	// this check at the schema level.
	var existing string
	err = tx.QueryRow(ctx, `SELECT payment_id FROM payments WHERE reversal_of = $1;`, *reversal.ReversalOf).Scan(&existing)
	if err == nil {
		return nil, fmt.Errorf("payment %s is already reversed: %w", *reversal.ReversalOf, apperrors.ErrConflict)
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewAppError(500, "failed to check for existing reversal of payment "+*reversal.ReversalOf, err)
	}

	var lockedInvoice *models.Invoice
	if reversal.InvoiceID != nil {
		inv, err := findInvoiceForUpdate(ctx, tx, *reversal.InvoiceID)
		if err != nil {
			return nil, err
		}
		lockedInvoice = &inv
	}

	number, err := nextDocumentNumber(ctx, tx, seqPayment)
	if err != nil {
		return nil, err
	}
	reversal.PaymentNumber = number

	mRev := mapping.ToModelPayment(reversal)
	if err := insertPaymentTx(ctx, tx, mRev); err != nil {
		return nil, err
	}
	if err := adjustUserBalance(ctx, tx, mRev.UserID, mRev.Amount.Neg(), mRev.CreatedBy, mRev.CreatedAt); err != nil {
		return nil, err
	}

	if lockedInvoice != nil {
		settled, err := settlePaymentAgainstInvoice(ctx, tx, *lockedInvoice, mRev)
		if err != nil {
			return nil, err
		}
		lockedInvoice = &settled
	}

	if corrective != nil {
		number, err := nextDocumentNumber(ctx, tx, seqPayment)
		if err != nil {
			return nil, err
		}
		corrective.PaymentNumber = number

		mCor := mapping.ToModelPayment(*corrective)
		if err := insertPaymentTx(ctx, tx, mCor); err != nil {
			return nil, err
		}
		if err := adjustUserBalance(ctx, tx, mCor.UserID, mCor.Amount.Neg(), mCor.CreatedBy, mCor.CreatedAt); err != nil {
			return nil, err
		}

		if lockedInvoice != nil && corrective.InvoiceID != nil && *corrective.InvoiceID == lockedInvoice.InvoiceID {
			settled, err := settlePaymentAgainstInvoice(ctx, tx, *lockedInvoice, mCor)
			if err != nil {
				return nil, err
			}
			lockedInvoice = &settled
		}
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	if lockedInvoice == nil {
		return nil, nil
	}
	d := mapping.ToDomainInvoice(*lockedInvoice)
	return &d, nil
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
	d := mapping.ToDomainPayment(m)
	return &d, nil
}

// ListPaymentsByUser retrieves every payment of a member, reversals included,
// ordered by payment date.
func (r *PgxPaymentRepository) ListPaymentsByUser(ctx context.Context, userID string) ([]domain.Payment, error) {
	return r.listPayments(ctx, `SELECT `+paymentColumns+` FROM payments WHERE user_id = $1 ORDER BY payment_date, created_at;`, userID)
}

// ListPaymentsByInvoice retrieves the payments applied to an invoice.
func (r *PgxPaymentRepository) ListPaymentsByInvoice(ctx context.Context, invoiceID string) ([]domain.Payment, error) {
	return r.listPayments(ctx, `SELECT `+paymentColumns+` FROM payments WHERE invoice_id = $1 ORDER BY payment_date, created_at;`, invoiceID)
}

func (r *PgxPaymentRepository) listPayments(ctx context.Context, query string, arg string) ([]domain.Payment, error) {
	rows, err := r.Pool.Query(ctx, query, arg)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query payments", err)
	}
	defer rows.Close()

	payments := []models.Payment{}
	for rows.Next() {
		m, err := scanPayment(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan payment row", err)
		}
		payments = append(payments, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating payment rows", err)
	}

	return mapping.ToDomainPaymentSlice(payments), nil
}
