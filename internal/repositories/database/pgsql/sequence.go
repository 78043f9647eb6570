package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/aerodesk/flightops_backend/internal/apperrors"
	"github.com/jackc/pgx/v5"
)

// Document number kinds tracked in the document_sequences table.
const (
	seqInvoice    = "invoice"
	seqPayment    = "payment"
	seqCreditNote = "credit_note"
)

var seqPrefixes = map[string]string{
	seqInvoice:    "INV",
	seqPayment:    "PAY",
	seqCreditNote: "CN",
}

// nextDocumentNumber allocates the next number for the given document kind
// inside the caller's transaction. The sequence row is locked FOR UPDATE so
// concurrent allocations serialize and numbers stay gapless within the tx's
// success path.
func nextDocumentNumber(ctx context.Context, tx pgx.Tx, kind string) (string, error) {
	var last int64
	err := tx.QueryRow(ctx, `SELECT last_value FROM document_sequences WHERE kind = $1 FOR UPDATE;`, kind).Scan(&last)
	if errors.Is(err, pgx.ErrNoRows) {
		// First allocation for this kind.
		last = 0
		if _, err := tx.Exec(ctx, `INSERT INTO document_sequences (kind, last_value) VALUES ($1, 0);`, kind); err != nil {
			return "", apperrors.NewAppError(500, "failed to seed document sequence "+kind, err)
		}
	} else if err != nil {
		return "", apperrors.NewAppError(500, "failed to lock document sequence "+kind, err)
	}

	next := last + 1
	if _, err := tx.Exec(ctx, `UPDATE document_sequences SET last_value = $2 WHERE kind = $1;`, kind, next); err != nil {
		return "", apperrors.NewAppError(500, "failed to advance document sequence "+kind, err)
	}

	return fmt.Sprintf("%s-%06d", seqPrefixes[kind], next), nil
}
