package repositories

import (
	"context"
	"time"

	"github.com/aerodesk/flightops_backend/internal/core/domain"
)

// CreditNoteRepositoryFacade persists credit notes and their atomic
// application against an invoice and the member's account balance.
type CreditNoteRepositoryFacade interface {
	// CreateCreditNote inserts the note and its items in one transaction,
	// assigning the note number from the sequence.
	CreateCreditNote(ctx context.Context, note domain.CreditNote, items []domain.CreditNoteItem) (*domain.CreditNote, error)

	// FindCreditNoteByID retrieves the note with its items.
	FindCreditNoteByID(ctx context.Context, creditNoteID string) (*domain.CreditNote, error)

	// ApplyCreditNote marks the note applied, reduces the referenced invoice's
	// effective balance and the member's account balance, all in one
	// transaction. A second application fails with ErrImmutable and adjusts
	// nothing.
	ApplyCreditNote(ctx context.Context, creditNoteID string, actorUserID string, at time.Time) (*domain.CreditNote, *domain.Invoice, error)

	// ListAppliedCreditNotesByUser retrieves the member's applied notes,
	// ordered by application date ascending.
	ListAppliedCreditNotesByUser(ctx context.Context, userID string) ([]domain.CreditNote, error)
}
