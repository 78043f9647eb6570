package repositories

import (
	"context"
	"time"

	"github.com/aerodesk/flightops_backend/internal/core/domain"
)

// InvoiceReaderRepo defines read operations for invoices and their items.
type InvoiceReaderRepo interface {
	// FindInvoiceByID retrieves an invoice header (soft-deleted rows excluded).
	FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error)

	// FindInvoiceItems retrieves all current items of an invoice.
	FindInvoiceItems(ctx context.Context, invoiceID string) ([]domain.InvoiceItem, error)

	// FindItemByID retrieves a single invoice item.
	FindItemByID(ctx context.Context, itemID string) (*domain.InvoiceItem, error)

	// ListInvoicesByUser retrieves all non-deleted invoices of a member,
	// ordered by issue date ascending.
	ListInvoicesByUser(ctx context.Context, userID string) ([]domain.Invoice, error)
}

// InvoiceWriterRepo defines write operations. Every method that touches items
// recomputes the parent invoice's aggregates and resynchronizes the member's
// account balance inside the same database transaction.
type InvoiceWriterRepo interface {
	// CreateInvoice inserts an invoice header, assigning its invoice number
	// from the sequence, and inserts any provided items in the same
	// transaction.
	CreateInvoice(ctx context.Context, invoice domain.Invoice, items []domain.InvoiceItem) (*domain.Invoice, error)

	// InsertItem adds an item and recomputes the parent aggregates.
	// Returns the invoice after recomputation.
	InsertItem(ctx context.Context, item domain.InvoiceItem) (*domain.Invoice, error)

	// UpdateItem rewrites an item and recomputes the parent aggregates.
	UpdateItem(ctx context.Context, item domain.InvoiceItem) (*domain.Invoice, error)

	// DeleteItem removes an item and recomputes the parent aggregates.
	// The parent invoice ID is resolved before removal so the parent can be
	// resynchronized afterwards.
	DeleteItem(ctx context.Context, itemID string, actorUserID string, at time.Time) (*domain.Invoice, error)

	// UpdateInvoiceFields persists allowlist-checked header field changes
	// (reference, dates, notes, owner). Status is not written here.
	UpdateInvoiceFields(ctx context.Context, invoice domain.Invoice) error

	// TransitionInvoiceStatus writes the new status together with its side
	// effects (member balance adjustment on issue/cancel) atomically.
	TransitionInvoiceStatus(ctx context.Context, invoiceID string, next domain.InvoiceStatus, actorUserID string, at time.Time) (*domain.Invoice, error)

	// SoftDeleteDraftInvoice marks a draft invoice deleted and removes its
	// orphaned items, reporting how many were removed.
	SoftDeleteDraftInvoice(ctx context.Context, invoiceID string, actorUserID string, at time.Time) (int, error)
}

// InvoiceRepositoryFacade combines all invoice repository interfaces.
type InvoiceRepositoryFacade interface {
	InvoiceReaderRepo
	InvoiceWriterRepo
}
