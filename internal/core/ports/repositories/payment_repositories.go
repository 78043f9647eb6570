package repositories

import (
	"context"

	"github.com/aerodesk/flightops_backend/internal/core/domain"
)

// PaymentReaderRepo defines read operations for payments.
type PaymentReaderRepo interface {
	FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error)

	// ListPaymentsByUser retrieves every payment of a member, reversals
	// included, ordered by payment date ascending.
	ListPaymentsByUser(ctx context.Context, userID string) ([]domain.Payment, error)

	ListPaymentsByInvoice(ctx context.Context, invoiceID string) ([]domain.Payment, error)
}

// PaymentWriterRepo defines the atomic payment write operations. Each call is
// one database transaction: the invoice row (when referenced) and the payment
// sequence row are locked for update, the invoice's paid totals and status and
// the member's account balance are adjusted together with the insert.
type PaymentWriterRepo interface {
	// CreatePayment inserts a payment, assigning the next monotonic payment
	// number. When strict is true and the payment references an invoice the
	// amount may not exceed the invoice's balance due. Returns the payment and
	// the updated invoice (nil for standalone account credits).
	CreatePayment(ctx context.Context, payment domain.Payment, strict bool) (*domain.Payment, *domain.Invoice, error)

	// ReversePayment inserts the compensating payment and the optional
	// corrective payment, recomputing invoice totals and status, in one
	// transaction. The original payment row is never mutated.
	ReversePayment(ctx context.Context, reversal domain.Payment, corrective *domain.Payment) (*domain.Invoice, error)
}

// PaymentRepositoryFacade combines all payment repository interfaces.
type PaymentRepositoryFacade interface {
	PaymentReaderRepo
	PaymentWriterRepo
}
