package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod is free-form but a few well-known values get constants.
type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "cash"
	PaymentCard     PaymentMethod = "card"
	PaymentTransfer PaymentMethod = "bank_transfer"
	PaymentCredit   PaymentMethod = "account_credit"
)

// Payment records money received against an invoice, or a standalone account
// credit when InvoiceID is nil. Payments are immutable once created;
// corrections are expressed as a reversal (a compensating payment with negated
// amount referencing the original via ReversalOf).
type Payment struct {
	PaymentID     string          `json:"paymentID"`
	PaymentNumber string          `json:"paymentNumber"` // human-readable, monotonic
	InvoiceID     *string         `json:"invoiceID,omitempty"`
	UserID        string          `json:"userID"`
	Amount        decimal.Decimal `json:"amount"`
	Method        PaymentMethod   `json:"method"`
	Reference     string          `json:"reference"`
	Notes         string          `json:"notes"`
	ReversalOf    *string         `json:"reversalOf,omitempty"`
	PaymentDate   time.Time       `json:"paymentDate"`
	AuditFields
}

// IsReversal reports whether this payment compensates an earlier one.
func (p Payment) IsReversal() bool {
	return p.ReversalOf != nil
}

// IsAccountCredit reports whether the payment stands alone on the member's
// account rather than settling a specific invoice.
func (p Payment) IsAccountCredit() bool {
	return p.InvoiceID == nil
}
