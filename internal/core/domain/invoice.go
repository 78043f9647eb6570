package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus is the closed set of invoice lifecycle states. All status
// comparisons and transitions consult the tables below; nothing else in the
// codebase is allowed to reason about raw status strings.
type InvoiceStatus string

const (
	InvoiceDraft     InvoiceStatus = "draft"
	InvoicePending   InvoiceStatus = "pending"
	InvoicePaid      InvoiceStatus = "paid"
	InvoiceOverdue   InvoiceStatus = "overdue"
	InvoiceCancelled InvoiceStatus = "cancelled"
	InvoiceRefunded  InvoiceStatus = "refunded"
)

// Valid reports whether the status is one of the known values.
func (s InvoiceStatus) Valid() bool {
	switch s {
	case InvoiceDraft, InvoicePending, InvoicePaid, InvoiceOverdue, InvoiceCancelled, InvoiceRefunded:
		return true
	}
	return false
}

// invoiceTransitions is the single source of truth for allowed status moves.
// paid and cancelled are terminal for structural edits; paid may still be
// downgraded by a payment reversal and moved to refunded by a credit note
// covering the full balance.
var invoiceTransitions = map[InvoiceStatus][]InvoiceStatus{
	InvoiceDraft:     {InvoicePending, InvoiceCancelled},
	InvoicePending:   {InvoicePaid, InvoiceOverdue, InvoiceCancelled},
	InvoiceOverdue:   {InvoicePaid, InvoicePending, InvoiceCancelled},
	InvoicePaid:      {InvoicePending, InvoiceOverdue, InvoiceRefunded},
	InvoiceCancelled: {},
	InvoiceRefunded:  {},
}

// CanTransition reports whether the status may move to next.
func (s InvoiceStatus) CanTransition(next InvoiceStatus) bool {
	for _, allowed := range invoiceTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Invoice field names used by the per-status mutability allowlists.
const (
	FieldReference = "reference"
	FieldIssueDate = "issueDate"
	FieldDueDate   = "dueDate"
	FieldUserID    = "userID"
	FieldNotes     = "notes"
	FieldStatus    = "status"
)

// fieldAllowlists defines which invoice fields may be written per status.
// paid is absent on purpose: a paid invoice accepts no writes from anyone.
var fieldAllowlists = map[InvoiceStatus]struct {
	privileged    map[string]bool
	nonPrivileged map[string]bool
}{
	InvoiceDraft: {
		privileged:    nil, // nil means every field
		nonPrivileged: fieldSet(FieldReference, FieldIssueDate, FieldDueDate, FieldUserID, FieldNotes, FieldStatus),
	},
	InvoicePending: {
		privileged:    nil,
		nonPrivileged: fieldSet(FieldStatus, FieldNotes),
	},
	InvoiceOverdue: {
		privileged:    nil,
		nonPrivileged: fieldSet(FieldStatus, FieldNotes),
	},
	InvoiceCancelled: {
		privileged:    fieldSet(FieldNotes, FieldStatus),
		nonPrivileged: fieldSet(FieldNotes, FieldStatus),
	},
}

func fieldSet(names ...string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set
}

// FieldMutable reports whether the named field may be written while the
// invoice is in status s by a caller with the given privilege. Paid invoices
// reject every field regardless of privilege.
func (s InvoiceStatus) FieldMutable(field string, privileged bool) bool {
	if s == InvoicePaid || s == InvoiceRefunded {
		return false
	}
	allow, ok := fieldAllowlists[s]
	if !ok {
		return false
	}
	set := allow.nonPrivileged
	if privileged {
		set = allow.privileged
	}
	if set == nil {
		return true
	}
	return set[field]
}

// Invoice is the billing aggregate. Monetary aggregates are always recomputed
// from the current item set, never written directly by callers.
//
// Invariants: TotalAmount = Subtotal + TaxTotal and BalanceDue = TotalAmount -
// TotalPaid. BalanceDue below zero signals overpayment, not corruption.
type Invoice struct {
	InvoiceID     string          `json:"invoiceID"`
	InvoiceNumber string          `json:"invoiceNumber"`
	UserID        string          `json:"userID"`
	BookingID     *string         `json:"bookingID,omitempty"`
	Status        InvoiceStatus   `json:"status"`
	Reference     string          `json:"reference"`
	Notes         string          `json:"notes"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	TaxTotal      decimal.Decimal `json:"taxTotal"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	TotalPaid     decimal.Decimal `json:"totalPaid"`
	BalanceDue    decimal.Decimal `json:"balanceDue"`
	TaxRate       decimal.Decimal `json:"taxRate"` // snapshotted at creation
	IssueDate     time.Time       `json:"issueDate"`
	DueDate       time.Time       `json:"dueDate"`
	DeletedAt     *time.Time      `json:"deletedAt,omitempty"`
	Items         []InvoiceItem   `json:"items,omitempty"`
	AuditFields
}
