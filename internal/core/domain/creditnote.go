package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreditNoteStatus models the two-step credit note lifecycle.
type CreditNoteStatus string

const (
	CreditNoteDraft   CreditNoteStatus = "draft"
	CreditNoteApplied CreditNoteStatus = "applied"
)

// CreditNote is the correction document against an already-approved invoice.
// Its items and totals are computed with the same rounding contract as invoice
// items. Applying it reduces the referenced invoice's effective balance and
// the member's account balance atomically; it may only be applied once.
type CreditNote struct {
	CreditNoteID     string           `json:"creditNoteID"`
	CreditNoteNumber string           `json:"creditNoteNumber"`
	InvoiceID        string           `json:"invoiceID"`
	UserID           string           `json:"userID"`
	Status           CreditNoteStatus `json:"status"`
	Reason           string           `json:"reason"`
	Subtotal         decimal.Decimal  `json:"subtotal"`
	TaxTotal         decimal.Decimal  `json:"taxTotal"`
	TotalAmount      decimal.Decimal  `json:"totalAmount"`
	IssueDate        time.Time        `json:"issueDate"`
	AppliedAt        *time.Time       `json:"appliedAt,omitempty"`
	Items            []CreditNoteItem `json:"items,omitempty"`
	AuditFields
}

// CreditNoteItem mirrors InvoiceItem; derived fields follow the same
// independent-rounding contract.
type CreditNoteItem struct {
	ItemID        string          `json:"itemID"`
	CreditNoteID  string          `json:"creditNoteID"`
	Description   string          `json:"description"`
	Quantity      decimal.Decimal `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unitPrice"`
	TaxRate       decimal.Decimal `json:"taxRate"`
	Amount        decimal.Decimal `json:"amount"`
	TaxAmount     decimal.Decimal `json:"taxAmount"`
	LineTotal     decimal.Decimal `json:"lineTotal"`
	RateInclusive decimal.Decimal `json:"rateInclusive"`
	AuditFields
}
