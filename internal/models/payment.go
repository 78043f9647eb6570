package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment is the payments table row. Reversals are rows with a negated amount
// and reversal_of pointing at the original.
type Payment struct {
	PaymentID     string          `json:"paymentID" db:"payment_id"`
	PaymentNumber string          `json:"paymentNumber" db:"payment_number"`
	InvoiceID     *string         `json:"invoiceID" db:"invoice_id"`
	UserID        string          `json:"userID" db:"user_id"`
	Amount        decimal.Decimal `json:"amount" db:"amount"`
	Method        string          `json:"method" db:"method"`
	Reference     string          `json:"reference" db:"reference"`
	Notes         string          `json:"notes" db:"notes"`
	ReversalOf    *string         `json:"reversalOf" db:"reversal_of"`
	PaymentDate   time.Time       `json:"paymentDate" db:"payment_date"`
	AuditFields
}

// CreditNote is the credit_notes table row.
type CreditNote struct {
	CreditNoteID     string          `json:"creditNoteID" db:"credit_note_id"`
	CreditNoteNumber string          `json:"creditNoteNumber" db:"credit_note_number"`
	InvoiceID        string          `json:"invoiceID" db:"invoice_id"`
	UserID           string          `json:"userID" db:"user_id"`
	Status           string          `json:"status" db:"status"`
	Reason           string          `json:"reason" db:"reason"`
	Subtotal         decimal.Decimal `json:"subtotal" db:"subtotal"`
	TaxTotal         decimal.Decimal `json:"taxTotal" db:"tax_total"`
	TotalAmount      decimal.Decimal `json:"totalAmount" db:"total_amount"`
	IssueDate        time.Time       `json:"issueDate" db:"issue_date"`
	AppliedAt        *time.Time      `json:"appliedAt" db:"applied_at"`
	AuditFields
}

// CreditNoteItem is the credit_note_items table row.
type CreditNoteItem struct {
	ItemID        string          `json:"itemID" db:"item_id"`
	CreditNoteID  string          `json:"creditNoteID" db:"credit_note_id"`
	Description   string          `json:"description" db:"description"`
	Quantity      decimal.Decimal `json:"quantity" db:"quantity"`
	UnitPrice     decimal.Decimal `json:"unitPrice" db:"unit_price"`
	TaxRate       decimal.Decimal `json:"taxRate" db:"tax_rate"`
	Amount        decimal.Decimal `json:"amount" db:"amount"`
	TaxAmount     decimal.Decimal `json:"taxAmount" db:"tax_amount"`
	LineTotal     decimal.Decimal `json:"lineTotal" db:"line_total"`
	RateInclusive decimal.Decimal `json:"rateInclusive" db:"rate_inclusive"`
	AuditFields
}
