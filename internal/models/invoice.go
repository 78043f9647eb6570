package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice is the invoices table row.
type Invoice struct {
	InvoiceID     string          `json:"invoiceID" db:"invoice_id"`
	InvoiceNumber string          `json:"invoiceNumber" db:"invoice_number"`
	UserID        string          `json:"userID" db:"user_id"`
	BookingID     *string         `json:"bookingID" db:"booking_id"`
	Status        string          `json:"status" db:"status"`
	Reference     string          `json:"reference" db:"reference"`
	Notes         string          `json:"notes" db:"notes"`
	Subtotal      decimal.Decimal `json:"subtotal" db:"subtotal"`
	TaxTotal      decimal.Decimal `json:"taxTotal" db:"tax_total"`
	TotalAmount   decimal.Decimal `json:"totalAmount" db:"total_amount"`
	TotalPaid     decimal.Decimal `json:"totalPaid" db:"total_paid"`
	BalanceDue    decimal.Decimal `json:"balanceDue" db:"balance_due"`
	TaxRate       decimal.Decimal `json:"taxRate" db:"tax_rate"`
	IssueDate     time.Time       `json:"issueDate" db:"issue_date"`
	DueDate       time.Time       `json:"dueDate" db:"due_date"`
	DeletedAt     *time.Time      `json:"deletedAt,omitempty" db:"deleted_at"`
	AuditFields
}

// InvoiceItem is the invoice_items table row.
type InvoiceItem struct {
	ItemID        string          `json:"itemID" db:"item_id"`
	InvoiceID     string          `json:"invoiceID" db:"invoice_id"`
	ChargeableID  *string         `json:"chargeableID" db:"chargeable_id"`
	Description   string          `json:"description" db:"description"`
	Quantity      decimal.Decimal `json:"quantity" db:"quantity"`
	UnitPrice     decimal.Decimal `json:"unitPrice" db:"unit_price"`
	TaxRate       decimal.Decimal `json:"taxRate" db:"tax_rate"`
	TaxRateSource string          `json:"taxRateSource" db:"tax_rate_source"`
	Amount        decimal.Decimal `json:"amount" db:"amount"`
	TaxAmount     decimal.Decimal `json:"taxAmount" db:"tax_amount"`
	LineTotal     decimal.Decimal `json:"lineTotal" db:"line_total"`
	RateInclusive decimal.Decimal `json:"rateInclusive" db:"rate_inclusive"`
	AuditFields
}
