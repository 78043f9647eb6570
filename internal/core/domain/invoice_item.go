package domain

import "github.com/shopspring/decimal"

// InvoiceItem is one billable row on an invoice. Amount, TaxAmount, LineTotal
// and RateInclusive are derived server-side from Quantity, UnitPrice and
// TaxRate; values supplied by callers for those fields are discarded.
type InvoiceItem struct {
	ItemID        string          `json:"itemID"`
	InvoiceID     string          `json:"invoiceID"`
	ChargeableID  *string         `json:"chargeableID,omitempty"`
	Description   string          `json:"description"`
	Quantity      decimal.Decimal `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unitPrice"` // tax-exclusive
	TaxRate       decimal.Decimal `json:"taxRate"`
	TaxRateSource TaxRateSource   `json:"taxRateSource"`
	Amount        decimal.Decimal `json:"amount"`
	TaxAmount     decimal.Decimal `json:"taxAmount"`
	LineTotal     decimal.Decimal `json:"lineTotal"`
	RateInclusive decimal.Decimal `json:"rateInclusive"`
	AuditFields
}
