package dto

import (
	"time"

	"github.com/aerodesk/flightops_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateCreditNoteItemRequest carries the caller-supplied fields of a credit
// note line; derived monetary fields are recomputed server-side.
type CreateCreditNoteItemRequest struct {
	Description string           `json:"description" binding:"required"`
	Quantity    decimal.Decimal  `json:"quantity" binding:"required"`
	UnitPrice   decimal.Decimal  `json:"unitPrice" binding:"required"`
	TaxRate     *decimal.Decimal `json:"taxRate"`
}

// CreateCreditNoteRequest creates a draft credit note against a non-draft
// invoice.
type CreateCreditNoteRequest struct {
	InvoiceID string                        `json:"invoiceID" binding:"required"`
	Reason    string                        `json:"reason"`
	Items     []CreateCreditNoteItemRequest `json:"items" binding:"required,min=1"`
}

// CreditNoteItemResponse mirrors domain.CreditNoteItem.
type CreditNoteItemResponse struct {
	ItemID        string          `json:"itemID"`
	Description   string          `json:"description"`
	Quantity      decimal.Decimal `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unitPrice"`
	TaxRate       decimal.Decimal `json:"taxRate"`
	Amount        decimal.Decimal `json:"amount"`
	TaxAmount     decimal.Decimal `json:"taxAmount"`
	LineTotal     decimal.Decimal `json:"lineTotal"`
	RateInclusive decimal.Decimal `json:"rateInclusive"`
}

// CreditNoteResponse mirrors domain.CreditNote.
type CreditNoteResponse struct {
	CreditNoteID     string                   `json:"creditNoteID"`
	CreditNoteNumber string                   `json:"creditNoteNumber"`
	InvoiceID        string                   `json:"invoiceID"`
	UserID           string                   `json:"userID"`
	Status           domain.CreditNoteStatus  `json:"status"`
	Reason           string                   `json:"reason"`
	Subtotal         decimal.Decimal          `json:"subtotal"`
	TaxTotal         decimal.Decimal          `json:"taxTotal"`
	TotalAmount      decimal.Decimal          `json:"totalAmount"`
	IssueDate        time.Time                `json:"issueDate"`
	AppliedAt        *time.Time               `json:"appliedAt,omitempty"`
	Items            []CreditNoteItemResponse `json:"items,omitempty"`
}

// ApplyCreditNoteResponse reports the applied note plus the recomputed
// invoice and account balance snapshot.
type ApplyCreditNoteResponse struct {
	CreditNote     CreditNoteResponse `json:"creditNote"`
	Invoice        InvoiceResponse    `json:"invoice"`
	AccountBalance decimal.Decimal    `json:"accountBalance"`
}

// ToCreditNoteResponse converts a domain.CreditNote to its DTO.
func ToCreditNoteResponse(n *domain.CreditNote) CreditNoteResponse {
	items := make([]CreditNoteItemResponse, len(n.Items))
	for i, item := range n.Items {
		items[i] = CreditNoteItemResponse{
			ItemID:        item.ItemID,
			Description:   item.Description,
			Quantity:      item.Quantity,
			UnitPrice:     item.UnitPrice,
			TaxRate:       item.TaxRate,
			Amount:        item.Amount,
			TaxAmount:     item.TaxAmount,
			LineTotal:     item.LineTotal,
			RateInclusive: item.RateInclusive,
		}
	}
	return CreditNoteResponse{
		CreditNoteID:     n.CreditNoteID,
		CreditNoteNumber: n.CreditNoteNumber,
		InvoiceID:        n.InvoiceID,
		UserID:           n.UserID,
		Status:           n.Status,
		Reason:           n.Reason,
		Subtotal:         n.Subtotal,
		TaxTotal:         n.TaxTotal,
		TotalAmount:      n.TotalAmount,
		IssueDate:        n.IssueDate,
		AppliedAt:        n.AppliedAt,
		Items:            items,
	}
}
