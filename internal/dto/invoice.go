package dto

import (
	"time"

	"github.com/aerodesk/flightops_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateInvoiceRequest defines the data needed to create an invoice manually.
// Monetary aggregates are never accepted; they come from the item set.
type CreateInvoiceRequest struct {
	UserID    string                     `json:"userID" binding:"required"`
	BookingID *string                    `json:"bookingID"`
	Reference string                     `json:"reference"`
	Notes     string                     `json:"notes"`
	IssueDate time.Time                  `json:"issueDate" binding:"required"`
	DueDate   time.Time                  `json:"dueDate" binding:"required"`
	Items     []CreateInvoiceItemRequest `json:"items"`
}

// CreateInvoiceItemRequest defines the caller-supplied fields of a line item.
// Derived fields (amount, taxAmount, lineTotal, rateInclusive) are computed
// server-side and silently ignored if present in the payload.
type CreateInvoiceItemRequest struct {
	Description  string           `json:"description" binding:"required"`
	ChargeableID *string          `json:"chargeableID"`
	Quantity     decimal.Decimal  `json:"quantity" binding:"required"`
	UnitPrice    decimal.Decimal  `json:"unitPrice" binding:"required"`
	TaxRate      *decimal.Decimal `json:"taxRate"` // optional explicit rate
}

// UpdateInvoiceItemRequest defines the updatable fields of a line item.
type UpdateInvoiceItemRequest struct {
	Description *string          `json:"description"`
	Quantity    *decimal.Decimal `json:"quantity"`
	UnitPrice   *decimal.Decimal `json:"unitPrice"`
	TaxRate     *decimal.Decimal `json:"taxRate"`
}

// UpdateInvoiceRequest defines the header fields an update may touch. Which of
// them actually apply is decided by the per-status allowlist; status changes
// route through the lifecycle transition.
type UpdateInvoiceRequest struct {
	Reference *string               `json:"reference"`
	IssueDate *time.Time            `json:"issueDate"`
	DueDate   *time.Time            `json:"dueDate"`
	UserID    *string               `json:"userID"`
	Notes     *string               `json:"notes"`
	Status    *domain.InvoiceStatus `json:"status"`
}

// InvoiceItemResponse mirrors domain.InvoiceItem.
type InvoiceItemResponse struct {
	ItemID        string          `json:"itemID"`
	InvoiceID     string          `json:"invoiceID"`
	Description   string          `json:"description"`
	Quantity      decimal.Decimal `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unitPrice"`
	TaxRate       decimal.Decimal `json:"taxRate"`
	TaxRateSource string          `json:"taxRateSource"`
	Amount        decimal.Decimal `json:"amount"`
	TaxAmount     decimal.Decimal `json:"taxAmount"`
	LineTotal     decimal.Decimal `json:"lineTotal"`
	RateInclusive decimal.Decimal `json:"rateInclusive"`
}

// InvoiceResponse mirrors domain.Invoice.
type InvoiceResponse struct {
	InvoiceID     string                `json:"invoiceID"`
	InvoiceNumber string                `json:"invoiceNumber"`
	UserID        string                `json:"userID"`
	BookingID     *string               `json:"bookingID,omitempty"`
	Status        domain.InvoiceStatus  `json:"status"`
	Reference     string                `json:"reference"`
	Notes         string                `json:"notes"`
	Subtotal      decimal.Decimal       `json:"subtotal"`
	TaxTotal      decimal.Decimal       `json:"taxTotal"`
	TotalAmount   decimal.Decimal       `json:"totalAmount"`
	TotalPaid     decimal.Decimal       `json:"totalPaid"`
	BalanceDue    decimal.Decimal       `json:"balanceDue"`
	TaxRate       decimal.Decimal       `json:"taxRate"`
	IssueDate     time.Time             `json:"issueDate"`
	DueDate       time.Time             `json:"dueDate"`
	Items         []InvoiceItemResponse `json:"items,omitempty"`
	CreatedAt     time.Time             `json:"createdAt"`
	LastUpdatedAt time.Time             `json:"lastUpdatedAt"`
}

// DeleteDraftInvoiceResponse reports what the soft delete removed.
type DeleteDraftInvoiceResponse struct {
	InvoiceID    string `json:"invoiceID"`
	ItemsRemoved int    `json:"itemsRemoved"`
}

// ToInvoiceItemResponse converts a domain.InvoiceItem to its DTO.
func ToInvoiceItemResponse(item *domain.InvoiceItem) InvoiceItemResponse {
	return InvoiceItemResponse{
		ItemID:        item.ItemID,
		InvoiceID:     item.InvoiceID,
		Description:   item.Description,
		Quantity:      item.Quantity,
		UnitPrice:     item.UnitPrice,
		TaxRate:       item.TaxRate,
		TaxRateSource: string(item.TaxRateSource),
		Amount:        item.Amount,
		TaxAmount:     item.TaxAmount,
		LineTotal:     item.LineTotal,
		RateInclusive: item.RateInclusive,
	}
}

// ToInvoiceItemResponses converts a slice of domain items.
func ToInvoiceItemResponses(items []domain.InvoiceItem) []InvoiceItemResponse {
	responses := make([]InvoiceItemResponse, len(items))
	for i := range items {
		responses[i] = ToInvoiceItemResponse(&items[i])
	}
	return responses
}

// ToInvoiceResponse converts a domain.Invoice to its DTO.
func ToInvoiceResponse(inv *domain.Invoice) InvoiceResponse {
	return InvoiceResponse{
		InvoiceID:     inv.InvoiceID,
		InvoiceNumber: inv.InvoiceNumber,
		UserID:        inv.UserID,
		BookingID:     inv.BookingID,
		Status:        inv.Status,
		Reference:     inv.Reference,
		Notes:         inv.Notes,
		Subtotal:      inv.Subtotal,
		TaxTotal:      inv.TaxTotal,
		TotalAmount:   inv.TotalAmount,
		TotalPaid:     inv.TotalPaid,
		BalanceDue:    inv.BalanceDue,
		TaxRate:       inv.TaxRate,
		IssueDate:     inv.IssueDate,
		DueDate:       inv.DueDate,
		Items:         ToInvoiceItemResponses(inv.Items),
		CreatedAt:     inv.CreatedAt,
		LastUpdatedAt: inv.LastUpdatedAt,
	}
}
