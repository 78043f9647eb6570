package dto

import (
	"time"

	"github.com/aerodesk/flightops_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RecordPaymentRequest records money received. InvoiceID nil makes this a
// standalone account credit, which skips the balance-due bound.
type RecordPaymentRequest struct {
	InvoiceID      *string              `json:"invoiceID"`
	UserID         string               `json:"userID" binding:"required"`
	Amount         decimal.Decimal      `json:"amount" binding:"required"`
	Method         domain.PaymentMethod `json:"method" binding:"required"`
	Reference      string               `json:"reference"`
	Notes          string               `json:"notes"`
	PaymentDate    *time.Time           `json:"paymentDate"`
	EnforceBalance bool                 `json:"enforceBalance"` // strict: amount must not exceed balance due
}

// ReversePaymentRequest reverses a payment; CorrectAmount, when given, also
// records a corrective payment in the same operation.
type ReversePaymentRequest struct {
	CorrectAmount *decimal.Decimal `json:"correctAmount"`
	Notes         string           `json:"notes"`
}

// PaymentResponse mirrors domain.Payment.
type PaymentResponse struct {
	PaymentID     string               `json:"paymentID"`
	PaymentNumber string               `json:"paymentNumber"`
	InvoiceID     *string              `json:"invoiceID,omitempty"`
	UserID        string               `json:"userID"`
	Amount        decimal.Decimal      `json:"amount"`
	Method        domain.PaymentMethod `json:"method"`
	Reference     string               `json:"reference"`
	Notes         string               `json:"notes"`
	ReversalOf    *string              `json:"reversalOf,omitempty"`
	PaymentDate   time.Time            `json:"paymentDate"`
	CreatedAt     time.Time            `json:"createdAt"`
}

// RecordPaymentResponse returns the payment plus the recomputed invoice
// snapshot (absent for standalone credits).
type RecordPaymentResponse struct {
	Payment PaymentResponse  `json:"payment"`
	Invoice *InvoiceResponse `json:"invoice,omitempty"`
}

// ReversePaymentResponse reports the compensating entries and the net effect.
type ReversePaymentResponse struct {
	Reversal      PaymentResponse  `json:"reversal"`
	Corrective    *PaymentResponse `json:"corrective,omitempty"`
	NetAdjustment decimal.Decimal  `json:"netAdjustment"`
	Invoice       *InvoiceResponse `json:"invoice,omitempty"`
}

// ToPaymentResponse converts a domain.Payment to its DTO.
func ToPaymentResponse(p *domain.Payment) PaymentResponse {
	return PaymentResponse{
		PaymentID:     p.PaymentID,
		PaymentNumber: p.PaymentNumber,
		InvoiceID:     p.InvoiceID,
		UserID:        p.UserID,
		Amount:        p.Amount,
		Method:        p.Method,
		Reference:     p.Reference,
		Notes:         p.Notes,
		ReversalOf:    p.ReversalOf,
		PaymentDate:   p.PaymentDate,
		CreatedAt:     p.CreatedAt,
	}
}
