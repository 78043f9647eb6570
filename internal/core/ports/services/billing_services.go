package services

import (
	"context"
	"time"

	"github.com/aerodesk/flightops_backend/internal/core/domain"
	"github.com/aerodesk/flightops_backend/internal/dto"
	"github.com/shopspring/decimal"
)

// RateResolverSvc looks up charge and tax rates for a billing context.
type RateResolverSvc interface {
	// ResolveFlightRates returns the aircraft rate and billing meter, the
	// instructor rate (zero when none configured) and the solo rate (falling
	// back to the aircraft rate when no solo flight-type rate exists).
	// A missing aircraft/flight-type rate yields ErrRateNotConfigured.
	ResolveFlightRates(ctx context.Context, aircraftID, flightTypeID string, instructorID, soloFlightTypeID *string, date time.Time) (*domain.ResolvedRates, error)

	// ResolveLandingFee returns the fee keyed by (chargeable, aircraft type).
	ResolveLandingFee(ctx context.Context, chargeableID, aircraftTypeID string) (decimal.Decimal, error)

	// ResolveEffectiveTaxRate applies the fallback chain (explicit rate,
	// chargeable exemption, invoice snapshot, organization default) and tags
	// the result with the tier that supplied it.
	ResolveEffectiveTaxRate(ctx context.Context, tc domain.TaxContext) domain.EffectiveTaxRate
}

// InvoiceSvcFacade owns the invoice item ledger and the invoice lifecycle.
type InvoiceSvcFacade interface {
	CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest, actor domain.Actor) (*domain.Invoice, error)
	GetInvoice(ctx context.Context, invoiceID string, actor domain.Actor) (*domain.Invoice, error)
	ListInvoices(ctx context.Context, userID string, actor domain.Actor) ([]domain.Invoice, error)

	// AddItem, UpdateItem and DeleteItem recompute the item's derived
	// monetary fields and the parent invoice's aggregates atomically.
	AddItem(ctx context.Context, invoiceID string, req dto.CreateInvoiceItemRequest, actor domain.Actor) (*domain.Invoice, error)
	UpdateItem(ctx context.Context, itemID string, req dto.UpdateInvoiceItemRequest, actor domain.Actor) (*domain.Invoice, error)
	DeleteItem(ctx context.Context, itemID string, actor domain.Actor) (*domain.Invoice, error)

	// UpdateInvoice applies header changes under the per-status field
	// allowlist; a status change routes through the lifecycle transition.
	UpdateInvoice(ctx context.Context, invoiceID string, req dto.UpdateInvoiceRequest, actor domain.Actor) (*domain.Invoice, error)

	// TransitionStatus moves the invoice through the closed state machine,
	// performing side effects atomically with the status write.
	TransitionStatus(ctx context.Context, invoiceID string, next domain.InvoiceStatus, actor domain.Actor) (*domain.Invoice, error)

	// DeleteDraftInvoice soft-deletes a draft and removes its orphaned items.
	DeleteDraftInvoice(ctx context.Context, invoiceID string, actor domain.Actor) (int, error)
}

// PaymentSvcFacade records payments and credit corrections.
type PaymentSvcFacade interface {
	RecordPayment(ctx context.Context, req dto.RecordPaymentRequest, actor domain.Actor) (*dto.RecordPaymentResponse, error)
	ReversePayment(ctx context.Context, paymentID string, req dto.ReversePaymentRequest, actor domain.Actor) (*dto.ReversePaymentResponse, error)
	CreateCreditNote(ctx context.Context, req dto.CreateCreditNoteRequest, actor domain.Actor) (*domain.CreditNote, error)
	ApplyCreditNote(ctx context.Context, creditNoteID string, actor domain.Actor) (*dto.ApplyCreditNoteResponse, error)
}

// StatementSvcFacade assembles member account statements.
type StatementSvcFacade interface {
	BuildStatement(ctx context.Context, userID string, actor domain.Actor) (*domain.AccountStatement, error)
}

// FlightChargeSvcFacade previews and finalizes flight charges.
type FlightChargeSvcFacade interface {
	// PreviewCharges calculates the flight log and provisional items without
	// performing any writes.
	PreviewCharges(ctx context.Context, bookingID string, req dto.FlightChargeRequest, actor domain.Actor) (*dto.ChargePreviewResponse, error)

	// CompleteFlight persists the calculated charges idempotently: retrying
	// with identical input updates the same items rather than duplicating them.
	CompleteFlight(ctx context.Context, bookingID string, req dto.FlightChargeRequest, actor domain.Actor) (*dto.CompleteFlightResponse, error)
}

// MembershipSvcFacade computes membership years and drives renewal billing.
type MembershipSvcFacade interface {
	GetActiveMembership(ctx context.Context, userID string, actor domain.Actor) (*dto.MembershipResponse, error)
	RenewMembership(ctx context.Context, req dto.RenewMembershipRequest, actor domain.Actor) (*dto.RenewMembershipResponse, error)
}
