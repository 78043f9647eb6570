package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/aerodesk/flightops_backend/internal/apperrors"
	"github.com/aerodesk/flightops_backend/internal/core/billing"
	"github.com/aerodesk/flightops_backend/internal/core/domain"
	portsrepo "github.com/aerodesk/flightops_backend/internal/core/ports/repositories"
	portssvc "github.com/aerodesk/flightops_backend/internal/core/ports/services"
	"github.com/aerodesk/flightops_backend/internal/dto"
	"github.com/aerodesk/flightops_backend/internal/middleware"
)

// paymentService records payments and credit corrections. Payments are never
// mutated after insert; every correction is a new compensating row.
type paymentService struct {
	paymentRepo    portsrepo.PaymentRepositoryFacade
	creditNoteRepo portsrepo.CreditNoteRepositoryFacade
	invoiceRepo    portsrepo.InvoiceRepositoryFacade
	userRepo       portsrepo.UserRepositoryFacade
	rateSvc        portssvc.RateResolverSvc
}

// NewPaymentService creates a new PaymentSvcFacade.
func NewPaymentService(
	paymentRepo portsrepo.PaymentRepositoryFacade,
	creditNoteRepo portsrepo.CreditNoteRepositoryFacade,
	invoiceRepo portsrepo.InvoiceRepositoryFacade,
	userRepo portsrepo.UserRepositoryFacade,
	rateSvc portssvc.RateResolverSvc,
) portssvc.PaymentSvcFacade {
	return &paymentService{
		paymentRepo:    paymentRepo,
		creditNoteRepo: creditNoteRepo,
		invoiceRepo:    invoiceRepo,
		userRepo:       userRepo,
		rateSvc:        rateSvc,
	}
}

var _ portssvc.PaymentSvcFacade = (*paymentService)(nil)

// RecordPayment records money received. A nil invoiceID is a standalone
// account credit; the balance-due bound only applies in strict mode against
// an invoice.
func (s *paymentService) RecordPayment(ctx context.Context, req dto.RecordPaymentRequest, actor domain.Actor) (*dto.RecordPaymentResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !actor.IsPrivileged() {
		return nil, apperrors.ErrForbidden
	}
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: payment amount must be positive", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	paymentDate := now
	if req.PaymentDate != nil {
		paymentDate = *req.PaymentDate
	}

	payment := domain.Payment{
		PaymentID:   uuid.NewString(),
		InvoiceID:   req.InvoiceID,
		UserID:      req.UserID,
		Amount:      req.Amount,
		Method:      req.Method,
		Reference:   req.Reference,
		Notes:       req.Notes,
		PaymentDate: paymentDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	created, invoice, err := s.paymentRepo.CreatePayment(ctx, payment, req.EnforceBalance)
	if err != nil {
		logger.Error("Failed to record payment", slog.String("user_id", req.UserID), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Payment recorded",
		slog.String("payment_number", created.PaymentNumber),
		slog.String("user_id", created.UserID),
		slog.String("amount", created.Amount.StringFixed(2)))

	resp := &dto.RecordPaymentResponse{Payment: dto.ToPaymentResponse(created)}
	if invoice != nil {
		invResp := dto.ToInvoiceResponse(invoice)
		resp.Invoice = &invResp
	}
	return resp, nil
}

// ReversePayment compensates an earlier payment with a negated row, plus an
// optional corrective payment at the right amount, atomically. The original
// row is never touched.
func (s *paymentService) ReversePayment(ctx context.Context, paymentID string, req dto.ReversePaymentRequest, actor domain.Actor) (*dto.ReversePaymentResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !actor.IsPrivileged() {
		return nil, apperrors.ErrForbidden
	}

	original, err := s.paymentRepo.FindPaymentByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if original.IsReversal() {
		return nil, fmt.Errorf("%w: payment %s is itself a reversal", apperrors.ErrValidation, original.PaymentNumber)
	}
	if req.CorrectAmount != nil && !req.CorrectAmount.IsPositive() {
		return nil, fmt.Errorf("%w: corrective amount must be positive", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     actor.UserID,
		LastUpdatedAt: now,
		LastUpdatedBy: actor.UserID,
	}

	reversal := domain.Payment{
		PaymentID:   uuid.NewString(),
		InvoiceID:   original.InvoiceID,
		UserID:      original.UserID,
		Amount:      original.Amount.Neg(),
		Method:      original.Method,
		Reference:   original.Reference,
		Notes:       req.Notes,
		ReversalOf:  &original.PaymentID,
		PaymentDate: now,
		AuditFields: audit,
	}

	var corrective *domain.Payment
	if req.CorrectAmount != nil {
		corrective = &domain.Payment{
			PaymentID:   uuid.NewString(),
			InvoiceID:   original.InvoiceID,
			UserID:      original.UserID,
			Amount:      *req.CorrectAmount,
			Method:      original.Method,
			Reference:   original.Reference,
			Notes:       req.Notes,
			PaymentDate: now,
			AuditFields: audit,
		}
	}

	invoice, err := s.paymentRepo.ReversePayment(ctx, reversal, corrective)
	if err != nil {
		logger.Error("Failed to reverse payment", slog.String("payment_id", paymentID), slog.String("error", err.Error()))
		return nil, err
	}

	netAdjustment := reversal.Amount
	if corrective != nil {
		netAdjustment = netAdjustment.Add(corrective.Amount)
	}

	logger.Info("Payment reversed",
		slog.String("payment_id", paymentID),
		slog.Bool("corrected", corrective != nil),
		slog.String("net_adjustment", netAdjustment.StringFixed(2)))

	resp := &dto.ReversePaymentResponse{
		Reversal:      dto.ToPaymentResponse(&reversal),
		NetAdjustment: netAdjustment,
	}
	if corrective != nil {
		correctiveResp := dto.ToPaymentResponse(corrective)
		resp.Corrective = &correctiveResp
	}
	if invoice != nil {
		invResp := dto.ToInvoiceResponse(invoice)
		resp.Invoice = &invResp
	}
	return resp, nil
}

// CreateCreditNote drafts a correction document against a non-draft invoice.
// Items follow the same derivation and rounding contract as invoice items.
func (s *paymentService) CreateCreditNote(ctx context.Context, req dto.CreateCreditNoteRequest, actor domain.Actor) (*domain.CreditNote, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !actor.IsPrivileged() {
		return nil, apperrors.ErrForbidden
	}

	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, req.InvoiceID)
	if err != nil {
		return nil, err
	}
	switch invoice.Status {
	case domain.InvoiceDraft:
		return nil, fmt.Errorf("invoice %s is a draft, edit its items directly: %w", invoice.InvoiceNumber, apperrors.ErrConflict)
	case domain.InvoiceCancelled:
		return nil, fmt.Errorf("invoice %s is cancelled: %w", invoice.InvoiceNumber, apperrors.ErrConflict)
	}

	now := time.Now().UTC()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     actor.UserID,
		LastUpdatedAt: now,
		LastUpdatedBy: actor.UserID,
	}

	noteID := uuid.NewString()
	items := make([]domain.CreditNoteItem, 0, len(req.Items))
	lines := make([]billing.LineAmounts, 0, len(req.Items))
	for _, itemReq := range req.Items {
		if !itemReq.Quantity.IsPositive() {
			return nil, fmt.Errorf("%w: quantity must be positive", apperrors.ErrValidation)
		}
		taxRate := s.rateSvc.ResolveEffectiveTaxRate(ctx, domain.TaxContext{
			Explicit: itemReq.TaxRate,
			Invoice:  invoice,
		})
		amounts := billing.ComputeLineAmounts(itemReq.Quantity, itemReq.UnitPrice, taxRate.Rate)
		items = append(items, domain.CreditNoteItem{
			ItemID:        uuid.NewString(),
			CreditNoteID:  noteID,
			Description:   itemReq.Description,
			Quantity:      itemReq.Quantity,
			UnitPrice:     itemReq.UnitPrice,
			TaxRate:       taxRate.Rate,
			Amount:        amounts.Amount,
			TaxAmount:     amounts.TaxAmount,
			LineTotal:     amounts.LineTotal,
			RateInclusive: amounts.RateInclusive,
			AuditFields:   audit,
		})
		lines = append(lines, amounts)
	}

	totals := billing.SumLineAmounts(lines)
	note := domain.CreditNote{
		CreditNoteID: noteID,
		InvoiceID:    invoice.InvoiceID,
		UserID:       invoice.UserID,
		Status:       domain.CreditNoteDraft,
		Reason:       req.Reason,
		Subtotal:     totals.Subtotal,
		TaxTotal:     totals.TaxTotal,
		TotalAmount:  totals.TotalAmount,
		IssueDate:    now,
		AuditFields:  audit,
	}

	created, err := s.creditNoteRepo.CreateCreditNote(ctx, note, items)
	if err != nil {
		logger.Error("Failed to create credit note", slog.String("invoice_id", req.InvoiceID), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Credit note created",
		slog.String("credit_note_number", created.CreditNoteNumber),
		slog.String("invoice_number", invoice.InvoiceNumber),
		slog.String("total", created.TotalAmount.StringFixed(2)))
	return created, nil
}

// ApplyCreditNote applies a draft note once, reducing the invoice's effective
// balance and the member's account balance in one transaction.
func (s *paymentService) ApplyCreditNote(ctx context.Context, creditNoteID string, actor domain.Actor) (*dto.ApplyCreditNoteResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !actor.IsPrivileged() {
		return nil, apperrors.ErrForbidden
	}

	note, invoice, err := s.creditNoteRepo.ApplyCreditNote(ctx, creditNoteID, actor.UserID, time.Now().UTC())
	if err != nil {
		logger.Error("Failed to apply credit note", slog.String("credit_note_id", creditNoteID), slog.String("error", err.Error()))
		return nil, err
	}

	accountBalance := decimal.Zero
	if user, err := s.userRepo.FindUserByID(ctx, note.UserID); err == nil {
		accountBalance = user.AccountBalance
	} else {
		logger.Warn("Failed to read account balance after credit note apply",
			slog.String("user_id", note.UserID), slog.String("error", err.Error()))
	}

	logger.Info("Credit note applied",
		slog.String("credit_note_number", note.CreditNoteNumber),
		slog.String("invoice_id", note.InvoiceID),
		slog.String("invoice_status", string(invoice.Status)))

	return &dto.ApplyCreditNoteResponse{
		CreditNote:     dto.ToCreditNoteResponse(note),
		Invoice:        dto.ToInvoiceResponse(invoice),
		AccountBalance: accountBalance,
	}, nil
}
