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

// invoiceService owns the invoice item ledger and the invoice lifecycle.
type invoiceService struct {
	invoiceRepo portsrepo.InvoiceRepositoryFacade
	rateRepo    portsrepo.RateRepositoryFacade
	rateSvc     portssvc.RateResolverSvc
}

// NewInvoiceService creates a new InvoiceSvcFacade.
func NewInvoiceService(invoiceRepo portsrepo.InvoiceRepositoryFacade, rateRepo portsrepo.RateRepositoryFacade, rateSvc portssvc.RateResolverSvc) portssvc.InvoiceSvcFacade {
	return &invoiceService{
		invoiceRepo: invoiceRepo,
		rateRepo:    rateRepo,
		rateSvc:     rateSvc,
	}
}

var _ portssvc.InvoiceSvcFacade = (*invoiceService)(nil)

// ensureCanAccess allows the record owner and privileged actors through.
func ensureCanAccess(actor domain.Actor, ownerUserID string) error {
	if actor.IsPrivileged() || actor.UserID == ownerUserID {
		return nil
	}
	return apperrors.ErrForbidden
}

// ensureItemsMutable rejects item writes against closed invoices. Paid and
// refunded invoices point the caller at a credit note instead.
func ensureItemsMutable(inv *domain.Invoice) error {
	switch inv.Status {
	case domain.InvoicePaid, domain.InvoiceRefunded:
		return fmt.Errorf("invoice %s is %s and its items can no longer change, issue a credit note instead: %w",
			inv.InvoiceNumber, inv.Status, apperrors.ErrImmutable)
	case domain.InvoiceCancelled:
		return fmt.Errorf("invoice %s is cancelled: %w", inv.InvoiceNumber, apperrors.ErrConflict)
	}
	return nil
}

// buildItem derives the full invoice item from the caller-supplied fields.
// Any derived values present in the request payload were already dropped by
// the DTO; they are always recomputed here.
func (s *invoiceService) buildItem(ctx context.Context, inv *domain.Invoice, req dto.CreateInvoiceItemRequest, actorUserID string, now time.Time) (domain.InvoiceItem, error) {
	var chargeable *domain.Chargeable
	if req.ChargeableID != nil {
		found, err := s.rateRepo.FindChargeable(ctx, *req.ChargeableID)
		if err != nil {
			return domain.InvoiceItem{}, fmt.Errorf("chargeable lookup failed: %w", err)
		}
		chargeable = found
	}

	taxRate := s.rateSvc.ResolveEffectiveTaxRate(ctx, domain.TaxContext{
		Explicit:   req.TaxRate,
		Chargeable: chargeable,
		Invoice:    inv,
	})

	amounts := billing.ComputeLineAmounts(req.Quantity, req.UnitPrice, taxRate.Rate)

	return domain.InvoiceItem{
		ItemID:        uuid.NewString(),
		InvoiceID:     inv.InvoiceID,
		ChargeableID:  req.ChargeableID,
		Description:   req.Description,
		Quantity:      req.Quantity,
		UnitPrice:     req.UnitPrice,
		TaxRate:       taxRate.Rate,
		TaxRateSource: taxRate.Source,
		Amount:        amounts.Amount,
		TaxAmount:     amounts.TaxAmount,
		LineTotal:     amounts.LineTotal,
		RateInclusive: amounts.RateInclusive,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorUserID,
		},
	}, nil
}

// CreateInvoice creates a draft invoice, deriving every item's monetary
// fields server-side. Only privileged actors create invoices manually.
func (s *invoiceService) CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest, actor domain.Actor) (*domain.Invoice, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !actor.IsPrivileged() {
		return nil, apperrors.ErrForbidden
	}
	if req.DueDate.Before(req.IssueDate) {
		return nil, fmt.Errorf("%w: dueDate must not be before issueDate", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	snapshot := s.rateSvc.ResolveEffectiveTaxRate(ctx, domain.TaxContext{})

	invoice := domain.Invoice{
		InvoiceID:   uuid.NewString(),
		UserID:      req.UserID,
		BookingID:   req.BookingID,
		Status:      domain.InvoiceDraft,
		Reference:   req.Reference,
		Notes:       req.Notes,
		Subtotal:    decimal.Zero,
		TaxTotal:    decimal.Zero,
		TotalAmount: decimal.Zero,
		TotalPaid:   decimal.Zero,
		BalanceDue:  decimal.Zero,
		TaxRate:     snapshot.Rate,
		IssueDate:   req.IssueDate,
		DueDate:     req.DueDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	items := make([]domain.InvoiceItem, 0, len(req.Items))
	for _, itemReq := range req.Items {
		item, err := s.buildItem(ctx, &invoice, itemReq, actor.UserID, now)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	created, err := s.invoiceRepo.CreateInvoice(ctx, invoice, items)
	if err != nil {
		logger.Error("Failed to create invoice", slog.String("user_id", req.UserID), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Invoice created",
		slog.String("invoice_id", created.InvoiceID),
		slog.String("invoice_number", created.InvoiceNumber),
		slog.Int("items", len(items)))
	return created, nil
}

// GetInvoice retrieves an invoice with its items. Members see only their own.
func (s *invoiceService) GetInvoice(ctx context.Context, invoiceID string, actor domain.Actor) (*domain.Invoice, error) {
	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if err := ensureCanAccess(actor, invoice.UserID); err != nil {
		return nil, err
	}
	items, err := s.invoiceRepo.FindInvoiceItems(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	invoice.Items = items
	return invoice, nil
}

// ListInvoices lists a member's invoices ordered by issue date.
func (s *invoiceService) ListInvoices(ctx context.Context, userID string, actor domain.Actor) ([]domain.Invoice, error) {
	if err := ensureCanAccess(actor, userID); err != nil {
		return nil, err
	}
	return s.invoiceRepo.ListInvoicesByUser(ctx, userID)
}

// AddItem adds a line to an invoice and returns the recomputed invoice.
func (s *invoiceService) AddItem(ctx context.Context, invoiceID string, req dto.CreateInvoiceItemRequest, actor domain.Actor) (*domain.Invoice, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !actor.IsPrivileged() {
		return nil, apperrors.ErrForbidden
	}
	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if err := ensureItemsMutable(invoice); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	item, err := s.buildItem(ctx, invoice, req, actor.UserID, now)
	if err != nil {
		return nil, err
	}

	updated, err := s.invoiceRepo.InsertItem(ctx, item)
	if err != nil {
		logger.Error("Failed to add invoice item", slog.String("invoice_id", invoiceID), slog.String("error", err.Error()))
		return nil, err
	}
	return updated, nil
}

// UpdateItem rewrites an item's caller-supplied fields, re-derives its
// monetary fields and returns the recomputed invoice.
func (s *invoiceService) UpdateItem(ctx context.Context, itemID string, req dto.UpdateInvoiceItemRequest, actor domain.Actor) (*domain.Invoice, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !actor.IsPrivileged() {
		return nil, apperrors.ErrForbidden
	}
	item, err := s.invoiceRepo.FindItemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, item.InvoiceID)
	if err != nil {
		return nil, err
	}
	if err := ensureItemsMutable(invoice); err != nil {
		return nil, err
	}

	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.Quantity != nil {
		item.Quantity = *req.Quantity
	}
	if req.UnitPrice != nil {
		item.UnitPrice = *req.UnitPrice
	}
	if req.TaxRate != nil {
		taxRate := s.rateSvc.ResolveEffectiveTaxRate(ctx, domain.TaxContext{Explicit: req.TaxRate})
		item.TaxRate = taxRate.Rate
		item.TaxRateSource = taxRate.Source
	}

	amounts := billing.ComputeLineAmounts(item.Quantity, item.UnitPrice, item.TaxRate)
	item.Amount = amounts.Amount
	item.TaxAmount = amounts.TaxAmount
	item.LineTotal = amounts.LineTotal
	item.RateInclusive = amounts.RateInclusive
	item.LastUpdatedAt = time.Now().UTC()
	item.LastUpdatedBy = actor.UserID

	updated, err := s.invoiceRepo.UpdateItem(ctx, *item)
	if err != nil {
		logger.Error("Failed to update invoice item", slog.String("item_id", itemID), slog.String("error", err.Error()))
		return nil, err
	}
	return updated, nil
}

// DeleteItem removes an item and returns the recomputed invoice.
func (s *invoiceService) DeleteItem(ctx context.Context, itemID string, actor domain.Actor) (*domain.Invoice, error) {
	if !actor.IsPrivileged() {
		return nil, apperrors.ErrForbidden
	}
	item, err := s.invoiceRepo.FindItemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, item.InvoiceID)
	if err != nil {
		return nil, err
	}
	if err := ensureItemsMutable(invoice); err != nil {
		return nil, err
	}
	return s.invoiceRepo.DeleteItem(ctx, itemID, actor.UserID, time.Now().UTC())
}

// UpdateInvoice applies header changes under the per-status field allowlist.
// A status change in the same request routes through the lifecycle
// transition after the other fields are written.
func (s *invoiceService) UpdateInvoice(ctx context.Context, invoiceID string, req dto.UpdateInvoiceRequest, actor domain.Actor) (*domain.Invoice, error) {
	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if err := ensureCanAccess(actor, invoice.UserID); err != nil {
		return nil, err
	}

	if invoice.Status == domain.InvoicePaid || invoice.Status == domain.InvoiceRefunded {
		return nil, fmt.Errorf("invoice %s is %s and can no longer be modified, issue a credit note instead: %w",
			invoice.InvoiceNumber, invoice.Status, apperrors.ErrImmutable)
	}

	privileged := actor.IsPrivileged()
	checkField := func(set bool, field string) error {
		if set && !invoice.Status.FieldMutable(field, privileged) {
			return fmt.Errorf("field %s is not editable while invoice %s is %s: %w",
				field, invoice.InvoiceNumber, invoice.Status, apperrors.ErrForbidden)
		}
		return nil
	}
	for _, check := range []struct {
		set   bool
		field string
	}{
		{req.Reference != nil, domain.FieldReference},
		{req.IssueDate != nil, domain.FieldIssueDate},
		{req.DueDate != nil, domain.FieldDueDate},
		{req.UserID != nil, domain.FieldUserID},
		{req.Notes != nil, domain.FieldNotes},
		{req.Status != nil, domain.FieldStatus},
	} {
		if err := checkField(check.set, check.field); err != nil {
			return nil, err
		}
	}

	headerChanged := false
	if req.Reference != nil {
		invoice.Reference = *req.Reference
		headerChanged = true
	}
	if req.IssueDate != nil {
		invoice.IssueDate = *req.IssueDate
		headerChanged = true
	}
	if req.DueDate != nil {
		invoice.DueDate = *req.DueDate
		headerChanged = true
	}
	if req.UserID != nil {
		invoice.UserID = *req.UserID
		headerChanged = true
	}
	if req.Notes != nil {
		invoice.Notes = *req.Notes
		headerChanged = true
	}

	if headerChanged {
		invoice.LastUpdatedAt = time.Now().UTC()
		invoice.LastUpdatedBy = actor.UserID
		if err := s.invoiceRepo.UpdateInvoiceFields(ctx, *invoice); err != nil {
			return nil, err
		}
	}

	if req.Status != nil {
		return s.TransitionStatus(ctx, invoiceID, *req.Status, actor)
	}
	return s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
}

// TransitionStatus moves the invoice through the status machine. The balance
// side effects of issuing and cancelling happen inside the repository
// transaction, atomic with the status write.
func (s *invoiceService) TransitionStatus(ctx context.Context, invoiceID string, next domain.InvoiceStatus, actor domain.Actor) (*domain.Invoice, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !next.Valid() {
		return nil, fmt.Errorf("%w: unknown invoice status %q", apperrors.ErrValidation, next)
	}
	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if err := ensureCanAccess(actor, invoice.UserID); err != nil {
		return nil, err
	}
	if !invoice.Status.FieldMutable(domain.FieldStatus, actor.IsPrivileged()) {
		return nil, fmt.Errorf("invoice %s status is not editable while %s: %w",
			invoice.InvoiceNumber, invoice.Status, apperrors.ErrForbidden)
	}

	updated, err := s.invoiceRepo.TransitionInvoiceStatus(ctx, invoiceID, next, actor.UserID, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	logger.Info("Invoice status transitioned",
		slog.String("invoice_id", invoiceID),
		slog.String("from", string(invoice.Status)),
		slog.String("to", string(next)))
	return updated, nil
}

// DeleteDraftInvoice soft-deletes a draft and reports how many orphaned items
// were removed with it.
func (s *invoiceService) DeleteDraftInvoice(ctx context.Context, invoiceID string, actor domain.Actor) (int, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !actor.IsPrivileged() {
		return 0, apperrors.ErrForbidden
	}
	removed, err := s.invoiceRepo.SoftDeleteDraftInvoice(ctx, invoiceID, actor.UserID, time.Now().UTC())
	if err != nil {
		return 0, err
	}
	logger.Info("Draft invoice deleted",
		slog.String("invoice_id", invoiceID),
		slog.Int("items_removed", removed))
	return removed, nil
}
