package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/aerodesk/flightops_backend/internal/apperrors"
	"github.com/aerodesk/flightops_backend/internal/core/domain"
	portsrepo "github.com/aerodesk/flightops_backend/internal/core/ports/repositories"
	portssvc "github.com/aerodesk/flightops_backend/internal/core/ports/services"
	"github.com/aerodesk/flightops_backend/internal/dto"
	"github.com/aerodesk/flightops_backend/internal/middleware"
	"github.com/aerodesk/flightops_backend/internal/platform/config"
)

// membershipService computes membership years and drives renewal billing.
type membershipService struct {
	membershipRepo portsrepo.MembershipRepositoryFacade
	invoiceRepo    portsrepo.InvoiceRepositoryFacade
	invoiceSvc     portssvc.InvoiceSvcFacade
	cfg            *config.Config
}

// NewMembershipService creates a new MembershipSvcFacade.
func NewMembershipService(
	membershipRepo portsrepo.MembershipRepositoryFacade,
	invoiceRepo portsrepo.InvoiceRepositoryFacade,
	invoiceSvc portssvc.InvoiceSvcFacade,
	cfg *config.Config,
) portssvc.MembershipSvcFacade {
	return &membershipService{
		membershipRepo: membershipRepo,
		invoiceRepo:    invoiceRepo,
		invoiceSvc:     invoiceSvc,
		cfg:            cfg,
	}
}

var _ portssvc.MembershipSvcFacade = (*membershipService)(nil)

// computeExpiry derives the expiry date under the configured year policy. A
// caller-supplied override always wins.
func (s *membershipService) computeExpiry(startDate time.Time, override *time.Time) time.Time {
	if override != nil {
		return *override
	}
	if s.cfg.MembershipYearPolicy == domain.MembershipYearFixed {
		anniversary := time.Date(startDate.Year(), s.cfg.MembershipAnniversaryMonth, s.cfg.MembershipAnniversaryDay, 0, 0, 0, 0, time.UTC)
		if !anniversary.After(startDate) {
			anniversary = anniversary.AddDate(1, 0, 0)
		}
		return anniversary
	}
	return startDate.AddDate(1, 0, 0)
}

// invoiceUnpaid reports whether the membership's linked fee invoice is still
// outstanding. A missing invoice counts as settled rather than blocking the
// member.
func (s *membershipService) invoiceUnpaid(ctx context.Context, invoiceID *string) bool {
	if invoiceID == nil {
		return false
	}
	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, *invoiceID)
	if err != nil {
		return false
	}
	switch invoice.Status {
	case domain.InvoiceDraft, domain.InvoicePending, domain.InvoiceOverdue:
		return true
	}
	return false
}

// GetActiveMembership returns the member's active membership with its
// derived status.
func (s *membershipService) GetActiveMembership(ctx context.Context, userID string, actor domain.Actor) (*dto.MembershipResponse, error) {
	if err := ensureCanAccess(actor, userID); err != nil {
		return nil, err
	}
	membership, err := s.membershipRepo.FindActiveMembership(ctx, userID)
	if err != nil {
		return nil, err
	}
	status := membership.StatusAt(time.Now().UTC(), s.invoiceUnpaid(ctx, membership.InvoiceID))
	resp := dto.ToMembershipResponse(membership, status)
	return &resp, nil
}

// RenewMembership inserts the new membership year, deactivating the prior one
// in the same transaction. The fee invoice is best effort: a failure there is
// reported as a warning and never rolls the renewal back.
func (s *membershipService) RenewMembership(ctx context.Context, req dto.RenewMembershipRequest, actor domain.Actor) (*dto.RenewMembershipResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !actor.IsPrivileged() {
		return nil, apperrors.ErrForbidden
	}

	membershipType, err := s.membershipRepo.FindMembershipType(ctx, req.MembershipTypeID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	startDate := now
	if req.StartDate != nil {
		startDate = *req.StartDate
	}
	expiryDate := s.computeExpiry(startDate, req.ExpiryOverride)
	if !expiryDate.After(startDate) {
		return nil, fmt.Errorf("%w: expiry date must be after start date", apperrors.ErrValidation)
	}

	gracePeriodDays := membershipType.GracePeriodDays
	if gracePeriodDays <= 0 {
		gracePeriodDays = s.cfg.DefaultGracePeriodDays
	}

	var renewalOf *string
	prior, err := s.membershipRepo.FindActiveMembership(ctx, req.UserID)
	switch {
	case err == nil:
		renewalOf = &prior.MembershipID
	case errors.Is(err, apperrors.ErrNotFound):
		// First membership, nothing to supersede.
	default:
		return nil, err
	}

	membership := domain.Membership{
		MembershipID:     uuid.NewString(),
		UserID:           req.UserID,
		MembershipTypeID: req.MembershipTypeID,
		StartDate:        startDate,
		ExpiryDate:       expiryDate,
		GracePeriodDays:  gracePeriodDays,
		RenewalOf:        renewalOf,
		IsActive:         true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	if err := s.membershipRepo.SaveRenewal(ctx, membership); err != nil {
		logger.Error("Failed to save membership renewal", slog.String("user_id", req.UserID), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Membership renewed",
		slog.String("membership_id", membership.MembershipID),
		slog.String("user_id", req.UserID),
		slog.String("expiry_date", expiryDate.Format("2006-01-02")))

	resp := &dto.RenewMembershipResponse{}
	invoiceUnpaid := false

	if req.CreateInvoice && membershipType.Fee.IsPositive() {
		invoice, err := s.invoiceSvc.CreateInvoice(ctx, dto.CreateInvoiceRequest{
			UserID:    req.UserID,
			Reference: membership.MembershipID,
			IssueDate: now,
			DueDate:   now.AddDate(0, 0, s.cfg.DefaultDueDays),
			Items: []dto.CreateInvoiceItemRequest{{
				Description: membershipType.Name + " membership fee",
				Quantity:    decimal.NewFromInt(1),
				UnitPrice:   membershipType.Fee,
			}},
		}, actor)
		if err != nil {
			logger.Warn("Membership fee invoice failed, renewal kept",
				slog.String("membership_id", membership.MembershipID),
				slog.String("error", err.Error()))
			resp.Warning = fmt.Sprintf("membership renewed but fee invoice failed: %v", err)
		} else {
			if err := s.membershipRepo.LinkInvoice(ctx, membership.MembershipID, invoice.InvoiceID, actor.UserID); err != nil {
				logger.Warn("Failed to link fee invoice to membership",
					slog.String("membership_id", membership.MembershipID),
					slog.String("error", err.Error()))
				resp.Warning = fmt.Sprintf("fee invoice created but not linked: %v", err)
			} else {
				membership.InvoiceID = &invoice.InvoiceID
			}
			invResp := dto.ToInvoiceResponse(invoice)
			resp.Invoice = &invResp
			invoiceUnpaid = true
		}
	}

	resp.Membership = dto.ToMembershipResponse(&membership, membership.StatusAt(now, invoiceUnpaid))
	return resp, nil
}
