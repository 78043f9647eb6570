package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/aerodesk/flightops_backend/internal/apperrors"
	"github.com/aerodesk/flightops_backend/internal/core/domain"
	portsrepo "github.com/aerodesk/flightops_backend/internal/core/ports/repositories"
	portssvc "github.com/aerodesk/flightops_backend/internal/core/ports/services"
	"github.com/aerodesk/flightops_backend/internal/middleware"
	"github.com/aerodesk/flightops_backend/internal/platform/config"
)

// rateService resolves charge and tax rates for billing contexts.
type rateService struct {
	rateRepo       portsrepo.RateRepositoryFacade
	defaultTaxRate decimal.Decimal
}

// NewRateService creates a new RateResolverSvc.
func NewRateService(rateRepo portsrepo.RateRepositoryFacade, cfg *config.Config) portssvc.RateResolverSvc {
	return &rateService{
		rateRepo:       rateRepo,
		defaultTaxRate: cfg.DefaultTaxRate,
	}
}

var _ portssvc.RateResolverSvc = (*rateService)(nil)

// ResolveFlightRates assembles everything the charge calculator needs for one
// flight. A missing aircraft rate is a hard failure (ErrRateNotConfigured); a
// missing instructor rate resolves to zero; a missing solo flight-type rate
// falls back to the aircraft rate.
func (s *rateService) ResolveFlightRates(ctx context.Context, aircraftID, flightTypeID string, instructorID, soloFlightTypeID *string, date time.Time) (*domain.ResolvedRates, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	aircraftRate, err := s.rateRepo.FindAircraftRate(ctx, aircraftID, flightTypeID, date)
	if err != nil {
		if errors.Is(err, apperrors.ErrRateNotConfigured) {
			logger.Warn("No aircraft rate configured",
				slog.String("aircraft_id", aircraftID),
				slog.String("flight_type_id", flightTypeID))
		}
		return nil, err
	}

	resolved := &domain.ResolvedRates{
		AircraftRate:   aircraftRate.RatePerHour,
		BillingMeter:   aircraftRate.BillingMeter,
		InstructorRate: decimal.Zero,
		SoloRate:       aircraftRate.RatePerHour,
	}

	if instructorID != nil {
		instructorRate, err := s.rateRepo.FindInstructorRate(ctx, *instructorID, date)
		switch {
		case err == nil:
			resolved.InstructorRate = instructorRate.RatePerHour
		case errors.Is(err, apperrors.ErrNotFound):
			logger.Info("No instructor rate configured, charging zero",
				slog.String("instructor_id", *instructorID))
		default:
			return nil, err
		}
	}

	if soloFlightTypeID != nil {
		soloRate, err := s.rateRepo.FindAircraftRate(ctx, aircraftID, *soloFlightTypeID, date)
		switch {
		case err == nil:
			resolved.SoloRate = soloRate.RatePerHour
		case errors.Is(err, apperrors.ErrRateNotConfigured):
			logger.Info("No solo rate configured, falling back to aircraft rate",
				slog.String("aircraft_id", aircraftID),
				slog.String("solo_flight_type_id", *soloFlightTypeID))
		default:
			return nil, err
		}
	}

	resolved.TaxRate = s.ResolveEffectiveTaxRate(ctx, domain.TaxContext{})
	return resolved, nil
}

// ResolveLandingFee returns the fee configured for the (chargeable, aircraft
// type) pair.
func (s *rateService) ResolveLandingFee(ctx context.Context, chargeableID, aircraftTypeID string) (decimal.Decimal, error) {
	fee, err := s.rateRepo.FindLandingFee(ctx, chargeableID, aircraftTypeID)
	if err != nil {
		return decimal.Zero, err
	}
	return fee.Fee, nil
}

// ResolveEffectiveTaxRate walks the fallback chain. An explicit rate always
// wins, even on an exempt chargeable; the exemption only applies when nothing
// was supplied explicitly.
func (s *rateService) ResolveEffectiveTaxRate(_ context.Context, tc domain.TaxContext) domain.EffectiveTaxRate {
	if tc.Explicit != nil {
		return domain.EffectiveTaxRate{Rate: *tc.Explicit, Source: domain.TaxSourceExplicit}
	}
	if tc.Chargeable != nil && !tc.Chargeable.IsTaxable {
		return domain.EffectiveTaxRate{Rate: decimal.Zero, Source: domain.TaxSourceChargeableExempt}
	}
	if tc.Invoice != nil && !tc.Invoice.TaxRate.IsZero() {
		return domain.EffectiveTaxRate{Rate: tc.Invoice.TaxRate, Source: domain.TaxSourceInvoice}
	}
	return domain.EffectiveTaxRate{Rate: s.defaultTaxRate, Source: domain.TaxSourceOrgDefault}
}
