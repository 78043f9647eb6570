package repositories

import (
	"context"
	"time"

	"github.com/aerodesk/flightops_backend/internal/core/domain"
)

// RateRepositoryFacade looks up configured charge rates. A missing
// aircraft/flight-type rate is reported as apperrors.ErrRateNotConfigured, a
// configuration gap distinct from a missing entity.
type RateRepositoryFacade interface {
	// FindAircraftRate returns the rate effective on the given date for the
	// (aircraft, flight type) pair.
	FindAircraftRate(ctx context.Context, aircraftID, flightTypeID string, date time.Time) (*domain.AircraftRate, error)

	// FindInstructorRate returns ErrNotFound when none is configured; callers
	// treat that as a zero rate, never as a failure.
	FindInstructorRate(ctx context.Context, instructorID string, date time.Time) (*domain.InstructorRate, error)

	FindLandingFee(ctx context.Context, chargeableID, aircraftTypeID string) (*domain.LandingFee, error)

	FindChargeable(ctx context.Context, chargeableID string) (*domain.Chargeable, error)
}
