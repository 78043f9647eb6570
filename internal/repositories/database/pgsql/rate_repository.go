package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/aerodesk/flightops_backend/internal/apperrors"
	"github.com/aerodesk/flightops_backend/internal/core/domain"
	portsrepo "github.com/aerodesk/flightops_backend/internal/core/ports/repositories"
	"github.com/aerodesk/flightops_backend/internal/models"
	"github.com/aerodesk/flightops_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxRateRepository struct {
	BaseRepository
}

// newPgxRateRepository creates a new repository for rate configuration data.
func newPgxRateRepository(pool *pgxpool.Pool) portsrepo.RateRepositoryFacade {
	return &PgxRateRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxRateRepository implements portsrepo.RateRepositoryFacade
var _ portsrepo.RateRepositoryFacade = (*PgxRateRepository)(nil)

// FindAircraftRate returns the rate effective on the given date for the
// (aircraft, flight type) pair. A missing rate is a configuration gap and is
// reported as ErrRateNotConfigured, not ErrNotFound.
func (r *PgxRateRepository) FindAircraftRate(ctx context.Context, aircraftID, flightTypeID string, date time.Time) (*domain.AircraftRate, error) {
	query := `
		SELECT rate_id, aircraft_id, flight_type_id, rate_per_hour, billing_meter,
		       effective_from, effective_to,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM aircraft_rates
		WHERE aircraft_id = $1 AND flight_type_id = $2
		  AND effective_from <= $3
		  AND (effective_to IS NULL OR effective_to >= $3)
		ORDER BY effective_from DESC
		LIMIT 1;
	`
	var m models.AircraftRate
	err := r.Pool.QueryRow(ctx, query, aircraftID, flightTypeID, date).Scan(
		&m.RateID,
		&m.AircraftID,
		&m.FlightTypeID,
		&m.RatePerHour,
		&m.BillingMeter,
		&m.EffectiveFrom,
		&m.EffectiveTo,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrRateNotConfigured
		}
		return nil, apperrors.NewAppError(500, "failed to find aircraft rate for "+aircraftID, err)
	}
	d := mapping.ToDomainAircraftRate(m)
	return &d, nil
}

// FindInstructorRate returns ErrNotFound when no rate is configured; callers
// treat that as a zero rate rather than a failure.
func (r *PgxRateRepository) FindInstructorRate(ctx context.Context, instructorID string, date time.Time) (*domain.InstructorRate, error) {
	query := `
		SELECT rate_id, instructor_id, rate_per_hour, effective_from, effective_to,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM instructor_rates
		WHERE instructor_id = $1
		  AND effective_from <= $2
		  AND (effective_to IS NULL OR effective_to >= $2)
		ORDER BY effective_from DESC
		LIMIT 1;
	`
	var m models.InstructorRate
	err := r.Pool.QueryRow(ctx, query, instructorID, date).Scan(
		&m.RateID,
		&m.InstructorID,
		&m.RatePerHour,
		&m.EffectiveFrom,
		&m.EffectiveTo,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find instructor rate for "+instructorID, err)
	}
	d := mapping.ToDomainInstructorRate(m)
	return &d, nil
}

// FindLandingFee retrieves the fee configured for a (chargeable, aircraft type) pair.
func (r *PgxRateRepository) FindLandingFee(ctx context.Context, chargeableID, aircraftTypeID string) (*domain.LandingFee, error) {
	query := `
		SELECT fee_id, chargeable_id, aircraft_type_id, fee,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM landing_fees
		WHERE chargeable_id = $1 AND aircraft_type_id = $2;
	`
	var m models.LandingFee
	err := r.Pool.QueryRow(ctx, query, chargeableID, aircraftTypeID).Scan(
		&m.FeeID,
		&m.ChargeableID,
		&m.AircraftTypeID,
		&m.Fee,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrRateNotConfigured
		}
		return nil, apperrors.NewAppError(500, "failed to find landing fee for chargeable "+chargeableID, err)
	}
	d := mapping.ToDomainLandingFee(m)
	return &d, nil
}

// FindChargeable retrieves a chargeable by its ID.
func (r *PgxRateRepository) FindChargeable(ctx context.Context, chargeableID string) (*domain.Chargeable, error) {
	query := `
		SELECT chargeable_id, name, is_taxable,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM chargeables
		WHERE chargeable_id = $1;
	`
	var m models.Chargeable
	err := r.Pool.QueryRow(ctx, query, chargeableID).Scan(
		&m.ChargeableID,
		&m.Name,
		&m.IsTaxable,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find chargeable by ID "+chargeableID, err)
	}
	d := mapping.ToDomainChargeable(m)
	return &d, nil
}
