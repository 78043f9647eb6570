package repositories

import (
	"context"

	"github.com/aerodesk/flightops_backend/internal/core/domain"
)

// FlightReaderRepo defines the scheduling/aircraft lookups the billing core
// needs. All of these return apperrors.ErrNotFound for missing entities.
type FlightReaderRepo interface {
	FindBookingByID(ctx context.Context, bookingID string) (*domain.Booking, error)
	FindAircraftByID(ctx context.Context, aircraftID string) (*domain.Aircraft, error)
	FindFlightTypeByID(ctx context.Context, flightTypeID string) (*domain.FlightType, error)

	// FindFlightLogByBooking returns the booking's flight-log row when one
	// exists, completed or not. A completed log pins the aircraft-hours
	// window for retries; an unfinished one seeds the next segment with its
	// TotalHoursEnd.
	FindFlightLogByBooking(ctx context.Context, bookingID string) (*domain.FlightLog, error)
}

// CompleteFlightResult reports what the finalize transaction persisted.
type CompleteFlightResult struct {
	Invoice   domain.Invoice
	Items     []domain.InvoiceItem
	FlightLog domain.FlightLog
}

// FlightWriterRepo persists flight completion.
type FlightWriterRepo interface {
	// CompleteFlight finalizes a flight in one transaction: creates the
	// booking's invoice when none exists, upserts the calculated items keyed
	// on (invoice_id, description), recomputes invoice aggregates, writes the
	// flight log, links it to the booking, and advances the aircraft's total
	// hours. Retrying after a partial failure updates items in place rather
	// than duplicating them.
	CompleteFlight(ctx context.Context, log domain.FlightLog, invoice domain.Invoice, items []domain.InvoiceItem) (*CompleteFlightResult, error)
}

// FlightRepositoryFacade combines the flight repository interfaces.
type FlightRepositoryFacade interface {
	FlightReaderRepo
	FlightWriterRepo
}
