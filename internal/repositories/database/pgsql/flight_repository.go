package pgsql

import (
	"context"
	"errors"

	"github.com/aerodesk/flightops_backend/internal/apperrors"
	"github.com/aerodesk/flightops_backend/internal/core/domain"
	portsrepo "github.com/aerodesk/flightops_backend/internal/core/ports/repositories"
	"github.com/aerodesk/flightops_backend/internal/models"
	"github.com/aerodesk/flightops_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxFlightRepository struct {
	BaseRepository
}

// newPgxFlightRepository creates a new repository for flight and scheduling data.
func newPgxFlightRepository(pool *pgxpool.Pool) portsrepo.FlightRepositoryFacade {
	return &PgxFlightRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxFlightRepository implements portsrepo.FlightRepositoryFacade
var _ portsrepo.FlightRepositoryFacade = (*PgxFlightRepository)(nil)

const flightLogColumns = `flight_log_id, booking_id, aircraft_id, pilot_user_id, instructor_id, flight_type_id,
	hobbs_start, hobbs_end, tach_start, tach_end, solo_end_hobbs,
	hobbs_time, tach_time, credited_time, dual_time, solo_time,
	total_hours_start, total_hours_end, flight_date, completed,
	created_at, created_by, last_updated_at, last_updated_by`

func scanFlightLog(row rowScanner) (models.FlightLog, error) {
	var m models.FlightLog
	err := row.Scan(
		&m.FlightLogID,
		&m.BookingID,
		&m.AircraftID,
		&m.PilotUserID,
		&m.InstructorID,
		&m.FlightTypeID,
		&m.HobbsStart,
		&m.HobbsEnd,
		&m.TachStart,
		&m.TachEnd,
		&m.SoloEndHobbs,
		&m.HobbsTime,
		&m.TachTime,
		&m.CreditedTime,
		&m.DualTime,
		&m.SoloTime,
		&m.TotalHoursStart,
		&m.TotalHoursEnd,
		&m.FlightDate,
		&m.Completed,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// FindBookingByID retrieves a booking by its ID.
func (r *PgxFlightRepository) FindBookingByID(ctx context.Context, bookingID string) (*domain.Booking, error) {
	query := `
		SELECT booking_id, user_id, aircraft_id, instructor_id, flight_type_id,
		       start_time, end_time, invoice_id,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM bookings
		WHERE booking_id = $1;
	`
	var m models.Booking
	err := r.Pool.QueryRow(ctx, query, bookingID).Scan(
		&m.BookingID,
		&m.UserID,
		&m.AircraftID,
		&m.InstructorID,
		&m.FlightTypeID,
		&m.StartTime,
		&m.EndTime,
		&m.InvoiceID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find booking by ID "+bookingID, err)
	}
	d := mapping.ToDomainBooking(m)
	return &d, nil
}

// FindAircraftByID retrieves an aircraft by its ID.
func (r *PgxFlightRepository) FindAircraftByID(ctx context.Context, aircraftID string) (*domain.Aircraft, error) {
	query := `
		SELECT aircraft_id, registration, aircraft_type_id, total_time_method, total_hours,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM aircraft
		WHERE aircraft_id = $1;
	`
	var m models.Aircraft
	err := r.Pool.QueryRow(ctx, query, aircraftID).Scan(
		&m.AircraftID,
		&m.Registration,
		&m.AircraftTypeID,
		&m.TotalTimeMethod,
		&m.TotalHours,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find aircraft by ID "+aircraftID, err)
	}
	d := mapping.ToDomainAircraft(m)
	return &d, nil
}

// FindFlightTypeByID retrieves a flight type by its ID.
func (r *PgxFlightRepository) FindFlightTypeByID(ctx context.Context, flightTypeID string) (*domain.FlightType, error) {
	query := `
		SELECT flight_type_id, name, classification,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM flight_types
		WHERE flight_type_id = $1;
	`
	var m models.FlightType
	err := r.Pool.QueryRow(ctx, query, flightTypeID).Scan(
		&m.FlightTypeID,
		&m.Name,
		&m.Classification,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find flight type by ID "+flightTypeID, err)
	}
	d := mapping.ToDomainFlightType(m)
	return &d, nil
}

// FindFlightLogByBooking returns the booking's flight-log row when one
// exists, completed or not.
func (r *PgxFlightRepository) FindFlightLogByBooking(ctx context.Context, bookingID string) (*domain.FlightLog, error) {
	query := `SELECT ` + flightLogColumns + ` FROM flight_logs WHERE booking_id = $1;`
	m, err := scanFlightLog(r.Pool.QueryRow(ctx, query, bookingID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find flight log for booking "+bookingID, err)
	}
	d := mapping.ToDomainFlightLog(m)
	return &d, nil
}

// CompleteFlight finalizes a flight in one transaction: the booking is locked,
// its invoice is created on first completion, the calculated charge items are
// upserted keyed on (invoice_id, description), the invoice aggregates are
// recomputed, the flight log is written, and the aircraft's running hours
// advance. A retry after a partial failure updates the same rows in place.
func (r *PgxFlightRepository) CompleteFlight(ctx context.Context, log domain.FlightLog, invoice domain.Invoice, items []domain.InvoiceItem) (*portsrepo.CompleteFlightResult, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	// Lock the booking so concurrent completions of the same flight serialize.
	var bookingInvoiceID *string
	err = tx.QueryRow(ctx, `SELECT invoice_id FROM bookings WHERE booking_id = $1 FOR UPDATE;`, log.BookingID).Scan(&bookingInvoiceID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to lock booking "+log.BookingID, err)
	}

	var inv models.Invoice
	if bookingInvoiceID != nil {
		inv, err = findInvoiceForUpdate(ctx, tx, *bookingInvoiceID)
		if err != nil {
			return nil, err
		}
	} else {
		number, err := nextDocumentNumber(ctx, tx, seqInvoice)
		if err != nil {
			return nil, err
		}
		invoice.InvoiceNumber = number
		inv = mapping.ToModelInvoice(invoice)
		query := `
			INSERT INTO invoices (` + invoiceColumns + `)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20);
		`
		_, err = tx.Exec(ctx, query,
			inv.InvoiceID,
			inv.InvoiceNumber,
			inv.UserID,
			inv.BookingID,
			inv.Status,
			inv.Reference,
			inv.Notes,
			inv.Subtotal,
			inv.TaxTotal,
			inv.TotalAmount,
			inv.TotalPaid,
			inv.BalanceDue,
			inv.TaxRate,
			inv.IssueDate,
			inv.DueDate,
			inv.DeletedAt,
			inv.CreatedAt,
			inv.CreatedBy,
			inv.LastUpdatedAt,
			inv.LastUpdatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to insert invoice for booking "+log.BookingID, err)
		}
	}

	// Upsert charge items by their stable descriptions so a retried
	// completion rewrites the same lines instead of duplicating them.
	upsertQuery := `
		INSERT INTO invoice_items (` + invoiceItemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		ON CONFLICT (invoice_id, description) DO UPDATE
		SET chargeable_id = EXCLUDED.chargeable_id,
		    quantity = EXCLUDED.quantity,
		    unit_price = EXCLUDED.unit_price,
		    tax_rate = EXCLUDED.tax_rate,
		    tax_rate_source = EXCLUDED.tax_rate_source,
		    amount = EXCLUDED.amount,
		    tax_amount = EXCLUDED.tax_amount,
		    line_total = EXCLUDED.line_total,
		    rate_inclusive = EXCLUDED.rate_inclusive,
		    last_updated_at = EXCLUDED.last_updated_at,
		    last_updated_by = EXCLUDED.last_updated_by;
	`
	persistedItems := make([]domain.InvoiceItem, 0, len(items))
	for _, item := range items {
		item.InvoiceID = inv.InvoiceID
		mi := mapping.ToModelInvoiceItem(item)
		_, err := tx.Exec(ctx, upsertQuery,
			mi.ItemID,
			mi.InvoiceID,
			mi.ChargeableID,
			mi.Description,
			mi.Quantity,
			mi.UnitPrice,
			mi.TaxRate,
			mi.TaxRateSource,
			mi.Amount,
			mi.TaxAmount,
			mi.LineTotal,
			mi.RateInclusive,
			mi.CreatedAt,
			mi.CreatedBy,
			mi.LastUpdatedAt,
			mi.LastUpdatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to upsert charge item "+mi.Description+" for invoice "+mi.InvoiceID, err)
		}
		persistedItems = append(persistedItems, item)
	}

	before := inv
	after, err := recomputeInvoiceAggregates(ctx, tx, inv.InvoiceID, log.LastUpdatedBy, log.LastUpdatedAt)
	if err != nil {
		return nil, err
	}
	if invoiceCountsTowardBalance(before.Status) {
		delta := after.TotalAmount.Sub(before.TotalAmount)
		if err := adjustUserBalance(ctx, tx, before.UserID, delta, log.LastUpdatedBy, log.LastUpdatedAt); err != nil {
			return nil, err
		}
	}

	log.Completed = true
	ml := mapping.ToModelFlightLog(log)
	logQuery := `
		INSERT INTO flight_logs (` + flightLogColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24)
		ON CONFLICT (booking_id) DO UPDATE
		SET hobbs_start = EXCLUDED.hobbs_start,
		    hobbs_end = EXCLUDED.hobbs_end,
		    tach_start = EXCLUDED.tach_start,
		    tach_end = EXCLUDED.tach_end,
		    solo_end_hobbs = EXCLUDED.solo_end_hobbs,
		    hobbs_time = EXCLUDED.hobbs_time,
		    tach_time = EXCLUDED.tach_time,
		    credited_time = EXCLUDED.credited_time,
		    dual_time = EXCLUDED.dual_time,
		    solo_time = EXCLUDED.solo_time,
		    total_hours_start = EXCLUDED.total_hours_start,
		    total_hours_end = EXCLUDED.total_hours_end,
		    flight_date = EXCLUDED.flight_date,
		    completed = EXCLUDED.completed,
		    last_updated_at = EXCLUDED.last_updated_at,
		    last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err = tx.Exec(ctx, logQuery,
		ml.FlightLogID,
		ml.BookingID,
		ml.AircraftID,
		ml.PilotUserID,
		ml.InstructorID,
		ml.FlightTypeID,
		ml.HobbsStart,
		ml.HobbsEnd,
		ml.TachStart,
		ml.TachEnd,
		ml.SoloEndHobbs,
		ml.HobbsTime,
		ml.TachTime,
		ml.CreditedTime,
		ml.DualTime,
		ml.SoloTime,
		ml.TotalHoursStart,
		ml.TotalHoursEnd,
		ml.FlightDate,
		ml.Completed,
		ml.CreatedAt,
		ml.CreatedBy,
		ml.LastUpdatedAt,
		ml.LastUpdatedBy,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to upsert flight log for booking "+ml.BookingID, err)
	}

	if _, err := tx.Exec(ctx, `
		UPDATE bookings
		SET invoice_id = $2, last_updated_at = $3, last_updated_by = $4
		WHERE booking_id = $1;`,
		ml.BookingID, inv.InvoiceID, ml.LastUpdatedAt, ml.LastUpdatedBy,
	); err != nil {
		return nil, apperrors.NewAppError(500, "failed to link invoice to booking "+ml.BookingID, err)
	}

	if _, err := tx.Exec(ctx, `
		UPDATE aircraft
		SET total_hours = $2, last_updated_at = $3, last_updated_by = $4
		WHERE aircraft_id = $1;`,
		ml.AircraftID, ml.TotalHoursEnd, ml.LastUpdatedAt, ml.LastUpdatedBy,
	); err != nil {
		return nil, apperrors.NewAppError(500, "failed to advance total hours for aircraft "+ml.AircraftID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	return &portsrepo.CompleteFlightResult{
		Invoice:   mapping.ToDomainInvoice(after),
		Items:     persistedItems,
		FlightLog: mapping.ToDomainFlightLog(ml),
	}, nil
}
