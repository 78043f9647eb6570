package services

import (
	"context"
	"errors"
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
	"github.com/aerodesk/flightops_backend/internal/platform/config"
)

// flightChargeService calculates and finalizes flight charges. The
// calculation itself is pure; preview and complete share it so the two can
// never disagree.
type flightChargeService struct {
	flightRepo     portsrepo.FlightRepositoryFacade
	rateSvc        portssvc.RateResolverSvc
	defaultDueDays int
}

// NewFlightChargeService creates a new FlightChargeSvcFacade.
func NewFlightChargeService(flightRepo portsrepo.FlightRepositoryFacade, rateSvc portssvc.RateResolverSvc, cfg *config.Config) portssvc.FlightChargeSvcFacade {
	return &flightChargeService{
		flightRepo:     flightRepo,
		rateSvc:        rateSvc,
		defaultDueDays: cfg.DefaultDueDays,
	}
}

var _ portssvc.FlightChargeSvcFacade = (*flightChargeService)(nil)

// flightCalculation is the shared outcome of the charge calculation.
type flightCalculation struct {
	booking    *domain.Booking
	aircraft   *domain.Aircraft
	flightType *domain.FlightType
	rates      *domain.ResolvedRates
	times      domain.FlightTimes
	items      []billing.ProvisionalItem
	flightDate time.Time
}

// calculate runs the full charge calculation without writes.
func (s *flightChargeService) calculate(ctx context.Context, bookingID string, req dto.FlightChargeRequest, actor domain.Actor) (*flightCalculation, error) {
	booking, err := s.flightRepo.FindBookingByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if err := ensureCanAccess(actor, booking.UserID); err != nil {
		return nil, err
	}

	aircraft, err := s.flightRepo.FindAircraftByID(ctx, booking.AircraftID)
	if err != nil {
		return nil, err
	}
	flightType, err := s.flightRepo.FindFlightTypeByID(ctx, req.FlightTypeID)
	if err != nil {
		return nil, err
	}

	flightDate := time.Now().UTC()
	if req.FlightDate != nil {
		flightDate = *req.FlightDate
	}

	instructorID := req.InstructorID
	if instructorID == nil {
		instructorID = booking.InstructorID
	}

	rates, err := s.rateSvc.ResolveFlightRates(ctx, booking.AircraftID, req.FlightTypeID, instructorID, req.SoloFlightTypeID, flightDate)
	if err != nil {
		return nil, err
	}

	// A prior log for the booking pins the aircraft-hours window. A completed
	// log means this calculation is a retry or correction: its recorded start
	// is reused so the aircraft's hours never advance twice for one flight. An
	// unfinished log is an earlier segment whose end hours seed this one.
	totalHoursStart := aircraft.TotalHours
	if prior, err := s.flightRepo.FindFlightLogByBooking(ctx, bookingID); err == nil {
		if prior.Completed {
			totalHoursStart = prior.Times.TotalHoursStart
		} else {
			totalHoursStart = prior.Times.TotalHoursEnd
		}
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	times, err := billing.ComputeFlightTimes(req.MeterReadings.ToDomain(), aircraft.TotalTimeMethod, rates.BillingMeter, flightType.Classification, totalHoursStart)
	if err != nil {
		return nil, err
	}

	return &flightCalculation{
		booking:    booking,
		aircraft:   aircraft,
		flightType: flightType,
		rates:      rates,
		times:      times,
		items:      billing.BuildFlightItems(times, flightType.Classification, *rates),
		flightDate: flightDate,
	}, nil
}

func (c *flightCalculation) totals() dto.ChargeTotalsResponse {
	lines := make([]billing.LineAmounts, len(c.items))
	for i, item := range c.items {
		lines[i] = item.LineAmounts
	}
	totals := billing.SumLineAmounts(lines)
	return dto.ChargeTotalsResponse{
		Subtotal:    totals.Subtotal,
		TaxTotal:    totals.TaxTotal,
		TotalAmount: totals.TotalAmount,
	}
}

func (c *flightCalculation) provisionalItemResponses() []dto.InvoiceItemResponse {
	responses := make([]dto.InvoiceItemResponse, len(c.items))
	for i, item := range c.items {
		responses[i] = dto.InvoiceItemResponse{
			Description:   item.Description,
			Quantity:      item.Quantity,
			UnitPrice:     item.UnitPrice,
			TaxRate:       item.TaxRate,
			TaxRateSource: string(c.rates.TaxRate.Source),
			Amount:        item.Amount,
			TaxAmount:     item.TaxAmount,
			LineTotal:     item.LineTotal,
			RateInclusive: item.RateInclusive,
		}
	}
	return responses
}

// PreviewCharges calculates the flight log and provisional items without
// touching the database. Calling it any number of times changes nothing.
func (s *flightChargeService) PreviewCharges(ctx context.Context, bookingID string, req dto.FlightChargeRequest, actor domain.Actor) (*dto.ChargePreviewResponse, error) {
	calc, err := s.calculate(ctx, bookingID, req, actor)
	if err != nil {
		return nil, err
	}

	log := domain.FlightLog{
		BookingID:    bookingID,
		AircraftID:   calc.booking.AircraftID,
		PilotUserID:  calc.booking.UserID,
		InstructorID: calc.booking.InstructorID,
		FlightTypeID: req.FlightTypeID,
		Readings:     req.MeterReadings.ToDomain(),
		Times:        calc.times,
		FlightDate:   calc.flightDate,
	}

	return &dto.ChargePreviewResponse{
		FlightLog:    dto.ToFlightLogResponse(&log),
		InvoiceItems: calc.provisionalItemResponses(),
		Totals:       calc.totals(),
	}, nil
}

// CompleteFlight persists the calculated charges. The repository keys items
// on (invoice, description) and the flight log on the booking, so a retry
// with the same readings converges on the same rows.
func (s *flightChargeService) CompleteFlight(ctx context.Context, bookingID string, req dto.FlightChargeRequest, actor domain.Actor) (*dto.CompleteFlightResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	calc, err := s.calculate(ctx, bookingID, req, actor)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     actor.UserID,
		LastUpdatedAt: now,
		LastUpdatedBy: actor.UserID,
	}

	instructorID := req.InstructorID
	if instructorID == nil {
		instructorID = calc.booking.InstructorID
	}

	flightLog := domain.FlightLog{
		FlightLogID:  uuid.NewString(),
		BookingID:    bookingID,
		AircraftID:   calc.booking.AircraftID,
		PilotUserID:  calc.booking.UserID,
		InstructorID: instructorID,
		FlightTypeID: req.FlightTypeID,
		Readings:     req.MeterReadings.ToDomain(),
		Times:        calc.times,
		FlightDate:   calc.flightDate,
		Completed:    true,
		AuditFields:  audit,
	}

	// Header used only when the booking has no invoice yet; the repository
	// reuses the existing one otherwise.
	invoice := domain.Invoice{
		InvoiceID:   uuid.NewString(),
		UserID:      calc.booking.UserID,
		BookingID:   &bookingID,
		Status:      domain.InvoicePending,
		Reference:   calc.aircraft.Registration,
		Subtotal:    decimal.Zero,
		TaxTotal:    decimal.Zero,
		TotalAmount: decimal.Zero,
		TotalPaid:   decimal.Zero,
		BalanceDue:  decimal.Zero,
		TaxRate:     calc.rates.TaxRate.Rate,
		IssueDate:   calc.flightDate,
		DueDate:     calc.flightDate.AddDate(0, 0, s.defaultDueDays),
		AuditFields: audit,
	}

	items := make([]domain.InvoiceItem, len(calc.items))
	for i, p := range calc.items {
		items[i] = domain.InvoiceItem{
			ItemID:        uuid.NewString(),
			InvoiceID:     invoice.InvoiceID,
			Description:   p.Description,
			Quantity:      p.Quantity,
			UnitPrice:     p.UnitPrice,
			TaxRate:       p.TaxRate,
			TaxRateSource: calc.rates.TaxRate.Source,
			Amount:        p.Amount,
			TaxAmount:     p.TaxAmount,
			LineTotal:     p.LineTotal,
			RateInclusive: p.RateInclusive,
			AuditFields:   audit,
		}
	}

	result, err := s.flightRepo.CompleteFlight(ctx, flightLog, invoice, items)
	if err != nil {
		logger.Error("Failed to complete flight", slog.String("booking_id", bookingID), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Flight completed",
		slog.String("booking_id", bookingID),
		slog.String("invoice_number", result.Invoice.InvoiceNumber),
		slog.String("credited_time", calc.times.CreditedTime.String()),
		slog.Int("items", len(result.Items)))

	return &dto.CompleteFlightResponse{
		Invoice:      dto.ToInvoiceResponse(&result.Invoice),
		FlightLog:    dto.ToFlightLogResponse(&result.FlightLog),
		InvoiceItems: dto.ToInvoiceItemResponses(result.Items),
		Totals:       calc.totals(),
	}, nil
}
