package dto

import (
	"time"

	"github.com/aerodesk/flightops_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// MeterReadingsRequest carries the raw meter values for a charge calculation.
type MeterReadingsRequest struct {
	HobbsStart   decimal.Decimal  `json:"hobbsStart" binding:"required"`
	HobbsEnd     decimal.Decimal  `json:"hobbsEnd" binding:"required"`
	TachStart    decimal.Decimal  `json:"tachStart" binding:"required"`
	TachEnd      decimal.Decimal  `json:"tachEnd" binding:"required"`
	SoloEndHobbs *decimal.Decimal `json:"soloEndHobbs"`
}

// ToDomain converts the request readings to the domain type.
func (r MeterReadingsRequest) ToDomain() domain.MeterReadings {
	return domain.MeterReadings{
		HobbsStart:   r.HobbsStart,
		HobbsEnd:     r.HobbsEnd,
		TachStart:    r.TachStart,
		TachEnd:      r.TachEnd,
		SoloEndHobbs: r.SoloEndHobbs,
	}
}

// FlightChargeRequest is the shared input of the preview and complete
// endpoints.
type FlightChargeRequest struct {
	MeterReadings    MeterReadingsRequest `json:"meterReadings" binding:"required"`
	FlightTypeID     string               `json:"flightTypeID" binding:"required"`
	InstructorID     *string              `json:"instructorID"`
	SoloFlightTypeID *string              `json:"soloFlightTypeID"`
	FlightDate       *time.Time           `json:"flightDate"`
}

// FlightLogResponse mirrors domain.FlightLog.
type FlightLogResponse struct {
	FlightLogID     string          `json:"flightLogID,omitempty"`
	BookingID       string          `json:"bookingID"`
	AircraftID      string          `json:"aircraftID"`
	FlightTypeID    string          `json:"flightTypeID"`
	HobbsTime       decimal.Decimal `json:"hobbsTime"`
	TachTime        decimal.Decimal `json:"tachTime"`
	CreditedTime    decimal.Decimal `json:"creditedTime"`
	DualTime        decimal.Decimal `json:"dualTime"`
	SoloTime        decimal.Decimal `json:"soloTime"`
	TotalHoursStart decimal.Decimal `json:"totalHoursStart"`
	TotalHoursEnd   decimal.Decimal `json:"totalHoursEnd"`
	FlightDate      time.Time       `json:"flightDate"`
}

// ChargeTotalsResponse sums the calculated lines.
type ChargeTotalsResponse struct {
	Subtotal    decimal.Decimal `json:"subtotal"`
	TaxTotal    decimal.Decimal `json:"taxTotal"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
}

// ChargePreviewResponse is the no-writes preview of a flight's charges.
type ChargePreviewResponse struct {
	FlightLog    FlightLogResponse     `json:"flightLog"`
	InvoiceItems []InvoiceItemResponse `json:"invoiceItems"`
	Totals       ChargeTotalsResponse  `json:"totals"`
}

// CompleteFlightResponse is the persisted result of finalizing a flight,
// plus an optional non-fatal warning.
type CompleteFlightResponse struct {
	Invoice      InvoiceResponse       `json:"invoice"`
	FlightLog    FlightLogResponse     `json:"flightLog"`
	InvoiceItems []InvoiceItemResponse `json:"invoiceItems"`
	Totals       ChargeTotalsResponse  `json:"totals"`
	Warning      string                `json:"warning,omitempty"`
}

// ToFlightLogResponse converts a domain.FlightLog to its DTO.
func ToFlightLogResponse(log *domain.FlightLog) FlightLogResponse {
	return FlightLogResponse{
		FlightLogID:     log.FlightLogID,
		BookingID:       log.BookingID,
		AircraftID:      log.AircraftID,
		FlightTypeID:    log.FlightTypeID,
		HobbsTime:       log.Times.HobbsTime,
		TachTime:        log.Times.TachTime,
		CreditedTime:    log.Times.CreditedTime,
		DualTime:        log.Times.DualTime,
		SoloTime:        log.Times.SoloTime,
		TotalHoursStart: log.Times.TotalHoursStart,
		TotalHoursEnd:   log.Times.TotalHoursEnd,
		FlightDate:      log.FlightDate,
	}
}
