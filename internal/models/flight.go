package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// FlightLog is the flight_logs table row.
type FlightLog struct {
	FlightLogID     string           `json:"flightLogID" db:"flight_log_id"`
	BookingID       string           `json:"bookingID" db:"booking_id"`
	AircraftID      string           `json:"aircraftID" db:"aircraft_id"`
	PilotUserID     string           `json:"pilotUserID" db:"pilot_user_id"`
	InstructorID    *string          `json:"instructorID" db:"instructor_id"`
	FlightTypeID    string           `json:"flightTypeID" db:"flight_type_id"`
	HobbsStart      decimal.Decimal  `json:"hobbsStart" db:"hobbs_start"`
	HobbsEnd        decimal.Decimal  `json:"hobbsEnd" db:"hobbs_end"`
	TachStart       decimal.Decimal  `json:"tachStart" db:"tach_start"`
	TachEnd         decimal.Decimal  `json:"tachEnd" db:"tach_end"`
	SoloEndHobbs    *decimal.Decimal `json:"soloEndHobbs" db:"solo_end_hobbs"`
	HobbsTime       decimal.Decimal  `json:"hobbsTime" db:"hobbs_time"`
	TachTime        decimal.Decimal  `json:"tachTime" db:"tach_time"`
	CreditedTime    decimal.Decimal  `json:"creditedTime" db:"credited_time"`
	DualTime        decimal.Decimal  `json:"dualTime" db:"dual_time"`
	SoloTime        decimal.Decimal  `json:"soloTime" db:"solo_time"`
	TotalHoursStart decimal.Decimal  `json:"totalHoursStart" db:"total_hours_start"`
	TotalHoursEnd   decimal.Decimal  `json:"totalHoursEnd" db:"total_hours_end"`
	FlightDate      time.Time        `json:"flightDate" db:"flight_date"`
	Completed       bool             `json:"completed" db:"completed"`
	AuditFields
}

// Booking is the bookings table row (minimal billing view).
type Booking struct {
	BookingID    string    `json:"bookingID" db:"booking_id"`
	UserID       string    `json:"userID" db:"user_id"`
	AircraftID   string    `json:"aircraftID" db:"aircraft_id"`
	InstructorID *string   `json:"instructorID" db:"instructor_id"`
	FlightTypeID string    `json:"flightTypeID" db:"flight_type_id"`
	StartTime    time.Time `json:"startTime" db:"start_time"`
	EndTime      time.Time `json:"endTime" db:"end_time"`
	InvoiceID    *string   `json:"invoiceID" db:"invoice_id"`
	AuditFields
}

// Aircraft is the aircraft table row (billing view).
type Aircraft struct {
	AircraftID      string          `json:"aircraftID" db:"aircraft_id"`
	Registration    string          `json:"registration" db:"registration"`
	AircraftTypeID  string          `json:"aircraftTypeID" db:"aircraft_type_id"`
	TotalTimeMethod string          `json:"totalTimeMethod" db:"total_time_method"`
	TotalHours      decimal.Decimal `json:"totalHours" db:"total_hours"`
	AuditFields
}

// FlightType is the flight_types table row.
type FlightType struct {
	FlightTypeID   string `json:"flightTypeID" db:"flight_type_id"`
	Name           string `json:"name" db:"name"`
	Classification string `json:"classification" db:"classification"`
	AuditFields
}
