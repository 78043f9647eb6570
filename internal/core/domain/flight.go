package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// FlightClassification drives the dual/solo time split and which line items a
// flight produces.
type FlightClassification string

const (
	FlightDual  FlightClassification = "dual"
	FlightSolo  FlightClassification = "solo"
	FlightTrial FlightClassification = "trial"
)

// BillingMeter selects which meter a flight is billed on.
type BillingMeter string

const (
	MeterHobbs BillingMeter = "hobbs"
	MeterTacho BillingMeter = "tacho"
)

// TotalTimeMethod converts raw meter deltas into credited aircraft hours.
// Unknown methods fall back to hobbs time.
type TotalTimeMethod string

const (
	TotalTimeHobbs       TotalTimeMethod = "hobbs"
	TotalTimeTacho       TotalTimeMethod = "tacho"
	TotalTimeAirswitch   TotalTimeMethod = "airswitch"
	TotalTimeHobbsLess5  TotalTimeMethod = "hobbs less 5%"
	TotalTimeHobbsLess10 TotalTimeMethod = "hobbs less 10%"
	TotalTimeTachoLess5  TotalTimeMethod = "tacho less 5%"
	TotalTimeTachoLess10 TotalTimeMethod = "tacho less 10%"
)

// MeterReadings are the raw inputs for a flight charge calculation.
// SoloEndHobbs is set when a dual flight continued as a solo segment.
type MeterReadings struct {
	HobbsStart   decimal.Decimal  `json:"hobbsStart"`
	HobbsEnd     decimal.Decimal  `json:"hobbsEnd"`
	TachStart    decimal.Decimal  `json:"tachStart"`
	TachEnd      decimal.Decimal  `json:"tachEnd"`
	SoloEndHobbs *decimal.Decimal `json:"soloEndHobbs,omitempty"`
}

// FlightTimes is the calculated time breakdown of a flight.
type FlightTimes struct {
	HobbsTime       decimal.Decimal `json:"hobbsTime"`
	TachTime        decimal.Decimal `json:"tachTime"`
	CreditedTime    decimal.Decimal `json:"creditedTime"`
	DualTime        decimal.Decimal `json:"dualTime"`
	SoloTime        decimal.Decimal `json:"soloTime"`
	TotalHoursStart decimal.Decimal `json:"totalHoursStart"`
	TotalHoursEnd   decimal.Decimal `json:"totalHoursEnd"`
}

// FlightLog is the persisted record of a completed (or in-progress) flight.
type FlightLog struct {
	FlightLogID  string        `json:"flightLogID"`
	BookingID    string        `json:"bookingID"`
	AircraftID   string        `json:"aircraftID"`
	PilotUserID  string        `json:"pilotUserID"`
	InstructorID *string       `json:"instructorID,omitempty"`
	FlightTypeID string        `json:"flightTypeID"`
	Readings     MeterReadings `json:"readings"`
	Times        FlightTimes   `json:"times"`
	FlightDate   time.Time     `json:"flightDate"`
	Completed    bool          `json:"completed"`
	AuditFields
}

// Booking is the minimal scheduling record the billing core needs: who flies
// what, when, and under which flight type.
type Booking struct {
	BookingID    string    `json:"bookingID"`
	UserID       string    `json:"userID"`
	AircraftID   string    `json:"aircraftID"`
	InstructorID *string   `json:"instructorID,omitempty"`
	FlightTypeID string    `json:"flightTypeID"`
	StartTime    time.Time `json:"startTime"`
	EndTime      time.Time `json:"endTime"`
	InvoiceID    *string   `json:"invoiceID,omitempty"`
	AuditFields
}

// Aircraft carries the fields the charge calculator needs.
type Aircraft struct {
	AircraftID      string          `json:"aircraftID"`
	Registration    string          `json:"registration"`
	AircraftTypeID  string          `json:"aircraftTypeID"`
	TotalTimeMethod TotalTimeMethod `json:"totalTimeMethod"`
	TotalHours      decimal.Decimal `json:"totalHours"`
	AuditFields
}

// FlightType classifies bookings (dual instruction, solo hire, trial flight).
type FlightType struct {
	FlightTypeID   string               `json:"flightTypeID"`
	Name           string               `json:"name"`
	Classification FlightClassification `json:"classification"`
	AuditFields
}
