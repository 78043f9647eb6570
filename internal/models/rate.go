package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AircraftRate is the aircraft_rates table row. EffectiveFrom/To bound the
// period the rate applies to; To is open-ended when nil.
type AircraftRate struct {
	RateID        string          `json:"rateID" db:"rate_id"`
	AircraftID    string          `json:"aircraftID" db:"aircraft_id"`
	FlightTypeID  string          `json:"flightTypeID" db:"flight_type_id"`
	RatePerHour   decimal.Decimal `json:"ratePerHour" db:"rate_per_hour"`
	BillingMeter  string          `json:"billingMeter" db:"billing_meter"`
	EffectiveFrom time.Time       `json:"effectiveFrom" db:"effective_from"`
	EffectiveTo   *time.Time      `json:"effectiveTo" db:"effective_to"`
	AuditFields
}

// InstructorRate is the instructor_rates table row.
type InstructorRate struct {
	RateID        string          `json:"rateID" db:"rate_id"`
	InstructorID  string          `json:"instructorID" db:"instructor_id"`
	RatePerHour   decimal.Decimal `json:"ratePerHour" db:"rate_per_hour"`
	EffectiveFrom time.Time       `json:"effectiveFrom" db:"effective_from"`
	EffectiveTo   *time.Time      `json:"effectiveTo" db:"effective_to"`
	AuditFields
}

// LandingFee is the landing_fees table row.
type LandingFee struct {
	FeeID          string          `json:"feeID" db:"fee_id"`
	ChargeableID   string          `json:"chargeableID" db:"chargeable_id"`
	AircraftTypeID string          `json:"aircraftTypeID" db:"aircraft_type_id"`
	Fee            decimal.Decimal `json:"fee" db:"fee"`
	AuditFields
}

// Chargeable is the chargeables table row.
type Chargeable struct {
	ChargeableID string `json:"chargeableID" db:"chargeable_id"`
	Name         string `json:"name" db:"name"`
	IsTaxable    bool   `json:"isTaxable" db:"is_taxable"`
	AuditFields
}
