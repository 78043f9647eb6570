package domain

import "github.com/shopspring/decimal"

// AircraftRate is the hourly charge for an aircraft under a flight type,
// together with the meter it is billed on.
type AircraftRate struct {
	RateID       string          `json:"rateID"`
	AircraftID   string          `json:"aircraftID"`
	FlightTypeID string          `json:"flightTypeID"`
	RatePerHour  decimal.Decimal `json:"ratePerHour"`
	BillingMeter BillingMeter    `json:"billingMeter"`
	AuditFields
}

// InstructorRate is the hourly instruction charge for a given instructor.
type InstructorRate struct {
	RateID       string          `json:"rateID"`
	InstructorID string          `json:"instructorID"`
	RatePerHour  decimal.Decimal `json:"ratePerHour"`
	AuditFields
}

// LandingFee is keyed by (chargeable, aircraft type).
type LandingFee struct {
	FeeID          string          `json:"feeID"`
	ChargeableID   string          `json:"chargeableID"`
	AircraftTypeID string          `json:"aircraftTypeID"`
	Fee            decimal.Decimal `json:"fee"`
	AuditFields
}

// Chargeable is anything that can appear as an invoice line (aircraft time,
// landing fees, membership fees, shop items). IsTaxable=false exempts the
// chargeable from tax entirely.
type Chargeable struct {
	ChargeableID string `json:"chargeableID"`
	Name         string `json:"name"`
	IsTaxable    bool   `json:"isTaxable"`
	AuditFields
}

// TaxRateSource tags which tier of the fallback chain produced an effective
// tax rate, for audit and debugging.
type TaxRateSource string

const (
	TaxSourceExplicit         TaxRateSource = "explicit"
	TaxSourceChargeableExempt TaxRateSource = "chargeable_exempt"
	TaxSourceInvoice          TaxRateSource = "invoice"
	TaxSourceOrgDefault       TaxRateSource = "org_default"
)

// TaxContext carries everything the effective-tax-rate resolution consults,
// in fallback order: an explicit caller-supplied rate, the chargeable's
// exemption flag, the invoice's snapshotted rate, then the organization
// default.
type TaxContext struct {
	Explicit   *decimal.Decimal
	Chargeable *Chargeable
	Invoice    *Invoice
}

// EffectiveTaxRate is the resolved rate plus the tier that supplied it.
type EffectiveTaxRate struct {
	Rate   decimal.Decimal `json:"rate"`
	Source TaxRateSource   `json:"source"`
}

// ResolvedRates is everything the flight charge calculator needs for one
// billing context. SoloRate falls back to the aircraft (dual) rate when no
// solo-specific flight-type rate is configured.
type ResolvedRates struct {
	AircraftRate   decimal.Decimal `json:"aircraftRate"`
	BillingMeter   BillingMeter    `json:"billingMeter"`
	InstructorRate decimal.Decimal `json:"instructorRate"` // zero when none configured
	SoloRate       decimal.Decimal `json:"soloRate"`
	TaxRate        EffectiveTaxRate `json:"taxRate"`
}
