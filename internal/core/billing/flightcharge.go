package billing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/aerodesk/flightops_backend/internal/apperrors"
	"github.com/aerodesk/flightops_backend/internal/core/domain"
)

// Stable line-item descriptions. The finalize operation keys existing items on
// (invoice_id, description) and updates in place, which is what makes retrying
// a partially-failed completion idempotent.
const (
	ItemDescAircraft   = "Aircraft charge"
	ItemDescInstructor = "Instructor charge"
	ItemDescSolo       = "Solo charge"
)

// ProvisionalItem is an unpersisted invoice line produced by the calculator.
// The same values feed both the preview response and the finalize write path.
type ProvisionalItem struct {
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	TaxRate     decimal.Decimal
	LineAmounts
}

// ValidateReadings checks the meter-reading preconditions. Violations return
// errors wrapping apperrors.ErrValidation with the offending field named.
func ValidateReadings(r domain.MeterReadings) error {
	if !r.HobbsEnd.GreaterThan(r.HobbsStart) {
		return fmt.Errorf("%w: hobbsEnd must be greater than hobbsStart", apperrors.ErrValidation)
	}
	if !r.TachEnd.GreaterThan(r.TachStart) {
		return fmt.Errorf("%w: tachEnd must be greater than tachStart", apperrors.ErrValidation)
	}
	if r.SoloEndHobbs != nil && !r.SoloEndHobbs.GreaterThan(r.HobbsEnd) {
		return fmt.Errorf("%w: soloEndHobbs must be greater than hobbsEnd", apperrors.ErrValidation)
	}
	return nil
}

var (
	pct95 = decimal.RequireFromString("0.95")
	pct90 = decimal.RequireFromString("0.90")
)

// CreditedTime converts raw meter deltas into credited aircraft hours using
// the aircraft's total-time method. Unknown methods credit hobbs time.
func CreditedTime(method domain.TotalTimeMethod, hobbsTime, tachTime decimal.Decimal) decimal.Decimal {
	switch method {
	case domain.TotalTimeHobbs, domain.TotalTimeAirswitch:
		return hobbsTime
	case domain.TotalTimeTacho:
		return tachTime
	case domain.TotalTimeHobbsLess5:
		return hobbsTime.Mul(pct95)
	case domain.TotalTimeHobbsLess10:
		return hobbsTime.Mul(pct90)
	case domain.TotalTimeTachoLess5:
		return tachTime.Mul(pct95)
	case domain.TotalTimeTachoLess10:
		return tachTime.Mul(pct90)
	default:
		return hobbsTime
	}
}

// ComputeFlightTimes derives the full time breakdown of a flight. It is pure:
// identical input always yields identical output, which is what allows the
// preview endpoint to reuse it without writes.
//
// totalHoursStart comes from a prior in-progress flight-log row when one
// exists, otherwise from the aircraft's current total hours; resolving that is
// the caller's job.
func ComputeFlightTimes(
	readings domain.MeterReadings,
	method domain.TotalTimeMethod,
	meter domain.BillingMeter,
	classification domain.FlightClassification,
	totalHoursStart decimal.Decimal,
) (domain.FlightTimes, error) {
	if err := ValidateReadings(readings); err != nil {
		return domain.FlightTimes{}, err
	}

	hobbsTime := Round1(readings.HobbsEnd.Sub(readings.HobbsStart))
	tachTime := Round1(readings.TachEnd.Sub(readings.TachStart))
	credited := CreditedTime(method, hobbsTime, tachTime)

	billable := hobbsTime
	if meter == domain.MeterTacho {
		billable = tachTime
	}

	times := domain.FlightTimes{
		HobbsTime:       hobbsTime,
		TachTime:        tachTime,
		CreditedTime:    credited,
		DualTime:        decimal.Zero,
		SoloTime:        decimal.Zero,
		TotalHoursStart: totalHoursStart,
		TotalHoursEnd:   totalHoursStart.Add(credited),
	}

	switch classification {
	case domain.FlightSolo:
		times.SoloTime = billable
	case domain.FlightDual:
		times.DualTime = billable
		if readings.SoloEndHobbs != nil {
			times.SoloTime = Round1(readings.SoloEndHobbs.Sub(readings.HobbsEnd))
		}
	default:
		// Trial and any other classification bill entirely as dual.
		times.DualTime = billable
	}

	return times, nil
}

// BuildFlightItems turns a time breakdown into provisional invoice lines.
// Zero-duration components are omitted. The instructor line is produced only
// for dual and trial flights. The solo line uses the solo-specific rate when
// one is configured; ResolvedRates carries the dual aircraft rate as its
// fallback (cross-rate fallback kept from the existing billing behavior,
// pending product confirmation).
func BuildFlightItems(times domain.FlightTimes, classification domain.FlightClassification, rates domain.ResolvedRates) []ProvisionalItem {
	var items []ProvisionalItem

	addItem := func(desc string, qty, unitPrice decimal.Decimal) {
		if qty.IsZero() || unitPrice.IsZero() {
			return
		}
		items = append(items, ProvisionalItem{
			Description: desc,
			Quantity:    qty,
			UnitPrice:   unitPrice,
			TaxRate:     rates.TaxRate.Rate,
			LineAmounts: ComputeLineAmounts(qty, unitPrice, rates.TaxRate.Rate),
		})
	}

	addItem(ItemDescAircraft, times.DualTime, rates.AircraftRate)
	if classification == domain.FlightDual || classification == domain.FlightTrial {
		addItem(ItemDescInstructor, times.DualTime, rates.InstructorRate)
	}
	addItem(ItemDescSolo, times.SoloTime, rates.SoloRate)

	return items
}
