package billing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aerodesk/flightops_backend/internal/apperrors"
	"github.com/aerodesk/flightops_backend/internal/core/billing"
	"github.com/aerodesk/flightops_backend/internal/core/domain"
)

func ptr(d decimal.Decimal) *decimal.Decimal {
	return &d
}

func TestValidateReadings(t *testing.T) {
	valid := domain.MeterReadings{
		HobbsStart: dec("1250.0"), HobbsEnd: dec("1251.5"),
		TachStart: dec("1100.0"), TachEnd: dec("1101.2"),
	}
	assert.NoError(t, billing.ValidateReadings(valid))

	hobbsBackwards := valid
	hobbsBackwards.HobbsEnd = dec("1249.9")
	err := billing.ValidateReadings(hobbsBackwards)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Contains(t, err.Error(), "hobbsEnd")

	tachEqual := valid
	tachEqual.TachEnd = tachEqual.TachStart
	err = billing.ValidateReadings(tachEqual)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Contains(t, err.Error(), "tachEnd")

	soloBeforeEnd := valid
	soloBeforeEnd.SoloEndHobbs = ptr(dec("1251.0"))
	err = billing.ValidateReadings(soloBeforeEnd)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Contains(t, err.Error(), "soloEndHobbs")
}

func TestCreditedTime(t *testing.T) {
	hobbs := dec("1.5")
	tach := dec("1.2")

	tests := []struct {
		method domain.TotalTimeMethod
		want   string
	}{
		{domain.TotalTimeHobbs, "1.5"},
		{domain.TotalTimeAirswitch, "1.5"},
		{domain.TotalTimeTacho, "1.2"},
		{domain.TotalTimeHobbsLess5, "1.425"},
		{domain.TotalTimeHobbsLess10, "1.35"},
		{domain.TotalTimeTachoLess5, "1.14"},
		{domain.TotalTimeTachoLess10, "1.08"},
		{domain.TotalTimeMethod("something else"), "1.5"}, // unknown falls back to hobbs
	}

	for _, tt := range tests {
		t.Run(string(tt.method), func(t *testing.T) {
			got := billing.CreditedTime(tt.method, hobbs, tach)
			assert.True(t, dec(tt.want).Equal(got), "want %s got %s", tt.want, got)
		})
	}
}

func TestComputeFlightTimes_SoloFlight(t *testing.T) {
	readings := domain.MeterReadings{
		HobbsStart: dec("1250.0"), HobbsEnd: dec("1251.5"),
		TachStart: dec("1100.0"), TachEnd: dec("1101.2"),
	}

	times, err := billing.ComputeFlightTimes(readings, domain.TotalTimeHobbsLess10, domain.MeterHobbs, domain.FlightSolo, dec("4210.5"))
	require.NoError(t, err)

	assert.True(t, dec("1.5").Equal(times.HobbsTime))
	assert.True(t, dec("1.2").Equal(times.TachTime))
	assert.True(t, dec("1.35").Equal(times.CreditedTime))
	assert.True(t, times.DualTime.IsZero())
	assert.True(t, dec("1.5").Equal(times.SoloTime))
	assert.True(t, dec("4211.85").Equal(times.TotalHoursEnd), "start + credited, got %s", times.TotalHoursEnd)
}

func TestComputeFlightTimes_DualWithSoloContinuation(t *testing.T) {
	readings := domain.MeterReadings{
		HobbsStart: dec("1250.0"), HobbsEnd: dec("1251.0"),
		TachStart: dec("1100.0"), TachEnd: dec("1100.9"),
		SoloEndHobbs: ptr(dec("1251.8")),
	}

	times, err := billing.ComputeFlightTimes(readings, domain.TotalTimeHobbs, domain.MeterHobbs, domain.FlightDual, dec("100"))
	require.NoError(t, err)

	assert.True(t, dec("1.0").Equal(times.DualTime))
	assert.True(t, dec("0.8").Equal(times.SoloTime), "solo segment is soloEndHobbs - hobbsEnd")
}

func TestComputeFlightTimes_TachoMeterBillsTachTime(t *testing.T) {
	readings := domain.MeterReadings{
		HobbsStart: dec("1250.0"), HobbsEnd: dec("1251.5"),
		TachStart: dec("1100.0"), TachEnd: dec("1101.2"),
	}

	times, err := billing.ComputeFlightTimes(readings, domain.TotalTimeTacho, domain.MeterTacho, domain.FlightSolo, dec("0"))
	require.NoError(t, err)

	assert.True(t, dec("1.2").Equal(times.SoloTime), "billable time follows the billing meter")
}

func TestComputeFlightTimes_TrialBillsAsDual(t *testing.T) {
	readings := domain.MeterReadings{
		HobbsStart: dec("100.0"), HobbsEnd: dec("100.5"),
		TachStart: dec("90.0"), TachEnd: dec("90.4"),
	}

	times, err := billing.ComputeFlightTimes(readings, domain.TotalTimeHobbs, domain.MeterHobbs, domain.FlightTrial, dec("0"))
	require.NoError(t, err)

	assert.True(t, dec("0.5").Equal(times.DualTime))
	assert.True(t, times.SoloTime.IsZero())
}

func TestComputeFlightTimes_InvalidReadings(t *testing.T) {
	readings := domain.MeterReadings{
		HobbsStart: dec("1251.5"), HobbsEnd: dec("1250.0"),
		TachStart: dec("1100.0"), TachEnd: dec("1101.2"),
	}

	_, err := billing.ComputeFlightTimes(readings, domain.TotalTimeHobbs, domain.MeterHobbs, domain.FlightSolo, dec("0"))
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func standardRates() domain.ResolvedRates {
	return domain.ResolvedRates{
		AircraftRate:   dec("185.50"),
		BillingMeter:   domain.MeterHobbs,
		InstructorRate: dec("95"),
		SoloRate:       dec("160"),
		TaxRate:        domain.EffectiveTaxRate{Rate: dec("0.15"), Source: domain.TaxSourceOrgDefault},
	}
}

func TestBuildFlightItems_DualFlight(t *testing.T) {
	times := domain.FlightTimes{DualTime: dec("1.3"), SoloTime: decimal.Zero}

	items := billing.BuildFlightItems(times, domain.FlightDual, standardRates())

	require.Len(t, items, 2)
	assert.Equal(t, billing.ItemDescAircraft, items[0].Description)
	assert.True(t, dec("241.15").Equal(items[0].Amount), "1.3 * 185.50")
	assert.Equal(t, billing.ItemDescInstructor, items[1].Description)
	assert.True(t, dec("123.50").Equal(items[1].Amount), "1.3 * 95")
}

func TestBuildFlightItems_DualWithSoloContinuation(t *testing.T) {
	times := domain.FlightTimes{DualTime: dec("1.0"), SoloTime: dec("0.8")}

	items := billing.BuildFlightItems(times, domain.FlightDual, standardRates())

	require.Len(t, items, 3)
	assert.Equal(t, billing.ItemDescSolo, items[2].Description)
	assert.True(t, dec("128").Equal(items[2].Amount), "solo segment at the solo rate")
}

func TestBuildFlightItems_SoloFlightSkipsInstructor(t *testing.T) {
	times := domain.FlightTimes{DualTime: decimal.Zero, SoloTime: dec("1.5")}

	items := billing.BuildFlightItems(times, domain.FlightSolo, standardRates())

	require.Len(t, items, 1)
	assert.Equal(t, billing.ItemDescSolo, items[0].Description)
}

func TestBuildFlightItems_ZeroInstructorRateOmitsLine(t *testing.T) {
	rates := standardRates()
	rates.InstructorRate = decimal.Zero
	times := domain.FlightTimes{DualTime: dec("1.3")}

	items := billing.BuildFlightItems(times, domain.FlightDual, rates)

	require.Len(t, items, 1)
	assert.Equal(t, billing.ItemDescAircraft, items[0].Description)
}
