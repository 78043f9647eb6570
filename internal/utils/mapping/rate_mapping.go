package mapping

import (
	"github.com/aerodesk/flightops_backend/internal/core/domain"
	"github.com/aerodesk/flightops_backend/internal/models"
)

// ToDomainAircraftRate converts a model AircraftRate to a domain AircraftRate
func ToDomainAircraftRate(m models.AircraftRate) domain.AircraftRate {
	return domain.AircraftRate{
		RateID:       m.RateID,
		AircraftID:   m.AircraftID,
		FlightTypeID: m.FlightTypeID,
		RatePerHour:  m.RatePerHour,
		BillingMeter: domain.BillingMeter(m.BillingMeter),
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainInstructorRate converts a model InstructorRate to a domain InstructorRate
func ToDomainInstructorRate(m models.InstructorRate) domain.InstructorRate {
	return domain.InstructorRate{
		RateID:       m.RateID,
		InstructorID: m.InstructorID,
		RatePerHour:  m.RatePerHour,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainLandingFee converts a model LandingFee to a domain LandingFee
func ToDomainLandingFee(m models.LandingFee) domain.LandingFee {
	return domain.LandingFee{
		FeeID:          m.FeeID,
		ChargeableID:   m.ChargeableID,
		AircraftTypeID: m.AircraftTypeID,
		Fee:            m.Fee,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainChargeable converts a model Chargeable to a domain Chargeable
func ToDomainChargeable(m models.Chargeable) domain.Chargeable {
	return domain.Chargeable{
		ChargeableID: m.ChargeableID,
		Name:         m.Name,
		IsTaxable:    m.IsTaxable,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}
