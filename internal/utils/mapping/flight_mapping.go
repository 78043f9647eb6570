package mapping

import (
	"github.com/aerodesk/flightops_backend/internal/core/domain"
	"github.com/aerodesk/flightops_backend/internal/models"
)

// ToModelFlightLog converts a domain FlightLog to a model FlightLog
func ToModelFlightLog(d domain.FlightLog) models.FlightLog {
	return models.FlightLog{
		FlightLogID:     d.FlightLogID,
		BookingID:       d.BookingID,
		AircraftID:      d.AircraftID,
		PilotUserID:     d.PilotUserID,
		InstructorID:    d.InstructorID,
		FlightTypeID:    d.FlightTypeID,
		HobbsStart:      d.Readings.HobbsStart,
		HobbsEnd:        d.Readings.HobbsEnd,
		TachStart:       d.Readings.TachStart,
		TachEnd:         d.Readings.TachEnd,
		SoloEndHobbs:    d.Readings.SoloEndHobbs,
		HobbsTime:       d.Times.HobbsTime,
		TachTime:        d.Times.TachTime,
		CreditedTime:    d.Times.CreditedTime,
		DualTime:        d.Times.DualTime,
		SoloTime:        d.Times.SoloTime,
		TotalHoursStart: d.Times.TotalHoursStart,
		TotalHoursEnd:   d.Times.TotalHoursEnd,
		FlightDate:      d.FlightDate,
		Completed:       d.Completed,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainFlightLog converts a model FlightLog to a domain FlightLog
func ToDomainFlightLog(m models.FlightLog) domain.FlightLog {
	return domain.FlightLog{
		FlightLogID:  m.FlightLogID,
		BookingID:    m.BookingID,
		AircraftID:   m.AircraftID,
		PilotUserID:  m.PilotUserID,
		InstructorID: m.InstructorID,
		FlightTypeID: m.FlightTypeID,
		Readings: domain.MeterReadings{
			HobbsStart:   m.HobbsStart,
			HobbsEnd:     m.HobbsEnd,
			TachStart:    m.TachStart,
			TachEnd:      m.TachEnd,
			SoloEndHobbs: m.SoloEndHobbs,
		},
		Times: domain.FlightTimes{
			HobbsTime:       m.HobbsTime,
			TachTime:        m.TachTime,
			CreditedTime:    m.CreditedTime,
			DualTime:        m.DualTime,
			SoloTime:        m.SoloTime,
			TotalHoursStart: m.TotalHoursStart,
			TotalHoursEnd:   m.TotalHoursEnd,
		},
		FlightDate:  m.FlightDate,
		Completed:   m.Completed,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelBooking converts a domain Booking to a model Booking
func ToModelBooking(d domain.Booking) models.Booking {
	return models.Booking{
		BookingID:    d.BookingID,
		UserID:       d.UserID,
		AircraftID:   d.AircraftID,
		InstructorID: d.InstructorID,
		FlightTypeID: d.FlightTypeID,
		StartTime:    d.StartTime,
		EndTime:      d.EndTime,
		InvoiceID:    d.InvoiceID,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainBooking converts a model Booking to a domain Booking
func ToDomainBooking(m models.Booking) domain.Booking {
	return domain.Booking{
		BookingID:    m.BookingID,
		UserID:       m.UserID,
		AircraftID:   m.AircraftID,
		InstructorID: m.InstructorID,
		FlightTypeID: m.FlightTypeID,
		StartTime:    m.StartTime,
		EndTime:      m.EndTime,
		InvoiceID:    m.InvoiceID,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAircraft converts a model Aircraft to a domain Aircraft
func ToDomainAircraft(m models.Aircraft) domain.Aircraft {
	return domain.Aircraft{
		AircraftID:      m.AircraftID,
		Registration:    m.Registration,
		AircraftTypeID:  m.AircraftTypeID,
		TotalTimeMethod: domain.TotalTimeMethod(m.TotalTimeMethod),
		TotalHours:      m.TotalHours,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainFlightType converts a model FlightType to a domain FlightType
func ToDomainFlightType(m models.FlightType) domain.FlightType {
	return domain.FlightType{
		FlightTypeID:   m.FlightTypeID,
		Name:           m.Name,
		Classification: domain.FlightClassification(m.Classification),
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}
