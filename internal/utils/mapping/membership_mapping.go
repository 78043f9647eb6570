package mapping

import (
	"github.com/aerodesk/flightops_backend/internal/core/domain"
	"github.com/aerodesk/flightops_backend/internal/models"
)

// ToModelMembership converts a domain Membership to a model Membership
func ToModelMembership(d domain.Membership) models.Membership {
	return models.Membership{
		MembershipID:     d.MembershipID,
		UserID:           d.UserID,
		MembershipTypeID: d.MembershipTypeID,
		StartDate:        d.StartDate,
		ExpiryDate:       d.ExpiryDate,
		GracePeriodDays:  d.GracePeriodDays,
		InvoiceID:        d.InvoiceID,
		RenewalOf:        d.RenewalOf,
		IsActive:         d.IsActive,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainMembership converts a model Membership to a domain Membership
func ToDomainMembership(m models.Membership) domain.Membership {
	return domain.Membership{
		MembershipID:     m.MembershipID,
		UserID:           m.UserID,
		MembershipTypeID: m.MembershipTypeID,
		StartDate:        m.StartDate,
		ExpiryDate:       m.ExpiryDate,
		GracePeriodDays:  m.GracePeriodDays,
		InvoiceID:        m.InvoiceID,
		RenewalOf:        m.RenewalOf,
		IsActive:         m.IsActive,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainMembershipType converts a model MembershipType to a domain MembershipType
func ToDomainMembershipType(m models.MembershipType) domain.MembershipType {
	return domain.MembershipType{
		MembershipTypeID: m.MembershipTypeID,
		Name:             m.Name,
		Fee:              m.Fee,
		GracePeriodDays:  m.GracePeriodDays,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}
