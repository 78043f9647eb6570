package dto

import (
	"time"

	"github.com/aerodesk/flightops_backend/internal/core/domain"
)

// RenewMembershipRequest renews (or first purchases) a membership.
// ExpiryOverride, when supplied, wins over the configured year policy.
type RenewMembershipRequest struct {
	UserID           string     `json:"userID" binding:"required"`
	MembershipTypeID string     `json:"membershipTypeID" binding:"required"`
	StartDate        *time.Time `json:"startDate"`
	ExpiryOverride   *time.Time `json:"expiryOverride"`
	CreateInvoice    bool       `json:"createInvoice"`
}

// MembershipResponse mirrors domain.Membership plus the derived status.
type MembershipResponse struct {
	MembershipID     string                  `json:"membershipID"`
	UserID           string                  `json:"userID"`
	MembershipTypeID string                  `json:"membershipTypeID"`
	StartDate        time.Time               `json:"startDate"`
	ExpiryDate       time.Time               `json:"expiryDate"`
	GracePeriodDays  int                     `json:"gracePeriodDays"`
	InvoiceID        *string                 `json:"invoiceID,omitempty"`
	RenewalOf        *string                 `json:"renewalOf,omitempty"`
	IsActive         bool                    `json:"isActive"`
	Status           domain.MembershipStatus `json:"status"`
}

// RenewMembershipResponse reports the new membership; Warning carries the
// best-effort fee-invoice failure, which never fails the renewal itself.
type RenewMembershipResponse struct {
	Membership MembershipResponse `json:"membership"`
	Invoice    *InvoiceResponse   `json:"invoice,omitempty"`
	Warning    string             `json:"warning,omitempty"`
}

// ToMembershipResponse converts a domain.Membership with its derived status.
func ToMembershipResponse(m *domain.Membership, status domain.MembershipStatus) MembershipResponse {
	return MembershipResponse{
		MembershipID:     m.MembershipID,
		UserID:           m.UserID,
		MembershipTypeID: m.MembershipTypeID,
		StartDate:        m.StartDate,
		ExpiryDate:       m.ExpiryDate,
		GracePeriodDays:  m.GracePeriodDays,
		InvoiceID:        m.InvoiceID,
		RenewalOf:        m.RenewalOf,
		IsActive:         m.IsActive,
		Status:           status,
	}
}
