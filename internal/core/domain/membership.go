package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MembershipYearPolicy controls how expiry dates are computed.
type MembershipYearPolicy string

const (
	// MembershipYearFixed expires memberships on a fixed anniversary date
	// (e.g. every 1 April) regardless of purchase date.
	MembershipYearFixed MembershipYearPolicy = "fixed"
	// MembershipYearRolling expires memberships twelve months after the start date.
	MembershipYearRolling MembershipYearPolicy = "rolling"
)

// MembershipStatus is derived, never stored.
type MembershipStatus string

const (
	MembershipUnpaid  MembershipStatus = "unpaid"
	MembershipActive  MembershipStatus = "active"
	MembershipGrace   MembershipStatus = "grace"
	MembershipExpired MembershipStatus = "expired"
)

// MembershipType is the purchasable product (full member, student, social...).
type MembershipType struct {
	MembershipTypeID string          `json:"membershipTypeID"`
	Name             string          `json:"name"`
	Fee              decimal.Decimal `json:"fee"`
	GracePeriodDays  int             `json:"gracePeriodDays"`
	AuditFields
}

// Membership is one membership year for a member. Exactly one membership per
// member is active at a time; renewal deactivates the prior row and links the
// new one back via RenewalOf.
type Membership struct {
	MembershipID     string     `json:"membershipID"`
	UserID           string     `json:"userID"`
	MembershipTypeID string     `json:"membershipTypeID"`
	StartDate        time.Time  `json:"startDate"`
	ExpiryDate       time.Time  `json:"expiryDate"`
	GracePeriodDays  int        `json:"gracePeriodDays"`
	InvoiceID        *string    `json:"invoiceID,omitempty"`
	RenewalOf        *string    `json:"renewalOf,omitempty"`
	IsActive         bool       `json:"isActive"`
	AuditFields
}

// StatusAt derives the membership status at the given instant. invoiceUnpaid
// reports whether the linked invoice (if any) is still unsettled.
func (m Membership) StatusAt(now time.Time, invoiceUnpaid bool) MembershipStatus {
	if m.InvoiceID != nil && invoiceUnpaid {
		return MembershipUnpaid
	}
	if !now.After(m.ExpiryDate) {
		return MembershipActive
	}
	graceEnd := m.ExpiryDate.AddDate(0, 0, m.GracePeriodDays)
	if !now.After(graceEnd) {
		return MembershipGrace
	}
	return MembershipExpired
}
