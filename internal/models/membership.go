package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Membership is the memberships table row.
type Membership struct {
	MembershipID     string     `json:"membershipID" db:"membership_id"`
	UserID           string     `json:"userID" db:"user_id"`
	MembershipTypeID string     `json:"membershipTypeID" db:"membership_type_id"`
	StartDate        time.Time  `json:"startDate" db:"start_date"`
	ExpiryDate       time.Time  `json:"expiryDate" db:"expiry_date"`
	GracePeriodDays  int        `json:"gracePeriodDays" db:"grace_period_days"`
	InvoiceID        *string    `json:"invoiceID" db:"invoice_id"`
	RenewalOf        *string    `json:"renewalOf" db:"renewal_of"`
	IsActive         bool       `json:"isActive" db:"is_active"`
	AuditFields
}

// MembershipType is the membership_types table row.
type MembershipType struct {
	MembershipTypeID string          `json:"membershipTypeID" db:"membership_type_id"`
	Name             string          `json:"name" db:"name"`
	Fee              decimal.Decimal `json:"fee" db:"fee"`
	GracePeriodDays  int             `json:"gracePeriodDays" db:"grace_period_days"`
	AuditFields
}
