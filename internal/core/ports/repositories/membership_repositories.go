package repositories

import (
	"context"

	"github.com/aerodesk/flightops_backend/internal/core/domain"
)

// MembershipRepositoryFacade persists memberships and their renewal chain.
type MembershipRepositoryFacade interface {
	FindMembershipByID(ctx context.Context, membershipID string) (*domain.Membership, error)

	// FindActiveMembership returns the member's single active membership row.
	FindActiveMembership(ctx context.Context, userID string) (*domain.Membership, error)

	FindMembershipType(ctx context.Context, membershipTypeID string) (*domain.MembershipType, error)

	// SaveRenewal inserts the new membership and deactivates the row it
	// supersedes (when RenewalOf is set) in one transaction, preserving the
	// one-active-per-member convention.
	SaveRenewal(ctx context.Context, membership domain.Membership) error

	// LinkInvoice attaches a later-created fee invoice to the membership.
	LinkInvoice(ctx context.Context, membershipID, invoiceID string, actorUserID string) error
}
