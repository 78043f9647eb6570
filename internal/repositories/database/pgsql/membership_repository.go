package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/aerodesk/flightops_backend/internal/apperrors"
	"github.com/aerodesk/flightops_backend/internal/core/domain"
	portsrepo "github.com/aerodesk/flightops_backend/internal/core/ports/repositories"
	"github.com/aerodesk/flightops_backend/internal/models"
	"github.com/aerodesk/flightops_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxMembershipRepository struct {
	BaseRepository
}

// newPgxMembershipRepository creates a new repository for membership data.
func newPgxMembershipRepository(pool *pgxpool.Pool) portsrepo.MembershipRepositoryFacade {
	return &PgxMembershipRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxMembershipRepository implements portsrepo.MembershipRepositoryFacade
var _ portsrepo.MembershipRepositoryFacade = (*PgxMembershipRepository)(nil)

const membershipColumns = `membership_id, user_id, membership_type_id, start_date, expiry_date,
	grace_period_days, invoice_id, renewal_of, is_active,
	created_at, created_by, last_updated_at, last_updated_by`

func scanMembership(row rowScanner) (models.Membership, error) {
	var m models.Membership
	err := row.Scan(
		&m.MembershipID,
		&m.UserID,
		&m.MembershipTypeID,
		&m.StartDate,
		&m.ExpiryDate,
		&m.GracePeriodDays,
		&m.InvoiceID,
		&m.RenewalOf,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// FindMembershipByID retrieves a membership by its ID.
func (r *PgxMembershipRepository) FindMembershipByID(ctx context.Context, membershipID string) (*domain.Membership, error) {
	query := `SELECT ` + membershipColumns + ` FROM memberships WHERE membership_id = $1;`
	m, err := scanMembership(r.Pool.QueryRow(ctx, query, membershipID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find membership by ID "+membershipID, err)
	}
	d := mapping.ToDomainMembership(m)
	return &d, nil
}

// FindActiveMembership returns the member's single active membership row.
func (r *PgxMembershipRepository) FindActiveMembership(ctx context.Context, userID string) (*domain.Membership, error) {
	query := `SELECT ` + membershipColumns + ` FROM memberships WHERE user_id = $1 AND is_active = TRUE;`
	m, err := scanMembership(r.Pool.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find active membership for user "+userID, err)
	}
	d := mapping.ToDomainMembership(m)
	return &d, nil
}

// FindMembershipType retrieves a membership type by its ID.
func (r *PgxMembershipRepository) FindMembershipType(ctx context.Context, membershipTypeID string) (*domain.MembershipType, error) {
	query := `
		SELECT membership_type_id, name, fee, grace_period_days,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM membership_types
		WHERE membership_type_id = $1;
	`
	var m models.MembershipType
	err := r.Pool.QueryRow(ctx, query, membershipTypeID).Scan(
		&m.MembershipTypeID,
		&m.Name,
		&m.Fee,
		&m.GracePeriodDays,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find membership type by ID "+membershipTypeID, err)
	}
	d := mapping.ToDomainMembershipType(m)
	return &d, nil
}

// SaveRenewal inserts the new membership and deactivates the row it supersedes
// in one transaction, preserving the one-active-per-member convention.
func (r *PgxMembershipRepository) SaveRenewal(ctx context.Context, membership domain.Membership) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelMembership(membership)

	if m.RenewalOf != nil {
		cmdTag, err := tx.Exec(ctx, `
			UPDATE memberships
			SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
			WHERE membership_id = $1 AND is_active = TRUE;`,
			*m.RenewalOf, m.CreatedAt, m.CreatedBy,
		)
		if err != nil {
			return apperrors.NewAppError(500, "failed to deactivate membership "+*m.RenewalOf, err)
		}
		if cmdTag.RowsAffected() == 0 {
			return apperrors.NewNotFoundError("active membership " + *m.RenewalOf + " not found for renewal")
		}
	}

	query := `
		INSERT INTO memberships (` + membershipColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err = tx.Exec(ctx, query,
		m.MembershipID,
		m.UserID,
		m.MembershipTypeID,
		m.StartDate,
		m.ExpiryDate,
		m.GracePeriodDays,
		m.InvoiceID,
		m.RenewalOf,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert membership "+m.MembershipID, err)
	}

	return r.Commit(ctx, tx)
}

// LinkInvoice attaches a later-created fee invoice to the membership.
func (r *PgxMembershipRepository) LinkInvoice(ctx context.Context, membershipID, invoiceID string, actorUserID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `
		UPDATE memberships
		SET invoice_id = $2, last_updated_at = $3, last_updated_by = $4
		WHERE membership_id = $1;`,
		membershipID, invoiceID, time.Now().UTC(), actorUserID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to link invoice to membership "+membershipID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("membership " + membershipID + " not found for invoice link")
	}
	return nil
}
