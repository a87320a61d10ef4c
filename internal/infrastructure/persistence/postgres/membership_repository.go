package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/7Spade/tortoise/internal/application/ports"
	"github.com/7Spade/tortoise/internal/domain"
	domerrors "github.com/7Spade/tortoise/internal/domain/errors"
	"github.com/7Spade/tortoise/internal/domain/membership"
	"github.com/7Spade/tortoise/internal/domain/organization"
)

const (
	getMembershipSQL = `SELECT id, organization_id, user_id, role, status, version
FROM memberships WHERE id = $1`

	getMembershipByOrgUserSQL = `SELECT id, organization_id, user_id, role, status, version
FROM memberships WHERE organization_id = $1 AND user_id = $2`

	listMembershipsByOrgSQL = `SELECT id, organization_id, user_id, role, status, version
FROM memberships WHERE organization_id = $1 ORDER BY id`

	upsertMembershipSQL = `INSERT INTO memberships (id, organization_id, user_id, role, status, version)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (id) DO UPDATE
SET role = EXCLUDED.role,
    status = EXCLUDED.status,
    version = EXCLUDED.version
WHERE memberships.version < EXCLUDED.version`
)

// MembershipRepository persists membership aggregates and reads the
// organization rosters the membership use cases consult.
type MembershipRepository struct {
	pool    *pgxpool.Pool
	factory *membership.Factory
}

// NewMembershipRepository builds the repository.
func NewMembershipRepository(pool *pgxpool.Pool) *MembershipRepository {
	return &MembershipRepository{pool: pool, factory: membership.NewFactory()}
}

// GetTeams lists the organization's team roster.
func (r *MembershipRepository) GetTeams(ctx context.Context, orgID domain.OrganizationID) ([]organization.TeamState, error) {
	rows, err := r.pool.Query(ctx, listOrgTeamsSQL, orgID.UUID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []organization.TeamState
	for rows.Next() {
		t, err := scanTeamRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// GetPartners lists the organization's partner roster.
func (r *MembershipRepository) GetPartners(ctx context.Context, orgID domain.OrganizationID) ([]organization.PartnerState, error) {
	rows, err := r.pool.Query(ctx, listOrgPartnersSQL, orgID.UUID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []organization.PartnerState
	for rows.Next() {
		p, err := scanPartnerRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// GetOrganizationMemberships lists every membership in the organization.
func (r *MembershipRepository) GetOrganizationMemberships(ctx context.Context, orgID domain.OrganizationID) ([]*membership.Membership, error) {
	rows, err := r.pool.Query(ctx, listMembershipsByOrgSQL, orgID.UUID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*membership.Membership
	for rows.Next() {
		m, err := r.scanMembership(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// GetByID returns the membership or nil when absent.
func (r *MembershipRepository) GetByID(ctx context.Context, id domain.MembershipID) (*membership.Membership, error) {
	m, err := r.scanMembership(r.pool.QueryRow(ctx, getMembershipSQL, id.UUID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

// GetByOrganizationAndUser returns the user's membership in the organization
// or nil when absent.
func (r *MembershipRepository) GetByOrganizationAndUser(ctx context.Context, orgID domain.OrganizationID, userID domain.UserID) (*membership.Membership, error) {
	m, err := r.scanMembership(r.pool.QueryRow(ctx, getMembershipByOrgUserSQL, orgID.UUID, userID.UUID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

// Save upserts the snapshot with a compare-and-swap on version.
func (r *MembershipRepository) Save(ctx context.Context, snapshot membership.Snapshot) error {
	tag, err := r.pool.Exec(ctx, upsertMembershipSQL,
		snapshot.ID.UUID,
		snapshot.OrganizationID.UUID,
		snapshot.UserID.UUID,
		snapshot.Role.String(),
		snapshot.Status.String(),
		snapshot.Version,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domerrors.NewConcurrentModification("membership", snapshot.ID.String(), snapshot.Version)
	}
	return nil
}

func (r *MembershipRepository) scanMembership(row pgx.Row) (*membership.Membership, error) {
	var (
		id      uuid.UUID
		orgID   uuid.UUID
		userID  uuid.UUID
		role    string
		status  string
		version int64
	)
	if err := row.Scan(&id, &orgID, &userID, &role, &status, &version); err != nil {
		return nil, err
	}
	membershipID, err := domain.ParseMembershipID(id.String())
	if err != nil {
		return nil, err
	}
	organizationID, err := domain.ParseOrganizationID(orgID.String())
	if err != nil {
		return nil, err
	}
	uID, err := domain.ParseUserID(userID.String())
	if err != nil {
		return nil, err
	}
	return r.factory.Reconstitute(membership.Snapshot{
		ID:             membershipID,
		OrganizationID: organizationID,
		UserID:         uID,
		Role:           domain.OrganizationRole(role),
		Status:         domain.MembershipStatus(status),
		Version:        version,
	})
}

// Ensure MembershipRepository implements ports.MembershipRepository.
var _ ports.MembershipRepository = (*MembershipRepository)(nil)
