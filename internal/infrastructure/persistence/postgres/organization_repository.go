package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/7Spade/tortoise/internal/domain"
	domerrors "github.com/7Spade/tortoise/internal/domain/errors"
	"github.com/7Spade/tortoise/internal/domain/organization"
)

const (
	listOrganizationsSQL = `SELECT id, name, slug, member_ids, version
FROM organizations ORDER BY slug`

	getOrganizationSQL = `SELECT id, name, slug, member_ids, version
FROM organizations WHERE id = $1`

	upsertOrganizationSQL = `INSERT INTO organizations (id, name, slug, member_ids, version)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (id) DO UPDATE
SET name = EXCLUDED.name,
    slug = EXCLUDED.slug,
    member_ids = EXCLUDED.member_ids,
    version = EXCLUDED.version
WHERE organizations.version < EXCLUDED.version`

	deleteOrganizationSQL = `DELETE FROM organizations WHERE id = $1`

	listOrgTeamsSQL = `SELECT id, name, member_ids
FROM organization_teams WHERE organization_id = $1 ORDER BY id`

	deleteOrgTeamsSQL = `DELETE FROM organization_teams WHERE organization_id = $1`

	insertOrgTeamSQL = `INSERT INTO organization_teams (id, organization_id, name, member_ids)
VALUES ($1, $2, $3, $4)`

	listOrgPartnersSQL = `SELECT id, name, access_level, member_ids
FROM organization_partners WHERE organization_id = $1 ORDER BY id`

	deleteOrgPartnersSQL = `DELETE FROM organization_partners WHERE organization_id = $1`

	insertOrgPartnerSQL = `INSERT INTO organization_partners (id, organization_id, name, access_level, member_ids)
VALUES ($1, $2, $3, $4, $5)`
)

// FindOrganizations lists every organization with its full roster.
func (r *IdentityRepository) FindOrganizations(ctx context.Context) ([]organization.Organization, error) {
	rows, err := r.pool.Query(ctx, listOrganizationsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var params []organization.ReconstituteParams
	for rows.Next() {
		p, err := scanOrganizationRow(rows)
		if err != nil {
			return nil, err
		}
		params = append(params, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	out := make([]organization.Organization, 0, len(params))
	for _, p := range params {
		p.Teams, err = r.loadTeams(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		p.Partners, err = r.loadPartners(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		org, err := organization.Reconstitute(p)
		if err != nil {
			return nil, err
		}
		out = append(out, org)
	}
	return out, nil
}

// FindOrganizationByID returns the organization or nil when absent.
func (r *IdentityRepository) FindOrganizationByID(ctx context.Context, id domain.OrganizationID) (*organization.Organization, error) {
	p, err := scanOrganizationRow(r.pool.QueryRow(ctx, getOrganizationSQL, id.UUID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	p.Teams, err = r.loadTeams(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	p.Partners, err = r.loadPartners(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	org, err := organization.Reconstitute(p)
	if err != nil {
		return nil, err
	}
	return &org, nil
}

// SaveOrganization writes the full snapshot in one transaction. The root row
// is compare-and-swapped on version; the team and partner rosters are
// rewritten wholesale.
func (r *IdentityRepository) SaveOrganization(ctx context.Context, snapshot organization.ReconstituteParams) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, upsertOrganizationSQL,
		snapshot.ID.UUID,
		snapshot.Name.String(),
		snapshot.Slug.String(),
		userIDsToStrings(snapshot.MemberIDs),
		snapshot.Version,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domerrors.NewConcurrentModification("organization", snapshot.ID.String(), snapshot.Version)
	}

	if _, err := tx.Exec(ctx, deleteOrgTeamsSQL, snapshot.ID.UUID); err != nil {
		return err
	}
	for _, t := range snapshot.Teams {
		if _, err := tx.Exec(ctx, insertOrgTeamSQL, t.ID.UUID, snapshot.ID.UUID, t.Name.String(), userIDsToStrings(t.MemberIDs)); err != nil {
			return err
		}
	}
	if _, err := tx.Exec(ctx, deleteOrgPartnersSQL, snapshot.ID.UUID); err != nil {
		return err
	}
	for _, p := range snapshot.Partners {
		if _, err := tx.Exec(ctx, insertOrgPartnerSQL, p.ID.UUID, snapshot.ID.UUID, p.Name.String(), p.AccessLevel.String(), userIDsToStrings(p.MemberIDs)); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

// DeleteOrganization removes the organization. Roster rows cascade.
func (r *IdentityRepository) DeleteOrganization(ctx context.Context, id domain.OrganizationID) error {
	_, err := r.pool.Exec(ctx, deleteOrganizationSQL, id.UUID)
	return err
}

func (r *IdentityRepository) loadTeams(ctx context.Context, orgID domain.OrganizationID) ([]organization.TeamState, error) {
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

func (r *IdentityRepository) loadPartners(ctx context.Context, orgID domain.OrganizationID) ([]organization.PartnerState, error) {
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

func scanOrganizationRow(row pgx.Row) (organization.ReconstituteParams, error) {
	var (
		id        uuid.UUID
		rawName   string
		rawSlug   string
		memberIDs []string
		version   int64
	)
	if err := row.Scan(&id, &rawName, &rawSlug, &memberIDs, &version); err != nil {
		return organization.ReconstituteParams{}, err
	}
	orgID, err := domain.ParseOrganizationID(id.String())
	if err != nil {
		return organization.ReconstituteParams{}, err
	}
	name, err := domain.NewOrganizationName(rawName)
	if err != nil {
		return organization.ReconstituteParams{}, err
	}
	slug, err := domain.NewOrganizationSlug(rawSlug)
	if err != nil {
		return organization.ReconstituteParams{}, err
	}
	members, err := stringsToUserIDs(memberIDs)
	if err != nil {
		return organization.ReconstituteParams{}, err
	}
	return organization.ReconstituteParams{
		ID:        orgID,
		Name:      name,
		Slug:      slug,
		MemberIDs: members,
		Version:   version,
	}, nil
}

func scanTeamRow(row pgx.Row) (organization.TeamState, error) {
	var (
		id        uuid.UUID
		rawName   string
		memberIDs []string
	)
	if err := row.Scan(&id, &rawName, &memberIDs); err != nil {
		return organization.TeamState{}, err
	}
	teamID, err := domain.ParseTeamID(id.String())
	if err != nil {
		return organization.TeamState{}, err
	}
	name, err := domain.NewDisplayName(rawName)
	if err != nil {
		return organization.TeamState{}, err
	}
	members, err := stringsToUserIDs(memberIDs)
	if err != nil {
		return organization.TeamState{}, err
	}
	return organization.TeamState{ID: teamID, Name: name, MemberIDs: members}, nil
}

func scanPartnerRow(row pgx.Row) (organization.PartnerState, error) {
	var (
		id          uuid.UUID
		rawName     string
		accessLevel string
		memberIDs   []string
	)
	if err := row.Scan(&id, &rawName, &accessLevel, &memberIDs); err != nil {
		return organization.PartnerState{}, err
	}
	partnerID, err := domain.ParsePartnerID(id.String())
	if err != nil {
		return organization.PartnerState{}, err
	}
	name, err := domain.NewDisplayName(rawName)
	if err != nil {
		return organization.PartnerState{}, err
	}
	members, err := stringsToUserIDs(memberIDs)
	if err != nil {
		return organization.PartnerState{}, err
	}
	return organization.PartnerState{
		ID:          partnerID,
		Name:        name,
		AccessLevel: domain.PartnerAccessLevel(accessLevel),
		MemberIDs:   members,
	}, nil
}
