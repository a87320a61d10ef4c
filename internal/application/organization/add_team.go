package organization

import (
	"context"

	"github.com/7Spade/tortoise/internal/application/ports"
	"github.com/7Spade/tortoise/internal/domain"
	domerrors "github.com/7Spade/tortoise/internal/domain/errors"
	orgdomain "github.com/7Spade/tortoise/internal/domain/organization"
)

// loadOrganization fetches the aggregate or fails with NotFoundError.
func loadOrganization(ctx context.Context, repo ports.IdentityRepository, id domain.OrganizationID) (orgdomain.Organization, error) {
	org, err := repo.FindOrganizationByID(ctx, id)
	if err != nil {
		return orgdomain.Organization{}, err
	}
	if org == nil {
		return orgdomain.Organization{}, domerrors.NewNotFound("organization", id.String())
	}
	return *org, nil
}

// saveAndPublish persists the updated aggregate value and publishes its
// pending events. An unchanged version means the mutator took its no-op
// path: nothing is written or published. The version comparison matters
// because AddMember bumps the version without an event, so an empty event
// buffer alone cannot distinguish a no-op from a roster change — and the
// upsert's CAS rejects writes at an unmoved version.
func saveAndPublish(ctx context.Context, repo ports.IdentityRepository, publisher ports.EventPublisher, prev, next orgdomain.Organization) error {
	if next.Version() == prev.Version() {
		return nil
	}
	if err := repo.SaveOrganization(ctx, next.Snapshot()); err != nil {
		return err
	}
	return publisher.Publish(ctx, next.PullEvents())
}

// AddTeamInput names the organization, the new team, and its seed members.
type AddTeamInput struct {
	OrganizationID   domain.OrganizationID
	TeamName         domain.DisplayName
	InitialMemberIDs []domain.UserID
}

// AddTeamResult returns the updated aggregate and the generated team ID.
type AddTeamResult struct {
	Organization orgdomain.Organization
	TeamID       domain.TeamID
}

// AddTeam creates a team inside an organization. Seed members must already
// be organization members.
type AddTeam struct {
	identities ports.IdentityRepository
	publisher  ports.EventPublisher
}

// NewAddTeam builds the use case.
func NewAddTeam(identities ports.IdentityRepository, publisher ports.EventPublisher) *AddTeam {
	return &AddTeam{identities: identities, publisher: publisher}
}

// Execute appends the team and persists the updated organization.
func (uc *AddTeam) Execute(ctx context.Context, input AddTeamInput) (*AddTeamResult, error) {
	org, err := loadOrganization(ctx, uc.identities, input.OrganizationID)
	if err != nil {
		return nil, err
	}
	teamID := domain.NewTeamID()
	next, err := org.AddTeam(teamID, input.TeamName, input.InitialMemberIDs)
	if err != nil {
		return nil, err
	}
	if err := saveAndPublish(ctx, uc.identities, uc.publisher, org, next); err != nil {
		return nil, err
	}
	return &AddTeamResult{Organization: next, TeamID: teamID}, nil
}
