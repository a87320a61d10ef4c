package organization

import (
	"context"

	"github.com/7Spade/tortoise/internal/application/ports"
	"github.com/7Spade/tortoise/internal/domain"
	orgdomain "github.com/7Spade/tortoise/internal/domain/organization"
)

// AddTeamMemberInput identifies the team and the member to add.
type AddTeamMemberInput struct {
	OrganizationID domain.OrganizationID
	TeamID         domain.TeamID
	MemberID       domain.UserID
}

// AddTeamMemberResult carries the updated aggregate.
type AddTeamMemberResult struct {
	Organization orgdomain.Organization
}

// AddTeamMember places an existing organization member on a team. Adding a
// member who is already on the team is a no-op.
type AddTeamMember struct {
	identities ports.IdentityRepository
	publisher  ports.EventPublisher
}

// NewAddTeamMember builds the use case.
func NewAddTeamMember(identities ports.IdentityRepository, publisher ports.EventPublisher) *AddTeamMember {
	return &AddTeamMember{identities: identities, publisher: publisher}
}

// Execute adds the member and persists the updated organization.
func (uc *AddTeamMember) Execute(ctx context.Context, input AddTeamMemberInput) (*AddTeamMemberResult, error) {
	org, err := loadOrganization(ctx, uc.identities, input.OrganizationID)
	if err != nil {
		return nil, err
	}
	next, err := org.AddMemberToTeam(input.TeamID, input.MemberID)
	if err != nil {
		return nil, err
	}
	if err := saveAndPublish(ctx, uc.identities, uc.publisher, org, next); err != nil {
		return nil, err
	}
	return &AddTeamMemberResult{Organization: next}, nil
}
