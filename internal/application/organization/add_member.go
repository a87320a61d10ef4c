package organization

import (
	"context"

	"github.com/7Spade/tortoise/internal/application/ports"
	"github.com/7Spade/tortoise/internal/domain"
	orgdomain "github.com/7Spade/tortoise/internal/domain/organization"
)

// AddMemberInput identifies the organization and the joining user.
type AddMemberInput struct {
	OrganizationID domain.OrganizationID
	MemberID       domain.UserID
}

// AddMemberResult carries the updated aggregate.
type AddMemberResult struct {
	Organization orgdomain.Organization
}

// AddMember enrolls a user as an organization member. Users already in a
// partner group are rejected.
type AddMember struct {
	identities ports.IdentityRepository
	publisher  ports.EventPublisher
}

// NewAddMember builds the use case.
func NewAddMember(identities ports.IdentityRepository, publisher ports.EventPublisher) *AddMember {
	return &AddMember{identities: identities, publisher: publisher}
}

// Execute adds the member and persists the updated organization.
func (uc *AddMember) Execute(ctx context.Context, input AddMemberInput) (*AddMemberResult, error) {
	org, err := loadOrganization(ctx, uc.identities, input.OrganizationID)
	if err != nil {
		return nil, err
	}
	next, err := org.AddMember(input.MemberID)
	if err != nil {
		return nil, err
	}
	if err := saveAndPublish(ctx, uc.identities, uc.publisher, org, next); err != nil {
		return nil, err
	}
	return &AddMemberResult{Organization: next}, nil
}
