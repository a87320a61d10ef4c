package organization

import (
	"context"

	"github.com/7Spade/tortoise/internal/application/ports"
	"github.com/7Spade/tortoise/internal/domain"
	orgdomain "github.com/7Spade/tortoise/internal/domain/organization"
)

// AddPartnerMemberInput identifies the partner and the external user to add.
type AddPartnerMemberInput struct {
	OrganizationID domain.OrganizationID
	PartnerID      domain.PartnerID
	MemberID       domain.UserID
}

// AddPartnerMemberResult carries the updated aggregate.
type AddPartnerMemberResult struct {
	Organization orgdomain.Organization
}

// AddPartnerMember adds an external user to a partner group. Organization
// members cannot join partner groups.
type AddPartnerMember struct {
	identities ports.IdentityRepository
	publisher  ports.EventPublisher
}

// NewAddPartnerMember builds the use case.
func NewAddPartnerMember(identities ports.IdentityRepository, publisher ports.EventPublisher) *AddPartnerMember {
	return &AddPartnerMember{identities: identities, publisher: publisher}
}

// Execute adds the member and persists the updated organization.
func (uc *AddPartnerMember) Execute(ctx context.Context, input AddPartnerMemberInput) (*AddPartnerMemberResult, error) {
	org, err := loadOrganization(ctx, uc.identities, input.OrganizationID)
	if err != nil {
		return nil, err
	}
	next, err := org.AddMemberToPartner(input.PartnerID, input.MemberID)
	if err != nil {
		return nil, err
	}
	if err := saveAndPublish(ctx, uc.identities, uc.publisher, org, next); err != nil {
		return nil, err
	}
	return &AddPartnerMemberResult{Organization: next}, nil
}
