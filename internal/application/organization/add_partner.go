package organization

import (
	"context"

	"github.com/7Spade/tortoise/internal/application/ports"
	"github.com/7Spade/tortoise/internal/domain"
	orgdomain "github.com/7Spade/tortoise/internal/domain/organization"
)

// AddPartnerInput names the organization and the external partner group.
type AddPartnerInput struct {
	OrganizationID   domain.OrganizationID
	PartnerName      domain.DisplayName
	AccessLevel      domain.PartnerAccessLevel
	InitialMemberIDs []domain.UserID
}

// AddPartnerResult returns the updated aggregate and the generated partner ID.
type AddPartnerResult struct {
	Organization orgdomain.Organization
	PartnerID    domain.PartnerID
}

// AddPartner registers an external partner group. Partner members must be
// disjoint from the organization's own members.
type AddPartner struct {
	identities ports.IdentityRepository
	publisher  ports.EventPublisher
}

// NewAddPartner builds the use case.
func NewAddPartner(identities ports.IdentityRepository, publisher ports.EventPublisher) *AddPartner {
	return &AddPartner{identities: identities, publisher: publisher}
}

// Execute appends the partner and persists the updated organization.
func (uc *AddPartner) Execute(ctx context.Context, input AddPartnerInput) (*AddPartnerResult, error) {
	org, err := loadOrganization(ctx, uc.identities, input.OrganizationID)
	if err != nil {
		return nil, err
	}
	partnerID := domain.NewPartnerID()
	next, err := org.AddPartner(partnerID, input.PartnerName, input.AccessLevel, input.InitialMemberIDs)
	if err != nil {
		return nil, err
	}
	if err := saveAndPublish(ctx, uc.identities, uc.publisher, org, next); err != nil {
		return nil, err
	}
	return &AddPartnerResult{Organization: next, PartnerID: partnerID}, nil
}
