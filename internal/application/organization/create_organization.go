// Package organization contains the organization use cases. Organization
// mutators return a fresh aggregate value; use cases persist that value's
// snapshot and publish its events, never the one they loaded.
package organization

import (
	"context"

	"github.com/7Spade/tortoise/internal/application/ports"
	"github.com/7Spade/tortoise/internal/domain"
	orgdomain "github.com/7Spade/tortoise/internal/domain/organization"
)

// CreateOrganizationInput carries raw name/slug; validation happens through
// the value-object constructors so failures surface as ValidationError
// values.
type CreateOrganizationInput struct {
	Name            string
	Slug            string
	InitialMemberID domain.UserID
}

// CreateOrganizationResult returns the created aggregate.
type CreateOrganizationResult struct {
	Organization orgdomain.Organization
}

// CreateOrganization provisions a new organization with its first member.
type CreateOrganization struct {
	identities ports.IdentityRepository
	publisher  ports.EventPublisher
}

// NewCreateOrganization builds the use case.
func NewCreateOrganization(identities ports.IdentityRepository, publisher ports.EventPublisher) *CreateOrganization {
	return &CreateOrganization{identities: identities, publisher: publisher}
}

// Execute validates the inputs, constructs the aggregate, persists it, and
// publishes its creation event.
func (uc *CreateOrganization) Execute(ctx context.Context, input CreateOrganizationInput) (*CreateOrganizationResult, error) {
	name, err := domain.NewOrganizationName(input.Name)
	if err != nil {
		return nil, err
	}
	slug, err := domain.NewOrganizationSlug(input.Slug)
	if err != nil {
		return nil, err
	}
	var members []domain.UserID
	if !input.InitialMemberID.IsZero() {
		members = []domain.UserID{input.InitialMemberID}
	}
	org, err := orgdomain.New(name, slug, members)
	if err != nil {
		return nil, err
	}
	if err := uc.identities.SaveOrganization(ctx, org.Snapshot()); err != nil {
		return nil, err
	}
	if err := uc.publisher.Publish(ctx, org.PullEvents()); err != nil {
		return nil, err
	}
	return &CreateOrganizationResult{Organization: org}, nil
}
