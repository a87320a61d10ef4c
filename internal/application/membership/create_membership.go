// Package membership holds the use cases that drive the membership state
// machine: enrollment, activation, suspension, role changes, and ownership
// transfer.
package membership

import (
	"context"

	"github.com/7Spade/tortoise/internal/application/ports"
	"github.com/7Spade/tortoise/internal/domain"
	domerrors "github.com/7Spade/tortoise/internal/domain/errors"
	memdomain "github.com/7Spade/tortoise/internal/domain/membership"
)

// CreateMembershipInput enrolls a user into an organization. Role and Status
// are optional; the factory defaults them to member/active.
type CreateMembershipInput struct {
	OrganizationID domain.OrganizationID
	UserID         domain.UserID
	Role           domain.OrganizationRole
	Status         domain.MembershipStatus
}

// CreateMembershipResult carries the new aggregate.
type CreateMembershipResult struct {
	Membership *memdomain.Membership
}

// CreateMembership enrolls a user into an organization. Enrolling the same
// user twice is an invariant violation.
type CreateMembership struct {
	memberships ports.MembershipRepository
	publisher   ports.EventPublisher
	factory     *memdomain.Factory
}

// NewCreateMembership builds the use case.
func NewCreateMembership(memberships ports.MembershipRepository, publisher ports.EventPublisher) *CreateMembership {
	return &CreateMembership{
		memberships: memberships,
		publisher:   publisher,
		factory:     memdomain.NewFactory(),
	}
}

// Execute creates and persists the membership.
func (uc *CreateMembership) Execute(ctx context.Context, input CreateMembershipInput) (*CreateMembershipResult, error) {
	existing, err := uc.memberships.GetByOrganizationAndUser(ctx, input.OrganizationID, input.UserID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domerrors.NewInvariantViolation("user already has a membership in this organization")
	}

	m, err := uc.factory.CreateNew(memdomain.CreateNewParams{
		OrganizationID: input.OrganizationID,
		UserID:         input.UserID,
		Role:           input.Role,
		Status:         input.Status,
	})
	if err != nil {
		return nil, err
	}
	if err := uc.memberships.Save(ctx, m.Snapshot()); err != nil {
		return nil, err
	}
	if err := uc.publisher.Publish(ctx, m.PullEvents()); err != nil {
		return nil, err
	}
	return &CreateMembershipResult{Membership: m}, nil
}
