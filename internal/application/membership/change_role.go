package membership

import (
	"context"

	"github.com/7Spade/tortoise/internal/application/ports"
	"github.com/7Spade/tortoise/internal/domain"
	memdomain "github.com/7Spade/tortoise/internal/domain/membership"
)

// ChangeRoleInput names the membership and its new role.
type ChangeRoleInput struct {
	MembershipID domain.MembershipID
	NewRole      domain.OrganizationRole
}

// ChangeRole reassigns a member's role. Owner roles cannot be granted or
// revoked through this path; use TransferOwnership.
type ChangeRole struct {
	memberships ports.MembershipRepository
	publisher   ports.EventPublisher
}

// NewChangeRole builds the use case.
func NewChangeRole(memberships ports.MembershipRepository, publisher ports.EventPublisher) *ChangeRole {
	return &ChangeRole{memberships: memberships, publisher: publisher}
}

// Execute changes the member's role.
func (uc *ChangeRole) Execute(ctx context.Context, input ChangeRoleInput) (*memdomain.Membership, error) {
	m, err := loadMembership(ctx, uc.memberships, input.MembershipID)
	if err != nil {
		return nil, err
	}
	if err := m.ChangeRole(input.NewRole); err != nil {
		return nil, err
	}
	if err := saveAndPublish(ctx, uc.memberships, uc.publisher, m); err != nil {
		return nil, err
	}
	return m, nil
}
