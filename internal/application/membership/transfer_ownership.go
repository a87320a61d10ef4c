package membership

import (
	"context"

	"github.com/7Spade/tortoise/internal/application/ports"
	"github.com/7Spade/tortoise/internal/domain"
	domerrors "github.com/7Spade/tortoise/internal/domain/errors"
	memdomain "github.com/7Spade/tortoise/internal/domain/membership"
)

// TransferOwnershipInput names the organization, the current owner's
// membership, and the member receiving ownership.
type TransferOwnershipInput struct {
	OrganizationID domain.OrganizationID
	CurrentOwnerID domain.MembershipID
	NewOwnerUserID domain.UserID
}

// TransferOwnershipResult carries both touched memberships.
type TransferOwnershipResult struct {
	NewOwner      *memdomain.Membership
	PreviousOwner *memdomain.Membership
}

// TransferOwnership promotes an active member to owner and demotes the
// current owner to admin. The recipient must already hold an active
// membership in the organization.
type TransferOwnership struct {
	memberships ports.MembershipRepository
	publisher   ports.EventPublisher
}

// NewTransferOwnership builds the use case.
func NewTransferOwnership(memberships ports.MembershipRepository, publisher ports.EventPublisher) *TransferOwnership {
	return &TransferOwnership{memberships: memberships, publisher: publisher}
}

// Execute performs the promote-then-demote pair.
func (uc *TransferOwnership) Execute(ctx context.Context, input TransferOwnershipInput) (*TransferOwnershipResult, error) {
	current, err := loadMembership(ctx, uc.memberships, input.CurrentOwnerID)
	if err != nil {
		return nil, err
	}
	if !current.IsOwner() {
		return nil, domerrors.NewAuthorization("only the current owner can transfer ownership")
	}
	if current.OrganizationID() != input.OrganizationID {
		return nil, domerrors.NewInvariantViolation("membership does not belong to this organization")
	}

	next, err := uc.memberships.GetByOrganizationAndUser(ctx, input.OrganizationID, input.NewOwnerUserID)
	if err != nil {
		return nil, err
	}
	if next == nil {
		return nil, domerrors.NewNotFound("membership", input.NewOwnerUserID.String())
	}
	if next.ID() == current.ID() {
		return &TransferOwnershipResult{NewOwner: current, PreviousOwner: current}, nil
	}

	if err := next.PromoteToOwner(); err != nil {
		return nil, err
	}
	current.DemoteFromOwner()

	// The two saves are not atomic. Saving the recipient first means a
	// failure before the second save leaves the organization with two
	// owners, never zero; a retry of the transfer resolves it, since the
	// demote is idempotent once the recipient holds the owner role.
	if err := saveAndPublish(ctx, uc.memberships, uc.publisher, next); err != nil {
		return nil, err
	}
	if err := saveAndPublish(ctx, uc.memberships, uc.publisher, current); err != nil {
		return nil, err
	}
	return &TransferOwnershipResult{NewOwner: next, PreviousOwner: current}, nil
}
