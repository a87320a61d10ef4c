package membership

import (
	"context"

	"github.com/7Spade/tortoise/internal/application/ports"
	"github.com/7Spade/tortoise/internal/domain"
	domerrors "github.com/7Spade/tortoise/internal/domain/errors"
	memdomain "github.com/7Spade/tortoise/internal/domain/membership"
)

// loadMembership fetches the aggregate or fails with NotFoundError.
func loadMembership(ctx context.Context, repo ports.MembershipRepository, id domain.MembershipID) (*memdomain.Membership, error) {
	m, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domerrors.NewNotFound("membership", id.String())
	}
	return m, nil
}

// saveAndPublish persists the aggregate and publishes its pending events.
// An empty event buffer means the call was an idempotent no-op; nothing is
// written or published.
func saveAndPublish(ctx context.Context, repo ports.MembershipRepository, publisher ports.EventPublisher, m *memdomain.Membership) error {
	events := m.PullEvents()
	if len(events) == 0 {
		return nil
	}
	if err := repo.Save(ctx, m.Snapshot()); err != nil {
		return err
	}
	return publisher.Publish(ctx, events)
}

// ActivateMembership reinstates a suspended membership. Activating an
// already-active membership is a no-op.
type ActivateMembership struct {
	memberships ports.MembershipRepository
	publisher   ports.EventPublisher
}

// NewActivateMembership builds the use case.
func NewActivateMembership(memberships ports.MembershipRepository, publisher ports.EventPublisher) *ActivateMembership {
	return &ActivateMembership{memberships: memberships, publisher: publisher}
}

// Execute activates the membership.
func (uc *ActivateMembership) Execute(ctx context.Context, id domain.MembershipID) (*memdomain.Membership, error) {
	m, err := loadMembership(ctx, uc.memberships, id)
	if err != nil {
		return nil, err
	}
	m.Activate()
	if err := saveAndPublish(ctx, uc.memberships, uc.publisher, m); err != nil {
		return nil, err
	}
	return m, nil
}

// SuspendMembership suspends an active membership. Suspending an
// already-suspended membership is a no-op.
type SuspendMembership struct {
	memberships ports.MembershipRepository
	publisher   ports.EventPublisher
}

// NewSuspendMembership builds the use case.
func NewSuspendMembership(memberships ports.MembershipRepository, publisher ports.EventPublisher) *SuspendMembership {
	return &SuspendMembership{memberships: memberships, publisher: publisher}
}

// Execute suspends the membership.
func (uc *SuspendMembership) Execute(ctx context.Context, id domain.MembershipID) (*memdomain.Membership, error) {
	m, err := loadMembership(ctx, uc.memberships, id)
	if err != nil {
		return nil, err
	}
	if err := m.Suspend(); err != nil {
		return nil, err
	}
	if err := saveAndPublish(ctx, uc.memberships, uc.publisher, m); err != nil {
		return nil, err
	}
	return m, nil
}
