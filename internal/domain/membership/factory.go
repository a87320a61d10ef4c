package membership

import (
	"github.com/7Spade/tortoise/internal/domain"
	domerrors "github.com/7Spade/tortoise/internal/domain/errors"
)

// Factory builds Membership aggregates: CreateNew with a creation event,
// Reconstitute silently from persisted state.
type Factory struct{}

// NewFactory returns a membership factory.
func NewFactory() *Factory { return &Factory{} }

// CreateNewParams are the inputs for a brand-new membership. Role defaults
// to member, status to active.
type CreateNewParams struct {
	OrganizationID domain.OrganizationID
	UserID         domain.UserID
	Role           domain.OrganizationRole
	Status         domain.MembershipStatus
}

// CreateNew constructs a membership with a generated ID and records the
// creation event.
func (f *Factory) CreateNew(params CreateNewParams) (*Membership, error) {
	if params.OrganizationID.IsZero() {
		return nil, domerrors.NewInvariantViolation("organization id is required")
	}
	if params.UserID.IsZero() {
		return nil, domerrors.NewInvariantViolation("user id is required")
	}
	role := params.Role
	if role == "" {
		role = domain.RoleMember
	}
	if !role.Valid() {
		return nil, domerrors.NewInvariantViolation("role " + role.String() + " is not valid")
	}
	status := params.Status
	if status == "" {
		status = domain.MembershipActive
	}
	if !status.Valid() {
		return nil, domerrors.NewInvariantViolation("status " + status.String() + " is not valid")
	}
	m := &Membership{
		id:             domain.NewMembershipID(),
		organizationID: params.OrganizationID,
		userID:         params.UserID,
		role:           role,
		status:         status,
	}
	m.Record(newCreatedEvent(m.id, m.organizationID, m.userID, m.role))
	return m, nil
}

// Reconstitute rebuilds a membership from a persisted snapshot without
// emitting events.
func (f *Factory) Reconstitute(snapshot Snapshot) (*Membership, error) {
	if snapshot.ID.IsZero() {
		return nil, domerrors.NewInvariantViolation("membership id is required")
	}
	if snapshot.OrganizationID.IsZero() {
		return nil, domerrors.NewInvariantViolation("organization id is required")
	}
	if snapshot.UserID.IsZero() {
		return nil, domerrors.NewInvariantViolation("user id is required")
	}
	if !snapshot.Role.Valid() {
		return nil, domerrors.NewInvariantViolation("role " + snapshot.Role.String() + " is not valid")
	}
	if !snapshot.Status.Valid() {
		return nil, domerrors.NewInvariantViolation("status " + snapshot.Status.String() + " is not valid")
	}
	return &Membership{
		id:             snapshot.ID,
		organizationID: snapshot.OrganizationID,
		userID:         snapshot.UserID,
		role:           snapshot.Role,
		status:         snapshot.Status,
		version:        snapshot.Version,
	}, nil
}
