// Package membership defines the OrganizationMembership aggregate: the
// role/status state machine of a user's standing in an organization.
package membership

import (
	"github.com/7Spade/tortoise/internal/domain"
	domerrors "github.com/7Spade/tortoise/internal/domain/errors"
)

const (
	transitionSuspend = "suspend"
	transitionPromote = "promote to owner"
)

// Membership is the aggregate root for one user's membership in one
// organization. Identity fields are immutable; role and status move through
// a guarded state machine. Ownership is special-cased: the generic
// ChangeRole path may neither grant nor revoke the owner role.
type Membership struct {
	domain.AggregateRoot

	id             domain.MembershipID
	organizationID domain.OrganizationID
	userID         domain.UserID
	role           domain.OrganizationRole
	status         domain.MembershipStatus
	version        int64
}

// ID returns the membership identity.
func (m *Membership) ID() domain.MembershipID { return m.id }

// OrganizationID returns the organization this membership belongs to.
func (m *Membership) OrganizationID() domain.OrganizationID { return m.organizationID }

// UserID returns the member's user identity.
func (m *Membership) UserID() domain.UserID { return m.userID }

// Role returns the current role.
func (m *Membership) Role() domain.OrganizationRole { return m.role }

// Status returns the current activation status.
func (m *Membership) Status() domain.MembershipStatus { return m.status }

// Version returns the optimistic-concurrency version.
func (m *Membership) Version() int64 { return m.version }

// IsActive reports whether the membership is active.
func (m *Membership) IsActive() bool { return m.status == domain.MembershipActive }

// IsSuspended reports whether the membership is suspended.
func (m *Membership) IsSuspended() bool { return m.status == domain.MembershipSuspended }

// IsAdmin reports whether the member holds the admin role.
func (m *Membership) IsAdmin() bool { return m.role == domain.RoleAdmin }

// IsOwner reports whether the member holds the owner role.
func (m *Membership) IsOwner() bool { return m.role == domain.RoleOwner }

// Activate moves the membership to the active state from any state.
// Activating an active membership is a no-op.
func (m *Membership) Activate() {
	if m.IsActive() {
		return
	}
	m.status = domain.MembershipActive
	m.version++
	m.Record(newActivatedEvent(m.id))
}

// Suspend moves an active membership to the suspended state. Suspending an
// already-suspended membership is a no-op; any other non-active state is an
// illegal transition.
func (m *Membership) Suspend() error {
	if m.IsSuspended() {
		return nil
	}
	if !m.IsActive() {
		return domerrors.NewIllegalStateTransition(m.status.String(), transitionSuspend)
	}
	m.status = domain.MembershipSuspended
	m.version++
	m.Record(newSuspendedEvent(m.id))
	return nil
}

// ChangeRole moves the member between the admin and member roles. The owner
// role is out of reach on this path in both directions: promoting into it or
// demoting out of it requires the explicit ownership-transfer methods.
// Changing to the current role is a no-op.
func (m *Membership) ChangeRole(newRole domain.OrganizationRole) error {
	if !newRole.Valid() {
		return domerrors.NewInvariantViolation("role " + newRole.String() + " is not valid")
	}
	if newRole == domain.RoleOwner {
		return domerrors.NewAuthorization("ownership cannot be granted via role change; use ownership transfer")
	}
	if m.IsOwner() {
		return domerrors.NewAuthorization("ownership cannot be revoked via role change; use ownership transfer")
	}
	if m.role == newRole {
		return nil
	}
	from := m.role
	m.role = newRole
	m.version++
	m.Record(newRoleChangedEvent(m.id, from, newRole))
	return nil
}

// PromoteToOwner grants the owner role. The membership must be active.
// Promoting an owner is a no-op.
func (m *Membership) PromoteToOwner() error {
	if m.IsOwner() {
		return nil
	}
	if !m.IsActive() {
		return domerrors.NewIllegalStateTransition(m.status.String(), transitionPromote)
	}
	from := m.role
	m.role = domain.RoleOwner
	m.version++
	m.Record(newRoleChangedEvent(m.id, from, domain.RoleOwner))
	return nil
}

// DemoteFromOwner moves an owner down to admin. A non-owner is left
// untouched (idempotent no-op).
func (m *Membership) DemoteFromOwner() {
	if !m.IsOwner() {
		return
	}
	m.role = domain.RoleAdmin
	m.version++
	m.Record(newRoleChangedEvent(m.id, domain.RoleOwner, domain.RoleAdmin))
}

// Snapshot projects the membership state for persistence.
func (m *Membership) Snapshot() Snapshot {
	return Snapshot{
		ID:             m.id,
		OrganizationID: m.organizationID,
		UserID:         m.userID,
		Role:           m.role,
		Status:         m.status,
		Version:        m.version,
	}
}

// Snapshot is the persistence projection of a Membership.
type Snapshot struct {
	ID             domain.MembershipID
	OrganizationID domain.OrganizationID
	UserID         domain.UserID
	Role           domain.OrganizationRole
	Status         domain.MembershipStatus
	Version        int64
}
