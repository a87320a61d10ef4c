package membership

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/7Spade/tortoise/internal/domain"
	domerrors "github.com/7Spade/tortoise/internal/domain/errors"
)

func newTestMembership(t *testing.T, role domain.OrganizationRole, status domain.MembershipStatus) *Membership {
	t.Helper()
	m, err := NewFactory().CreateNew(CreateNewParams{
		OrganizationID: domain.NewOrganizationID(),
		UserID:         domain.NewUserID(),
		Role:           role,
		Status:         status,
	})
	require.NoError(t, err)
	m.PullEvents() // drop creation event; tests assert on mutation events only
	return m
}

func TestCreateNewDefaults(t *testing.T) {
	orgID := domain.NewOrganizationID()
	userID := domain.NewUserID()

	m, err := NewFactory().CreateNew(CreateNewParams{OrganizationID: orgID, UserID: userID})
	require.NoError(t, err)

	assert.False(t, m.ID().IsZero())
	assert.Equal(t, orgID, m.OrganizationID())
	assert.Equal(t, userID, m.UserID())
	assert.Equal(t, domain.RoleMember, m.Role())
	assert.Equal(t, domain.MembershipActive, m.Status())
	assert.Equal(t, int64(0), m.Version())

	events := m.PullEvents()
	require.Len(t, events, 1)
	created, ok := events[0].(CreatedEvent)
	require.True(t, ok)
	assert.Equal(t, domain.EventMembershipCreated, created.EventType())
	assert.Equal(t, userID.String(), created.UserID)
	assert.Equal(t, domain.RoleMember, created.Role)
}

func TestCreateNewValidation(t *testing.T) {
	factory := NewFactory()

	tests := []struct {
		name   string
		params CreateNewParams
	}{
		{
			name:   "missing organization id",
			params: CreateNewParams{UserID: domain.NewUserID()},
		},
		{
			name:   "missing user id",
			params: CreateNewParams{OrganizationID: domain.NewOrganizationID()},
		},
		{
			name: "invalid role",
			params: CreateNewParams{
				OrganizationID: domain.NewOrganizationID(),
				UserID:         domain.NewUserID(),
				Role:           domain.OrganizationRole("superuser"),
			},
		},
		{
			name: "invalid status",
			params: CreateNewParams{
				OrganizationID: domain.NewOrganizationID(),
				UserID:         domain.NewUserID(),
				Status:         domain.MembershipStatus("banned"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := factory.CreateNew(tt.params)
			var inv *domerrors.InvariantViolationError
			require.ErrorAs(t, err, &inv)
		})
	}
}

func TestSuspendActiveMembership(t *testing.T) {
	m := newTestMembership(t, domain.RoleMember, domain.MembershipActive)

	require.NoError(t, m.Suspend())

	assert.True(t, m.IsSuspended())
	assert.Equal(t, int64(1), m.Version())
	events := m.PullEvents()
	require.Len(t, events, 1)
	assert.Equal(t, domain.EventMembershipSuspended, events[0].EventType())
}

func TestSuspendAlreadySuspendedIsNoOp(t *testing.T) {
	m := newTestMembership(t, domain.RoleMember, domain.MembershipSuspended)

	require.NoError(t, m.Suspend())

	assert.True(t, m.IsSuspended())
	assert.Equal(t, int64(0), m.Version())
	assert.False(t, m.HasPendingEvents())
}

func TestActivate(t *testing.T) {
	m := newTestMembership(t, domain.RoleMember, domain.MembershipSuspended)

	m.Activate()

	assert.True(t, m.IsActive())
	assert.Equal(t, int64(1), m.Version())
	events := m.PullEvents()
	require.Len(t, events, 1)
	assert.Equal(t, domain.EventMembershipActivated, events[0].EventType())
}

func TestActivateActiveIsNoOp(t *testing.T) {
	m := newTestMembership(t, domain.RoleMember, domain.MembershipActive)

	m.Activate()

	assert.Equal(t, int64(0), m.Version())
	assert.False(t, m.HasPendingEvents())
}

func TestChangeRoleMemberToAdmin(t *testing.T) {
	m := newTestMembership(t, domain.RoleMember, domain.MembershipActive)

	require.NoError(t, m.ChangeRole(domain.RoleAdmin))

	assert.True(t, m.IsAdmin())
	assert.Equal(t, int64(1), m.Version())
	events := m.PullEvents()
	require.Len(t, events, 1)
	changed, ok := events[0].(RoleChangedEvent)
	require.True(t, ok)
	assert.Equal(t, domain.RoleMember, changed.From)
	assert.Equal(t, domain.RoleAdmin, changed.To)
}

func TestChangeRoleSameRoleIsNoOp(t *testing.T) {
	m := newTestMembership(t, domain.RoleAdmin, domain.MembershipActive)

	require.NoError(t, m.ChangeRole(domain.RoleAdmin))

	assert.Equal(t, int64(0), m.Version())
	assert.False(t, m.HasPendingEvents())
}

func TestChangeRoleCannotGrantOwnership(t *testing.T) {
	m := newTestMembership(t, domain.RoleAdmin, domain.MembershipActive)

	err := m.ChangeRole(domain.RoleOwner)

	var authz *domerrors.AuthorizationError
	require.ErrorAs(t, err, &authz)
	assert.True(t, m.IsAdmin(), "role must be unchanged")
}

func TestChangeRoleCannotRevokeOwnership(t *testing.T) {
	m := newTestMembership(t, domain.RoleOwner, domain.MembershipActive)

	err := m.ChangeRole(domain.RoleMember)

	var authz *domerrors.AuthorizationError
	require.ErrorAs(t, err, &authz)
	assert.True(t, m.IsOwner(), "role must be unchanged")
}

func TestChangeRoleRejectsInvalidRole(t *testing.T) {
	m := newTestMembership(t, domain.RoleMember, domain.MembershipActive)

	err := m.ChangeRole(domain.OrganizationRole("superuser"))

	var inv *domerrors.InvariantViolationError
	require.ErrorAs(t, err, &inv)
}

func TestPromoteToOwner(t *testing.T) {
	m := newTestMembership(t, domain.RoleAdmin, domain.MembershipActive)

	require.NoError(t, m.PromoteToOwner())

	assert.True(t, m.IsOwner())
	events := m.PullEvents()
	require.Len(t, events, 1)
	changed, ok := events[0].(RoleChangedEvent)
	require.True(t, ok)
	assert.Equal(t, domain.RoleAdmin, changed.From)
	assert.Equal(t, domain.RoleOwner, changed.To)
}

func TestPromoteToOwnerRequiresActive(t *testing.T) {
	m := newTestMembership(t, domain.RoleAdmin, domain.MembershipSuspended)

	err := m.PromoteToOwner()

	var ist *domerrors.IllegalStateTransitionError
	require.ErrorAs(t, err, &ist)
	assert.Equal(t, "suspended", ist.CurrentState)
	assert.False(t, m.IsOwner())
}

func TestPromoteOwnerIsNoOp(t *testing.T) {
	m := newTestMembership(t, domain.RoleOwner, domain.MembershipActive)

	require.NoError(t, m.PromoteToOwner())

	assert.Equal(t, int64(0), m.Version())
	assert.False(t, m.HasPendingEvents())
}

func TestDemoteFromOwner(t *testing.T) {
	m := newTestMembership(t, domain.RoleOwner, domain.MembershipActive)

	m.DemoteFromOwner()

	assert.True(t, m.IsAdmin())
	events := m.PullEvents()
	require.Len(t, events, 1)
	changed, ok := events[0].(RoleChangedEvent)
	require.True(t, ok)
	assert.Equal(t, domain.RoleOwner, changed.From)
	assert.Equal(t, domain.RoleAdmin, changed.To)
}

func TestDemoteNonOwnerIsNoOp(t *testing.T) {
	m := newTestMembership(t, domain.RoleMember, domain.MembershipActive)

	m.DemoteFromOwner()

	assert.Equal(t, domain.RoleMember, m.Role())
	assert.Equal(t, int64(0), m.Version())
	assert.False(t, m.HasPendingEvents())
}

func TestSnapshotRoundTrip(t *testing.T) {
	m := newTestMembership(t, domain.RoleAdmin, domain.MembershipActive)
	require.NoError(t, m.Suspend())
	m.PullEvents()

	restored, err := NewFactory().Reconstitute(m.Snapshot())
	require.NoError(t, err)

	assert.Equal(t, m.Snapshot(), restored.Snapshot())
	assert.False(t, restored.HasPendingEvents())
}

func TestReconstituteRejectsCorruptSnapshot(t *testing.T) {
	factory := NewFactory()
	base := Snapshot{
		ID:             domain.NewMembershipID(),
		OrganizationID: domain.NewOrganizationID(),
		UserID:         domain.NewUserID(),
		Role:           domain.RoleMember,
		Status:         domain.MembershipActive,
		Version:        2,
	}

	tests := []struct {
		name   string
		mutate func(*Snapshot)
	}{
		{name: "zero id", mutate: func(s *Snapshot) { s.ID = domain.MembershipID{} }},
		{name: "zero organization id", mutate: func(s *Snapshot) { s.OrganizationID = domain.OrganizationID{} }},
		{name: "zero user id", mutate: func(s *Snapshot) { s.UserID = domain.UserID{} }},
		{name: "invalid role", mutate: func(s *Snapshot) { s.Role = "superuser" }},
		{name: "invalid status", mutate: func(s *Snapshot) { s.Status = "banned" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snapshot := base
			tt.mutate(&snapshot)
			_, err := factory.Reconstitute(snapshot)
			var inv *domerrors.InvariantViolationError
			require.ErrorAs(t, err, &inv)
		})
	}
}
