package organization

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/7Spade/tortoise/internal/domain"
	domerrors "github.com/7Spade/tortoise/internal/domain/errors"
)

func newTestOrganization(t *testing.T, memberIDs ...domain.UserID) Organization {
	t.Helper()
	name, err := domain.NewOrganizationName("Acme Robotics")
	require.NoError(t, err)
	slug, err := domain.NewOrganizationSlug("acme-robotics")
	require.NoError(t, err)
	org, err := New(name, slug, memberIDs)
	require.NoError(t, err)
	org.PullEvents() // drop creation event; tests assert on mutation events only
	return org
}

func displayName(t *testing.T, raw string) domain.DisplayName {
	t.Helper()
	n, err := domain.NewDisplayName(raw)
	require.NoError(t, err)
	return n
}

func TestNewRecordsCreationEvent(t *testing.T) {
	name, err := domain.NewOrganizationName("Acme Robotics")
	require.NoError(t, err)
	slug, err := domain.NewOrganizationSlug("acme-robotics")
	require.NoError(t, err)

	org, err := New(name, slug, nil)
	require.NoError(t, err)
	assert.False(t, org.ID().IsZero())
	assert.Equal(t, int64(0), org.Version())

	events := org.PullEvents()
	require.Len(t, events, 1)
	created, ok := events[0].(CreatedEvent)
	require.True(t, ok)
	assert.Equal(t, domain.EventOrganizationCreated, created.EventType())
	assert.Equal(t, "Acme Robotics", created.Name)
	assert.Equal(t, "acme-robotics", created.Slug)
}

func TestNewRejectsDuplicateMembers(t *testing.T) {
	name, err := domain.NewOrganizationName("Acme Robotics")
	require.NoError(t, err)
	slug, err := domain.NewOrganizationSlug("acme-robotics")
	require.NoError(t, err)
	member := domain.NewUserID()

	_, err = New(name, slug, []domain.UserID{member, member})
	var inv *domerrors.InvariantViolationError
	require.ErrorAs(t, err, &inv)
}

func TestAddMemberLeavesReceiverUntouched(t *testing.T) {
	org := newTestOrganization(t)
	member := domain.NewUserID()

	next, err := org.AddMember(member)
	require.NoError(t, err)

	assert.True(t, next.HasMember(member))
	assert.False(t, org.HasMember(member), "receiver must stay unchanged")
	assert.Equal(t, org.Version()+1, next.Version())
}

func TestAddMemberIdempotent(t *testing.T) {
	member := domain.NewUserID()
	org := newTestOrganization(t, member)

	next, err := org.AddMember(member)
	require.NoError(t, err)
	assert.Equal(t, org.Version(), next.Version(), "no-op must not bump the version")
	assert.Len(t, next.Members(), 1)
	assert.Empty(t, next.PendingEvents())
}

func TestAddMemberRejectsPartnerGroupUser(t *testing.T) {
	org := newTestOrganization(t)
	external := domain.NewUserID()
	org, err := org.AddPartner(domain.NewPartnerID(), displayName(t, "Vendor"), domain.PartnerAccessReadOnly, []domain.UserID{external})
	require.NoError(t, err)

	_, err = org.AddMember(external)
	var inv *domerrors.InvariantViolationError
	require.ErrorAs(t, err, &inv)
}

func TestAddTeam(t *testing.T) {
	member := domain.NewUserID()
	org := newTestOrganization(t, member)
	teamID := domain.NewTeamID()

	next, err := org.AddTeam(teamID, displayName(t, "Platform"), []domain.UserID{member})
	require.NoError(t, err)

	team, ok := next.Team(teamID)
	require.True(t, ok)
	assert.True(t, team.HasMember(member))
	_, ok = org.Team(teamID)
	assert.False(t, ok, "receiver must stay unchanged")

	events := next.PendingEvents()
	require.Len(t, events, 1)
	added, ok := events[0].(TeamAddedEvent)
	require.True(t, ok)
	assert.Equal(t, teamID.String(), added.TeamID)
}

func TestAddTeamRequiresOrganizationMembers(t *testing.T) {
	org := newTestOrganization(t)
	outsider := domain.NewUserID()

	_, err := org.AddTeam(domain.NewTeamID(), displayName(t, "Platform"), []domain.UserID{outsider})
	var inv *domerrors.InvariantViolationError
	require.ErrorAs(t, err, &inv)
}

func TestAddTeamRejectsDuplicateID(t *testing.T) {
	org := newTestOrganization(t)
	teamID := domain.NewTeamID()
	org, err := org.AddTeam(teamID, displayName(t, "Platform"), nil)
	require.NoError(t, err)

	_, err = org.AddTeam(teamID, displayName(t, "Platform Again"), nil)
	var inv *domerrors.InvariantViolationError
	require.ErrorAs(t, err, &inv)
}

func TestAddPartnerRejectsOrganizationMember(t *testing.T) {
	member := domain.NewUserID()
	org := newTestOrganization(t, member)

	_, err := org.AddPartner(domain.NewPartnerID(), displayName(t, "Vendor"), domain.PartnerAccessReadOnly, []domain.UserID{member})
	var inv *domerrors.InvariantViolationError
	require.ErrorAs(t, err, &inv)
}

func TestAddPartnerRejectsInvalidAccessLevel(t *testing.T) {
	org := newTestOrganization(t)

	_, err := org.AddPartner(domain.NewPartnerID(), displayName(t, "Vendor"), domain.PartnerAccessLevel("root"), nil)
	var inv *domerrors.InvariantViolationError
	require.ErrorAs(t, err, &inv)
}

func TestAddMemberToTeam(t *testing.T) {
	member := domain.NewUserID()
	org := newTestOrganization(t, member)
	teamID := domain.NewTeamID()
	org, err := org.AddTeam(teamID, displayName(t, "Platform"), nil)
	require.NoError(t, err)
	org.PullEvents()

	next, err := org.AddMemberToTeam(teamID, member)
	require.NoError(t, err)

	team, ok := next.Team(teamID)
	require.True(t, ok)
	assert.True(t, team.HasMember(member))

	before, ok := org.Team(teamID)
	require.True(t, ok)
	assert.False(t, before.HasMember(member), "receiver must stay unchanged")

	events := next.PendingEvents()
	require.Len(t, events, 1)
	added, ok := events[0].(TeamMemberAddedEvent)
	require.True(t, ok)
	assert.Equal(t, member.String(), added.MemberID)
}

func TestAddMemberToTeamRequiresMembership(t *testing.T) {
	org := newTestOrganization(t)
	teamID := domain.NewTeamID()
	org, err := org.AddTeam(teamID, displayName(t, "Platform"), nil)
	require.NoError(t, err)

	_, err = org.AddMemberToTeam(teamID, domain.NewUserID())
	var inv *domerrors.InvariantViolationError
	require.ErrorAs(t, err, &inv)
}

func TestAddMemberToTeamUnknownTeam(t *testing.T) {
	member := domain.NewUserID()
	org := newTestOrganization(t, member)

	_, err := org.AddMemberToTeam(domain.NewTeamID(), member)
	var nf *domerrors.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "team", nf.Resource)
}

func TestAddMemberToTeamIdempotent(t *testing.T) {
	member := domain.NewUserID()
	org := newTestOrganization(t, member)
	teamID := domain.NewTeamID()
	org, err := org.AddTeam(teamID, displayName(t, "Platform"), []domain.UserID{member})
	require.NoError(t, err)
	org.PullEvents()

	next, err := org.AddMemberToTeam(teamID, member)
	require.NoError(t, err)
	assert.Equal(t, org.Version(), next.Version())
	assert.Empty(t, next.PendingEvents())
}

func TestAddMemberToPartner(t *testing.T) {
	org := newTestOrganization(t)
	partnerID := domain.NewPartnerID()
	org, err := org.AddPartner(partnerID, displayName(t, "Vendor"), domain.PartnerAccessShared, nil)
	require.NoError(t, err)
	org.PullEvents()
	external := domain.NewUserID()

	next, err := org.AddMemberToPartner(partnerID, external)
	require.NoError(t, err)

	partner, ok := next.Partner(partnerID)
	require.True(t, ok)
	assert.True(t, partner.HasMember(external))
	assert.Equal(t, domain.PartnerAccessShared, partner.AccessLevel())

	events := next.PendingEvents()
	require.Len(t, events, 1)
	added, ok := events[0].(PartnerMemberAddedEvent)
	require.True(t, ok)
	assert.Equal(t, external.String(), added.MemberID)
}

func TestAddMemberToPartnerRejectsOrganizationMember(t *testing.T) {
	member := domain.NewUserID()
	org := newTestOrganization(t, member)
	partnerID := domain.NewPartnerID()
	org, err := org.AddPartner(partnerID, displayName(t, "Vendor"), domain.PartnerAccessReadOnly, nil)
	require.NoError(t, err)

	_, err = org.AddMemberToPartner(partnerID, member)
	var inv *domerrors.InvariantViolationError
	require.ErrorAs(t, err, &inv)
}

func TestSnapshotRoundTrip(t *testing.T) {
	member := domain.NewUserID()
	external := domain.NewUserID()
	org := newTestOrganization(t, member)
	teamID := domain.NewTeamID()
	partnerID := domain.NewPartnerID()

	org, err := org.AddTeam(teamID, displayName(t, "Platform"), []domain.UserID{member})
	require.NoError(t, err)
	org, err = org.AddPartner(partnerID, displayName(t, "Vendor"), domain.PartnerAccessReadOnly, []domain.UserID{external})
	require.NoError(t, err)

	restored, err := Reconstitute(org.Snapshot())
	require.NoError(t, err)

	assert.Equal(t, org.ID(), restored.ID())
	assert.Equal(t, org.Version(), restored.Version())
	assert.True(t, restored.HasMember(member))
	team, ok := restored.Team(teamID)
	require.True(t, ok)
	assert.True(t, team.HasMember(member))
	partner, ok := restored.Partner(partnerID)
	require.True(t, ok)
	assert.True(t, partner.HasMember(external))
	assert.Empty(t, restored.PendingEvents())
}

func TestReconstituteRejectsCorruptState(t *testing.T) {
	member := domain.NewUserID()
	external := domain.NewUserID()

	base := func() ReconstituteParams {
		return ReconstituteParams{
			ID:        domain.NewOrganizationID(),
			Name:      mustOrgName(t, "Acme Robotics"),
			Slug:      mustOrgSlug(t, "acme-robotics"),
			MemberIDs: []domain.UserID{member},
			Version:   3,
		}
	}

	tests := []struct {
		name   string
		mutate func(*ReconstituteParams)
	}{
		{
			name:   "zero id",
			mutate: func(p *ReconstituteParams) { p.ID = domain.OrganizationID{} },
		},
		{
			name:   "duplicate members",
			mutate: func(p *ReconstituteParams) { p.MemberIDs = []domain.UserID{member, member} },
		},
		{
			name: "team member outside organization",
			mutate: func(p *ReconstituteParams) {
				p.Teams = []TeamState{{ID: domain.NewTeamID(), Name: displayName(t, "Platform"), MemberIDs: []domain.UserID{external}}}
			},
		},
		{
			name: "partner member inside organization",
			mutate: func(p *ReconstituteParams) {
				p.Partners = []PartnerState{{ID: domain.NewPartnerID(), Name: displayName(t, "Vendor"), AccessLevel: domain.PartnerAccessReadOnly, MemberIDs: []domain.UserID{member}}}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := base()
			tt.mutate(&params)
			_, err := Reconstitute(params)
			var inv *domerrors.InvariantViolationError
			require.ErrorAs(t, err, &inv)
		})
	}
}

func mustOrgName(t *testing.T, raw string) domain.OrganizationName {
	t.Helper()
	n, err := domain.NewOrganizationName(raw)
	require.NoError(t, err)
	return n
}

func mustOrgSlug(t *testing.T, raw string) domain.OrganizationSlug {
	t.Helper()
	s, err := domain.NewOrganizationSlug(raw)
	require.NoError(t, err)
	return s
}
