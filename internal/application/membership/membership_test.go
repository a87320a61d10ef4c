package membership

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/7Spade/tortoise/internal/domain"
	domerrors "github.com/7Spade/tortoise/internal/domain/errors"
	memdomain "github.com/7Spade/tortoise/internal/domain/membership"
	"github.com/7Spade/tortoise/internal/domain/organization"
)

type fakeMembershipRepo struct {
	memberships map[domain.MembershipID]*memdomain.Membership
	saved       []memdomain.Snapshot
	failSaveAt  int // 1-based save call that errors; 0 disables
}

func newFakeMembershipRepo(members ...*memdomain.Membership) *fakeMembershipRepo {
	repo := &fakeMembershipRepo{memberships: map[domain.MembershipID]*memdomain.Membership{}}
	for _, m := range members {
		repo.memberships[m.ID()] = m
	}
	return repo
}

func (r *fakeMembershipRepo) GetTeams(context.Context, domain.OrganizationID) ([]organization.TeamState, error) {
	return nil, nil
}

func (r *fakeMembershipRepo) GetPartners(context.Context, domain.OrganizationID) ([]organization.PartnerState, error) {
	return nil, nil
}

func (r *fakeMembershipRepo) GetOrganizationMemberships(_ context.Context, orgID domain.OrganizationID) ([]*memdomain.Membership, error) {
	var out []*memdomain.Membership
	for _, m := range r.memberships {
		if m.OrganizationID() == orgID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMembershipRepo) GetByID(_ context.Context, id domain.MembershipID) (*memdomain.Membership, error) {
	return r.memberships[id], nil
}

func (r *fakeMembershipRepo) GetByOrganizationAndUser(_ context.Context, orgID domain.OrganizationID, userID domain.UserID) (*memdomain.Membership, error) {
	for _, m := range r.memberships {
		if m.OrganizationID() == orgID && m.UserID() == userID {
			return m, nil
		}
	}
	return nil, nil
}

func (r *fakeMembershipRepo) Save(_ context.Context, snapshot memdomain.Snapshot) error {
	if r.failSaveAt > 0 && len(r.saved)+1 == r.failSaveAt {
		return errors.New("save failed")
	}
	r.saved = append(r.saved, snapshot)
	return nil
}

type fakePublisher struct {
	published []domain.Event
}

func (p *fakePublisher) Publish(_ context.Context, events []domain.Event) error {
	p.published = append(p.published, events...)
	return nil
}

func newStoredMembership(t *testing.T, orgID domain.OrganizationID, role domain.OrganizationRole, status domain.MembershipStatus) *memdomain.Membership {
	t.Helper()
	m, err := memdomain.NewFactory().CreateNew(memdomain.CreateNewParams{
		OrganizationID: orgID,
		UserID:         domain.NewUserID(),
		Role:           role,
		Status:         status,
	})
	require.NoError(t, err)
	m.PullEvents() // simulate an already-persisted aggregate
	return m
}

func TestCreateMembership(t *testing.T) {
	repo := newFakeMembershipRepo()
	pub := &fakePublisher{}
	uc := NewCreateMembership(repo, pub)
	orgID := domain.NewOrganizationID()
	userID := domain.NewUserID()

	result, err := uc.Execute(context.Background(), CreateMembershipInput{OrganizationID: orgID, UserID: userID})
	require.NoError(t, err)

	assert.Equal(t, domain.RoleMember, result.Membership.Role())
	assert.Equal(t, domain.MembershipActive, result.Membership.Status())
	require.Len(t, repo.saved, 1)
	assert.Equal(t, userID, repo.saved[0].UserID)
	require.Len(t, pub.published, 1)
	assert.Equal(t, domain.EventMembershipCreated, pub.published[0].EventType())
}

func TestCreateMembershipRejectsDuplicate(t *testing.T) {
	orgID := domain.NewOrganizationID()
	existing := newStoredMembership(t, orgID, domain.RoleMember, domain.MembershipActive)
	repo := newFakeMembershipRepo(existing)
	uc := NewCreateMembership(repo, &fakePublisher{})

	_, err := uc.Execute(context.Background(), CreateMembershipInput{OrganizationID: orgID, UserID: existing.UserID()})

	var inv *domerrors.InvariantViolationError
	require.ErrorAs(t, err, &inv)
	assert.Empty(t, repo.saved)
}

func TestSuspendMembership(t *testing.T) {
	orgID := domain.NewOrganizationID()
	m := newStoredMembership(t, orgID, domain.RoleMember, domain.MembershipActive)
	repo := newFakeMembershipRepo(m)
	pub := &fakePublisher{}
	uc := NewSuspendMembership(repo, pub)

	result, err := uc.Execute(context.Background(), m.ID())
	require.NoError(t, err)

	assert.True(t, result.IsSuspended())
	require.Len(t, repo.saved, 1)
	assert.Equal(t, domain.MembershipSuspended, repo.saved[0].Status)
	require.Len(t, pub.published, 1)
	assert.Equal(t, domain.EventMembershipSuspended, pub.published[0].EventType())
}

func TestSuspendMembershipNoOpSkipsPersistence(t *testing.T) {
	orgID := domain.NewOrganizationID()
	m := newStoredMembership(t, orgID, domain.RoleMember, domain.MembershipSuspended)
	repo := newFakeMembershipRepo(m)
	pub := &fakePublisher{}
	uc := NewSuspendMembership(repo, pub)

	_, err := uc.Execute(context.Background(), m.ID())
	require.NoError(t, err)

	assert.Empty(t, repo.saved, "idempotent suspend must not write")
	assert.Empty(t, pub.published)
}

func TestActivateMembershipNotFound(t *testing.T) {
	uc := NewActivateMembership(newFakeMembershipRepo(), &fakePublisher{})

	_, err := uc.Execute(context.Background(), domain.NewMembershipID())

	var nf *domerrors.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "membership", nf.Resource)
}

func TestChangeRoleCannotTouchOwnership(t *testing.T) {
	orgID := domain.NewOrganizationID()
	owner := newStoredMembership(t, orgID, domain.RoleOwner, domain.MembershipActive)
	repo := newFakeMembershipRepo(owner)
	uc := NewChangeRole(repo, &fakePublisher{})

	_, err := uc.Execute(context.Background(), ChangeRoleInput{MembershipID: owner.ID(), NewRole: domain.RoleMember})

	var authz *domerrors.AuthorizationError
	require.ErrorAs(t, err, &authz)
	assert.Empty(t, repo.saved)
}

func TestTransferOwnership(t *testing.T) {
	orgID := domain.NewOrganizationID()
	owner := newStoredMembership(t, orgID, domain.RoleOwner, domain.MembershipActive)
	admin := newStoredMembership(t, orgID, domain.RoleAdmin, domain.MembershipActive)
	repo := newFakeMembershipRepo(owner, admin)
	pub := &fakePublisher{}
	uc := NewTransferOwnership(repo, pub)

	result, err := uc.Execute(context.Background(), TransferOwnershipInput{
		OrganizationID: orgID,
		CurrentOwnerID: owner.ID(),
		NewOwnerUserID: admin.UserID(),
	})
	require.NoError(t, err)

	assert.True(t, result.NewOwner.IsOwner())
	assert.Equal(t, domain.RoleAdmin, result.PreviousOwner.Role())
	require.Len(t, repo.saved, 2)
	require.Len(t, pub.published, 2)
	assert.Equal(t, domain.EventMembershipRoleChanged, pub.published[0].EventType())
	assert.Equal(t, domain.EventMembershipRoleChanged, pub.published[1].EventType())
}

func TestTransferOwnershipRequiresOwner(t *testing.T) {
	orgID := domain.NewOrganizationID()
	admin := newStoredMembership(t, orgID, domain.RoleAdmin, domain.MembershipActive)
	member := newStoredMembership(t, orgID, domain.RoleMember, domain.MembershipActive)
	repo := newFakeMembershipRepo(admin, member)
	uc := NewTransferOwnership(repo, &fakePublisher{})

	_, err := uc.Execute(context.Background(), TransferOwnershipInput{
		OrganizationID: orgID,
		CurrentOwnerID: admin.ID(),
		NewOwnerUserID: member.UserID(),
	})

	var authz *domerrors.AuthorizationError
	require.ErrorAs(t, err, &authz)
}

func TestTransferOwnershipToSuspendedMemberFails(t *testing.T) {
	orgID := domain.NewOrganizationID()
	owner := newStoredMembership(t, orgID, domain.RoleOwner, domain.MembershipActive)
	suspended := newStoredMembership(t, orgID, domain.RoleMember, domain.MembershipSuspended)
	repo := newFakeMembershipRepo(owner, suspended)
	uc := NewTransferOwnership(repo, &fakePublisher{})

	_, err := uc.Execute(context.Background(), TransferOwnershipInput{
		OrganizationID: orgID,
		CurrentOwnerID: owner.ID(),
		NewOwnerUserID: suspended.UserID(),
	})

	var ist *domerrors.IllegalStateTransitionError
	require.ErrorAs(t, err, &ist)
	assert.True(t, owner.IsOwner(), "failed transfer must leave ownership in place")
	assert.Empty(t, repo.saved)
}

func TestTransferOwnershipToSelfIsNoOp(t *testing.T) {
	orgID := domain.NewOrganizationID()
	owner := newStoredMembership(t, orgID, domain.RoleOwner, domain.MembershipActive)
	repo := newFakeMembershipRepo(owner)
	pub := &fakePublisher{}
	uc := NewTransferOwnership(repo, pub)

	result, err := uc.Execute(context.Background(), TransferOwnershipInput{
		OrganizationID: orgID,
		CurrentOwnerID: owner.ID(),
		NewOwnerUserID: owner.UserID(),
	})
	require.NoError(t, err)

	assert.Equal(t, result.NewOwner.ID(), result.PreviousOwner.ID())
	assert.Empty(t, repo.saved)
	assert.Empty(t, pub.published)
}

func TestTransferOwnershipRetryCompletesPartialTransfer(t *testing.T) {
	orgID := domain.NewOrganizationID()
	owner := newStoredMembership(t, orgID, domain.RoleOwner, domain.MembershipActive)
	admin := newStoredMembership(t, orgID, domain.RoleAdmin, domain.MembershipActive)
	repo := newFakeMembershipRepo(owner, admin)
	repo.failSaveAt = 2 // promotion lands, demotion does not
	pub := &fakePublisher{}
	uc := NewTransferOwnership(repo, pub)

	ownerStored := owner.Snapshot()
	input := TransferOwnershipInput{
		OrganizationID: orgID,
		CurrentOwnerID: owner.ID(),
		NewOwnerUserID: admin.UserID(),
	}
	_, err := uc.Execute(context.Background(), input)
	require.Error(t, err)
	require.Len(t, repo.saved, 1, "the recipient's promotion was persisted")
	assert.Equal(t, domain.RoleOwner, repo.saved[0].Role)

	// the interrupted transfer left two persisted owners; reload from
	// storage and retry, which finishes the pending demote
	factory := memdomain.NewFactory()
	newOwner, err := factory.Reconstitute(repo.saved[0])
	require.NoError(t, err)
	oldOwner, err := factory.Reconstitute(ownerStored)
	require.NoError(t, err)
	retryRepo := newFakeMembershipRepo(oldOwner, newOwner)
	retryPub := &fakePublisher{}

	result, err := NewTransferOwnership(retryRepo, retryPub).Execute(context.Background(), input)
	require.NoError(t, err)

	assert.True(t, result.NewOwner.IsOwner())
	assert.Equal(t, domain.RoleAdmin, result.PreviousOwner.Role())
	require.Len(t, retryRepo.saved, 1, "the retry writes only the pending demote")
	assert.Equal(t, domain.RoleAdmin, retryRepo.saved[0].Role)
	require.Len(t, retryPub.published, 1)
	assert.Equal(t, domain.EventMembershipRoleChanged, retryPub.published[0].EventType())
}

func TestTransferOwnershipWrongOrganization(t *testing.T) {
	orgID := domain.NewOrganizationID()
	owner := newStoredMembership(t, domain.NewOrganizationID(), domain.RoleOwner, domain.MembershipActive)
	repo := newFakeMembershipRepo(owner)
	uc := NewTransferOwnership(repo, &fakePublisher{})

	_, err := uc.Execute(context.Background(), TransferOwnershipInput{
		OrganizationID: orgID,
		CurrentOwnerID: owner.ID(),
		NewOwnerUserID: domain.NewUserID(),
	})

	var inv *domerrors.InvariantViolationError
	require.ErrorAs(t, err, &inv)
}
