package identity

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/7Spade/tortoise/internal/domain"
	domerrors "github.com/7Spade/tortoise/internal/domain/errors"
	iddomain "github.com/7Spade/tortoise/internal/domain/identity"
	memdomain "github.com/7Spade/tortoise/internal/domain/membership"
	"github.com/7Spade/tortoise/internal/domain/organization"
)

type fakeIdentityRepo struct {
	users      map[domain.UserID]*iddomain.User
	savedUsers []*iddomain.User
	savedBots  []*iddomain.Bot
}

func newFakeIdentityRepo(users ...*iddomain.User) *fakeIdentityRepo {
	repo := &fakeIdentityRepo{users: map[domain.UserID]*iddomain.User{}}
	for _, u := range users {
		repo.users[u.ID] = u
	}
	return repo
}

func (r *fakeIdentityRepo) FindUsers(context.Context) ([]*iddomain.User, error) { return nil, nil }

func (r *fakeIdentityRepo) FindUserByID(_ context.Context, id domain.UserID) (*iddomain.User, error) {
	return r.users[id], nil
}

func (r *fakeIdentityRepo) FindUserByEmail(_ context.Context, email domain.Email) (*iddomain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeIdentityRepo) SaveUser(_ context.Context, user *iddomain.User) error {
	r.users[user.ID] = user
	r.savedUsers = append(r.savedUsers, user)
	return nil
}

func (r *fakeIdentityRepo) DeleteUser(context.Context, domain.UserID) error { return nil }

func (r *fakeIdentityRepo) FindOrganizations(context.Context) ([]organization.Organization, error) {
	return nil, nil
}

func (r *fakeIdentityRepo) FindOrganizationByID(context.Context, domain.OrganizationID) (*organization.Organization, error) {
	return nil, nil
}

func (r *fakeIdentityRepo) SaveOrganization(context.Context, organization.ReconstituteParams) error {
	return nil
}

func (r *fakeIdentityRepo) DeleteOrganization(context.Context, domain.OrganizationID) error {
	return nil
}

func (r *fakeIdentityRepo) FindBots(context.Context) ([]*iddomain.Bot, error) { return nil, nil }

func (r *fakeIdentityRepo) FindBotByID(context.Context, domain.BotID) (*iddomain.Bot, error) {
	return nil, nil
}

func (r *fakeIdentityRepo) SaveBot(_ context.Context, bot *iddomain.Bot) error {
	r.savedBots = append(r.savedBots, bot)
	return nil
}

func (r *fakeIdentityRepo) DeleteBot(context.Context, domain.BotID) error { return nil }

type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (fakeHasher) Verify(password, hash string) bool { return hash == "hashed:"+password }

type fakeIssuer struct{}

func (fakeIssuer) IssueAccessToken(userID string, _ int64) (string, error) {
	return "token-for-" + userID, nil
}

func (fakeIssuer) IssueAccessTokenWithOrg(userID, orgID, role string, _ int64) (string, error) {
	return "token-for-" + userID + "-in-" + orgID + "-as-" + role, nil
}

func (fakeIssuer) ValidateAccessToken(string) (string, string, string, error) {
	return "", "", "", nil
}

type fakeMembershipRepo struct {
	membership *memdomain.Membership
}

func (r *fakeMembershipRepo) GetTeams(context.Context, domain.OrganizationID) ([]organization.TeamState, error) {
	return nil, nil
}

func (r *fakeMembershipRepo) GetPartners(context.Context, domain.OrganizationID) ([]organization.PartnerState, error) {
	return nil, nil
}

func (r *fakeMembershipRepo) GetOrganizationMemberships(context.Context, domain.OrganizationID) ([]*memdomain.Membership, error) {
	return nil, nil
}

func (r *fakeMembershipRepo) GetByID(context.Context, domain.MembershipID) (*memdomain.Membership, error) {
	return nil, nil
}

func (r *fakeMembershipRepo) GetByOrganizationAndUser(_ context.Context, orgID domain.OrganizationID, userID domain.UserID) (*memdomain.Membership, error) {
	if r.membership == nil || r.membership.OrganizationID() != orgID || r.membership.UserID() != userID {
		return nil, nil
	}
	return r.membership, nil
}

func (r *fakeMembershipRepo) Save(context.Context, memdomain.Snapshot) error { return nil }

func storedUser(t *testing.T, email, password string) *iddomain.User {
	t.Helper()
	addr, err := domain.NewEmail(email)
	require.NoError(t, err)
	name, err := domain.NewDisplayName("Test User")
	require.NoError(t, err)
	return iddomain.NewUser(addr, name, "hashed:"+password, time.Now().UTC())
}

func TestRegisterUser(t *testing.T) {
	repo := newFakeIdentityRepo()
	uc := NewRegisterUser(repo, fakeHasher{})

	result, err := uc.Execute(context.Background(), RegisterUserInput{
		Email:       "New@Example.com",
		DisplayName: "New User",
		Password:    "correct horse battery",
	})
	require.NoError(t, err)

	assert.Equal(t, "new@example.com", result.User.Email.String(), "email must be normalized")
	assert.Equal(t, "hashed:correct horse battery", result.User.PasswordHash)
	assert.True(t, result.User.IsActive())
	require.Len(t, repo.savedUsers, 1)
}

func TestRegisterUserRejectsShortPassword(t *testing.T) {
	uc := NewRegisterUser(newFakeIdentityRepo(), fakeHasher{})

	_, err := uc.Execute(context.Background(), RegisterUserInput{
		Email:       "new@example.com",
		DisplayName: "New User",
		Password:    "short",
	})

	var vErr *domerrors.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "password", vErr.Field)
}

func TestRegisterUserRejectsDuplicateEmail(t *testing.T) {
	existing := storedUser(t, "taken@example.com", "whatever-pw")
	repo := newFakeIdentityRepo(existing)
	uc := NewRegisterUser(repo, fakeHasher{})

	_, err := uc.Execute(context.Background(), RegisterUserInput{
		Email:       "taken@example.com",
		DisplayName: "Impostor",
		Password:    "long enough password",
	})

	var inv *domerrors.InvariantViolationError
	require.ErrorAs(t, err, &inv)
	assert.Empty(t, repo.savedUsers)
}

func TestSignIn(t *testing.T) {
	user := storedUser(t, "user@example.com", "secret-password")
	repo := newFakeIdentityRepo(user)
	uc := NewSignIn(repo, fakeHasher{}, fakeIssuer{}, 0)

	result, err := uc.Execute(context.Background(), SignInInput{
		Email:    "user@example.com",
		Password: "secret-password",
	})
	require.NoError(t, err)

	assert.Equal(t, "token-for-"+user.ID.String(), result.AccessToken)
	assert.Equal(t, int64(DefaultAccessTokenExpiry), result.ExpiresIn)
	assert.Equal(t, user.ID, result.User.ID)
}

func TestSignInWrongPassword(t *testing.T) {
	user := storedUser(t, "user@example.com", "secret-password")
	uc := NewSignIn(newFakeIdentityRepo(user), fakeHasher{}, fakeIssuer{}, 0)

	_, err := uc.Execute(context.Background(), SignInInput{
		Email:    "user@example.com",
		Password: "wrong-password",
	})

	var authz *domerrors.AuthorizationError
	require.ErrorAs(t, err, &authz)
	assert.Equal(t, "invalid credentials", authz.Reason)
}

func TestSignInUnknownEmailSameError(t *testing.T) {
	uc := NewSignIn(newFakeIdentityRepo(), fakeHasher{}, fakeIssuer{}, 0)

	_, err := uc.Execute(context.Background(), SignInInput{
		Email:    "nobody@example.com",
		Password: "secret-password",
	})

	var authz *domerrors.AuthorizationError
	require.ErrorAs(t, err, &authz)
	assert.Equal(t, "invalid credentials", authz.Reason, "unknown emails and wrong passwords must be indistinguishable")
}

func TestSignInDisabledAccount(t *testing.T) {
	user := storedUser(t, "user@example.com", "secret-password")
	user.Status = domain.IdentityDisabled
	uc := NewSignIn(newFakeIdentityRepo(user), fakeHasher{}, fakeIssuer{}, 0)

	_, err := uc.Execute(context.Background(), SignInInput{
		Email:    "user@example.com",
		Password: "secret-password",
	})

	var authz *domerrors.AuthorizationError
	require.ErrorAs(t, err, &authz)
	assert.Equal(t, "account is disabled", authz.Reason)
}

func TestAssumeOrganization(t *testing.T) {
	orgID := domain.NewOrganizationID()
	userID := domain.NewUserID()
	m, err := memdomain.NewFactory().CreateNew(memdomain.CreateNewParams{
		OrganizationID: orgID,
		UserID:         userID,
		Role:           domain.RoleAdmin,
	})
	require.NoError(t, err)
	uc := NewAssumeOrganization(&fakeMembershipRepo{membership: m}, fakeIssuer{}, 0)

	result, err := uc.Execute(context.Background(), AssumeOrganizationInput{UserID: userID, OrganizationID: orgID})
	require.NoError(t, err)

	assert.Equal(t, domain.RoleAdmin, result.Role)
	assert.Equal(t, "token-for-"+userID.String()+"-in-"+orgID.String()+"-as-admin", result.AccessToken)
}

func TestAssumeOrganizationSuspendedMember(t *testing.T) {
	orgID := domain.NewOrganizationID()
	userID := domain.NewUserID()
	m, err := memdomain.NewFactory().CreateNew(memdomain.CreateNewParams{
		OrganizationID: orgID,
		UserID:         userID,
		Status:         domain.MembershipSuspended,
	})
	require.NoError(t, err)
	uc := NewAssumeOrganization(&fakeMembershipRepo{membership: m}, fakeIssuer{}, 0)

	_, err = uc.Execute(context.Background(), AssumeOrganizationInput{UserID: userID, OrganizationID: orgID})

	var authz *domerrors.AuthorizationError
	require.ErrorAs(t, err, &authz)
}

func TestAssumeOrganizationNotAMember(t *testing.T) {
	uc := NewAssumeOrganization(&fakeMembershipRepo{}, fakeIssuer{}, 0)

	_, err := uc.Execute(context.Background(), AssumeOrganizationInput{
		UserID:         domain.NewUserID(),
		OrganizationID: domain.NewOrganizationID(),
	})

	var nf *domerrors.NotFoundError
	require.ErrorAs(t, err, &nf)
}

func TestCreateBot(t *testing.T) {
	owner := storedUser(t, "owner@example.com", "secret-password")
	repo := newFakeIdentityRepo(owner)
	uc := NewCreateBot(repo)

	result, err := uc.Execute(context.Background(), CreateBotInput{
		OwnerUserID: owner.ID,
		DisplayName: "deploy-bot",
	})
	require.NoError(t, err)

	assert.Equal(t, owner.ID, result.Bot.OwnerUserID)
	assert.True(t, result.Bot.IsActive())
	require.Len(t, repo.savedBots, 1)
}

func TestCreateBotDisabledOwner(t *testing.T) {
	owner := storedUser(t, "owner@example.com", "secret-password")
	owner.Status = domain.IdentityDisabled
	uc := NewCreateBot(newFakeIdentityRepo(owner))

	_, err := uc.Execute(context.Background(), CreateBotInput{
		OwnerUserID: owner.ID,
		DisplayName: "deploy-bot",
	})

	var authz *domerrors.AuthorizationError
	require.ErrorAs(t, err, &authz)
}
