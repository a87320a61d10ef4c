package workspace

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/7Spade/tortoise/internal/domain"
	domerrors "github.com/7Spade/tortoise/internal/domain/errors"
	wsdomain "github.com/7Spade/tortoise/internal/domain/workspace"
)

type fakeWorkspaceRepo struct {
	workspace    *wsdomain.Workspace
	savedSnaps   []wsdomain.Snapshot
	savedModules []*wsdomain.Module
	saveErr      error
}

func (r *fakeWorkspaceRepo) FindByID(_ context.Context, id domain.WorkspaceID) (*wsdomain.Workspace, error) {
	if r.workspace == nil || r.workspace.ID() != id {
		return nil, nil
	}
	return r.workspace, nil
}

func (r *fakeWorkspaceRepo) FindByOwner(context.Context, wsdomain.Owner) ([]*wsdomain.Workspace, error) {
	if r.workspace == nil {
		return nil, nil
	}
	return []*wsdomain.Workspace{r.workspace}, nil
}

func (r *fakeWorkspaceRepo) Save(_ context.Context, snapshot wsdomain.Snapshot) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.savedSnaps = append(r.savedSnaps, snapshot)
	return nil
}

func (r *fakeWorkspaceRepo) Delete(context.Context, domain.WorkspaceID) error { return nil }

func (r *fakeWorkspaceRepo) FindModules(context.Context, domain.WorkspaceID) ([]*wsdomain.Module, error) {
	return r.savedModules, nil
}

func (r *fakeWorkspaceRepo) SaveModule(_ context.Context, module *wsdomain.Module) error {
	r.savedModules = append(r.savedModules, module)
	return nil
}

type fakePublisher struct {
	published []domain.Event
}

func (p *fakePublisher) Publish(_ context.Context, events []domain.Event) error {
	p.published = append(p.published, events...)
	return nil
}

func newStoredWorkspace(t *testing.T, quota *domain.WorkspaceQuota) *wsdomain.Workspace {
	t.Helper()
	ws, err := wsdomain.NewFactory().CreateNew(wsdomain.CreateNewParams{
		Owner: wsdomain.UserOwner(domain.NewUserID()),
		Quota: quota,
	})
	require.NoError(t, err)
	ws.PullEvents() // simulate an already-persisted aggregate
	return ws
}

func TestCreateWorkspace(t *testing.T) {
	repo := &fakeWorkspaceRepo{}
	pub := &fakePublisher{}
	uc := NewCreateWorkspace(repo, wsdomain.NewFactory(), pub)

	result, err := uc.Execute(context.Background(), CreateWorkspaceInput{
		Owner: wsdomain.UserOwner(domain.NewUserID()),
	})
	require.NoError(t, err)

	require.NotNil(t, result.Workspace)
	require.Len(t, repo.savedSnaps, 1)
	assert.Equal(t, result.Workspace.ID(), repo.savedSnaps[0].ID)
	require.Len(t, pub.published, 1)
	assert.Equal(t, domain.EventWorkspaceCreated, pub.published[0].EventType())
	assert.False(t, result.Workspace.HasPendingEvents(), "events must be drained after publish")
}

func TestCreateWorkspaceRequiresOwner(t *testing.T) {
	uc := NewCreateWorkspace(&fakeWorkspaceRepo{}, wsdomain.NewFactory(), &fakePublisher{})

	_, err := uc.Execute(context.Background(), CreateWorkspaceInput{})

	var inv *domerrors.InvariantViolationError
	require.ErrorAs(t, err, &inv)
}

func TestArchiveWorkspace(t *testing.T) {
	ws := newStoredWorkspace(t, nil)
	repo := &fakeWorkspaceRepo{workspace: ws}
	pub := &fakePublisher{}
	uc := NewArchiveWorkspace(repo, wsdomain.NewOperationPolicy(), pub)

	require.NoError(t, uc.Execute(context.Background(), ws.ID()))

	require.Len(t, repo.savedSnaps, 1)
	assert.Equal(t, domain.WorkspaceArchived, repo.savedSnaps[0].Status)
	require.Len(t, pub.published, 1)
	assert.Equal(t, domain.EventWorkspaceArchived, pub.published[0].EventType())
}

func TestArchiveWorkspaceNoOpSkipsPersistence(t *testing.T) {
	ws := newStoredWorkspace(t, nil)
	require.NoError(t, ws.Archive())
	ws.PullEvents()
	repo := &fakeWorkspaceRepo{workspace: ws}
	pub := &fakePublisher{}
	uc := NewArchiveWorkspace(repo, wsdomain.NewOperationPolicy(), pub)

	require.NoError(t, uc.Execute(context.Background(), ws.ID()))

	assert.Empty(t, repo.savedSnaps, "idempotent archive must not write")
	assert.Empty(t, pub.published)
}

func TestArchiveWorkspaceNotFound(t *testing.T) {
	uc := NewArchiveWorkspace(&fakeWorkspaceRepo{}, wsdomain.NewOperationPolicy(), &fakePublisher{})

	err := uc.Execute(context.Background(), domain.NewWorkspaceID())

	var nf *domerrors.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "workspace", nf.Resource)
}

func TestDeleteWorkspaceFromArchived(t *testing.T) {
	ws := newStoredWorkspace(t, nil)
	require.NoError(t, ws.Archive())
	ws.PullEvents()
	repo := &fakeWorkspaceRepo{workspace: ws}
	pub := &fakePublisher{}
	uc := NewDeleteWorkspace(repo, pub)

	require.NoError(t, uc.Execute(context.Background(), ws.ID()))

	require.Len(t, repo.savedSnaps, 1)
	assert.Equal(t, domain.WorkspaceDeleted, repo.savedSnaps[0].Status)
}

func TestActivateDeletedWorkspaceFails(t *testing.T) {
	ws := newStoredWorkspace(t, nil)
	require.NoError(t, ws.Delete())
	ws.PullEvents()
	repo := &fakeWorkspaceRepo{workspace: ws}
	uc := NewActivateWorkspace(repo, wsdomain.NewOperationPolicy(), &fakePublisher{})

	err := uc.Execute(context.Background(), ws.ID())

	var authz *domerrors.AuthorizationError
	require.ErrorAs(t, err, &authz)
	assert.Empty(t, repo.savedSnaps)
}

func TestAddModule(t *testing.T) {
	ws := newStoredWorkspace(t, nil)
	repo := &fakeWorkspaceRepo{workspace: ws}
	pub := &fakePublisher{}
	uc := NewAddModule(repo, wsdomain.NewOperationPolicy(), pub)
	key, err := domain.NewModuleKey("billing")
	require.NoError(t, err)

	result, err := uc.Execute(context.Background(), AddModuleInput{WorkspaceID: ws.ID(), ModuleKey: key})
	require.NoError(t, err)

	require.NotNil(t, result.Module)
	require.Len(t, repo.savedSnaps, 1)
	assert.Len(t, repo.savedSnaps[0].ModuleIDs, 1)
	require.Len(t, repo.savedModules, 1)
	assert.Equal(t, result.Module.ID(), repo.savedModules[0].ID())
	require.Len(t, pub.published, 1)
	assert.Equal(t, domain.EventModuleAdded, pub.published[0].EventType())
}

func TestAddModuleQuotaExhausted(t *testing.T) {
	quota, err := domain.NewWorkspaceQuota(1, domain.UnlimitedQuota)
	require.NoError(t, err)
	ws := newStoredWorkspace(t, &quota)
	key, err := domain.NewModuleKey("billing")
	require.NoError(t, err)
	_, err = ws.ProvisionModule(key)
	require.NoError(t, err)
	ws.PullEvents()
	repo := &fakeWorkspaceRepo{workspace: ws}
	uc := NewAddModule(repo, wsdomain.NewOperationPolicy(), &fakePublisher{})

	key2, err := domain.NewModuleKey("reports")
	require.NoError(t, err)
	_, err = uc.Execute(context.Background(), AddModuleInput{WorkspaceID: ws.ID(), ModuleKey: key2})

	var authz *domerrors.AuthorizationError
	require.ErrorAs(t, err, &authz)
	assert.Empty(t, repo.savedSnaps)
}

func TestAddModuleToArchivedWorkspaceFails(t *testing.T) {
	ws := newStoredWorkspace(t, nil)
	require.NoError(t, ws.Archive())
	ws.PullEvents()
	repo := &fakeWorkspaceRepo{workspace: ws}
	uc := NewAddModule(repo, wsdomain.NewOperationPolicy(), &fakePublisher{})
	key, err := domain.NewModuleKey("billing")
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), AddModuleInput{WorkspaceID: ws.ID(), ModuleKey: key})

	var authz *domerrors.AuthorizationError
	require.ErrorAs(t, err, &authz)
}

func TestRemoveModule(t *testing.T) {
	ws := newStoredWorkspace(t, nil)
	key, err := domain.NewModuleKey("billing")
	require.NoError(t, err)
	module, err := ws.ProvisionModule(key)
	require.NoError(t, err)
	ws.PullEvents()
	repo := &fakeWorkspaceRepo{workspace: ws}
	pub := &fakePublisher{}
	uc := NewRemoveModule(repo, pub)

	require.NoError(t, uc.Execute(context.Background(), RemoveModuleInput{WorkspaceID: ws.ID(), ModuleID: module.ID()}))

	require.Len(t, repo.savedSnaps, 1)
	assert.Empty(t, repo.savedSnaps[0].ModuleIDs)
	require.Len(t, pub.published, 1)
	assert.Equal(t, domain.EventModuleRemoved, pub.published[0].EventType())
}

func TestRemoveModuleAbsentIsNoOp(t *testing.T) {
	ws := newStoredWorkspace(t, nil)
	repo := &fakeWorkspaceRepo{workspace: ws}
	pub := &fakePublisher{}
	uc := NewRemoveModule(repo, pub)

	require.NoError(t, uc.Execute(context.Background(), RemoveModuleInput{WorkspaceID: ws.ID(), ModuleID: domain.NewModuleID()}))

	assert.Empty(t, repo.savedSnaps)
	assert.Empty(t, pub.published)
}
