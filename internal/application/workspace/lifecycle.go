package workspace

import (
	"context"

	"github.com/7Spade/tortoise/internal/application/ports"
	"github.com/7Spade/tortoise/internal/domain"
	domerrors "github.com/7Spade/tortoise/internal/domain/errors"
	wsdomain "github.com/7Spade/tortoise/internal/domain/workspace"
)

// loadWorkspace fetches the aggregate or fails with NotFoundError.
func loadWorkspace(ctx context.Context, repo ports.WorkspaceRepository, id domain.WorkspaceID) (*wsdomain.Workspace, error) {
	ws, err := repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ws == nil {
		return nil, domerrors.NewNotFound("workspace", id.String())
	}
	return ws, nil
}

// saveAndPublish persists the mutated snapshot and publishes pulled events.
func saveAndPublish(ctx context.Context, repo ports.WorkspaceRepository, publisher ports.EventPublisher, ws *wsdomain.Workspace) error {
	events := ws.PullEvents()
	if len(events) == 0 {
		// idempotent no-op: nothing changed, nothing to persist
		return nil
	}
	if err := repo.Save(ctx, ws.Snapshot()); err != nil {
		return err
	}
	return publisher.Publish(ctx, events)
}

// ArchiveWorkspace moves a workspace into the archived state.
type ArchiveWorkspace struct {
	workspaces ports.WorkspaceRepository
	policy     *wsdomain.OperationPolicy
	publisher  ports.EventPublisher
}

// NewArchiveWorkspace builds the use case.
func NewArchiveWorkspace(workspaces ports.WorkspaceRepository, policy *wsdomain.OperationPolicy, publisher ports.EventPublisher) *ArchiveWorkspace {
	return &ArchiveWorkspace{workspaces: workspaces, policy: policy, publisher: publisher}
}

// Execute archives the workspace identified by id.
func (uc *ArchiveWorkspace) Execute(ctx context.Context, id domain.WorkspaceID) error {
	ws, err := loadWorkspace(ctx, uc.workspaces, id)
	if err != nil {
		return err
	}
	if err := uc.policy.EnforceCanArchive(ws); err != nil {
		return err
	}
	if err := ws.Archive(); err != nil {
		return err
	}
	return saveAndPublish(ctx, uc.workspaces, uc.publisher, ws)
}

// ActivateWorkspace moves a workspace back into the active state.
type ActivateWorkspace struct {
	workspaces ports.WorkspaceRepository
	policy     *wsdomain.OperationPolicy
	publisher  ports.EventPublisher
}

// NewActivateWorkspace builds the use case.
func NewActivateWorkspace(workspaces ports.WorkspaceRepository, policy *wsdomain.OperationPolicy, publisher ports.EventPublisher) *ActivateWorkspace {
	return &ActivateWorkspace{workspaces: workspaces, policy: policy, publisher: publisher}
}

// Execute activates the workspace identified by id.
func (uc *ActivateWorkspace) Execute(ctx context.Context, id domain.WorkspaceID) error {
	ws, err := loadWorkspace(ctx, uc.workspaces, id)
	if err != nil {
		return err
	}
	if err := uc.policy.EnforceCanActivate(ws); err != nil {
		return err
	}
	if err := ws.Activate(); err != nil {
		return err
	}
	return saveAndPublish(ctx, uc.workspaces, uc.publisher, ws)
}

// DeleteWorkspace performs the logical, absorbing deletion of a workspace.
type DeleteWorkspace struct {
	workspaces ports.WorkspaceRepository
	publisher  ports.EventPublisher
}

// NewDeleteWorkspace builds the use case.
func NewDeleteWorkspace(workspaces ports.WorkspaceRepository, publisher ports.EventPublisher) *DeleteWorkspace {
	return &DeleteWorkspace{workspaces: workspaces, publisher: publisher}
}

// Execute deletes the workspace identified by id.
func (uc *DeleteWorkspace) Execute(ctx context.Context, id domain.WorkspaceID) error {
	ws, err := loadWorkspace(ctx, uc.workspaces, id)
	if err != nil {
		return err
	}
	if err := ws.Delete(); err != nil {
		return err
	}
	return saveAndPublish(ctx, uc.workspaces, uc.publisher, ws)
}
