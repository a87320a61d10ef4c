// Package workspace contains the workspace use cases. Each use case follows
// the same shape: load or construct the aggregate, invoke behavior, persist
// the snapshot, then publish the pulled events.
package workspace

import (
	"context"

	"github.com/7Spade/tortoise/internal/application/ports"
	"github.com/7Spade/tortoise/internal/domain"
	wsdomain "github.com/7Spade/tortoise/internal/domain/workspace"
)

// CreateWorkspaceInput selects the owner and an optional quota; a nil quota
// means unlimited.
type CreateWorkspaceInput struct {
	Owner wsdomain.Owner
	Quota *domain.WorkspaceQuota
}

// CreateWorkspaceResult returns the created aggregate.
type CreateWorkspaceResult struct {
	Workspace *wsdomain.Workspace
}

// CreateWorkspace provisions a new workspace for a user or organization.
type CreateWorkspace struct {
	workspaces ports.WorkspaceRepository
	factory    *wsdomain.Factory
	publisher  ports.EventPublisher
}

// NewCreateWorkspace builds the use case.
func NewCreateWorkspace(workspaces ports.WorkspaceRepository, factory *wsdomain.Factory, publisher ports.EventPublisher) *CreateWorkspace {
	return &CreateWorkspace{workspaces: workspaces, factory: factory, publisher: publisher}
}

// Execute creates, persists, and announces the workspace.
func (uc *CreateWorkspace) Execute(ctx context.Context, input CreateWorkspaceInput) (*CreateWorkspaceResult, error) {
	ws, err := uc.factory.CreateNew(wsdomain.CreateNewParams{Owner: input.Owner, Quota: input.Quota})
	if err != nil {
		return nil, err
	}
	if err := uc.workspaces.Save(ctx, ws.Snapshot()); err != nil {
		return nil, err
	}
	if err := uc.publisher.Publish(ctx, ws.PullEvents()); err != nil {
		return nil, err
	}
	return &CreateWorkspaceResult{Workspace: ws}, nil
}
