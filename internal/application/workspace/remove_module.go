package workspace

import (
	"context"

	"github.com/7Spade/tortoise/internal/application/ports"
	"github.com/7Spade/tortoise/internal/domain"
)

// RemoveModuleInput names the workspace and the module to detach.
type RemoveModuleInput struct {
	WorkspaceID domain.WorkspaceID
	ModuleID    domain.ModuleID
}

// RemoveModule detaches a module from a workspace. Detaching an absent
// module is a silent no-op.
type RemoveModule struct {
	workspaces ports.WorkspaceRepository
	publisher  ports.EventPublisher
}

// NewRemoveModule builds the use case.
func NewRemoveModule(workspaces ports.WorkspaceRepository, publisher ports.EventPublisher) *RemoveModule {
	return &RemoveModule{workspaces: workspaces, publisher: publisher}
}

// Execute removes the module and persists the change when one was attached.
func (uc *RemoveModule) Execute(ctx context.Context, input RemoveModuleInput) error {
	ws, err := loadWorkspace(ctx, uc.workspaces, input.WorkspaceID)
	if err != nil {
		return err
	}
	if err := ws.RemoveModule(input.ModuleID); err != nil {
		return err
	}
	return saveAndPublish(ctx, uc.workspaces, uc.publisher, ws)
}
