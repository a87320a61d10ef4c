package workspace

import (
	"context"

	"github.com/7Spade/tortoise/internal/application/ports"
	"github.com/7Spade/tortoise/internal/domain"
	wsdomain "github.com/7Spade/tortoise/internal/domain/workspace"
)

// AddModuleInput names the workspace and the module key to provision.
type AddModuleInput struct {
	WorkspaceID domain.WorkspaceID
	ModuleKey   domain.ModuleKey
}

// AddModuleResult returns the provisioned module entity.
type AddModuleResult struct {
	Module *wsdomain.Module
}

// AddModule provisions a module inside a workspace, gated by the operation
// policy (active workspace, quota headroom).
type AddModule struct {
	workspaces ports.WorkspaceRepository
	policy     *wsdomain.OperationPolicy
	publisher  ports.EventPublisher
}

// NewAddModule builds the use case.
func NewAddModule(workspaces ports.WorkspaceRepository, policy *wsdomain.OperationPolicy, publisher ports.EventPublisher) *AddModule {
	return &AddModule{workspaces: workspaces, policy: policy, publisher: publisher}
}

// Execute provisions the module, persists workspace and module, and
// publishes the events.
func (uc *AddModule) Execute(ctx context.Context, input AddModuleInput) (*AddModuleResult, error) {
	ws, err := loadWorkspace(ctx, uc.workspaces, input.WorkspaceID)
	if err != nil {
		return nil, err
	}
	if err := uc.policy.EnforceCanAddModules(ws); err != nil {
		return nil, err
	}
	module, err := ws.ProvisionModule(input.ModuleKey)
	if err != nil {
		return nil, err
	}
	if err := uc.workspaces.Save(ctx, ws.Snapshot()); err != nil {
		return nil, err
	}
	if err := uc.workspaces.SaveModule(ctx, module); err != nil {
		return nil, err
	}
	if err := uc.publisher.Publish(ctx, ws.PullEvents()); err != nil {
		return nil, err
	}
	return &AddModuleResult{Module: module}, nil
}
