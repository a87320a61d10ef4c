package workspace

import (
	"github.com/7Spade/tortoise/internal/domain"
	domerrors "github.com/7Spade/tortoise/internal/domain/errors"
)

// Module is a feature module provisioned inside a workspace. Construction is
// restricted to this package: modules are minted through ProvisionModule or
// rebuilt from storage with ReconstituteModule, never assembled ad hoc.
type Module struct {
	id          domain.ModuleID
	workspaceID domain.WorkspaceID
	key         domain.ModuleKey
	config      domain.ModuleConfig
	enabled     bool
}

func newModule(id domain.ModuleID, workspaceID domain.WorkspaceID, key domain.ModuleKey, config domain.ModuleConfig, enabled bool) *Module {
	return &Module{id: id, workspaceID: workspaceID, key: key, config: config, enabled: enabled}
}

// ProvisionModule mints a new Module for this workspace and attaches it,
// subject to the same quota and lifecycle rules as AddModule.
func (w *Workspace) ProvisionModule(key domain.ModuleKey) (*Module, error) {
	if key.IsZero() {
		return nil, domerrors.NewInvariantViolation("module key is required")
	}
	id := domain.NewModuleID()
	if err := w.AddModule(id); err != nil {
		return nil, err
	}
	return newModule(id, w.id, key, domain.ModuleConfig{}, true), nil
}

// ReconstituteModule rebuilds a Module from persisted state.
func ReconstituteModule(id domain.ModuleID, workspaceID domain.WorkspaceID, key domain.ModuleKey, config domain.ModuleConfig, enabled bool) (*Module, error) {
	if id.IsZero() {
		return nil, domerrors.NewInvariantViolation("module id is required")
	}
	if workspaceID.IsZero() {
		return nil, domerrors.NewInvariantViolation("workspace id is required")
	}
	if key.IsZero() {
		return nil, domerrors.NewInvariantViolation("module key is required")
	}
	return newModule(id, workspaceID, key, config, enabled), nil
}

// ID returns the module identity.
func (m *Module) ID() domain.ModuleID { return m.id }

// WorkspaceID returns the owning workspace.
func (m *Module) WorkspaceID() domain.WorkspaceID { return m.workspaceID }

// Key returns the module key.
func (m *Module) Key() domain.ModuleKey { return m.key }

// Config returns the immutable configuration snapshot.
func (m *Module) Config() domain.ModuleConfig { return m.config }

// Enabled reports whether the module is switched on.
func (m *Module) Enabled() bool { return m.enabled }

// Configure replaces the module configuration with a new snapshot.
func (m *Module) Configure(config domain.ModuleConfig) {
	m.config = config
}

// Enable switches the module on. Idempotent.
func (m *Module) Enable() { m.enabled = true }

// Disable switches the module off. Idempotent.
func (m *Module) Disable() { m.enabled = false }
