package workspace

import (
	"github.com/7Spade/tortoise/internal/domain"
	domerrors "github.com/7Spade/tortoise/internal/domain/errors"
)

// Factory builds Workspace aggregates: CreateNew for brand-new workspaces
// (creation event emitted), Reconstitute for rehydrating persisted state
// (no events).
type Factory struct{}

// NewFactory returns a workspace factory.
func NewFactory() *Factory { return &Factory{} }

// CreateNewParams are the inputs for a brand-new workspace. Quota defaults
// to unlimited when nil; ModuleIDs seeds the initial module list.
type CreateNewParams struct {
	Owner     Owner
	Quota     *domain.WorkspaceQuota
	ModuleIDs []domain.ModuleID
}

// CreateNew constructs an active workspace with a generated ID and records
// the creation event.
func (f *Factory) CreateNew(params CreateNewParams) (*Workspace, error) {
	if params.Owner.IsZero() {
		return nil, domerrors.NewInvariantViolation("workspace owner is required")
	}
	quota := domain.UnlimitedWorkspaceQuota()
	if params.Quota != nil {
		quota = *params.Quota
	}
	if !quota.CanAddModules(0, len(params.ModuleIDs)) {
		return nil, domerrors.NewQuotaExceeded(domain.QuotaTypeModules, int(quota.MaxModules()), len(params.ModuleIDs))
	}
	if err := checkDuplicateModules(params.ModuleIDs); err != nil {
		return nil, err
	}
	w := &Workspace{
		id:        domain.NewWorkspaceID(),
		owner:     params.Owner,
		status:    domain.WorkspaceActive,
		quota:     quota,
		moduleIDs: copyModuleIDs(params.ModuleIDs),
	}
	w.Record(newCreatedEvent(w.id, w.owner))
	return w, nil
}

// Reconstitute rebuilds a workspace from a persisted snapshot without
// emitting events.
func (f *Factory) Reconstitute(snapshot Snapshot) (*Workspace, error) {
	if snapshot.ID.IsZero() {
		return nil, domerrors.NewInvariantViolation("workspace id is required")
	}
	owner, err := ParseOwner(snapshot.OwnerType, snapshot.OwnerID)
	if err != nil {
		return nil, domerrors.NewInvariantViolation("workspace owner is required")
	}
	if !snapshot.Status.Valid() {
		return nil, domerrors.NewInvariantViolation("workspace status is invalid")
	}
	quota, err := domain.NewWorkspaceQuota(snapshot.MaxModules, snapshot.MaxStorage)
	if err != nil {
		return nil, domerrors.NewInvariantViolation("workspace quota is invalid")
	}
	if err := checkDuplicateModules(snapshot.ModuleIDs); err != nil {
		return nil, err
	}
	return &Workspace{
		id:        snapshot.ID,
		owner:     owner,
		status:    snapshot.Status,
		quota:     quota,
		moduleIDs: copyModuleIDs(snapshot.ModuleIDs),
		version:   snapshot.Version,
	}, nil
}

func checkDuplicateModules(ids []domain.ModuleID) error {
	seen := make(map[domain.ModuleID]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			return domerrors.NewInvariantViolation("duplicate module id " + id.String())
		}
		seen[id] = struct{}{}
	}
	return nil
}

func copyModuleIDs(ids []domain.ModuleID) []domain.ModuleID {
	if len(ids) == 0 {
		return nil
	}
	out := make([]domain.ModuleID, len(ids))
	copy(out, ids)
	return out
}
