// Package workspace defines the Workspace aggregate: lifecycle, quota, and
// module membership, with every invariant enforced behind behavior methods.
package workspace

import (
	"github.com/7Spade/tortoise/internal/domain"
	domerrors "github.com/7Spade/tortoise/internal/domain/errors"
)

const (
	transitionArchive      = "archive"
	transitionActivate     = "activate"
	transitionAddModule    = "add module"
	transitionRemoveModule = "remove module"
)

// Workspace is the aggregate root for a tenant workspace. It is the only
// entry point for mutating its module membership and lifecycle; repeated
// calls that would not change state are silent no-ops, never errors.
type Workspace struct {
	domain.AggregateRoot

	id        domain.WorkspaceID
	owner     Owner
	status    domain.WorkspaceStatus
	quota     domain.WorkspaceQuota
	moduleIDs []domain.ModuleID
	version   int64
}

// ID returns the workspace identity.
func (w *Workspace) ID() domain.WorkspaceID { return w.id }

// Owner returns the immutable owner reference.
func (w *Workspace) Owner() Owner { return w.owner }

// Status returns the current lifecycle state.
func (w *Workspace) Status() domain.WorkspaceStatus { return w.status }

// Quota returns the workspace quota.
func (w *Workspace) Quota() domain.WorkspaceQuota { return w.quota }

// Version returns the optimistic-concurrency version. It increments on every
// effective mutation and is compared-and-swapped at save time.
func (w *Workspace) Version() int64 { return w.version }

// IsActive reports whether the workspace is active.
func (w *Workspace) IsActive() bool { return w.status == domain.WorkspaceActive }

// IsArchived reports whether the workspace is archived.
func (w *Workspace) IsArchived() bool { return w.status == domain.WorkspaceArchived }

// IsDeleted reports whether the workspace is deleted.
func (w *Workspace) IsDeleted() bool { return w.status == domain.WorkspaceDeleted }

// ModuleCount returns the number of attached modules.
func (w *Workspace) ModuleCount() int { return len(w.moduleIDs) }

// ModuleIDs returns a copy of the ordered module ID list.
func (w *Workspace) ModuleIDs() []domain.ModuleID {
	out := make([]domain.ModuleID, len(w.moduleIDs))
	copy(out, w.moduleIDs)
	return out
}

// HasModule reports whether the module is attached.
func (w *Workspace) HasModule(id domain.ModuleID) bool {
	for _, m := range w.moduleIDs {
		if m == id {
			return true
		}
	}
	return false
}

// CanAddModule reports whether one more module fits within the quota.
func (w *Workspace) CanAddModule() bool {
	return w.quota.CanAddModules(len(w.moduleIDs), 1)
}

// Archive moves the workspace to the archived state. Archiving an archived
// workspace is a no-op; a deleted workspace cannot be archived.
func (w *Workspace) Archive() error {
	if w.IsDeleted() {
		return domerrors.NewIllegalStateTransition(w.status.String(), transitionArchive)
	}
	if w.IsArchived() {
		return nil
	}
	w.status = domain.WorkspaceArchived
	w.version++
	w.Record(newArchivedEvent(w.id))
	return nil
}

// Activate moves the workspace back to the active state. Activating an
// active workspace is a no-op; a deleted workspace cannot be activated.
func (w *Workspace) Activate() error {
	if w.IsDeleted() {
		return domerrors.NewIllegalStateTransition(w.status.String(), transitionActivate)
	}
	if w.IsActive() {
		return nil
	}
	w.status = domain.WorkspaceActive
	w.version++
	w.Record(newActivatedEvent(w.id))
	return nil
}

// Delete moves the workspace to the deleted state. Deletion is logical and
// absorbing: deleting a deleted workspace is a no-op, and no later action
// may leave the deleted state.
func (w *Workspace) Delete() error {
	if w.IsDeleted() {
		return nil
	}
	w.status = domain.WorkspaceDeleted
	w.version++
	w.Record(newDeletedEvent(w.id))
	return nil
}

// AddModule attaches a module. Re-adding an attached module is a no-op.
// A deleted workspace rejects the mutation; exceeding the quota fails with
// QuotaExceededError carrying limit and attempted count.
func (w *Workspace) AddModule(id domain.ModuleID) error {
	if w.IsDeleted() {
		return domerrors.NewIllegalStateTransition(w.status.String(), transitionAddModule)
	}
	if w.HasModule(id) {
		return nil
	}
	if !w.quota.CanAddModules(len(w.moduleIDs), 1) {
		return domerrors.NewQuotaExceeded(domain.QuotaTypeModules, int(w.quota.MaxModules()), len(w.moduleIDs)+1)
	}
	w.moduleIDs = append(w.moduleIDs, id)
	w.version++
	w.Record(newModuleAddedEvent(w.id, id))
	return nil
}

// RemoveModule detaches a module. Removing an absent module is a no-op.
// A deleted workspace rejects the mutation.
func (w *Workspace) RemoveModule(id domain.ModuleID) error {
	if w.IsDeleted() {
		return domerrors.NewIllegalStateTransition(w.status.String(), transitionRemoveModule)
	}
	for i, m := range w.moduleIDs {
		if m == id {
			w.moduleIDs = append(w.moduleIDs[:i], w.moduleIDs[i+1:]...)
			w.version++
			w.Record(newModuleRemovedEvent(w.id, id))
			return nil
		}
	}
	return nil
}

// Snapshot projects the full aggregate state for persistence. Status, quota,
// and version are included so the snapshot round-trips losslessly through
// Factory.Reconstitute.
func (w *Workspace) Snapshot() Snapshot {
	return Snapshot{
		ID:         w.id,
		OwnerType:  w.owner.Type(),
		OwnerID:    w.owner.ID(),
		Status:     w.status,
		MaxModules: w.quota.MaxModules(),
		MaxStorage: w.quota.MaxStorage(),
		ModuleIDs:  w.ModuleIDs(),
		Version:    w.version,
	}
}

// Snapshot is the persistence projection of a Workspace.
type Snapshot struct {
	ID         domain.WorkspaceID
	OwnerType  domain.OwnerType
	OwnerID    string
	Status     domain.WorkspaceStatus
	MaxModules int64
	MaxStorage int64
	ModuleIDs  []domain.ModuleID
	Version    int64
}
