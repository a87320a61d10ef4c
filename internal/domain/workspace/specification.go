package workspace

import "github.com/7Spade/tortoise/internal/domain"

// Specifications over *Workspace, composed by the operation policy.

// IsActiveSpec is satisfied when the workspace is in the active state.
func IsActiveSpec() domain.Specification[*Workspace] {
	return domain.SpecFunc("workspace is not active", func(w *Workspace) bool {
		return w.IsActive()
	})
}

// NotDeletedSpec is satisfied when the workspace has not been deleted.
func NotDeletedSpec() domain.Specification[*Workspace] {
	return domain.SpecFunc("workspace is deleted", func(w *Workspace) bool {
		return !w.IsDeleted()
	})
}

// CanAddModuleSpec is satisfied when one more module fits within the quota.
func CanAddModuleSpec() domain.Specification[*Workspace] {
	return domain.SpecFunc("workspace module quota is exhausted", func(w *Workspace) bool {
		return w.CanAddModule()
	})
}
