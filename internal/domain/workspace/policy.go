package workspace

import (
	"github.com/7Spade/tortoise/internal/domain"
	domerrors "github.com/7Spade/tortoise/internal/domain/errors"
)

// OperationPolicy gates workspace operations by composing specifications.
// The Can* queries answer without side effects; the Enforce* variants return
// an AuthorizationError carrying the composed failure reason.
type OperationPolicy struct {
	canAddModules domain.Specification[*Workspace]
	canArchive    domain.Specification[*Workspace]
	canActivate   domain.Specification[*Workspace]
}

// NewOperationPolicy builds the standard policy: modules may be added to an
// active workspace with quota headroom; archive/activate require the
// workspace not to be deleted.
func NewOperationPolicy() *OperationPolicy {
	return &OperationPolicy{
		canAddModules: domain.And(IsActiveSpec(), CanAddModuleSpec()),
		canArchive:    NotDeletedSpec(),
		canActivate:   NotDeletedSpec(),
	}
}

// CanAddModules reports whether the workspace accepts new modules.
func (p *OperationPolicy) CanAddModules(w *Workspace) bool {
	return p.canAddModules.IsSatisfiedBy(w)
}

// CanArchive reports whether the workspace may be archived.
func (p *OperationPolicy) CanArchive(w *Workspace) bool {
	return p.canArchive.IsSatisfiedBy(w)
}

// CanActivate reports whether the workspace may be activated.
func (p *OperationPolicy) CanActivate(w *Workspace) bool {
	return p.canActivate.IsSatisfiedBy(w)
}

// EnforceCanAddModules fails with the composed reason when modules may not
// be added.
func (p *OperationPolicy) EnforceCanAddModules(w *Workspace) error {
	if p.canAddModules.IsSatisfiedBy(w) {
		return nil
	}
	return domerrors.NewAuthorization(p.canAddModules.WhyNot(w))
}

// EnforceCanArchive fails with the composed reason when archiving is denied.
func (p *OperationPolicy) EnforceCanArchive(w *Workspace) error {
	if p.canArchive.IsSatisfiedBy(w) {
		return nil
	}
	return domerrors.NewAuthorization(p.canArchive.WhyNot(w))
}

// EnforceCanActivate fails with the composed reason when activation is denied.
func (p *OperationPolicy) EnforceCanActivate(w *Workspace) error {
	if p.canActivate.IsSatisfiedBy(w) {
		return nil
	}
	return domerrors.NewAuthorization(p.canActivate.WhyNot(w))
}
