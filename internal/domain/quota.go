package domain

import (
	"math"

	domerrors "github.com/7Spade/tortoise/internal/domain/errors"
)

// UnlimitedQuota is the sentinel ceiling for quotas with no limit.
const UnlimitedQuota = math.MaxInt64

// QuotaTypeModules is the quota type reported when the module ceiling is hit.
// The wire value predates the module rename.
const QuotaTypeModules = "projects"

// WorkspaceQuota bounds how many modules a workspace may hold and how much
// storage it may consume. Zero is a legal ceiling; negative values are not.
type WorkspaceQuota struct {
	maxModules int64
	maxStorage int64
}

// NewWorkspaceQuota validates the ceilings into a WorkspaceQuota.
func NewWorkspaceQuota(maxModules, maxStorage int64) (WorkspaceQuota, error) {
	if maxModules < 0 {
		return WorkspaceQuota{}, domerrors.NewValidation("max_modules", "must be non-negative")
	}
	if maxStorage < 0 {
		return WorkspaceQuota{}, domerrors.NewValidation("max_storage", "must be non-negative")
	}
	return WorkspaceQuota{maxModules: maxModules, maxStorage: maxStorage}, nil
}

// UnlimitedWorkspaceQuota returns a quota with no effective ceilings.
func UnlimitedWorkspaceQuota() WorkspaceQuota {
	return WorkspaceQuota{maxModules: UnlimitedQuota, maxStorage: UnlimitedQuota}
}

// MaxModules returns the module ceiling.
func (q WorkspaceQuota) MaxModules() int64 { return q.maxModules }

// MaxStorage returns the storage ceiling.
func (q WorkspaceQuota) MaxStorage() int64 { return q.maxStorage }

// CanAddModules reports whether current+toAdd stays within the ceiling.
func (q WorkspaceQuota) CanAddModules(current, toAdd int) bool {
	return int64(current)+int64(toAdd) <= q.maxModules
}

// IsUnlimited reports whether the module ceiling is the unlimited sentinel.
func (q WorkspaceQuota) IsUnlimited() bool { return q.maxModules == UnlimitedQuota }

// IsZero reports whether the quota is the zero value.
func (q WorkspaceQuota) IsZero() bool { return q == WorkspaceQuota{} }
