package workspace

import (
	"github.com/7Spade/tortoise/internal/domain"
	domerrors "github.com/7Spade/tortoise/internal/domain/errors"
)

// Owner identifies who a workspace belongs to: a single user or an
// organization. The discriminator and the typed sub-identifier are fixed at
// construction; ownership never changes after creation.
type Owner struct {
	ownerType domain.OwnerType
	userID    domain.UserID
	orgID     domain.OrganizationID
}

// UserOwner returns an Owner for a user-owned workspace.
func UserOwner(id domain.UserID) Owner {
	return Owner{ownerType: domain.OwnerTypeUser, userID: id}
}

// OrganizationOwner returns an Owner for an organization-owned workspace.
func OrganizationOwner(id domain.OrganizationID) Owner {
	return Owner{ownerType: domain.OwnerTypeOrganization, orgID: id}
}

// ParseOwner reconstitutes an Owner from its persisted discriminator and raw ID.
func ParseOwner(ownerType domain.OwnerType, rawID string) (Owner, error) {
	switch ownerType {
	case domain.OwnerTypeUser:
		id, err := domain.ParseUserID(rawID)
		if err != nil {
			return Owner{}, err
		}
		return UserOwner(id), nil
	case domain.OwnerTypeOrganization:
		id, err := domain.ParseOrganizationID(rawID)
		if err != nil {
			return Owner{}, err
		}
		return OrganizationOwner(id), nil
	}
	return Owner{}, domerrors.NewValidation("owner_type", "must be user or organization")
}

// Type returns the owner discriminator.
func (o Owner) Type() domain.OwnerType { return o.ownerType }

// UserID returns the owning user ID; zero unless Type is user.
func (o Owner) UserID() domain.UserID { return o.userID }

// OrganizationID returns the owning organization ID; zero unless Type is organization.
func (o Owner) OrganizationID() domain.OrganizationID { return o.orgID }

// ID returns the canonical string form of the owning identifier.
func (o Owner) ID() string {
	if o.ownerType == domain.OwnerTypeOrganization {
		return o.orgID.String()
	}
	return o.userID.String()
}

// IsZero reports whether the owner is unset.
func (o Owner) IsZero() bool { return !o.ownerType.Valid() }
