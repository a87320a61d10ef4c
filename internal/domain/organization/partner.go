package organization

import "github.com/7Spade/tortoise/internal/domain"

// Partner is an external collaborator group. Partners are external by
// construction: none of their members may be organization members. Like
// Team, the constructor is unexported so only the aggregate mints partners.
type Partner struct {
	id          domain.PartnerID
	name        domain.DisplayName
	accessLevel domain.PartnerAccessLevel
	memberIDs   []domain.UserID
}

func newPartner(id domain.PartnerID, name domain.DisplayName, accessLevel domain.PartnerAccessLevel, memberIDs []domain.UserID) Partner {
	return Partner{id: id, name: name, accessLevel: accessLevel, memberIDs: copyUserIDs(memberIDs)}
}

// ID returns the partner identity.
func (p Partner) ID() domain.PartnerID { return p.id }

// Name returns the partner display name.
func (p Partner) Name() domain.DisplayName { return p.name }

// AccessLevel returns what the partner group may see.
func (p Partner) AccessLevel() domain.PartnerAccessLevel { return p.accessLevel }

// MemberIDs returns a copy of the member list.
func (p Partner) MemberIDs() []domain.UserID { return copyUserIDs(p.memberIDs) }

// HasMember reports whether the user belongs to the partner group.
func (p Partner) HasMember(id domain.UserID) bool { return containsUserID(p.memberIDs, id) }

func (p Partner) withMember(id domain.UserID) Partner {
	return Partner{id: p.id, name: p.name, accessLevel: p.accessLevel, memberIDs: append(copyUserIDs(p.memberIDs), id)}
}
