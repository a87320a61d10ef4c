package organization

import "github.com/7Spade/tortoise/internal/domain"

// Team is an internal grouping of organization members. Teams are owned by
// the Organization aggregate: the constructor is unexported, so a Team can
// only be minted (or extended) through the aggregate's own methods, which is
// what keeps the team-members-are-org-members invariant enforceable.
type Team struct {
	id        domain.TeamID
	name      domain.DisplayName
	memberIDs []domain.UserID
}

func newTeam(id domain.TeamID, name domain.DisplayName, memberIDs []domain.UserID) Team {
	return Team{id: id, name: name, memberIDs: copyUserIDs(memberIDs)}
}

// ID returns the team identity.
func (t Team) ID() domain.TeamID { return t.id }

// Name returns the team display name.
func (t Team) Name() domain.DisplayName { return t.name }

// MemberIDs returns a copy of the member list.
func (t Team) MemberIDs() []domain.UserID { return copyUserIDs(t.memberIDs) }

// HasMember reports whether the user belongs to the team.
func (t Team) HasMember(id domain.UserID) bool { return containsUserID(t.memberIDs, id) }

func (t Team) withMember(id domain.UserID) Team {
	return Team{id: t.id, name: t.name, memberIDs: append(copyUserIDs(t.memberIDs), id)}
}

func copyUserIDs(ids []domain.UserID) []domain.UserID {
	if len(ids) == 0 {
		return nil
	}
	out := make([]domain.UserID, len(ids))
	copy(out, ids)
	return out
}

func containsUserID(ids []domain.UserID, id domain.UserID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
