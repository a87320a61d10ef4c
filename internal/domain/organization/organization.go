// Package organization defines the Organization aggregate: members, teams,
// and partner groups. Unlike the workspace aggregate, Organization follows a
// persistent-update discipline: every mutator returns a new Organization
// value and leaves the receiver untouched, so loaded instances can be shared
// freely across goroutines.
package organization

import (
	"github.com/7Spade/tortoise/internal/domain"
	domerrors "github.com/7Spade/tortoise/internal/domain/errors"
)

// Organization is the aggregate root for an organization. The zero value is
// not usable; construct via New or Reconstitute.
type Organization struct {
	id        domain.OrganizationID
	name      domain.OrganizationName
	slug      domain.OrganizationSlug
	memberIDs []domain.UserID
	teams     map[domain.TeamID]Team
	partners  map[domain.PartnerID]Partner
	version   int64
	events    []domain.Event
}

// New constructs a fresh organization and records the creation event.
func New(name domain.OrganizationName, slug domain.OrganizationSlug, memberIDs []domain.UserID) (Organization, error) {
	if name.IsZero() {
		return Organization{}, domerrors.NewInvariantViolation("organization name is required")
	}
	if slug.IsZero() {
		return Organization{}, domerrors.NewInvariantViolation("organization slug is required")
	}
	if err := checkDuplicateMembers(memberIDs); err != nil {
		return Organization{}, err
	}
	o := Organization{
		id:        domain.NewOrganizationID(),
		name:      name,
		slug:      slug,
		memberIDs: copyUserIDs(memberIDs),
		teams:     map[domain.TeamID]Team{},
		partners:  map[domain.PartnerID]Partner{},
	}
	o.events = []domain.Event{newCreatedEvent(o.id, name, slug)}
	return o, nil
}

// ReconstituteParams carries the persisted state of an organization.
type ReconstituteParams struct {
	ID        domain.OrganizationID
	Name      domain.OrganizationName
	Slug      domain.OrganizationSlug
	MemberIDs []domain.UserID
	Teams     []TeamState
	Partners  []PartnerState
	Version   int64
}

// TeamState is the persisted projection of a team.
type TeamState struct {
	ID        domain.TeamID
	Name      domain.DisplayName
	MemberIDs []domain.UserID
}

// PartnerState is the persisted projection of a partner group.
type PartnerState struct {
	ID          domain.PartnerID
	Name        domain.DisplayName
	AccessLevel domain.PartnerAccessLevel
	MemberIDs   []domain.UserID
}

// Reconstitute rebuilds an organization from persisted state without events.
// All aggregate invariants are re-checked so corrupt rows cannot produce an
// invariant-breaking instance.
func Reconstitute(params ReconstituteParams) (Organization, error) {
	if params.ID.IsZero() {
		return Organization{}, domerrors.NewInvariantViolation("organization id is required")
	}
	if params.Name.IsZero() || params.Slug.IsZero() {
		return Organization{}, domerrors.NewInvariantViolation("organization name and slug are required")
	}
	if err := checkDuplicateMembers(params.MemberIDs); err != nil {
		return Organization{}, err
	}
	o := Organization{
		id:        params.ID,
		name:      params.Name,
		slug:      params.Slug,
		memberIDs: copyUserIDs(params.MemberIDs),
		teams:     make(map[domain.TeamID]Team, len(params.Teams)),
		partners:  make(map[domain.PartnerID]Partner, len(params.Partners)),
		version:   params.Version,
	}
	for _, t := range params.Teams {
		if _, dup := o.teams[t.ID]; dup {
			return Organization{}, domerrors.NewInvariantViolation("duplicate team id " + t.ID.String())
		}
		for _, m := range t.MemberIDs {
			if !o.HasMember(m) {
				return Organization{}, domerrors.NewInvariantViolation("team member " + m.String() + " is not an organization member")
			}
		}
		o.teams[t.ID] = newTeam(t.ID, t.Name, t.MemberIDs)
	}
	for _, p := range params.Partners {
		if _, dup := o.partners[p.ID]; dup {
			return Organization{}, domerrors.NewInvariantViolation("duplicate partner id " + p.ID.String())
		}
		for _, m := range p.MemberIDs {
			if o.HasMember(m) {
				return Organization{}, domerrors.NewInvariantViolation("partner member " + m.String() + " is an organization member")
			}
		}
		o.partners[p.ID] = newPartner(p.ID, p.Name, p.AccessLevel, p.MemberIDs)
	}
	return o, nil
}

// ID returns the organization identity.
func (o Organization) ID() domain.OrganizationID { return o.id }

// Name returns the organization name.
func (o Organization) Name() domain.OrganizationName { return o.name }

// Slug returns the organization slug.
func (o Organization) Slug() domain.OrganizationSlug { return o.slug }

// Version returns the optimistic-concurrency version.
func (o Organization) Version() int64 { return o.version }

// Members returns a copy of the organization member list.
func (o Organization) Members() []domain.UserID { return copyUserIDs(o.memberIDs) }

// HasMember reports whether the user belongs to the organization.
func (o Organization) HasMember(id domain.UserID) bool { return containsUserID(o.memberIDs, id) }

// Teams returns the teams keyed by ID.
func (o Organization) Teams() map[domain.TeamID]Team {
	out := make(map[domain.TeamID]Team, len(o.teams))
	for k, v := range o.teams {
		out[k] = v
	}
	return out
}

// Team returns the team with the given ID.
func (o Organization) Team(id domain.TeamID) (Team, bool) {
	t, ok := o.teams[id]
	return t, ok
}

// Partners returns the partner groups keyed by ID.
func (o Organization) Partners() map[domain.PartnerID]Partner {
	out := make(map[domain.PartnerID]Partner, len(o.partners))
	for k, v := range o.partners {
		out[k] = v
	}
	return out
}

// Partner returns the partner group with the given ID.
func (o Organization) Partner(id domain.PartnerID) (Partner, bool) {
	p, ok := o.partners[id]
	return p, ok
}

// AddMember returns a new Organization with the user added to the member
// set. Adding an existing member is a no-op returning an unchanged copy.
func (o Organization) AddMember(id domain.UserID) (Organization, error) {
	if id.IsZero() {
		return Organization{}, domerrors.NewInvariantViolation("member id is required")
	}
	if o.HasMember(id) {
		return o.clone(), nil
	}
	for _, p := range o.partners {
		if p.HasMember(id) {
			return Organization{}, domerrors.NewInvariantViolation("user " + id.String() + " belongs to a partner group and cannot become a member")
		}
	}
	next := o.clone()
	next.memberIDs = append(next.memberIDs, id)
	next.bump(nil)
	return next, nil
}

// AddTeam returns a new Organization with a team appended. Every initial
// member must already be an organization member; the team ID must be unused.
func (o Organization) AddTeam(id domain.TeamID, name domain.DisplayName, initialMemberIDs []domain.UserID) (Organization, error) {
	if id.IsZero() {
		return Organization{}, domerrors.NewInvariantViolation("team id is required")
	}
	if _, exists := o.teams[id]; exists {
		return Organization{}, domerrors.NewInvariantViolation("team " + id.String() + " already exists")
	}
	for _, m := range initialMemberIDs {
		if !o.HasMember(m) {
			return Organization{}, domerrors.NewInvariantViolation("team member " + m.String() + " is not an organization member")
		}
	}
	next := o.clone()
	next.teams[id] = newTeam(id, name, initialMemberIDs)
	next.bump(newTeamAddedEvent(o.id, id))
	return next, nil
}

// AddPartner returns a new Organization with a partner group appended.
// Partners are external: none of the initial members may be organization
// members; the partner ID must be unused.
func (o Organization) AddPartner(id domain.PartnerID, name domain.DisplayName, accessLevel domain.PartnerAccessLevel, initialMemberIDs []domain.UserID) (Organization, error) {
	if id.IsZero() {
		return Organization{}, domerrors.NewInvariantViolation("partner id is required")
	}
	if _, exists := o.partners[id]; exists {
		return Organization{}, domerrors.NewInvariantViolation("partner " + id.String() + " already exists")
	}
	if !accessLevel.Valid() {
		return Organization{}, domerrors.NewInvariantViolation("partner access level is invalid")
	}
	for _, m := range initialMemberIDs {
		if o.HasMember(m) {
			return Organization{}, domerrors.NewInvariantViolation("partner member " + m.String() + " is an organization member")
		}
	}
	next := o.clone()
	next.partners[id] = newPartner(id, name, accessLevel, initialMemberIDs)
	next.bump(newPartnerAddedEvent(o.id, id))
	return next, nil
}

// AddMemberToTeam returns a new Organization with the member added to the
// team. The member must already belong to the organization. Adding an
// existing team member is a no-op returning an unchanged copy.
func (o Organization) AddMemberToTeam(teamID domain.TeamID, memberID domain.UserID) (Organization, error) {
	team, ok := o.teams[teamID]
	if !ok {
		return Organization{}, domerrors.NewNotFound("team", teamID.String())
	}
	if !o.HasMember(memberID) {
		return Organization{}, domerrors.NewInvariantViolation("team member " + memberID.String() + " is not an organization member")
	}
	if team.HasMember(memberID) {
		return o.clone(), nil
	}
	next := o.clone()
	next.teams[teamID] = team.withMember(memberID)
	next.bump(newTeamMemberAddedEvent(o.id, teamID, memberID))
	return next, nil
}

// AddMemberToPartner returns a new Organization with the external
// collaborator added to the partner group. The collaborator must not be an
// organization member. Adding an existing partner member is a no-op.
func (o Organization) AddMemberToPartner(partnerID domain.PartnerID, memberID domain.UserID) (Organization, error) {
	partner, ok := o.partners[partnerID]
	if !ok {
		return Organization{}, domerrors.NewNotFound("partner", partnerID.String())
	}
	if o.HasMember(memberID) {
		return Organization{}, domerrors.NewInvariantViolation("partner member " + memberID.String() + " is an organization member")
	}
	if partner.HasMember(memberID) {
		return o.clone(), nil
	}
	next := o.clone()
	next.partners[partnerID] = partner.withMember(memberID)
	next.bump(newPartnerMemberAddedEvent(o.id, partnerID, memberID))
	return next, nil
}

// PendingEvents returns the buffered domain events without clearing them.
func (o Organization) PendingEvents() []domain.Event {
	out := make([]domain.Event, len(o.events))
	copy(out, o.events)
	return out
}

// PullEvents returns and clears the buffered domain events.
func (o *Organization) PullEvents() []domain.Event {
	events := o.events
	o.events = nil
	return events
}

// Snapshot projects the organization for persistence.
func (o Organization) Snapshot() ReconstituteParams {
	teams := make([]TeamState, 0, len(o.teams))
	for _, t := range o.teams {
		teams = append(teams, TeamState{ID: t.id, Name: t.name, MemberIDs: t.MemberIDs()})
	}
	partners := make([]PartnerState, 0, len(o.partners))
	for _, p := range o.partners {
		partners = append(partners, PartnerState{ID: p.id, Name: p.name, AccessLevel: p.accessLevel, MemberIDs: p.MemberIDs()})
	}
	return ReconstituteParams{
		ID:        o.id,
		Name:      o.name,
		Slug:      o.slug,
		MemberIDs: o.Members(),
		Teams:     teams,
		Partners:  partners,
		Version:   o.version,
	}
}

// clone deep-copies the aggregate so the returned value shares no mutable
// state with the receiver.
func (o Organization) clone() Organization {
	teams := make(map[domain.TeamID]Team, len(o.teams))
	for k, v := range o.teams {
		teams[k] = v
	}
	partners := make(map[domain.PartnerID]Partner, len(o.partners))
	for k, v := range o.partners {
		partners[k] = v
	}
	events := make([]domain.Event, len(o.events))
	copy(events, o.events)
	return Organization{
		id:        o.id,
		name:      o.name,
		slug:      o.slug,
		memberIDs: copyUserIDs(o.memberIDs),
		teams:     teams,
		partners:  partners,
		version:   o.version,
		events:    events,
	}
}

// bump increments the version and appends ev when non-nil.
func (o *Organization) bump(ev domain.Event) {
	o.version++
	if ev != nil {
		o.events = append(o.events, ev)
	}
}

func checkDuplicateMembers(ids []domain.UserID) error {
	seen := make(map[domain.UserID]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			return domerrors.NewInvariantViolation("duplicate member id " + id.String())
		}
		seen[id] = struct{}{}
	}
	return nil
}
