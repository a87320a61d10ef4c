package organization

import "github.com/7Spade/tortoise/internal/domain"

// CreatedEvent records that an organization came into existence.
type CreatedEvent struct {
	domain.BaseEvent
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func newCreatedEvent(id domain.OrganizationID, name domain.OrganizationName, slug domain.OrganizationSlug) CreatedEvent {
	return CreatedEvent{
		BaseEvent: domain.NewBaseEvent(domain.EventOrganizationCreated, id.String()),
		Name:      name.String(),
		Slug:      slug.String(),
	}
}

// TeamAddedEvent records a new team inside the organization.
type TeamAddedEvent struct {
	domain.BaseEvent
	TeamID string `json:"team_id"`
}

func newTeamAddedEvent(id domain.OrganizationID, teamID domain.TeamID) TeamAddedEvent {
	return TeamAddedEvent{
		BaseEvent: domain.NewBaseEvent(domain.EventTeamAdded, id.String()),
		TeamID:    teamID.String(),
	}
}

// PartnerAddedEvent records a new partner group inside the organization.
type PartnerAddedEvent struct {
	domain.BaseEvent
	PartnerID string `json:"partner_id"`
}

func newPartnerAddedEvent(id domain.OrganizationID, partnerID domain.PartnerID) PartnerAddedEvent {
	return PartnerAddedEvent{
		BaseEvent: domain.NewBaseEvent(domain.EventPartnerAdded, id.String()),
		PartnerID: partnerID.String(),
	}
}

// TeamMemberAddedEvent records a member joining a team.
type TeamMemberAddedEvent struct {
	domain.BaseEvent
	TeamID   string `json:"team_id"`
	MemberID string `json:"member_id"`
}

func newTeamMemberAddedEvent(id domain.OrganizationID, teamID domain.TeamID, memberID domain.UserID) TeamMemberAddedEvent {
	return TeamMemberAddedEvent{
		BaseEvent: domain.NewBaseEvent(domain.EventTeamMemberAdded, id.String()),
		TeamID:    teamID.String(),
		MemberID:  memberID.String(),
	}
}

// PartnerMemberAddedEvent records an external collaborator joining a partner
// group.
type PartnerMemberAddedEvent struct {
	domain.BaseEvent
	PartnerID string `json:"partner_id"`
	MemberID  string `json:"member_id"`
}

func newPartnerMemberAddedEvent(id domain.OrganizationID, partnerID domain.PartnerID, memberID domain.UserID) PartnerMemberAddedEvent {
	return PartnerMemberAddedEvent{
		BaseEvent: domain.NewBaseEvent(domain.EventPartnerMemberAdded, id.String()),
		PartnerID: partnerID.String(),
		MemberID:  memberID.String(),
	}
}
