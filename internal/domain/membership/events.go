package membership

import "github.com/7Spade/tortoise/internal/domain"

// CreatedEvent records a user joining an organization.
type CreatedEvent struct {
	domain.BaseEvent
	OrganizationID string                  `json:"organization_id"`
	UserID         string                  `json:"user_id"`
	Role           domain.OrganizationRole `json:"role"`
}

func newCreatedEvent(id domain.MembershipID, orgID domain.OrganizationID, userID domain.UserID, role domain.OrganizationRole) CreatedEvent {
	return CreatedEvent{
		BaseEvent:      domain.NewBaseEvent(domain.EventMembershipCreated, id.String()),
		OrganizationID: orgID.String(),
		UserID:         userID.String(),
		Role:           role,
	}
}

// ActivatedEvent records a membership returning to the active state.
type ActivatedEvent struct {
	domain.BaseEvent
}

func newActivatedEvent(id domain.MembershipID) ActivatedEvent {
	return ActivatedEvent{BaseEvent: domain.NewBaseEvent(domain.EventMembershipActivated, id.String())}
}

// SuspendedEvent records a membership being suspended.
type SuspendedEvent struct {
	domain.BaseEvent
}

func newSuspendedEvent(id domain.MembershipID) SuspendedEvent {
	return SuspendedEvent{BaseEvent: domain.NewBaseEvent(domain.EventMembershipSuspended, id.String())}
}

// RoleChangedEvent records a role transition, including ownership transfers.
type RoleChangedEvent struct {
	domain.BaseEvent
	From domain.OrganizationRole `json:"from"`
	To   domain.OrganizationRole `json:"to"`
}

func newRoleChangedEvent(id domain.MembershipID, from, to domain.OrganizationRole) RoleChangedEvent {
	return RoleChangedEvent{
		BaseEvent: domain.NewBaseEvent(domain.EventMembershipRoleChanged, id.String()),
		From:      from,
		To:        to,
	}
}
