package domain

import "time"

// EventType classifies domain events for routing and filtering.
type EventType string

// Event type tags, prefixed by bounded context.
const (
	EventWorkspaceCreated   EventType = "workspace.created"
	EventWorkspaceArchived  EventType = "workspace.archived"
	EventWorkspaceActivated EventType = "workspace.activated"
	EventWorkspaceDeleted   EventType = "workspace.deleted"
	EventModuleAdded        EventType = "workspace.module.added"
	EventModuleRemoved      EventType = "workspace.module.removed"

	EventOrganizationCreated EventType = "organization.created"
	EventTeamAdded           EventType = "organization.team.added"
	EventPartnerAdded        EventType = "organization.partner.added"
	EventTeamMemberAdded     EventType = "organization.team.member.added"
	EventPartnerMemberAdded  EventType = "organization.partner.member.added"

	EventMembershipCreated     EventType = "membership.created"
	EventMembershipActivated   EventType = "membership.activated"
	EventMembershipSuspended   EventType = "membership.suspended"
	EventMembershipRoleChanged EventType = "membership.role.changed"
)

// String implements fmt.Stringer.
func (t EventType) String() string { return string(t) }

// Event is an immutable record of a fact that occurred inside an aggregate.
// Events are buffered on the aggregate and published after persistence.
type Event interface {
	// EventID returns the unique identity of this event instance.
	EventID() string
	// EventType returns the classified event type.
	EventType() EventType
	// OccurredAt returns when the event happened (UTC).
	OccurredAt() time.Time
	// AggregateID returns the string ID of the producing aggregate.
	AggregateID() string
}

// BaseEvent provides the Event implementation embedded by concrete events.
type BaseEvent struct {
	ID        string    `json:"event_id"`
	Type      EventType `json:"event_type"`
	Timestamp time.Time `json:"occurred_at"`
	Aggregate string    `json:"aggregate_id"`
}

// NewBaseEvent stamps a fresh event identity and UTC timestamp. Event IDs
// are UUIDv7 like the aggregate IDs, so event stores sort by creation time.
func NewBaseEvent(eventType EventType, aggregateID string) BaseEvent {
	return BaseEvent{
		ID:        newV7().String(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Aggregate: aggregateID,
	}
}

// EventID implements Event.
func (e BaseEvent) EventID() string { return e.ID }

// EventType implements Event.
func (e BaseEvent) EventType() EventType { return e.Type }

// OccurredAt implements Event.
func (e BaseEvent) OccurredAt() time.Time { return e.Timestamp }

// AggregateID implements Event.
func (e BaseEvent) AggregateID() string { return e.Aggregate }
