package workspace

import "github.com/7Spade/tortoise/internal/domain"

// CreatedEvent records that a workspace came into existence.
type CreatedEvent struct {
	domain.BaseEvent
	OwnerID   string           `json:"owner_id"`
	OwnerType domain.OwnerType `json:"owner_type"`
}

func newCreatedEvent(id domain.WorkspaceID, owner Owner) CreatedEvent {
	return CreatedEvent{
		BaseEvent: domain.NewBaseEvent(domain.EventWorkspaceCreated, id.String()),
		OwnerID:   owner.ID(),
		OwnerType: owner.Type(),
	}
}

// ArchivedEvent records a transition to the archived state.
type ArchivedEvent struct {
	domain.BaseEvent
}

func newArchivedEvent(id domain.WorkspaceID) ArchivedEvent {
	return ArchivedEvent{BaseEvent: domain.NewBaseEvent(domain.EventWorkspaceArchived, id.String())}
}

// ActivatedEvent records a transition back to the active state.
type ActivatedEvent struct {
	domain.BaseEvent
}

func newActivatedEvent(id domain.WorkspaceID) ActivatedEvent {
	return ActivatedEvent{BaseEvent: domain.NewBaseEvent(domain.EventWorkspaceActivated, id.String())}
}

// DeletedEvent records the (logical, absorbing) deletion of a workspace.
type DeletedEvent struct {
	domain.BaseEvent
}

func newDeletedEvent(id domain.WorkspaceID) DeletedEvent {
	return DeletedEvent{BaseEvent: domain.NewBaseEvent(domain.EventWorkspaceDeleted, id.String())}
}

// ModuleAddedEvent records a module joining the workspace.
type ModuleAddedEvent struct {
	domain.BaseEvent
	ModuleID string `json:"module_id"`
}

func newModuleAddedEvent(id domain.WorkspaceID, moduleID domain.ModuleID) ModuleAddedEvent {
	return ModuleAddedEvent{
		BaseEvent: domain.NewBaseEvent(domain.EventModuleAdded, id.String()),
		ModuleID:  moduleID.String(),
	}
}

// ModuleRemovedEvent records a module leaving the workspace.
type ModuleRemovedEvent struct {
	domain.BaseEvent
	ModuleID string `json:"module_id"`
}

func newModuleRemovedEvent(id domain.WorkspaceID, moduleID domain.ModuleID) ModuleRemovedEvent {
	return ModuleRemovedEvent{
		BaseEvent: domain.NewBaseEvent(domain.EventModuleRemoved, id.String()),
		ModuleID:  moduleID.String(),
	}
}
