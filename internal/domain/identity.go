package domain

import (
	"strings"

	"github.com/google/uuid"

	domerrors "github.com/7Spade/tortoise/internal/domain/errors"
)

// Identifiers are branded UUID value objects: immutable, compared by value.
// New* generates a UUIDv7 (time-ordered with a random suffix) so fresh IDs
// sort by creation time; Parse* fails on empty or malformed input.

func newV7() uuid.UUID {
	id, err := uuid.NewV7()
	if err != nil {
		// rand failure only; fall back to v4
		return uuid.New()
	}
	return id
}

func parseID(field, raw string) (uuid.UUID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return uuid.UUID{}, domerrors.NewValidation(field, "must not be empty")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.UUID{}, domerrors.NewValidation(field, "must be a valid UUID")
	}
	return id, nil
}

// WorkspaceID identifies a Workspace aggregate.
type WorkspaceID struct{ uuid.UUID }

// NewWorkspaceID generates a fresh WorkspaceID.
func NewWorkspaceID() WorkspaceID { return WorkspaceID{newV7()} }

// ParseWorkspaceID validates raw and returns a WorkspaceID.
func ParseWorkspaceID(raw string) (WorkspaceID, error) {
	id, err := parseID("workspace_id", raw)
	if err != nil {
		return WorkspaceID{}, err
	}
	return WorkspaceID{id}, nil
}

// IsZero reports whether the ID is unset.
func (id WorkspaceID) IsZero() bool { return id.UUID == uuid.UUID{} }

// OrganizationID identifies an Organization aggregate.
type OrganizationID struct{ uuid.UUID }

// NewOrganizationID generates a fresh OrganizationID.
func NewOrganizationID() OrganizationID { return OrganizationID{newV7()} }

// ParseOrganizationID validates raw and returns an OrganizationID.
func ParseOrganizationID(raw string) (OrganizationID, error) {
	id, err := parseID("organization_id", raw)
	if err != nil {
		return OrganizationID{}, err
	}
	return OrganizationID{id}, nil
}

// IsZero reports whether the ID is unset.
func (id OrganizationID) IsZero() bool { return id.UUID == uuid.UUID{} }

// UserID identifies a user identity.
type UserID struct{ uuid.UUID }

// NewUserID generates a fresh UserID.
func NewUserID() UserID { return UserID{newV7()} }

// ParseUserID validates raw and returns a UserID.
func ParseUserID(raw string) (UserID, error) {
	id, err := parseID("user_id", raw)
	if err != nil {
		return UserID{}, err
	}
	return UserID{id}, nil
}

// IsZero reports whether the ID is unset.
func (id UserID) IsZero() bool { return id.UUID == uuid.UUID{} }

// MembershipID identifies an OrganizationMembership aggregate.
type MembershipID struct{ uuid.UUID }

// NewMembershipID generates a fresh MembershipID.
func NewMembershipID() MembershipID { return MembershipID{newV7()} }

// ParseMembershipID validates raw and returns a MembershipID.
func ParseMembershipID(raw string) (MembershipID, error) {
	id, err := parseID("membership_id", raw)
	if err != nil {
		return MembershipID{}, err
	}
	return MembershipID{id}, nil
}

// IsZero reports whether the ID is unset.
func (id MembershipID) IsZero() bool { return id.UUID == uuid.UUID{} }

// ModuleID identifies a WorkspaceModule entity.
type ModuleID struct{ uuid.UUID }

// NewModuleID generates a fresh ModuleID.
func NewModuleID() ModuleID { return ModuleID{newV7()} }

// ParseModuleID validates raw and returns a ModuleID.
func ParseModuleID(raw string) (ModuleID, error) {
	id, err := parseID("module_id", raw)
	if err != nil {
		return ModuleID{}, err
	}
	return ModuleID{id}, nil
}

// IsZero reports whether the ID is unset.
func (id ModuleID) IsZero() bool { return id.UUID == uuid.UUID{} }

// TeamID identifies a Team entity within an Organization.
type TeamID struct{ uuid.UUID }

// NewTeamID generates a fresh TeamID.
func NewTeamID() TeamID { return TeamID{newV7()} }

// ParseTeamID validates raw and returns a TeamID.
func ParseTeamID(raw string) (TeamID, error) {
	id, err := parseID("team_id", raw)
	if err != nil {
		return TeamID{}, err
	}
	return TeamID{id}, nil
}

// IsZero reports whether the ID is unset.
func (id TeamID) IsZero() bool { return id.UUID == uuid.UUID{} }

// PartnerID identifies a Partner entity within an Organization.
type PartnerID struct{ uuid.UUID }

// NewPartnerID generates a fresh PartnerID.
func NewPartnerID() PartnerID { return PartnerID{newV7()} }

// ParsePartnerID validates raw and returns a PartnerID.
func ParsePartnerID(raw string) (PartnerID, error) {
	id, err := parseID("partner_id", raw)
	if err != nil {
		return PartnerID{}, err
	}
	return PartnerID{id}, nil
}

// IsZero reports whether the ID is unset.
func (id PartnerID) IsZero() bool { return id.UUID == uuid.UUID{} }

// BotID identifies a bot identity.
type BotID struct{ uuid.UUID }

// NewBotID generates a fresh BotID.
func NewBotID() BotID { return BotID{newV7()} }

// ParseBotID validates raw and returns a BotID.
func ParseBotID(raw string) (BotID, error) {
	id, err := parseID("bot_id", raw)
	if err != nil {
		return BotID{}, err
	}
	return BotID{id}, nil
}

// IsZero reports whether the ID is unset.
func (id BotID) IsZero() bool { return id.UUID == uuid.UUID{} }
