package domain

// WorkspaceStatus is the lifecycle state of a workspace. Transitions are
// monotonic toward Deleted: a deleted workspace never leaves that state.
type WorkspaceStatus string

const (
	WorkspaceActive   WorkspaceStatus = "active"
	WorkspaceArchived WorkspaceStatus = "archived"
	WorkspaceDeleted  WorkspaceStatus = "deleted"
)

// String implements fmt.Stringer.
func (s WorkspaceStatus) String() string { return string(s) }

// Valid reports whether the status is a known value.
func (s WorkspaceStatus) Valid() bool {
	switch s {
	case WorkspaceActive, WorkspaceArchived, WorkspaceDeleted:
		return true
	}
	return false
}

// OwnerType discriminates the owner of a workspace.
type OwnerType string

const (
	OwnerTypeUser         OwnerType = "user"
	OwnerTypeOrganization OwnerType = "organization"
)

// String implements fmt.Stringer.
func (t OwnerType) String() string { return string(t) }

// Valid reports whether the owner type is a known value.
func (t OwnerType) Valid() bool {
	return t == OwnerTypeUser || t == OwnerTypeOrganization
}

// OrganizationRole is a member's role within an organization.
type OrganizationRole string

const (
	RoleOwner  OrganizationRole = "owner"
	RoleAdmin  OrganizationRole = "admin"
	RoleMember OrganizationRole = "member"
)

// String implements fmt.Stringer.
func (r OrganizationRole) String() string { return string(r) }

// Valid reports whether the role is a known value.
func (r OrganizationRole) Valid() bool {
	switch r {
	case RoleOwner, RoleAdmin, RoleMember:
		return true
	}
	return false
}

// MembershipStatus is the activation state of an organization membership.
type MembershipStatus string

const (
	MembershipActive    MembershipStatus = "active"
	MembershipSuspended MembershipStatus = "suspended"
)

// String implements fmt.Stringer.
func (s MembershipStatus) String() string { return string(s) }

// Valid reports whether the status is a known value.
func (s MembershipStatus) Valid() bool {
	return s == MembershipActive || s == MembershipSuspended
}

// Role is a generic access role used for workspace-level grants.
type Role string

const (
	RoleViewer Role = "viewer"
	RoleEditor Role = "editor"
	RoleManage Role = "manager"
)

// String implements fmt.Stringer.
func (r Role) String() string { return string(r) }

// TeamRole is a member's role within a team.
type TeamRole string

const (
	TeamRoleLead   TeamRole = "lead"
	TeamRoleMember TeamRole = "member"
)

// String implements fmt.Stringer.
func (r TeamRole) String() string { return string(r) }

// PartnerRole is an external collaborator's role within a partner group.
type PartnerRole string

const (
	PartnerRoleContact      PartnerRole = "contact"
	PartnerRoleCollaborator PartnerRole = "collaborator"
)

// String implements fmt.Stringer.
func (r PartnerRole) String() string { return string(r) }

// PartnerAccessLevel bounds what a partner group can see.
type PartnerAccessLevel string

const (
	PartnerAccessNone     PartnerAccessLevel = "none"
	PartnerAccessReadOnly PartnerAccessLevel = "read_only"
	PartnerAccessShared   PartnerAccessLevel = "shared"
)

// String implements fmt.Stringer.
func (l PartnerAccessLevel) String() string { return string(l) }

// Valid reports whether the access level is a known value.
func (l PartnerAccessLevel) Valid() bool {
	switch l {
	case PartnerAccessNone, PartnerAccessReadOnly, PartnerAccessShared:
		return true
	}
	return false
}

// IdentityStatus is the state of a directory identity (user or bot).
type IdentityStatus string

const (
	IdentityActive   IdentityStatus = "active"
	IdentityDisabled IdentityStatus = "disabled"
)

// String implements fmt.Stringer.
func (s IdentityStatus) String() string { return string(s) }
