// Package ports declares the contracts the use cases depend on. The domain
// aggregates never reference these; use cases load, mutate, persist, and
// publish through them.
package ports

import (
	"context"

	"github.com/7Spade/tortoise/internal/domain"
	"github.com/7Spade/tortoise/internal/domain/identity"
	"github.com/7Spade/tortoise/internal/domain/membership"
	"github.com/7Spade/tortoise/internal/domain/organization"
	"github.com/7Spade/tortoise/internal/domain/workspace"
)

// WorkspaceRepository persists workspace aggregates and their modules.
// Save performs a compare-and-swap on the snapshot version and returns
// ConcurrentModificationError when the stored version has moved on.
type WorkspaceRepository interface {
	FindByID(ctx context.Context, id domain.WorkspaceID) (*workspace.Workspace, error)
	FindByOwner(ctx context.Context, owner workspace.Owner) ([]*workspace.Workspace, error)
	Save(ctx context.Context, snapshot workspace.Snapshot) error
	Delete(ctx context.Context, id domain.WorkspaceID) error
	FindModules(ctx context.Context, id domain.WorkspaceID) ([]*workspace.Module, error)
	SaveModule(ctx context.Context, module *workspace.Module) error
}

// IdentityRepository is the directory of principals: users, organizations,
// and bots. Lookups return nil (no error) when the record is absent.
type IdentityRepository interface {
	FindUsers(ctx context.Context) ([]*identity.User, error)
	FindUserByID(ctx context.Context, id domain.UserID) (*identity.User, error)
	FindUserByEmail(ctx context.Context, email domain.Email) (*identity.User, error)
	SaveUser(ctx context.Context, user *identity.User) error
	DeleteUser(ctx context.Context, id domain.UserID) error

	FindOrganizations(ctx context.Context) ([]organization.Organization, error)
	FindOrganizationByID(ctx context.Context, id domain.OrganizationID) (*organization.Organization, error)
	SaveOrganization(ctx context.Context, snapshot organization.ReconstituteParams) error
	DeleteOrganization(ctx context.Context, id domain.OrganizationID) error

	FindBots(ctx context.Context) ([]*identity.Bot, error)
	FindBotByID(ctx context.Context, id domain.BotID) (*identity.Bot, error)
	SaveBot(ctx context.Context, bot *identity.Bot) error
	DeleteBot(ctx context.Context, id domain.BotID) error
}

// MembershipRepository persists membership aggregates and reads the
// organization's team/partner rosters.
type MembershipRepository interface {
	GetTeams(ctx context.Context, orgID domain.OrganizationID) ([]organization.TeamState, error)
	GetPartners(ctx context.Context, orgID domain.OrganizationID) ([]organization.PartnerState, error)
	GetOrganizationMemberships(ctx context.Context, orgID domain.OrganizationID) ([]*membership.Membership, error)
	GetByID(ctx context.Context, id domain.MembershipID) (*membership.Membership, error)
	GetByOrganizationAndUser(ctx context.Context, orgID domain.OrganizationID, userID domain.UserID) (*membership.Membership, error)
	Save(ctx context.Context, snapshot membership.Snapshot) error
}
