package ports

import (
	"context"

	"github.com/7Spade/tortoise/internal/domain"
)

// AuthUser is the authenticated principal seen by the application layer.
type AuthUser struct {
	UserID      domain.UserID
	Email       domain.Email
	DisplayName domain.DisplayName
	AccessToken string
}

// Credentials carries what a principal signs in or up with.
type Credentials struct {
	Email       domain.Email
	Password    string
	DisplayName domain.DisplayName
}

// ProfileUpdate carries mutable profile fields; zero values are left as is.
type ProfileUpdate struct {
	DisplayName domain.DisplayName
}

// AuthRepository fronts the external identity provider. Protocol mechanics
// (sessions, token refresh, federated flows) live behind this port and are
// out of scope for the domain layer.
type AuthRepository interface {
	AuthState(ctx context.Context) (*AuthUser, error)
	SignIn(ctx context.Context, credentials Credentials) (*AuthUser, error)
	SignUp(ctx context.Context, credentials Credentials) (*AuthUser, error)
	SignOut(ctx context.Context) error
	SendPasswordReset(ctx context.Context, email domain.Email) error
	UpdateProfile(ctx context.Context, userID domain.UserID, update ProfileUpdate) (*AuthUser, error)
}
