package auth

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/7Spade/tortoise/internal/application/ports"
	"github.com/7Spade/tortoise/internal/domain"
	domerrors "github.com/7Spade/tortoise/internal/domain/errors"
	iddomain "github.com/7Spade/tortoise/internal/domain/identity"
	"github.com/7Spade/tortoise/internal/infrastructure/http/middleware"
)

// Provider implements ports.AuthRepository against the local user store with
// argon2 hashing and RS256 tokens. Federated flows belong to an external
// identity provider; this adapter covers the first-party paths.
type Provider struct {
	identities   ports.IdentityRepository
	hasher       ports.PasswordHasher
	issuer       ports.TokenIssuer
	accessExpiry int64
	log          zerolog.Logger
}

func NewProvider(identities ports.IdentityRepository, hasher ports.PasswordHasher, issuer ports.TokenIssuer, accessExpiry int64, log zerolog.Logger) *Provider {
	if accessExpiry <= 0 {
		accessExpiry = 900
	}
	return &Provider{
		identities:   identities,
		hasher:       hasher,
		issuer:       issuer,
		accessExpiry: accessExpiry,
		log:          log,
	}
}

func toAuthUser(u *iddomain.User, token string) *ports.AuthUser {
	return &ports.AuthUser{
		UserID:      u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		AccessToken: token,
	}
}

// AuthState returns the principal behind the request context, or nil when the
// request carries no validated token.
func (p *Provider) AuthState(ctx context.Context) (*ports.AuthUser, error) {
	scope := middleware.AuthFromContext(ctx)
	if scope.UserID == "" {
		return nil, nil
	}
	id, err := domain.ParseUserID(scope.UserID)
	if err != nil {
		return nil, err
	}
	user, err := p.identities.FindUserByID(ctx, id)
	if err != nil || user == nil {
		return nil, err
	}
	return toAuthUser(user, ""), nil
}

// SignIn verifies credentials and issues an access token.
func (p *Provider) SignIn(ctx context.Context, credentials ports.Credentials) (*ports.AuthUser, error) {
	user, err := p.identities.FindUserByEmail(ctx, credentials.Email)
	if err != nil {
		return nil, err
	}
	if user == nil || !p.hasher.Verify(credentials.Password, user.PasswordHash) {
		return nil, domerrors.NewAuthorization("invalid credentials")
	}
	if !user.IsActive() {
		return nil, domerrors.NewAuthorization("account is disabled")
	}
	token, err := p.issuer.IssueAccessToken(user.ID.String(), p.accessExpiry)
	if err != nil {
		return nil, err
	}
	return toAuthUser(user, token), nil
}

// SignUp registers a new user and signs them in.
func (p *Provider) SignUp(ctx context.Context, credentials ports.Credentials) (*ports.AuthUser, error) {
	existing, err := p.identities.FindUserByEmail(ctx, credentials.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domerrors.NewInvariantViolation("email is already registered")
	}
	hash, err := p.hasher.Hash(credentials.Password)
	if err != nil {
		return nil, err
	}
	user := iddomain.NewUser(credentials.Email, credentials.DisplayName, hash, time.Now().UTC())
	if err := p.identities.SaveUser(ctx, user); err != nil {
		return nil, err
	}
	token, err := p.issuer.IssueAccessToken(user.ID.String(), p.accessExpiry)
	if err != nil {
		return nil, err
	}
	return toAuthUser(user, token), nil
}

// SignOut is a no-op for stateless access tokens; clients drop the token.
func (p *Provider) SignOut(ctx context.Context) error {
	return nil
}

// SendPasswordReset accepts the request without revealing whether the email
// exists. Token delivery rides the deployment's mail pipeline; the hook logs
// until one is attached.
func (p *Provider) SendPasswordReset(ctx context.Context, email domain.Email) error {
	user, err := p.identities.FindUserByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		return nil
	}
	p.log.Info().Str("user_id", user.ID.String()).Msg("password reset requested")
	return nil
}

// UpdateProfile applies non-zero profile fields and returns the fresh record.
func (p *Provider) UpdateProfile(ctx context.Context, userID domain.UserID, update ports.ProfileUpdate) (*ports.AuthUser, error) {
	user, err := p.identities.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domerrors.NewNotFound("user", userID.String())
	}
	if !update.DisplayName.IsZero() {
		user.DisplayName = update.DisplayName
	}
	user.UpdatedAt = time.Now().UTC()
	if err := p.identities.SaveUser(ctx, user); err != nil {
		return nil, err
	}
	return toAuthUser(user, ""), nil
}

var _ ports.AuthRepository = (*Provider)(nil)
