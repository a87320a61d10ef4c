package identity

import (
	"context"

	"github.com/7Spade/tortoise/internal/application/ports"
	"github.com/7Spade/tortoise/internal/domain"
	domerrors "github.com/7Spade/tortoise/internal/domain/errors"
	iddomain "github.com/7Spade/tortoise/internal/domain/identity"
)

// DefaultAccessTokenExpiry is the access token lifetime in seconds.
const DefaultAccessTokenExpiry = 900 // 15 min

// SignInInput carries the raw credentials.
type SignInInput struct {
	Email    string
	Password string
}

// SignInResult carries the signed token and the authenticated user.
type SignInResult struct {
	AccessToken string
	ExpiresIn   int64
	User        *iddomain.User
}

// SignIn verifies credentials and issues an access token. Unknown emails and
// wrong passwords both yield the same authorization error.
type SignIn struct {
	identities ports.IdentityRepository
	hasher     ports.PasswordHasher
	issuer     ports.TokenIssuer
	accessExp  int64
}

// NewSignIn builds the use case.
func NewSignIn(identities ports.IdentityRepository, hasher ports.PasswordHasher, issuer ports.TokenIssuer, accessExp int64) *SignIn {
	if accessExp <= 0 {
		accessExp = DefaultAccessTokenExpiry
	}
	return &SignIn{identities: identities, hasher: hasher, issuer: issuer, accessExp: accessExp}
}

// Execute authenticates the user.
func (uc *SignIn) Execute(ctx context.Context, input SignInInput) (*SignInResult, error) {
	email, err := domain.NewEmail(input.Email)
	if err != nil {
		return nil, err
	}
	user, err := uc.identities.FindUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil || !uc.hasher.Verify(input.Password, user.PasswordHash) {
		return nil, domerrors.NewAuthorization("invalid credentials")
	}
	if !user.IsActive() {
		return nil, domerrors.NewAuthorization("account is disabled")
	}
	token, err := uc.issuer.IssueAccessToken(user.ID.String(), uc.accessExp)
	if err != nil {
		return nil, err
	}
	return &SignInResult{AccessToken: token, ExpiresIn: uc.accessExp, User: user}, nil
}
