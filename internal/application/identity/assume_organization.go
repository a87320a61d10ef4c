package identity

import (
	"context"

	"github.com/7Spade/tortoise/internal/application/ports"
	"github.com/7Spade/tortoise/internal/domain"
	domerrors "github.com/7Spade/tortoise/internal/domain/errors"
)

// AssumeOrganizationInput names the user and the organization to act within.
type AssumeOrganizationInput struct {
	UserID         domain.UserID
	OrganizationID domain.OrganizationID
}

// AssumeOrganizationResult carries the org-scoped token and the member's role.
type AssumeOrganizationResult struct {
	AccessToken string
	ExpiresIn   int64
	Role        domain.OrganizationRole
}

// AssumeOrganization exchanges a user identity for an organization-scoped
// token carrying the member's role. Suspended members are refused.
type AssumeOrganization struct {
	memberships ports.MembershipRepository
	issuer      ports.TokenIssuer
	accessExp   int64
}

// NewAssumeOrganization builds the use case.
func NewAssumeOrganization(memberships ports.MembershipRepository, issuer ports.TokenIssuer, accessExp int64) *AssumeOrganization {
	if accessExp <= 0 {
		accessExp = DefaultAccessTokenExpiry
	}
	return &AssumeOrganization{memberships: memberships, issuer: issuer, accessExp: accessExp}
}

// Execute issues the org-scoped token.
func (uc *AssumeOrganization) Execute(ctx context.Context, input AssumeOrganizationInput) (*AssumeOrganizationResult, error) {
	m, err := uc.memberships.GetByOrganizationAndUser(ctx, input.OrganizationID, input.UserID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domerrors.NewNotFound("membership", input.UserID.String())
	}
	if !m.IsActive() {
		return nil, domerrors.NewAuthorization("membership is suspended")
	}
	token, err := uc.issuer.IssueAccessTokenWithOrg(
		input.UserID.String(),
		input.OrganizationID.String(),
		m.Role().String(),
		uc.accessExp,
	)
	if err != nil {
		return nil, err
	}
	return &AssumeOrganizationResult{AccessToken: token, ExpiresIn: uc.accessExp, Role: m.Role()}, nil
}
