package ports

// PasswordHasher hashes and verifies passwords (Argon2id).
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

// TokenIssuer signs and validates access tokens (RS256). Org-scoped tokens
// carry the organization ID and the member's role.
type TokenIssuer interface {
	IssueAccessToken(userID string, expiresInSeconds int64) (string, error)
	// IssueAccessTokenWithOrg issues a token scoped to an organization.
	IssueAccessTokenWithOrg(userID, orgID, role string, expiresInSeconds int64) (string, error)
	// ValidateAccessToken returns the user ID plus orgID/role when
	// org-scoped (empty otherwise).
	ValidateAccessToken(tokenString string) (userID, orgID, role string, err error)
}
