package auth

import (
	"crypto/rand"
	"crypto/rsa"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestIssuer(t *testing.T) *TokenIssuer {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return NewTokenIssuer(key, "tortoise", "tortoise-api")
}

func TestAccessTokenRoundTrip(t *testing.T) {
	issuer := newTestIssuer(t)

	token, err := issuer.IssueAccessToken("user-123", 900)
	require.NoError(t, err)

	userID, orgID, role, err := issuer.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", userID)
	assert.Empty(t, orgID, "user-scoped tokens carry no organization")
	assert.Empty(t, role)
}

func TestOrgScopedTokenRoundTrip(t *testing.T) {
	issuer := newTestIssuer(t)

	token, err := issuer.IssueAccessTokenWithOrg("user-123", "org-456", "admin", 900)
	require.NoError(t, err)

	userID, orgID, role, err := issuer.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", userID)
	assert.Equal(t, "org-456", orgID)
	assert.Equal(t, "admin", role)
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	issuer := newTestIssuer(t)

	token, err := issuer.IssueAccessToken("user-123", -60)
	require.NoError(t, err)

	_, _, _, err = issuer.ValidateAccessToken(token)
	require.Error(t, err)
}

func TestValidateRejectsForeignKey(t *testing.T) {
	issuer := newTestIssuer(t)
	other := newTestIssuer(t)

	token, err := other.IssueAccessToken("user-123", 900)
	require.NoError(t, err)

	_, _, _, err = issuer.ValidateAccessToken(token)
	require.Error(t, err)
}

func TestValidateRejectsGarbage(t *testing.T) {
	issuer := newTestIssuer(t)

	_, _, _, err := issuer.ValidateAccessToken("not.a.jwt")
	require.Error(t, err)
}
