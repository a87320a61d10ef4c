// Package auth implements token issuing on RS256 JWTs.
package auth

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/7Spade/tortoise/internal/application/ports"
)

// TokenIssuer implements ports.TokenIssuer with RS256.
type TokenIssuer struct {
	privateKey *rsa.PrivateKey
	publicKey  *rsa.PublicKey
	issuer     string
	audience   string
}

type accessClaims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
	OrgID  string `json:"org_id,omitempty"` // present when token is org-scoped
	Role   string `json:"role,omitempty"`   // member role in org
}

// NewTokenIssuer builds an issuer around an RSA key pair.
func NewTokenIssuer(privateKey *rsa.PrivateKey, issuer, audience string) *TokenIssuer {
	return &TokenIssuer{
		privateKey: privateKey,
		publicKey:  &privateKey.PublicKey,
		issuer:     issuer,
		audience:   audience,
	}
}

// IssueAccessToken signs a user-scoped token.
func (t *TokenIssuer) IssueAccessToken(userID string, expiresInSeconds int64) (string, error) {
	return t.issueAccessToken(userID, "", "", expiresInSeconds)
}

// IssueAccessTokenWithOrg signs a token scoped to an organization and role.
func (t *TokenIssuer) IssueAccessTokenWithOrg(userID, orgID, role string, expiresInSeconds int64) (string, error) {
	return t.issueAccessToken(userID, orgID, role, expiresInSeconds)
}

func (t *TokenIssuer) issueAccessToken(userID, orgID, role string, expiresInSeconds int64) (string, error) {
	now := time.Now()
	claims := accessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    t.issuer,
			Audience:  jwt.ClaimStrings{t.audience},
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expiresInSeconds) * time.Second)),
		},
		UserID: userID,
		OrgID:  orgID,
		Role:   role,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	return token.SignedString(t.privateKey)
}

// ValidateAccessToken verifies the signature and returns the token scope.
// OrgID and role are empty for user-scoped tokens.
func (t *TokenIssuer) ValidateAccessToken(tokenString string) (userID, orgID, role string, err error) {
	token, err := jwt.ParseWithClaims(tokenString, &accessClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.publicKey, nil
	})
	if err != nil {
		return "", "", "", err
	}
	claims, ok := token.Claims.(*accessClaims)
	if !ok || !token.Valid {
		return "", "", "", errors.New("invalid token claims")
	}
	return claims.UserID, claims.OrgID, claims.Role, nil
}

var _ ports.TokenIssuer = (*TokenIssuer)(nil)
