package middleware

import (
	"net/http"
	"strings"

	"github.com/7Spade/tortoise/internal/application/ports"
	"github.com/7Spade/tortoise/internal/domain"
)

// AuthValidator validates the JWT and sets the token scope in context (see
// AuthFromContext).
type AuthValidator struct {
	issuer ports.TokenIssuer
}

func NewAuthValidator(issuer ports.TokenIssuer) *AuthValidator {
	return &AuthValidator{issuer: issuer}
}

func (m *AuthValidator) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		if auth == "" || !strings.HasPrefix(auth, "Bearer ") {
			writeErr(w, http.StatusUnauthorized, "missing or invalid authorization")
			return
		}
		tokenString := strings.TrimPrefix(auth, "Bearer ")
		userID, orgID, role, err := m.issuer.ValidateAccessToken(tokenString)
		if err != nil {
			writeErr(w, http.StatusUnauthorized, "invalid token")
			return
		}
		ctx := WithAuth(r.Context(), AuthScope{UserID: userID, OrgID: orgID, Role: role})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireOrgRole requires an org-scoped token whose role is at least the
// named one. Owner satisfies admin; admin satisfies member. Use after
// AuthValidator.
func RequireOrgRole(minimum domain.OrganizationRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			scope := AuthFromContext(r.Context())
			if scope.OrgID == "" {
				writeErr(w, http.StatusForbidden, "organization-scoped token required")
				return
			}
			if !roleSatisfies(domain.OrganizationRole(scope.Role), minimum) {
				writeErr(w, http.StatusForbidden, "insufficient role")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func roleSatisfies(have, want domain.OrganizationRole) bool {
	rank := map[domain.OrganizationRole]int{
		domain.RoleMember: 1,
		domain.RoleAdmin:  2,
		domain.RoleOwner:  3,
	}
	h, ok := rank[have]
	if !ok {
		return false
	}
	return h >= rank[want]
}

func writeErr(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write([]byte(`{"error":"` + message + `"}`))
}
