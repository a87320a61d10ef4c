package middleware

import "context"

type contextKey string

const authContextKey contextKey = "auth"

// AuthScope is the validated token scope carried on the request context.
// OrgID and Role are empty for user-scoped tokens.
type AuthScope struct {
	UserID string
	OrgID  string
	Role   string
}

// WithAuth injects the validated token scope into the context.
func WithAuth(ctx context.Context, scope AuthScope) context.Context {
	return context.WithValue(ctx, authContextKey, scope)
}

// AuthFromContext returns the token scope, or the zero scope when the request
// was not authenticated.
func AuthFromContext(ctx context.Context) AuthScope {
	v := ctx.Value(authContextKey)
	if v == nil {
		return AuthScope{}
	}
	scope, _ := v.(AuthScope)
	return scope
}
