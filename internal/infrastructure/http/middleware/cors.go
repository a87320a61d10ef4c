package middleware

import (
	"net/http"
	"strconv"
	"strings"
)

// CORSOptions configures cross-origin access. The zero value disables CORS
// entirely: no Access-Control headers and preflights fall through.
type CORSOptions struct {
	// AllowedOrigins are matched exactly against the Origin header; "*"
	// permits any origin.
	AllowedOrigins []string
	// MaxAgeSeconds caps preflight caching; 0 means 10 minutes.
	MaxAgeSeconds int
}

const (
	corsMethods       = "GET, POST, PATCH, DELETE, OPTIONS"
	corsHeaders       = "Authorization, Content-Type, X-Request-ID"
	corsDefaultMaxAge = 600
)

// CORSWithOptions returns a middleware enforcing the cross-origin policy.
// Disallowed origins get no Access-Control headers, which makes the browser
// block the response; same-origin and non-browser traffic passes through
// untouched.
func CORSWithOptions(opts CORSOptions) func(next http.Handler) http.Handler {
	allowAll := false
	allowed := make(map[string]struct{}, len(opts.AllowedOrigins))
	for _, o := range opts.AllowedOrigins {
		o = strings.TrimSpace(o)
		if o == "*" {
			allowAll = true
		}
		if o != "" {
			allowed[o] = struct{}{}
		}
	}
	maxAge := corsDefaultMaxAge
	if opts.MaxAgeSeconds > 0 {
		maxAge = opts.MaxAgeSeconds
	}
	maxAgeValue := strconv.Itoa(maxAge)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(allowed) == 0 {
				next.ServeHTTP(w, r)
				return
			}
			origin := r.Header.Get("Origin")
			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}
			// the response depends on Origin either way
			w.Header().Add("Vary", "Origin")

			if _, ok := allowed[origin]; !ok && !allowAll {
				if r.Method == http.MethodOptions {
					w.WriteHeader(http.StatusForbidden)
					return
				}
				next.ServeHTTP(w, r)
				return
			}
			w.Header().Set("Access-Control-Allow-Origin", origin)
			if r.Method == http.MethodOptions {
				w.Header().Set("Access-Control-Allow-Methods", corsMethods)
				w.Header().Set("Access-Control-Allow-Headers", corsHeaders)
				w.Header().Set("Access-Control-Max-Age", maxAgeValue)
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// CORS is the common form: exact allowed origins, default preflight cache.
func CORS(allowedOrigins []string) func(next http.Handler) http.Handler {
	return CORSWithOptions(CORSOptions{AllowedOrigins: allowedOrigins})
}
