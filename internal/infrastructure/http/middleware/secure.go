package middleware

import (
	"net/http"

	"github.com/unrolled/secure"
)

// SecureOptions returns the security-header policy for a JSON API. The API
// serves no HTML, so the CSP and frame policy can be maximally strict; HSTS
// is enabled outside development only, where TLS terminates in front of us.
func SecureOptions(isDevelopment bool) secure.Options {
	opts := secure.Options{
		IsDevelopment:         isDevelopment,
		ContentTypeNosniff:    true,
		FrameDeny:             true,
		ContentSecurityPolicy: "default-src 'none'; frame-ancestors 'none'",
		ReferrerPolicy:        "no-referrer",
	}
	if !isDevelopment {
		opts.STSSeconds = 31536000
		opts.STSIncludeSubdomains = true
	}
	return opts
}

// NewSecure wraps the handler chain with the security headers.
func NewSecure(opts secure.Options) func(next http.Handler) http.Handler {
	return secure.New(opts).Handler
}
