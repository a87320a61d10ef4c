package middleware

import "net/http"

// VersionHeader carries the API version on every response so clients can
// detect compatibility without a separate discovery call.
const VersionHeader = "X-API-Version"

// APIVersion stamps the version header on all responses.
func APIVersion(version string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set(VersionHeader, version)
			next.ServeHTTP(w, r)
		})
	}
}
