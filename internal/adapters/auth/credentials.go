package auth

import "net/http"

// Resolve picks the upstream credential for one inbound request.
//
// Precedence: the password of an inbound Basic-auth header wins (the username
// is ignored), then the operator-configured fallback, then none. A malformed
// Basic-auth header counts as absent rather than rejecting the request, so
// anonymous upstream access keeps working.
func Resolve(r *http.Request, fallback string) string {
	if _, password, ok := r.BasicAuth(); ok && password != "" {
		return password
	}
	return fallback
}
