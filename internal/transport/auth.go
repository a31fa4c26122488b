package transport

import "net/http"

// AuthFunc resolves an inbound upgrade request to a verified user_id. The
// identity provider itself is an external collaborator
// (authentication is out of scope for this module); AuthFunc is the only
// seam this package exposes to it.
type AuthFunc func(r *http.Request) (userID string, ok bool)

// DefaultAuth stands in for that boundary: it trusts an already-verified
// identity asserted via the X-User-Id header (or a user_id query param for
// browser clients that can't set custom headers on a WebSocket upgrade).
// A real deployment supplies its own AuthFunc that checks a signed token
// against the identity provider instead.
func DefaultAuth(r *http.Request) (string, bool) {
	id := r.Header.Get("X-User-Id")
	if id == "" {
		id = r.URL.Query().Get("user_id")
	}
	if id == "" {
		return "", false
	}
	return id, true
}
