// Package sync implements both ends of the lifegame backup protocol: the
// HTTP client the app uses to push/pull state, the server that hosts
// accounts, and the debouncer that batches local changes into one push.
//
// The protocol is three JSON POST endpoints authenticated by a shared
// secret (username + password) on every request. Local state is always
// the source of truth: sync failures never roll anything back.
package sync

import "github.com/lifegame-app/lifegame/internal/domain"

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// syncRequest carries the push/pull payload. An empty Data object is a
// pull; populated fields are a push. Zero-valued fields are "absent" —
// the server leaves them untouched, so a baseline of 0 or an empty
// history cannot be pushed. Documented quirk, kept as-is.
type syncRequest struct {
	Username string      `json:"username"`
	Password string      `json:"password"`
	Data     domain.User `json:"data"`
}

// apiResponse is the uniform server reply: either an error message or a
// success message plus the full merged user record.
type apiResponse struct {
	Message string       `json:"message,omitempty"`
	Error   string       `json:"error,omitempty"`
	User    *domain.User `json:"user,omitempty"`
}
