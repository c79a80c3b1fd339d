// Package session persists the credential snapshot that authenticates requests
// against the recorder backend.
//
// A credential bundles the session secret (SAPISID cookie value) with the raw
// cookie header and the account index it belongs to. Its lifetime is bounded by
// remote-side cookie expiry, which is unknown in advance: staleness is only
// discovered when a signed call comes back 401/403. The store therefore keeps
// no expiry of its own; an absent snapshot and an expired one are treated the
// same by the auth coordinator.
package session

import "time"

// Credential is the bundle enabling signed requests. It is owned by the auth
// coordinator; everything else reads it without mutating.
type Credential struct {
	Secret       string    `json:"secret"`
	CookieHeader string    `json:"cookie_header"`
	AccountIndex int       `json:"account_index"`
	SavedAt      time.Time `json:"saved_at"`
}

// Empty reports whether the credential is missing the material needed to sign
// a request.
func (c Credential) Empty() bool {
	return c.Secret == "" || c.CookieHeader == ""
}

// Store abstracts credential persistence. Implementations guarantee no more
// than last-write-wins semantics.
type Store interface {
	// Load returns the saved credential. A missing snapshot resolves to an
	// empty credential, not an error.
	Load() (Credential, error)
	Save(Credential) error
}
