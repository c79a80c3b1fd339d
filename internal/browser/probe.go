// Package browser probes a live interactive browser session for recorder
// credentials.
//
// Authentication against the backend happens in a real, human-driven browser
// session; this package only observes it. The concrete implementation talks to
// a locally running Chrome through its DevTools debugging port and reads the
// session cookies, from which it derives the signing secret (the SAPISID
// cookie) and the raw cookie header forwarded on every request. Probe is an
// interface so the auth coordinator can be tested without a browser.
package browser

import "context"

// Cookies is the credential material extracted from a live session.
type Cookies struct {
	// Secret is the SAPISID cookie value the request signature is keyed on.
	Secret string
	// CookieHeader is the full "name=value; ..." header for the backend
	// origin.
	CookieHeader string
}

// Probe observes an interactive browser session.
type Probe interface {
	// Live reports whether the browser's debugging endpoint is reachable.
	Live(ctx context.Context) bool
	// Cookies extracts credential material from the session. ok is false when
	// the session exists but is not signed in yet.
	Cookies(ctx context.Context) (cookies Cookies, ok bool, err error)
	// OpenLogin navigates the session to the login URL so the user can sign
	// in.
	OpenLogin(ctx context.Context, loginURL string) error
}
