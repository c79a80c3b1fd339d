// Package sapisid computes the time-bound request signature the recorder
// backend expects in the Authorization header.
//
// The token proves possession of the session secret (the SAPISID cookie)
// without sending it directly: it is the SHA-1 of the current Unix timestamp,
// the secret, and the requesting origin, space separated. The timestamp is
// part of the hash, so the value must be recomputed for every request.
package sapisid

import (
	"crypto/sha1"
	"fmt"
	"time"
)

// Scheme is the Authorization scheme the backend recognizes.
const Scheme = "SAPISIDHASH"

// Token returns the "{timestamp}_{sha1hex}" signature for the given secret and
// origin at the supplied instant.
func Token(secret, origin string, at time.Time) string {
	ts := at.Unix()
	sum := sha1.Sum(fmt.Appendf(nil, "%d %s %s", ts, secret, origin))
	return fmt.Sprintf("%d_%x", ts, sum)
}

// Authorization returns the full Authorization header value.
func Authorization(secret, origin string, at time.Time) string {
	return Scheme + " " + Token(secret, origin, at)
}
