// Package auth reconciles the saved credential, the live browser session, and
// a backend liveness probe into one authenticated context.
//
// The coordinator is a small state machine: a saved credential is verified
// with a cheap signed call before it is trusted; a rejected or missing
// credential triggers cookie extraction from the interactive browser session,
// waiting for the user to sign in when necessary. Authenticated is terminal
// for one invocation. Later 401/403 responses elsewhere are reported to the
// caller, never silently re-authenticated, so a dead session can never cause
// a retry loop against the live service.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"recorderctl/internal/browser"
	"recorderctl/internal/logging"
	"recorderctl/internal/session"
)

// ErrLoginTimeout marks an interactive login that did not complete within the
// deadline.
var ErrLoginTimeout = errors.New("interactive login timed out")

// State identifies a position in the authentication flow.
type State int

const (
	StateNoCredential State = iota
	StateCredentialUnverified
	StateAuthenticated
	StateExpired
	StateAwaitingLogin
)

func (s State) String() string {
	switch s {
	case StateNoCredential:
		return "no-credential"
	case StateCredentialUnverified:
		return "credential-unverified"
	case StateAuthenticated:
		return "authenticated"
	case StateExpired:
		return "expired"
	case StateAwaitingLogin:
		return "awaiting-login"
	default:
		return "unknown"
	}
}

// Verifier issues the liveness probe for a candidate credential. An error
// wrapping recorder.ErrAuthExpired means the backend rejected it; any other
// error is treated the same way, because staleness is only discoverable
// through a failed call.
type Verifier interface {
	Verify(ctx context.Context, cred session.Credential) error
}

// VerifierFunc adapts a function to the Verifier interface.
type VerifierFunc func(ctx context.Context, cred session.Credential) error

func (f VerifierFunc) Verify(ctx context.Context, cred session.Credential) error {
	return f(ctx, cred)
}

// Coordinator drives the authentication state machine.
type Coordinator struct {
	store    session.Store
	probe    browser.Probe
	verifier Verifier
	logger   *slog.Logger

	loginURL     string
	accountIndex int
	pollInterval time.Duration
	loginTimeout time.Duration

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// CoordinatorOption customises Coordinator construction.
type CoordinatorOption func(*Coordinator)

// WithLogger attaches a logger.
func WithLogger(logger *slog.Logger) CoordinatorOption {
	return func(c *Coordinator) {
		if logger != nil {
			c.logger = logging.WithComponent(logger, "auth")
		}
	}
}

// WithPollInterval overrides the browser polling interval.
func WithPollInterval(interval time.Duration) CoordinatorOption {
	return func(c *Coordinator) {
		if interval > 0 {
			c.pollInterval = interval
		}
	}
}

// WithLoginTimeout overrides the interactive login deadline.
func WithLoginTimeout(timeout time.Duration) CoordinatorOption {
	return func(c *Coordinator) {
		if timeout > 0 {
			c.loginTimeout = timeout
		}
	}
}

// WithAccountIndex sets the authuser index stamped on fresh credentials.
func WithAccountIndex(index int) CoordinatorOption {
	return func(c *Coordinator) {
		if index >= 0 {
			c.accountIndex = index
		}
	}
}

// WithClock overrides the wall clock (used by tests).
func WithClock(now func() time.Time) CoordinatorOption {
	return func(c *Coordinator) {
		if now != nil {
			c.now = now
		}
	}
}

// WithSleep overrides the poll wait (used by tests).
func WithSleep(sleep func(ctx context.Context, d time.Duration) error) CoordinatorOption {
	return func(c *Coordinator) {
		if sleep != nil {
			c.sleep = sleep
		}
	}
}

// NewCoordinator builds a coordinator over the given collaborators.
func NewCoordinator(store session.Store, probe browser.Probe, verifier Verifier, loginURL string, opts ...CoordinatorOption) (*Coordinator, error) {
	if store == nil {
		return nil, errors.New("session store is nil")
	}
	if probe == nil {
		return nil, errors.New("browser probe is nil")
	}
	if verifier == nil {
		return nil, errors.New("verifier is nil")
	}

	coordinator := &Coordinator{
		store:        store,
		probe:        probe,
		verifier:     verifier,
		logger:       logging.NewNop(),
		loginURL:     loginURL,
		pollInterval: 2 * time.Second,
		loginTimeout: 5 * time.Minute,
		now:          time.Now,
		sleep:        sleepContext,
	}
	for _, opt := range opts {
		opt(coordinator)
	}
	return coordinator, nil
}

// Authenticate resolves a verified credential, persisting it before
// returning. The ignoreSaved flag skips the stored snapshot and forces fresh
// browser extraction.
func (c *Coordinator) Authenticate(ctx context.Context, ignoreSaved bool) (session.Credential, error) {
	cred := session.Credential{}
	state := StateNoCredential

	if !ignoreSaved {
		saved, err := c.store.Load()
		if err != nil {
			return session.Credential{}, fmt.Errorf("load saved credential: %w", err)
		}
		if !saved.Empty() {
			cred = saved
			state = StateCredentialUnverified
		}
	}

	// A fresh credential that still fails verification means the browser
	// session itself is dead; looping back to extraction would spin.
	refreshed := false

	for {
		switch state {
		case StateCredentialUnverified:
			err := c.verifier.Verify(ctx, cred)
			if err == nil {
				state = StateAuthenticated
				continue
			}
			if ctx.Err() != nil {
				return session.Credential{}, ctx.Err()
			}
			if refreshed {
				return session.Credential{}, fmt.Errorf("freshly extracted credential rejected: %w", err)
			}
			c.logger.Info("saved credential rejected", logging.Args(logging.Error(err))...)
			state = StateExpired

		case StateAuthenticated:
			cred.SavedAt = c.now().UTC()
			if err := c.store.Save(cred); err != nil {
				return session.Credential{}, fmt.Errorf("persist credential: %w", err)
			}
			c.logger.Info("authenticated", logging.Args(logging.Int("account_index", cred.AccountIndex))...)
			return cred, nil

		case StateNoCredential, StateExpired:
			cookies, ok, err := c.probe.Cookies(ctx)
			if err != nil || !ok {
				if err != nil {
					c.logger.Info("browser session unavailable", logging.Args(logging.Error(err))...)
				}
				state = StateAwaitingLogin
				continue
			}
			cred = c.freshCredential(cookies)
			refreshed = true
			state = StateCredentialUnverified

		case StateAwaitingLogin:
			fresh, err := c.awaitLogin(ctx)
			if err != nil {
				return session.Credential{}, err
			}
			cred = c.freshCredential(fresh)
			refreshed = true
			state = StateCredentialUnverified
		}
	}
}

func (c *Coordinator) freshCredential(cookies browser.Cookies) session.Credential {
	return session.Credential{
		Secret:       cookies.Secret,
		CookieHeader: cookies.CookieHeader,
		AccountIndex: c.accountIndex,
	}
}

// awaitLogin opens the login page and polls the browser session until it
// becomes authenticated or the deadline elapses.
func (c *Coordinator) awaitLogin(ctx context.Context) (browser.Cookies, error) {
	if err := c.probe.OpenLogin(ctx, c.loginURL); err != nil {
		c.logger.Warn("could not open login page", logging.Args(logging.Error(err))...)
	}
	c.logger.Info("waiting for interactive login", logging.Args(
		logging.Duration("timeout", c.loginTimeout),
	)...)

	deadline := c.now().Add(c.loginTimeout)
	for {
		if err := c.sleep(ctx, c.pollInterval); err != nil {
			return browser.Cookies{}, err
		}
		cookies, ok, err := c.probe.Cookies(ctx)
		if err == nil && ok {
			return cookies, nil
		}
		if !c.now().Before(deadline) {
			return browser.Cookies{}, ErrLoginTimeout
		}
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
