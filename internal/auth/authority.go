// Copyright (c) 2026 Niramaya. All rights reserved.

package auth

import (
	"context"
	"log/slog"
	"sync"

	"github.com/niramaya/api/internal/platform/apperr"
	"github.com/niramaya/api/internal/platform/constants"
)

// Authority is the single source of truth for "who is signed in and with
// what role", abstracting over the two interchangeable backends.
//
// # Review Process
//
// This service is critical for security. Any changes to the sign-in flow or
// the snapshot ownership rules must be reviewed by the security team.
//
// # State Ownership
//
// The authority owns exactly one [Snapshot] and is its sole mutator. Every
// operation resolves fully (or fails) before the next state mutation is
// applied; the mutex makes the source's single-caller convention an actual
// guarantee here.
//
// # Listener race
//
// A backend change notification can arrive while a manual sign-in is in
// flight. Both writers go through the same mutex, and the last writer wins.
// No sequence number is attached to mutations; with one interactive caller
// and one listener the stale-overwrite window is a token refresh away from
// self-correcting, and the added ordering machinery was judged not worth it.
type Authority struct {
	mu       sync.Mutex
	backend  Backend
	logger   *slog.Logger
	snapshot Snapshot

	// fixtureCredentials enables the live-mode self-healing sign-in for the
	// fixed demonstration accounts. Empty outside live mode.
	fixtureCredentials map[string]string
}

// AuthorityOption customizes authority construction.
type AuthorityOption func(*Authority)

// WithFixtureRecovery registers credentials that may be re-created through
// sign-up when a sign-in attempt finds them missing. This keeps the fixed
// demonstration accounts able to log in despite backend resets. It must
// never be fed arbitrary user-supplied credentials.
func WithFixtureRecovery(credentials map[string]string) AuthorityOption {
	return func(authority *Authority) {
		authority.fixtureCredentials = credentials
	}
}

// FixtureCredentials returns the standard demonstration account set.
func FixtureCredentials() map[string]string {
	return map[string]string{
		"testuser@example.com":     "Test123",
		"testprovider@example.com": "Test123",
		"admin@example.com":        "Test123",
	}
}

// NewAuthority constructs the authority in its pre-bootstrap loading state.
func NewAuthority(backend Backend, logger *slog.Logger, options ...AuthorityOption) *Authority {
	authority := &Authority{
		backend:  backend,
		logger:   logger,
		snapshot: Snapshot{IsLoading: true},
	}

	for _, option := range options {
		option(authority)
	}

	return authority
}

// Bootstrap performs the initial session restore and, when the backend can
// push external session changes, starts the listener goroutine. IsLoading is
// true until the restore attempt resolves, then never again.
func (authority *Authority) Bootstrap(ctx context.Context) error {
	identity, session, err := authority.backend.CurrentSession(ctx)

	authority.mu.Lock()
	authority.snapshot = Snapshot{Identity: identity, Session: session}
	authority.mu.Unlock()

	if err != nil {
		// A failed restore degrades to a signed-out start. Auth-mutating
		// operations still work; only continuity across restarts is lost.
		authority.logger.Warn("session_restore_failed", slog.Any("error", err))
	}

	if notifier, ok := authority.backend.(Notifier); ok {
		go authority.listen(ctx, notifier.SessionChanges())
	}

	return nil
}

// listen consumes external session-change notifications. Each change
// unconditionally overwrites the cached identity and session.
func (authority *Authority) listen(ctx context.Context, changes <-chan Change) {
	for {
		select {
		case <-ctx.Done():
			return
		case change := <-changes:
			authority.applyChange(ctx, change)
		}
	}
}

// applyChange installs a pushed session state and opportunistically
// re-fetches the profile so the cached role tracks the latest server truth.
func (authority *Authority) applyChange(ctx context.Context, change Change) {
	identity := change.Identity

	if change.Session != nil && change.Identity != nil {
		fresh, err := authority.backend.FetchProfile(ctx, change.Identity.ID)
		if err != nil {
			// Best-effort read. Keep showing the last known profile.
			authority.logger.Warn("profile_refresh_failed", slog.Any("error", err))
		} else {
			identity = fresh
		}
	}

	authority.mu.Lock()
	authority.snapshot = Snapshot{Identity: identity, Session: change.Session}
	authority.mu.Unlock()
}

// SignUp enrolls a new member and installs the resulting session.
//
// # Returns
//   - [apperr.WeakPassword] when the password is under the minimum length.
//   - [apperr.DuplicateEmail] when the email is already registered.
//   - [apperr.BackendUnavailable] when the storage layer is unreachable.
func (authority *Authority) SignUp(ctx context.Context, input SignUpInput) (*Identity, error) {
	if len(input.Password) < constants.MinPasswordLength {
		return nil, apperr.WeakPassword(constants.MinPasswordLength)
	}

	authority.mu.Lock()
	defer authority.mu.Unlock()

	identity, session, err := authority.backend.SignUp(ctx, input)
	if err != nil {
		return nil, err
	}

	authority.snapshot = Snapshot{Identity: identity, Session: session}
	return identity, nil
}

// SignIn authenticates and installs the resulting session.
//
// A failed attempt leaves the current snapshot untouched: staying signed in
// as A after fat-fingering a sign-in as B is the expected outcome.
//
// # Returns
//   - [apperr.InvalidCredentials] on any lookup or match failure.
//   - [apperr.BackendUnavailable] when the storage layer is unreachable.
func (authority *Authority) SignIn(ctx context.Context, email, password string) (*Identity, error) {
	authority.mu.Lock()
	defer authority.mu.Unlock()

	identity, session, err := authority.backend.SignIn(ctx, email, password)

	if err != nil && authority.canRecoverFixture(email, password, err) {
		identity, session, err = authority.recoverFixture(ctx, email, password)
	}

	if err != nil {
		return nil, err
	}

	authority.snapshot = Snapshot{Identity: identity, Session: session}
	return identity, nil
}

// canRecoverFixture gates the self-healing path to the exact fixture
// credential pairs. Arbitrary unmatched credentials never qualify.
func (authority *Authority) canRecoverFixture(email, password string, err error) bool {
	if !apperr.HasCode(err, apperr.CodeInvalidCredentials) {
		return false
	}
	expected, known := authority.fixtureCredentials[normalizeEmail(email)]
	return known && expected == password
}

// recoverFixture re-creates a missing demonstration account and retries the
// sign-in. Backend resets wipe the fixture rows; this puts them back.
func (authority *Authority) recoverFixture(ctx context.Context, email, password string) (*Identity, *Session, error) {
	email = normalizeEmail(email)
	authority.logger.Info("fixture_recovery_attempt", slog.String("email", email))

	role := RoleUser
	switch email {
	case "testprovider@example.com":
		role = RoleProvider
	case "admin@example.com":
		role = RoleAdmin
	}

	if _, _, err := authority.backend.SignUp(ctx, SignUpInput{
		Email:       email,
		Password:    password,
		DisplayName: "Demo Account",
		Role:        role,
	}); err != nil {
		return nil, nil, apperr.InvalidCredentials()
	}

	return authority.backend.SignIn(ctx, email, password)
}

// SignOut clears the active session. Idempotent: signing out while already
// signed out succeeds and leaves the snapshot at {nil, nil}.
func (authority *Authority) SignOut(ctx context.Context) error {
	authority.mu.Lock()
	defer authority.mu.Unlock()

	session := authority.snapshot.Session
	authority.snapshot = Snapshot{}

	if session == nil {
		return nil
	}

	if err := authority.backend.SignOut(ctx, session); err != nil {
		// The in-memory state is already cleared; the stranded backend
		// record ages out on its own expiry.
		authority.logger.Warn("sign_out_backend_failed", slog.Any("error", err))
	}

	return nil
}

// RefreshProfile re-fetches the identity for the current session's subject
// and replaces the cached copy. No-op when signed out. Fetch failures are
// logged and leave the previous cached identity untouched; they never
// surface to the caller.
func (authority *Authority) RefreshProfile(ctx context.Context) {
	authority.mu.Lock()
	defer authority.mu.Unlock()

	if authority.snapshot.Identity == nil || authority.snapshot.Session == nil {
		return
	}

	fresh, err := authority.backend.FetchProfile(ctx, authority.snapshot.Identity.ID)
	if err != nil {
		authority.logger.Warn("profile_refresh_failed", slog.Any("error", err))
		return
	}

	authority.snapshot.Identity = fresh
}

// UpdateProfile applies the member-editable settings through the backend and
// keeps the cached snapshot current when the subject is the signed-in identity.
func (authority *Authority) UpdateProfile(ctx context.Context, userID string, update ProfileUpdate) (*Identity, error) {
	identity, err := authority.backend.UpdateProfile(ctx, userID, update)
	if err != nil {
		return nil, err
	}

	authority.mu.Lock()
	if authority.snapshot.Identity != nil && authority.snapshot.Identity.ID == userID {
		authority.snapshot.Identity = identity
	}
	authority.mu.Unlock()

	return identity, nil
}

// CurrentSnapshot returns a read-only copy of the authority's state.
// Safe to call from any goroutine at any time.
func (authority *Authority) CurrentSnapshot() Snapshot {
	authority.mu.Lock()
	defer authority.mu.Unlock()
	return authority.snapshot
}
