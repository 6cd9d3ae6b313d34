// Copyright (c) 2026 Niramaya. All rights reserved.

package auth_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/niramaya/api/internal/auth"
	"github.com/niramaya/api/internal/platform/apperr"
	"github.com/niramaya/api/internal/platform/localstore"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newLocalAuthority builds a fully bootstrapped authority over a fresh
// local document store.
func newLocalAuthority(t *testing.T) *auth.Authority {
	t.Helper()

	store, err := localstore.Open(t.TempDir())
	require.NoError(t, err)

	backend := auth.NewLocalBackend(store)
	require.NoError(t, backend.SeedFixtures())

	authority := auth.NewAuthority(backend, testLogger())
	require.NoError(t, authority.Bootstrap(context.Background()))

	return authority
}

/*
TestAuthority_SignUpEstablishesSession verifies that sign-up immediately
yields a snapshot carrying the new identity and a non-nil session.
*/
func TestAuthority_SignUpEstablishesSession(t *testing.T) {
	authority := newLocalAuthority(t)

	identity, err := authority.SignUp(context.Background(), auth.SignUpInput{
		Email:       "alice@example.com",
		Password:    "Secret1",
		DisplayName: "Alice",
		Role:        auth.RoleUser,
	})
	require.NoError(t, err)

	snapshot := authority.CurrentSnapshot()
	require.NotNil(t, snapshot.Identity)
	require.NotNil(t, snapshot.Session)

	// 1. The snapshot reflects exactly what was registered
	assert.Equal(t, "alice@example.com", snapshot.Identity.Email)
	assert.Equal(t, "Alice", snapshot.Identity.DisplayName)
	assert.Equal(t, auth.RoleUser, snapshot.Identity.Role)
	assert.Equal(t, identity.ID, snapshot.Session.UserID)

	// 2. Bootstrap has completed
	assert.False(t, snapshot.IsLoading)

	// 3. A pseudonymous handle was generated
	assert.NotEmpty(t, snapshot.Identity.AnonymousHandle)
}

/*
TestAuthority_SignUpWeakPassword verifies the minimum-length policy.
*/
func TestAuthority_SignUpWeakPassword(t *testing.T) {
	authority := newLocalAuthority(t)

	_, err := authority.SignUp(context.Background(), auth.SignUpInput{
		Email:       "bob@example.com",
		Password:    "short",
		DisplayName: "Bob",
	})

	require.Error(t, err)
	assert.True(t, apperr.HasCode(err, apperr.CodeWeakPassword))
	assert.Nil(t, authority.CurrentSnapshot().Identity)
}

/*
TestAuthority_SignUpDuplicateEmail verifies the duplicate pre-check.
*/
func TestAuthority_SignUpDuplicateEmail(t *testing.T) {
	authority := newLocalAuthority(t)

	input := auth.SignUpInput{
		Email:       "carol@example.com",
		Password:    "Secret1",
		DisplayName: "Carol",
	}

	_, err := authority.SignUp(context.Background(), input)
	require.NoError(t, err)

	_, err = authority.SignUp(context.Background(), input)
	require.Error(t, err)
	assert.True(t, apperr.HasCode(err, apperr.CodeDuplicateEmail))
}

/*
TestAuthority_SignInRoundTrip covers the register / sign-out / sign-in
scenario: the identity that comes back carries the role it registered with.
*/
func TestAuthority_SignInRoundTrip(t *testing.T) {
	authority := newLocalAuthority(t)
	ctx := context.Background()

	// 1. Register and capture the identity
	created, err := authority.SignUp(ctx, auth.SignUpInput{
		Email:       "alice@example.com",
		Password:    "Secret1",
		DisplayName: "Alice",
		Role:        auth.RoleUser,
	})
	require.NoError(t, err)

	// 2. Sign out
	require.NoError(t, authority.SignOut(ctx))
	assert.Nil(t, authority.CurrentSnapshot().Identity)

	// 3. Sign back in with the same credentials
	returned, err := authority.SignIn(ctx, "alice@example.com", "Secret1")
	require.NoError(t, err)

	assert.Equal(t, created.ID, returned.ID)
	assert.Equal(t, created.Email, returned.Email)
	assert.Equal(t, auth.RoleUser, returned.Role)
	assert.Equal(t, created.AnonymousHandle, returned.AnonymousHandle)
}

/*
TestAuthority_SignInInvalidCredentials verifies that unmatched credentials
fail typed and leave the current snapshot untouched.
*/
func TestAuthority_SignInInvalidCredentials(t *testing.T) {
	authority := newLocalAuthority(t)
	ctx := context.Background()

	// 1. From a signed-out state
	_, err := authority.SignIn(ctx, "nobody@example.com", "Whatever1")
	require.Error(t, err)
	assert.True(t, apperr.HasCode(err, apperr.CodeInvalidCredentials))
	assert.Nil(t, authority.CurrentSnapshot().Identity)

	// 2. From a signed-in state the previous identity survives the failure
	_, err = authority.SignIn(ctx, "testuser@example.com", "Test123")
	require.NoError(t, err)

	_, err = authority.SignIn(ctx, "nobody@example.com", "Whatever1")
	require.Error(t, err)

	snapshot := authority.CurrentSnapshot()
	require.NotNil(t, snapshot.Identity)
	assert.Equal(t, "testuser@example.com", snapshot.Identity.Email)

	// 3. Wrong password on an existing account is the same typed failure
	_, err = authority.SignIn(ctx, "testuser@example.com", "WrongPass")
	assert.True(t, apperr.HasCode(err, apperr.CodeInvalidCredentials))
}

/*
TestAuthority_SignOutIdempotent verifies double sign-out is harmless.
*/
func TestAuthority_SignOutIdempotent(t *testing.T) {
	authority := newLocalAuthority(t)
	ctx := context.Background()

	_, err := authority.SignIn(ctx, "testuser@example.com", "Test123")
	require.NoError(t, err)

	// 1. First sign-out clears both identity and session
	require.NoError(t, authority.SignOut(ctx))
	snapshot := authority.CurrentSnapshot()
	assert.Nil(t, snapshot.Identity)
	assert.Nil(t, snapshot.Session)

	// 2. Second sign-out succeeds and changes nothing
	require.NoError(t, authority.SignOut(ctx))
	snapshot = authority.CurrentSnapshot()
	assert.Nil(t, snapshot.Identity)
	assert.Nil(t, snapshot.Session)
}

/*
TestAuthority_FixtureAccounts verifies the three seeded demonstration
accounts sign in without any prior sign-up, each with its expected role.
*/
func TestAuthority_FixtureAccounts(t *testing.T) {
	authority := newLocalAuthority(t)
	ctx := context.Background()

	fixtures := map[string]auth.Role{
		"testuser@example.com":     auth.RoleUser,
		"testprovider@example.com": auth.RoleProvider,
		"admin@example.com":        auth.RoleAdmin,
	}

	for email, role := range fixtures {
		identity, err := authority.SignIn(ctx, email, "Test123")
		require.NoError(t, err, email)
		assert.Equal(t, role, identity.Role, email)
	}
}

/*
TestAuthority_RefreshProfileNoop verifies refresh is a no-op when signed out.
*/
func TestAuthority_RefreshProfileNoop(t *testing.T) {
	authority := newLocalAuthority(t)

	authority.RefreshProfile(context.Background())

	snapshot := authority.CurrentSnapshot()
	assert.Nil(t, snapshot.Identity)
	assert.Nil(t, snapshot.Session)
}

// flakyBackend wraps a real backend and fails profile fetches on demand.
type flakyBackend struct {
	auth.Backend
	failFetch bool
}

func (backend *flakyBackend) FetchProfile(ctx context.Context, userID string) (*auth.Identity, error) {
	if backend.failFetch {
		return nil, apperr.ProfileFetchFailed(assert.AnError)
	}
	return backend.Backend.FetchProfile(ctx, userID)
}

/*
TestAuthority_RefreshProfileKeepsCacheOnFailure verifies a failed fetch is
swallowed and the previously cached identity stays visible.
*/
func TestAuthority_RefreshProfileKeepsCacheOnFailure(t *testing.T) {
	store, err := localstore.Open(t.TempDir())
	require.NoError(t, err)

	local := auth.NewLocalBackend(store)
	require.NoError(t, local.SeedFixtures())

	flaky := &flakyBackend{Backend: local}
	authority := auth.NewAuthority(flaky, testLogger())
	require.NoError(t, authority.Bootstrap(context.Background()))

	_, err = authority.SignIn(context.Background(), "testuser@example.com", "Test123")
	require.NoError(t, err)

	flaky.failFetch = true
	authority.RefreshProfile(context.Background())

	snapshot := authority.CurrentSnapshot()
	require.NotNil(t, snapshot.Identity)
	assert.Equal(t, "testuser@example.com", snapshot.Identity.Email)
}

/*
TestAuthority_FixtureSelfHealing verifies the narrow self-healing path:
known fixture credentials are re-registered and retried, while arbitrary
credentials are never auto-created.
*/
func TestAuthority_FixtureSelfHealing(t *testing.T) {
	store, err := localstore.Open(t.TempDir())
	require.NoError(t, err)

	// Deliberately unseeded: the fixture rows are "lost".
	backend := auth.NewLocalBackend(store)

	authority := auth.NewAuthority(backend, testLogger(),
		auth.WithFixtureRecovery(auth.FixtureCredentials()))
	require.NoError(t, authority.Bootstrap(context.Background()))

	ctx := context.Background()

	// 1. The fixture account heals itself and keeps its role
	identity, err := authority.SignIn(ctx, "testprovider@example.com", "Test123")
	require.NoError(t, err)
	assert.Equal(t, auth.RoleProvider, identity.Role)

	// 2. A fixture email with the wrong password does not heal
	_, err = authority.SignIn(ctx, "admin@example.com", "NotTheFixturePassword")
	require.Error(t, err)
	assert.True(t, apperr.HasCode(err, apperr.CodeInvalidCredentials))

	// 3. Arbitrary credentials never qualify
	_, err = authority.SignIn(ctx, "stranger@example.com", "Test123")
	require.Error(t, err)
	assert.True(t, apperr.HasCode(err, apperr.CodeInvalidCredentials))
}
