// Copyright (c) 2026 Niramaya. All rights reserved.

package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/niramaya/api/internal/auth"
)

func signedInSnapshot(role auth.Role) auth.Snapshot {
	return auth.Snapshot{
		Identity: &auth.Identity{ID: "user-1", Email: "a@example.com", Role: role},
		Session: &auth.Session{
			UserID:    "user-1",
			Token:     "token",
			ExpiresAt: time.Now().Add(time.Hour),
		},
	}
}

func rolePtr(role auth.Role) *auth.Role { return &role }

/*
TestDecide_NoSession verifies that every unauthenticated snapshot is sent to
login, regardless of the required role.
*/
func TestDecide_NoSession(t *testing.T) {
	empty := auth.Snapshot{}

	// 1. No role requirement
	assert.Equal(t, auth.OutcomeRedirectToLogin, auth.Decide(empty, nil))

	// 2. Any role requirement
	assert.Equal(t, auth.OutcomeRedirectToLogin, auth.Decide(empty, rolePtr(auth.RoleAdmin)))
	assert.Equal(t, auth.OutcomeRedirectToLogin, auth.Decide(empty, rolePtr(auth.RoleUser)))

	// 3. Identity without a session is still unauthenticated
	orphan := auth.Snapshot{Identity: &auth.Identity{ID: "user-1"}}
	assert.Equal(t, auth.OutcomeRedirectToLogin, auth.Decide(orphan, nil))
}

/*
TestDecide_ExpiredSession verifies that an expired session behaves exactly
like no session at all.
*/
func TestDecide_ExpiredSession(t *testing.T) {
	snapshot := signedInSnapshot(auth.RoleUser)
	snapshot.Session.ExpiresAt = time.Now().Add(-time.Minute)

	assert.Equal(t, auth.OutcomeRedirectToLogin, auth.Decide(snapshot, nil))
}

/*
TestDecide_RoleMismatch verifies that a signed-in member whose role does not
match the requirement is silently sent home, never shown an error.
*/
func TestDecide_RoleMismatch(t *testing.T) {
	// 1. Provider visiting an admin surface
	assert.Equal(t, auth.OutcomeRedirectToHome,
		auth.Decide(signedInSnapshot(auth.RoleProvider), rolePtr(auth.RoleAdmin)))

	// 2. Role matching is exact: an admin is not a user
	assert.Equal(t, auth.OutcomeRedirectToHome,
		auth.Decide(signedInSnapshot(auth.RoleAdmin), rolePtr(auth.RoleUser)))

	// 3. User visiting a provider surface
	assert.Equal(t, auth.OutcomeRedirectToHome,
		auth.Decide(signedInSnapshot(auth.RoleUser), rolePtr(auth.RoleProvider)))
}

/*
TestDecide_Render verifies the pass cases.
*/
func TestDecide_Render(t *testing.T) {
	// 1. Exact role match
	assert.Equal(t, auth.OutcomeRender,
		auth.Decide(signedInSnapshot(auth.RoleAdmin), rolePtr(auth.RoleAdmin)))

	// 2. No role requirement admits any signed-in identity
	for _, role := range []auth.Role{auth.RoleUser, auth.RoleProvider, auth.RoleAdmin} {
		assert.Equal(t, auth.OutcomeRender, auth.Decide(signedInSnapshot(role), nil))
	}
}

/*
TestDecide_Deterministic verifies the gate holds no state between calls.
*/
func TestDecide_Deterministic(t *testing.T) {
	snapshot := signedInSnapshot(auth.RoleProvider)
	required := rolePtr(auth.RoleAdmin)

	for i := 0; i < 10; i++ {
		assert.Equal(t, auth.OutcomeRedirectToHome, auth.Decide(snapshot, required))
	}
}
