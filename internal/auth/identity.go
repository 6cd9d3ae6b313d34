// Copyright (c) 2026 Niramaya. All rights reserved.

// Package auth defines the session authority for the Niramaya platform.
//
// # Architecture
//
// Entities in this package represent the "Truth" about who is signed in.
// They have no dependencies on outer layers (like databases, APIs, or libraries).
// This makes the core logic highly testable and resilient to technology changes.
//
// The package is built around three pieces:
//
//   - [Identity] and [Session]: the signed-in profile and its proof of authentication.
//   - [Authority]: the single owner and mutator of the current [Snapshot].
//   - [Decide]: the pure routing gate consulted with the latest snapshot.
package auth

import (
	"time"
)

// Role represents the authorization level granted to an account.
//
// # Usage
//
// Used by [Decide] and [middleware.RequireRole] to enforce access control.
// Unlike hierarchical role systems, gating here is an exact match: a provider
// is not a user, and an admin is not a provider. Cross-role access is a
// product decision made per route, never implied by a hierarchy.
type Role string

const (
	RoleAdmin    Role = "admin"    // Platform operations and aggregate reporting.
	RoleProvider Role = "provider" // Licensed care provider with linked clients.
	RoleUser     Role = "user"     // Default role for registered members.
)

// Valid reports whether the role is one of the three known values.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleProvider, RoleUser:
		return true
	default:
		return false
	}
}

// EmergencyContact holds the person to notify during a crisis escalation.
type EmergencyContact struct {
	Name  string `json:"name,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// Consents records the privacy choices made during onboarding.
type Consents struct {
	DataSharing bool `json:"data_sharing"`
	Research    bool `json:"research"`
}

// Identity represents a registered member of the Niramaya platform.
//
// # Rules
//   - Email is unique per identity.
//   - PasswordHash is generated via Bcrypt exclusively by the live backend;
//     the local backend never hashes (see [LocalBackend]).
//   - AnonymousHandle is generated once at sign-up and shown instead of the
//     display name in community contexts when IsAnonymousHandle is set.
//   - CrisisFlag is set only by the crisis triage workflow and cleared only
//     by a provider.
type Identity struct {
	ID                string           `json:"id"`
	Email             string           `json:"email"`
	PasswordHash      string           `json:"-"` // Explicitly omitted from JSON for security.
	DisplayName       string           `json:"display_name"`
	Role              Role             `json:"role"`
	AnonymousHandle   string           `json:"anonymous_handle"`
	IsAnonymousHandle bool             `json:"is_anonymous_handle"`
	CrisisFlag        bool             `json:"crisis_flag"`
	Timezone          string           `json:"timezone,omitempty"`
	Country           string           `json:"country,omitempty"`
	EmergencyContact  EmergencyContact `json:"emergency_contact"`
	Consents          Consents         `json:"consents"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

// PublicName returns the name shown to other members.
// Members who opted into pseudonymity are never exposed by display name.
func (identity *Identity) PublicName() string {
	if identity.IsAnonymousHandle && identity.AnonymousHandle != "" {
		return identity.AnonymousHandle
	}
	return identity.DisplayName
}

// Session represents the active proof-of-authentication for one identity.
//
// # Ownership
//
// Exactly one Session is active per process at a time. The [Authority] is the
// sole owner and sole mutator; everything else reads it through [Snapshot].
type Session struct {
	UserID    string    `json:"user_id"`
	Token     string    `json:"token,omitempty"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// Expired reports whether the session's expiry instant has passed.
func (session *Session) Expired(now time.Time) bool {
	return !session.ExpiresAt.IsZero() && now.After(session.ExpiresAt)
}

// Snapshot is the read-only view of the authority's current state.
//
// IsLoading is true only during the initial bootstrap fetch; callers must
// show a neutral waiting state rather than consult [Decide] while it is set.
type Snapshot struct {
	Identity  *Identity `json:"identity"`
	Session   *Session  `json:"session"`
	IsLoading bool      `json:"is_loading"`
}

// Redacted returns a copy of the snapshot with the bearer token blanked.
// Read endpoints serve this form; the token itself is only ever returned
// by the sign-in and registration responses.
func (snapshot Snapshot) Redacted() Snapshot {
	if snapshot.Session == nil {
		return snapshot
	}
	session := *snapshot.Session
	session.Token = ""
	snapshot.Session = &session
	return snapshot
}

// SignedIn reports whether the snapshot carries a live, unexpired session.
func (snapshot Snapshot) SignedIn(now time.Time) bool {
	if snapshot.Identity == nil || snapshot.Session == nil {
		return false
	}
	return !snapshot.Session.Expired(now)
}
