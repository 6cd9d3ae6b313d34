// Copyright (c) 2026 Niramaya. All rights reserved.

package auth

import (
	"context"
)

// OnboardingExtras carries the optional profile fields collected at sign-up.
type OnboardingExtras struct {
	Timezone         string
	Country          string
	EmergencyContact EmergencyContact
	Consents         Consents
}

// ProfileUpdate carries the self-service settings a member may change after
// enrollment. Email, role, and credentials are deliberately excluded.
type ProfileUpdate struct {
	DisplayName       string
	Timezone          string
	Country           string
	IsAnonymousHandle bool
}

// SignUpInput holds the data required to enroll a new member.
type SignUpInput struct {
	Email       string
	Password    string
	DisplayName string
	Role        Role
	Extras      OnboardingExtras
}

// Backend defines the contract the [Authority] delegates to.
//
// # Implementations
//
// Two interchangeable variants exist, selected once at process start:
//
//   - [LiveBackend]: PostgreSQL accounts, Redis session records, real
//     password hashing and signed bearer tokens.
//   - [LocalBackend]: a durable local JSON document store with plaintext
//     credentials and synthesized sessions, for offline and demo use.
//
// The mode is immutable for the process lifetime; there is no runtime switch.
type Backend interface {
	// SignUp creates one identity record and establishes a new session.
	//
	// Returns [apperr.DuplicateEmail] if the email is already registered and
	// [apperr.BackendUnavailable] if the storage layer cannot be reached.
	SignUp(ctx context.Context, input SignUpInput) (*Identity, *Session, error)

	// SignIn authenticates by email and password.
	//
	// Returns [apperr.InvalidCredentials] on any lookup or match failure.
	// No account is ever auto-created for unmatched credentials.
	SignIn(ctx context.Context, email, password string) (*Identity, *Session, error)

	// SignOut invalidates the given session. Passing a session that is
	// already gone is not an error.
	SignOut(ctx context.Context, session *Session) error

	// FetchProfile re-reads the identity record for the given subject.
	//
	// Returns [apperr.ProfileFetchFailed] when the record cannot be read or
	// fails boundary validation.
	FetchProfile(ctx context.Context, userID string) (*Identity, error)

	// UpdateProfile applies the member-editable settings to the identity
	// record and returns the updated profile.
	//
	// Returns [apperr.NotFound] when the subject does not exist.
	UpdateProfile(ctx context.Context, userID string, update ProfileUpdate) (*Identity, error)

	// CurrentSession restores a previously established session, if one
	// survives. All three return values are nil when no session exists;
	// that is a normal signed-out start, not an error.
	CurrentSession(ctx context.Context) (*Identity, *Session, error)
}

// Change is a session-change notification pushed by a backend.
// A nil Session means the subject signed out elsewhere.
type Change struct {
	Identity *Identity
	Session  *Session
}

// Notifier is implemented by backends able to push session changes that
// originate outside this authority, such as a sign-in through another
// process sharing the same session store.
type Notifier interface {
	// SessionChanges returns the stream of external session transitions.
	// The channel is never closed while the backend is alive.
	SessionChanges() <-chan Change
}
