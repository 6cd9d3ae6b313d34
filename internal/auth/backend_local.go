// Copyright (c) 2026 Niramaya. All rights reserved.

package auth

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/niramaya/api/internal/platform/apperr"
	"github.com/niramaya/api/internal/platform/constants"
	"github.com/niramaya/api/internal/platform/localstore"
	"github.com/niramaya/api/internal/platform/sec"
	"github.com/niramaya/api/pkg/uuidv7"
)

// localCredentialRecord pairs an identity with its plaintext password inside
// the local document store.
//
// # Plaintext, on purpose
//
// Local mode exists for offline demos and testing against fixture accounts.
// Its credentials never represent real backend accounts and never leave the
// local store, so they are deliberately NOT hashed. Hashing here would
// misrepresent what this mode is for. The live backend is the only place
// real passwords exist, and it only ever sees them through Bcrypt.
type localCredentialRecord struct {
	Email    string   `json:"email"`
	Password string   `json:"password"`
	Identity Identity `json:"identity"`
}

// localSessionRecord is the persisted form of the active local session.
type localSessionRecord struct {
	Identity Identity `json:"identity"`
	Session  Session  `json:"session"`
}

// LocalBackend implements [Backend] on top of a durable JSON document store.
//
// The whole credential mapping and the single active session are read and
// written as whole-document replaces under two fixed keys. Concurrent
// processes sharing the directory can overwrite each other without conflict
// detection; that matches the storage contract this mode emulates.
type LocalBackend struct {
	mu    sync.Mutex
	store *localstore.Store
}

// NewLocalBackend wraps the given document store.
func NewLocalBackend(store *localstore.Store) *LocalBackend {
	return &LocalBackend{store: store}
}

// SeedFixtures inserts the three demonstration accounts if they are missing.
//
//   - testuser@example.com     (role: user)
//   - testprovider@example.com (role: provider)
//   - admin@example.com        (role: admin)
//
// All three use the password "Test123" and can sign in without any prior
// sign-up. Existing records are never overwritten, so a demo run that mutated a
// fixture profile keeps its changes across restarts.
func (backend *LocalBackend) SeedFixtures() error {
	backend.mu.Lock()
	defer backend.mu.Unlock()

	credentials, err := backend.readCredentials()
	if err != nil {
		return err
	}

	fixtures := []struct {
		email string
		name  string
		role  Role
	}{
		{"testuser@example.com", "Test User", RoleUser},
		{"testprovider@example.com", "Test Provider", RoleProvider},
		{"admin@example.com", "Admin", RoleAdmin},
	}

	now := time.Now()
	changed := false

	for _, fixture := range fixtures {
		if _, exists := credentials[fixture.email]; exists {
			continue
		}

		credentials[fixture.email] = localCredentialRecord{
			Email:    fixture.email,
			Password: "Test123",
			Identity: Identity{
				ID:              uuidv7.New(),
				Email:           fixture.email,
				DisplayName:     fixture.name,
				Role:            fixture.role,
				AnonymousHandle: NewHandle(),
				CreatedAt:       now,
				UpdatedAt:       now,
			},
		}
		changed = true
	}

	if !changed {
		return nil
	}

	return backend.writeCredentials(credentials)
}

// SignUp registers a new local credential record and opens a session.
func (backend *LocalBackend) SignUp(_ context.Context, input SignUpInput) (*Identity, *Session, error) {
	backend.mu.Lock()
	defer backend.mu.Unlock()

	credentials, err := backend.readCredentials()
	if err != nil {
		return nil, nil, err
	}

	email := normalizeEmail(input.Email)

	// Duplicate detection is an exact-match lookup before insert.
	if _, exists := credentials[email]; exists {
		return nil, nil, apperr.DuplicateEmail()
	}

	role := input.Role
	if role == "" {
		role = RoleUser
	}

	now := time.Now()
	identity := Identity{
		ID:               uuidv7.New(),
		Email:            email,
		DisplayName:      input.DisplayName,
		Role:             role,
		AnonymousHandle:  NewHandle(),
		Timezone:         input.Extras.Timezone,
		Country:          input.Extras.Country,
		EmergencyContact: input.Extras.EmergencyContact,
		Consents:         input.Extras.Consents,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	credentials[email] = localCredentialRecord{
		Email:    email,
		Password: input.Password,
		Identity: identity,
	}

	if err := backend.writeCredentials(credentials); err != nil {
		return nil, nil, err
	}

	session, err := backend.openSession(identity, now)
	if err != nil {
		return nil, nil, err
	}

	return &identity, session, nil
}

// SignIn matches email and password exactly against the credential mapping.
func (backend *LocalBackend) SignIn(_ context.Context, email, password string) (*Identity, *Session, error) {
	backend.mu.Lock()
	defer backend.mu.Unlock()

	credentials, err := backend.readCredentials()
	if err != nil {
		return nil, nil, err
	}

	record, exists := credentials[normalizeEmail(email)]
	if !exists || record.Password != password {
		return nil, nil, apperr.InvalidCredentials()
	}

	identity := record.Identity
	session, err := backend.openSession(identity, time.Now())
	if err != nil {
		return nil, nil, err
	}

	return &identity, session, nil
}

// SignOut deletes the persisted session record. Idempotent.
func (backend *LocalBackend) SignOut(_ context.Context, _ *Session) error {
	backend.mu.Lock()
	defer backend.mu.Unlock()

	if err := backend.store.Delete(constants.LocalKeySession); err != nil {
		return apperr.BackendUnavailable(err)
	}
	return nil
}

// FetchProfile re-reads the identity from the credential mapping by subject ID.
func (backend *LocalBackend) FetchProfile(_ context.Context, userID string) (*Identity, error) {
	backend.mu.Lock()
	defer backend.mu.Unlock()

	credentials, err := backend.readCredentials()
	if err != nil {
		return nil, apperr.ProfileFetchFailed(err)
	}

	for _, record := range credentials {
		if record.Identity.ID == userID {
			identity := record.Identity
			return &identity, nil
		}
	}

	return nil, apperr.ProfileFetchFailed(fmt.Errorf("local_profile_missing: %s", userID))
}

// UpdateProfile rewrites the credential record for the subject and keeps the
// persisted session record in step when it belongs to the same identity.
func (backend *LocalBackend) UpdateProfile(_ context.Context, userID string, update ProfileUpdate) (*Identity, error) {
	backend.mu.Lock()
	defer backend.mu.Unlock()

	credentials, err := backend.readCredentials()
	if err != nil {
		return nil, apperr.BackendUnavailable(err)
	}

	var updated *Identity
	for email, record := range credentials {
		if record.Identity.ID != userID {
			continue
		}

		record.Identity.DisplayName = update.DisplayName
		record.Identity.Timezone = update.Timezone
		record.Identity.Country = update.Country
		record.Identity.IsAnonymousHandle = update.IsAnonymousHandle
		record.Identity.UpdatedAt = time.Now()
		credentials[email] = record

		identity := record.Identity
		updated = &identity
		break
	}

	if updated == nil {
		return nil, apperr.NotFound("account")
	}

	if err := backend.writeCredentials(credentials); err != nil {
		return nil, err
	}

	var sessionRecord localSessionRecord
	found, err := backend.store.Get(constants.LocalKeySession, &sessionRecord)
	if err != nil {
		return nil, apperr.BackendUnavailable(err)
	}
	if found && sessionRecord.Identity.ID == userID {
		sessionRecord.Identity = *updated
		if err := backend.store.Put(constants.LocalKeySession, sessionRecord); err != nil {
			return nil, apperr.BackendUnavailable(err)
		}
	}

	return updated, nil
}

// CurrentSession restores the persisted session if it has not expired.
// An expired record is removed and treated as a signed-out start.
func (backend *LocalBackend) CurrentSession(_ context.Context) (*Identity, *Session, error) {
	backend.mu.Lock()
	defer backend.mu.Unlock()

	var record localSessionRecord
	found, err := backend.store.Get(constants.LocalKeySession, &record)
	if err != nil {
		return nil, nil, apperr.BackendUnavailable(err)
	}
	if !found {
		return nil, nil, nil
	}

	if record.Session.Expired(time.Now()) {
		if err := backend.store.Delete(constants.LocalKeySession); err != nil {
			return nil, nil, apperr.BackendUnavailable(err)
		}
		return nil, nil, nil
	}

	identity := record.Identity
	session := record.Session
	return &identity, &session, nil
}

// VerifyToken resolves an opaque bearer token against the persisted session.
//
// Local-mode tokens carry no claims of their own, so the verified identity is
// reconstructed from the session record instead of a JWT payload. This lets
// the HTTP middleware treat both backends through the same interface.
func (backend *LocalBackend) VerifyToken(_ context.Context, tokenString string) (*sec.AuthClaims, error) {
	backend.mu.Lock()
	defer backend.mu.Unlock()

	var record localSessionRecord
	found, err := backend.store.Get(constants.LocalKeySession, &record)
	if err != nil {
		return nil, fmt.Errorf("local_backend_session_read_failed: %w", err)
	}
	if !found || record.Session.Token != tokenString {
		return nil, fmt.Errorf("local_token_unknown")
	}
	if record.Session.Expired(time.Now()) {
		return nil, fmt.Errorf("local_token_expired")
	}

	return &sec.AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   record.Identity.ID,
			ExpiresAt: jwt.NewNumericDate(record.Session.ExpiresAt),
			IssuedAt:  jwt.NewNumericDate(record.Session.CreatedAt),
		},
		UserID: record.Identity.ID,
		Email:  record.Identity.Email,
		Role:   string(record.Identity.Role),
	}, nil
}

// openSession synthesizes a fixed-duration session and persists it so it
// survives a process restart. Callers must hold backend.mu.
func (backend *LocalBackend) openSession(identity Identity, now time.Time) (*Session, error) {
	token, err := sec.GenerateSecureToken(32)
	if err != nil {
		return nil, fmt.Errorf("local_backend_token_failed: %w", err)
	}

	session := Session{
		UserID:    identity.ID,
		Token:     token,
		ExpiresAt: now.Add(constants.LocalSessionTTL),
		CreatedAt: now,
	}

	record := localSessionRecord{Identity: identity, Session: session}
	if err := backend.store.Put(constants.LocalKeySession, record); err != nil {
		return nil, apperr.BackendUnavailable(err)
	}

	return &session, nil
}

// readCredentials loads the whole credential mapping. A missing record is an
// empty mapping, not an error. Callers must hold backend.mu.
func (backend *LocalBackend) readCredentials() (map[string]localCredentialRecord, error) {
	credentials := make(map[string]localCredentialRecord)

	found, err := backend.store.Get(constants.LocalKeyCredentials, &credentials)
	if err != nil {
		return nil, apperr.BackendUnavailable(err)
	}
	if !found {
		return make(map[string]localCredentialRecord), nil
	}

	return credentials, nil
}

// writeCredentials replaces the whole credential mapping. Callers must hold backend.mu.
func (backend *LocalBackend) writeCredentials(credentials map[string]localCredentialRecord) error {
	if err := backend.store.Put(constants.LocalKeyCredentials, credentials); err != nil {
		return apperr.BackendUnavailable(err)
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
