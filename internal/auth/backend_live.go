// Copyright (c) 2026 Niramaya. All rights reserved.

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/niramaya/api/internal/platform/apperr"
	"github.com/niramaya/api/internal/platform/constants"
	"github.com/niramaya/api/internal/platform/database/schema"
	"github.com/niramaya/api/internal/platform/sec"
	"github.com/niramaya/api/pkg/uuidv7"
)

// LiveBackend implements [Backend] against the real storage stack.
//
// # Storage split
//
// Accounts live in PostgreSQL (users.account). Session records are written
// to both PostgreSQL (users.session, the durable audit trail the admin
// reporting reads) and Redis (the fast revocation lookup keyed by token
// hash). Redis entries expire on their own; the PostgreSQL rows are revoked
// explicitly and swept by a periodic cleanup.
type LiveBackend struct {
	pool    *pgxpool.Pool
	cache   *redis.Client
	tokens  *sec.TokenService
	changes chan Change
}

// NewLiveBackend wires the live storage stack.
func NewLiveBackend(pool *pgxpool.Pool, cache *redis.Client, tokens *sec.TokenService) *LiveBackend {
	return &LiveBackend{
		pool:    pool,
		cache:   cache,
		tokens:  tokens,
		changes: make(chan Change, 8),
	}
}

// SignUp creates the account row, hashes the password, and opens a session.
func (backend *LiveBackend) SignUp(ctx context.Context, input SignUpInput) (*Identity, *Session, error) {
	email := normalizeEmail(input.Email)

	// ── 1. Uniqueness Check ───────────────────────────────────────────────

	existing, err := backend.findByEmail(ctx, email)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, nil, apperr.BackendUnavailable(err)
	}
	if existing != nil {
		return nil, nil, apperr.DuplicateEmail()
	}

	// ── 2. Security ───────────────────────────────────────────────────────

	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, nil, fmt.Errorf("live_backend_hash_failed: %w", err)
	}

	// ── 3. Entity Construction ────────────────────────────────────────────

	role := input.Role
	if role == "" {
		role = RoleUser
	}

	now := time.Now()
	identity := Identity{
		ID:               uuidv7.New(), // Time-sortable ID to prevent PG index fragmentation.
		Email:            email,
		PasswordHash:     hashedPassword,
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

	// ── 4. Persistence ────────────────────────────────────────────────────

	if err := backend.insertAccount(ctx, &identity); err != nil {
		return nil, nil, apperr.BackendUnavailable(err)
	}

	session, err := backend.openSession(ctx, &identity, now)
	if err != nil {
		return nil, nil, err
	}

	backend.publish(Change{Identity: &identity, Session: session})
	return &identity, session, nil
}

// SignIn verifies the password hash and opens a session.
func (backend *LiveBackend) SignIn(ctx context.Context, email, password string) (*Identity, *Session, error) {
	identity, err := backend.findByEmail(ctx, normalizeEmail(email))
	if err != nil {
		// Generic credential failure prevents account enumeration. Transport
		// failures are surfaced separately so the caller can distinguish a
		// down backend from a wrong password.
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, apperr.InvalidCredentials()
		}
		return nil, nil, apperr.BackendUnavailable(err)
	}

	if !sec.CheckPasswordHash(password, identity.PasswordHash) {
		return nil, nil, apperr.InvalidCredentials()
	}

	now := time.Now()
	session, err := backend.openSession(ctx, identity, now)
	if err != nil {
		return nil, nil, err
	}

	if _, err := backend.pool.Exec(ctx,
		fmt.Sprintf(`UPDATE %s SET %s = $1 WHERE %s = $2`,
			schema.UserAccount.Table, schema.UserAccount.LastLoginAt, schema.UserAccount.ID),
		now, identity.ID,
	); err != nil {
		return nil, nil, apperr.BackendUnavailable(err)
	}

	backend.publish(Change{Identity: identity, Session: session})
	return identity, session, nil
}

// SignOut revokes the session row and drops the revocation cache entry.
func (backend *LiveBackend) SignOut(ctx context.Context, session *Session) error {
	if session == nil || session.Token == "" {
		return nil
	}

	tokenHash := sec.HashToken(session.Token)

	if _, err := backend.pool.Exec(ctx,
		fmt.Sprintf(`UPDATE %s SET %s = TRUE, %s = $1 WHERE %s = $2`,
			schema.UserSession.Table, schema.UserSession.IsRevoked,
			schema.UserSession.RevokedAt, schema.UserSession.TokenHash),
		time.Now(), tokenHash,
	); err != nil {
		return apperr.BackendUnavailable(err)
	}

	if err := backend.cache.Del(ctx, constants.RedisPrefixSession+tokenHash).Err(); err != nil {
		return apperr.BackendUnavailable(err)
	}

	backend.publish(Change{})
	return nil
}

// FetchProfile re-reads the account row for the given subject.
func (backend *LiveBackend) FetchProfile(ctx context.Context, userID string) (*Identity, error) {
	identity, err := backend.findByID(ctx, userID)
	if err != nil {
		return nil, apperr.ProfileFetchFailed(err)
	}
	return identity, nil
}

// UpdateProfile applies the member-editable settings to the account row.
func (backend *LiveBackend) UpdateProfile(ctx context.Context, userID string, update ProfileUpdate) (*Identity, error) {
	table := schema.UserAccount
	result, err := backend.pool.Exec(ctx,
		fmt.Sprintf(`UPDATE %s SET %s = $1, %s = $2, %s = $3, %s = $4, %s = $5 WHERE %s = $6 AND %s IS NULL`,
			table.Table, table.DisplayName, table.Timezone, table.Country,
			table.IsAnonymousHandle, table.UpdatedAt, table.ID, table.DeletedAt),
		update.DisplayName, update.Timezone, update.Country,
		update.IsAnonymousHandle, time.Now(), userID,
	)
	if err != nil {
		return nil, apperr.BackendUnavailable(err)
	}
	if result.RowsAffected() == 0 {
		return nil, apperr.NotFound("account")
	}

	identity, err := backend.findByID(ctx, userID)
	if err != nil {
		return nil, apperr.ProfileFetchFailed(err)
	}
	return identity, nil
}

// CurrentSession always starts signed out in live mode. Sessions belong to
// the caller's bearer token; there is no process-wide session to restore.
// The authority subscribes to [SessionChanges] instead.
func (backend *LiveBackend) CurrentSession(_ context.Context) (*Identity, *Session, error) {
	return nil, nil, nil
}

// SessionChanges implements [Notifier].
func (backend *LiveBackend) SessionChanges() <-chan Change {
	return backend.changes
}

// SessionActive reports whether the token hash still has a live, unrevoked
// revocation-cache entry.
func (backend *LiveBackend) SessionActive(ctx context.Context, token string) (bool, error) {
	exists, err := backend.cache.Exists(ctx, constants.RedisPrefixSession+sec.HashToken(token)).Result()
	if err != nil {
		return false, apperr.BackendUnavailable(err)
	}
	return exists > 0, nil
}

// DeleteExpiredSessions physically removes session rows past their expiry.
// Intended for a periodic background sweep.
func (backend *LiveBackend) DeleteExpiredSessions(ctx context.Context) error {
	if _, err := backend.pool.Exec(ctx,
		fmt.Sprintf(`DELETE FROM %s WHERE %s < NOW()`,
			schema.UserSession.Table, schema.UserSession.ExpiresAt),
	); err != nil {
		return fmt.Errorf("live_backend_session_sweep_failed: %w", err)
	}
	return nil
}

// openSession issues a signed bearer token and records the session twice:
// the durable row in users.session and the volatile revocation entry in Redis.
func (backend *LiveBackend) openSession(ctx context.Context, identity *Identity, now time.Time) (*Session, error) {
	token, err := backend.tokens.GenerateAccessToken(identity.ID, identity.Email, string(identity.Role), constants.LiveSessionTTL)
	if err != nil {
		return nil, fmt.Errorf("live_backend_token_generation_failed: %w", err)
	}

	session := Session{
		UserID:    identity.ID,
		Token:     token,
		ExpiresAt: now.Add(constants.LiveSessionTTL),
		CreatedAt: now,
	}

	tokenHash := sec.HashToken(token)

	if _, err := backend.pool.Exec(ctx,
		fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s, %s, %s) VALUES ($1, $2, $3, FALSE, $4, $5)`,
			schema.UserSession.Table,
			schema.UserSession.ID, schema.UserSession.UserID, schema.UserSession.TokenHash,
			schema.UserSession.IsRevoked, schema.UserSession.ExpiresAt, schema.UserSession.CreatedAt),
		uuidv7.New(), identity.ID, tokenHash, session.ExpiresAt, session.CreatedAt,
	); err != nil {
		return nil, apperr.BackendUnavailable(err)
	}

	if err := backend.cache.Set(ctx,
		constants.RedisPrefixSession+tokenHash, identity.ID, constants.LiveSessionTTL,
	).Err(); err != nil {
		return nil, apperr.BackendUnavailable(err)
	}

	return &session, nil
}

// publish pushes a change notification without ever blocking an auth
// operation. A full channel drops the oldest pending change first; the
// consumer only cares about the latest state anyway.
func (backend *LiveBackend) publish(change Change) {
	for {
		select {
		case backend.changes <- change:
			return
		default:
			select {
			case <-backend.changes:
			default:
			}
		}
	}
}

// findByEmail loads a live account row. Returns pgx.ErrNoRows untouched so
// callers can map it to the right domain failure.
func (backend *LiveBackend) findByEmail(ctx context.Context, email string) (*Identity, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s IS NULL`,
		accountColumns(), schema.UserAccount.Table, schema.UserAccount.Email, schema.UserAccount.DeletedAt)

	return scanAccount(backend.pool.QueryRow(ctx, query, email))
}

// findByID loads a live account row by primary key.
func (backend *LiveBackend) findByID(ctx context.Context, id string) (*Identity, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s IS NULL`,
		accountColumns(), schema.UserAccount.Table, schema.UserAccount.ID, schema.UserAccount.DeletedAt)

	return scanAccount(backend.pool.QueryRow(ctx, query, id))
}

func (backend *LiveBackend) insertAccount(ctx context.Context, identity *Identity) error {
	table := schema.UserAccount
	query := fmt.Sprintf(`
		INSERT INTO %s (
			%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
		table.Table,
		table.ID, table.Email, table.Password, table.Role, table.DisplayName,
		table.AnonymousHandle, table.IsAnonymousHandle, table.CrisisFlag,
		table.Timezone, table.Country, table.EmergencyContactName,
		table.EmergencyContactPhone, table.ConsentDataSharing,
		table.ConsentResearch, table.CreatedAt, table.UpdatedAt,
	)

	_, err := backend.pool.Exec(ctx, query,
		identity.ID, identity.Email, identity.PasswordHash, identity.Role,
		identity.DisplayName, identity.AnonymousHandle, identity.IsAnonymousHandle,
		identity.CrisisFlag, identity.Timezone, identity.Country,
		identity.EmergencyContact.Name, identity.EmergencyContact.Phone,
		identity.Consents.DataSharing, identity.Consents.Research,
		identity.CreatedAt, identity.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("live_backend_account_insert_failed: %w", err)
	}

	return nil
}

// accountColumns returns the SELECT list matching [scanAccount]'s scan order.
func accountColumns() string {
	table := schema.UserAccount
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s",
		table.ID, table.Email, table.Password, table.Role, table.DisplayName,
		table.AnonymousHandle, table.IsAnonymousHandle, table.CrisisFlag,
		table.Timezone, table.Country, table.EmergencyContactName,
		table.EmergencyContactPhone, table.ConsentDataSharing,
		table.ConsentResearch, table.CreatedAt, table.UpdatedAt,
	)
}

// scanAccount validates the row shape at the storage boundary. A malformed
// row fails the scan here instead of leaking undefined fields upward.
func scanAccount(row pgx.Row) (*Identity, error) {
	var identity Identity
	err := row.Scan(
		&identity.ID, &identity.Email, &identity.PasswordHash, &identity.Role,
		&identity.DisplayName, &identity.AnonymousHandle, &identity.IsAnonymousHandle,
		&identity.CrisisFlag, &identity.Timezone, &identity.Country,
		&identity.EmergencyContact.Name, &identity.EmergencyContact.Phone,
		&identity.Consents.DataSharing, &identity.Consents.Research,
		&identity.CreatedAt, &identity.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &identity, nil
}
