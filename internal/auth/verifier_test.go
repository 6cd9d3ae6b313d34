// Copyright (c) 2026 Niramaya. All rights reserved.

package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/niramaya/api/internal/auth"
	"github.com/niramaya/api/internal/platform/sec"
)

// memorySessionChecker tracks which tokens still have a live session record.
type memorySessionChecker struct {
	active map[string]bool
}

func (checker *memorySessionChecker) SessionActive(_ context.Context, token string) (bool, error) {
	return checker.active[token], nil
}

/*
TestLiveVerifier_RevokedTokenRejected verifies that a token with a valid
signature is rejected once its session record is gone, and accepted again
only while the record exists.
*/
func TestLiveVerifier_RevokedTokenRejected(t *testing.T) {
	tokens := sec.NewTokenService("test-secret", "test-issuer")

	token, err := tokens.GenerateAccessToken("user-1", "alice@example.com", "user", time.Hour)
	require.NoError(t, err)

	checker := &memorySessionChecker{active: map[string]bool{token: true}}
	verifier := auth.NewLiveVerifier(tokens, checker)
	ctx := context.Background()

	// 1. A live session passes and yields the embedded claims
	claims, err := verifier.VerifyToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "alice@example.com", claims.Email)

	// 2. Sign-out removes the session record; the same token now fails
	// despite its signature staying valid for another hour
	checker.active[token] = false
	_, err = verifier.VerifyToken(ctx, token)
	require.Error(t, err)
}

/*
TestLiveVerifier_BadSignatureRejected verifies the signature check runs
before any session lookup.
*/
func TestLiveVerifier_BadSignatureRejected(t *testing.T) {
	tokens := sec.NewTokenService("test-secret", "test-issuer")
	forged := sec.NewTokenService("other-secret", "test-issuer")

	token, err := forged.GenerateAccessToken("user-1", "alice@example.com", "user", time.Hour)
	require.NoError(t, err)

	// Even with a live session record, a forged signature never verifies.
	checker := &memorySessionChecker{active: map[string]bool{token: true}}
	verifier := auth.NewLiveVerifier(tokens, checker)

	_, err = verifier.VerifyToken(context.Background(), token)
	require.Error(t, err)
}
