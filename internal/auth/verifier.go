// Copyright (c) 2026 Niramaya. All rights reserved.

package auth

import (
	"context"
	"fmt"

	"github.com/niramaya/api/internal/platform/sec"
)

// tokenParser checks a bearer token's signature and standard claims.
type tokenParser interface {
	VerifyToken(tokenString string) (*sec.AuthClaims, error)
}

// sessionChecker answers whether a token's session record is still live.
type sessionChecker interface {
	SessionActive(ctx context.Context, token string) (bool, error)
}

// LiveVerifier authenticates bearer tokens in live mode.
//
// Signature verification alone would honor a token until its 24h expiry.
// The second check against the revocation cache is what makes sign-out take
// effect immediately: [LiveBackend.SignOut] deletes the cache entry, and any
// token without one is rejected even when its signature is valid.
type LiveVerifier struct {
	tokens   tokenParser
	sessions sessionChecker
}

// NewLiveVerifier composes signature and revocation checks.
func NewLiveVerifier(tokens tokenParser, sessions sessionChecker) *LiveVerifier {
	return &LiveVerifier{tokens: tokens, sessions: sessions}
}

// VerifyToken implements the middleware's TokenVerifier contract.
func (verifier *LiveVerifier) VerifyToken(ctx context.Context, tokenString string) (*sec.AuthClaims, error) {
	claims, err := verifier.tokens.VerifyToken(tokenString)
	if err != nil {
		return nil, err
	}

	active, err := verifier.sessions.SessionActive(ctx, tokenString)
	if err != nil {
		return nil, err
	}
	if !active {
		return nil, fmt.Errorf("auth: session revoked or expired")
	}

	return claims, nil
}
