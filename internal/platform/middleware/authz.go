// Copyright (c) 2026 Niramaya. All rights reserved.

package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/niramaya/api/internal/auth"
	"github.com/niramaya/api/internal/platform/ctxutil"
	"github.com/niramaya/api/internal/platform/sec"
)

// TokenVerifier validates a bearer token and returns the embedded claims.
// Implementations may consult external state (revocation caches), so the
// request context is passed through.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, tokenString string) (*sec.AuthClaims, error)
}

// Authenticate extracts and verifies the bearer token, if present.
//
// A missing token is not an error here. The request simply proceeds without
// claims in its context, and the gating middleware downstream decides whether
// that is acceptable for the route. A malformed or expired token, however, is
// rejected immediately.
func Authenticate(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			// 1. Look for the Authorization header
			header := request.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(writer, request)
				return
			}

			// 2. Enforce the Bearer scheme
			token, found := strings.CutPrefix(header, "Bearer ")
			if !found || token == "" {
				writeError(writer, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid authorization header format")
				return
			}

			// 3. Verify signature, standard claims, and revocation state
			claims, err := verifier.VerifyToken(request.Context(), token)
			if err != nil {
				writeError(writer, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid or expired token")
				return
			}

			// 4. Inject the verified identity into the request context
			ctx := ctxutil.WithAuthUser(request.Context(), claims)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireSession gates a route behind any signed-in identity.
func RequireSession() func(http.Handler) http.Handler {
	return requireOutcome(nil)
}

// RequireRole gates a route behind an exact role match. A provider is not a
// user and an admin is not a provider for gating purposes.
func RequireRole(role auth.Role) func(http.Handler) http.Handler {
	return requireOutcome(&role)
}

// requireOutcome translates the pure gate decision into HTTP statuses.
// The browser-side redirects map to 401 and 403 respectively.
func requireOutcome(required *auth.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			snapshot := snapshotFromRequest(request)

			switch auth.Decide(snapshot, required) {
			case auth.OutcomeRender:
				next.ServeHTTP(writer, request)
			case auth.OutcomeRedirectToLogin:
				writeError(writer, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
			case auth.OutcomeRedirectToHome:
				writeError(writer, http.StatusForbidden, "FORBIDDEN", "Insufficient role for this resource")
			}
		})
	}
}

// snapshotFromRequest reconstructs the minimal authentication state the gate
// needs out of the verified claims stored in the request context.
func snapshotFromRequest(request *http.Request) auth.Snapshot {
	claims := ctxutil.GetAuthUser(request.Context())
	if claims == nil {
		return auth.Snapshot{}
	}

	return auth.Snapshot{
		Identity: &auth.Identity{
			ID:    claims.UserID,
			Email: claims.Email,
			Role:  auth.Role(claims.Role),
		},
		Session: &auth.Session{
			UserID:    claims.UserID,
			ExpiresAt: claims.ExpiresAt.Time,
		},
	}
}
