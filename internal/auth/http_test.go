// Copyright (c) 2026 Niramaya. All rights reserved.

package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/niramaya/api/internal/auth"
	"github.com/niramaya/api/internal/platform/localstore"
	"github.com/niramaya/api/internal/platform/middleware"
)

// newAuthRouter stands up the auth routes the way the server mounts them:
// behind the claims-extracting middleware, outside any session gate.
func newAuthRouter(t *testing.T) (http.Handler, *auth.Authority) {
	t.Helper()

	store, err := localstore.Open(t.TempDir())
	require.NoError(t, err)

	backend := auth.NewLocalBackend(store)
	require.NoError(t, backend.SeedFixtures())

	authority := auth.NewAuthority(backend, testLogger())
	require.NoError(t, authority.Bootstrap(context.Background()))

	router := chi.NewRouter()
	router.Use(middleware.Authenticate(backend))
	router.Mount("/auth", auth.NewHandler(authority, backend).Routes())

	return router, authority
}

/*
TestHandler_SessionRequiresBearer verifies the read-only session endpoints
reject anonymous callers instead of serving whatever identity last signed in.
*/
func TestHandler_SessionRequiresBearer(t *testing.T) {
	router, authority := newAuthRouter(t)

	// 1. A user signs in, leaving the authority holding their session
	_, err := authority.SignIn(context.Background(), "testuser@example.com", "Test123")
	require.NoError(t, err)

	// 2. An anonymous request for session state is turned away
	for _, path := range []string{"/auth/session", "/auth/refresh"} {
		method := http.MethodGet
		if path == "/auth/refresh" {
			method = http.MethodPost
		}
		request := httptest.NewRequest(method, path, nil)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, request)
		assert.Equal(t, http.StatusUnauthorized, recorder.Code, path)
		assert.NotContains(t, recorder.Body.String(), "testuser@example.com", path)
	}
}

/*
TestHandler_SessionNeverEchoesToken verifies the session endpoint serves the
caller's own state without repeating the bearer token in the response body.
*/
func TestHandler_SessionNeverEchoesToken(t *testing.T) {
	router, authority := newAuthRouter(t)

	_, err := authority.SignIn(context.Background(), "testuser@example.com", "Test123")
	require.NoError(t, err)

	snapshot := authority.CurrentSnapshot()
	require.NotNil(t, snapshot.Session)
	token := snapshot.Session.Token
	require.NotEmpty(t, token)

	request := httptest.NewRequest(http.MethodGet, "/auth/session", nil)
	request.Header.Set("Authorization", "Bearer "+token)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)
	body := recorder.Body.String()
	assert.Contains(t, body, "testuser@example.com")
	assert.False(t, strings.Contains(body, token), "bearer token must not appear in the response body")
}
