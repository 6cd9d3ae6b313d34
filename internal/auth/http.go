// Copyright (c) 2026 Niramaya. All rights reserved.

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/niramaya/api/internal/platform/constants"
	requestutil "github.com/niramaya/api/internal/platform/request"
	"github.com/niramaya/api/internal/platform/respond"
	"github.com/niramaya/api/internal/platform/sec"
	"github.com/niramaya/api/internal/platform/validate"
)

// Handler implements the authentication HTTP endpoints.
//
// # Scope
//
// This handler manages the entire surface the rest of the application is
// allowed to depend on for authentication: sign-up, sign-in, sign-out,
// profile refresh, and the read-only snapshot.
type Handler struct {
	authority *Authority
	backend   Backend
}

// NewHandler constructs a new [Handler] with its dependencies.
func NewHandler(authority *Authority, backend Backend) *Handler {
	return &Handler{authority: authority, backend: backend}
}

// Routes returns a [chi.Router] configured with authentication routes.
//
// # Endpoints
//   - POST /register : Creates a new account and opens a session.
//   - POST /login    : Authenticates and returns the bearer token.
//   - POST /logout   : Clears the active session (idempotent).
//   - POST /refresh  : Re-fetches the signed-in profile (session required).
//   - GET  /session  : Returns the caller's session state, token redacted.
//   - GET  /me       : Returns the profile for the presented bearer token.
//   - PUT  /me       : Updates the caller's profile settings.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/register", handler.register)
	router.Post("/login", handler.login)
	router.Post("/logout", handler.logout)
	router.Post("/refresh", handler.refresh)
	router.Get("/session", handler.session)
	router.Get("/me", handler.me)
	router.Put("/me", handler.updateMe)

	return router
}

// registerRequest represents the JSON payload expected for account creation.
type registerRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`

	Timezone              string `json:"timezone"`
	Country               string `json:"country"`
	EmergencyContactName  string `json:"emergency_contact_name"`
	EmergencyContactPhone string `json:"emergency_contact_phone"`
	ConsentDataSharing    bool   `json:"consent_data_sharing"`
	ConsentResearch       bool   `json:"consent_research"`
}

// register handles POST /api/v1/auth/register requests.
//
// # Returns
//   - Writes HTTP 201 Created on success with the new profile.
//   - Writes HTTP 400 Bad Request if validation rules fail.
//   - Writes HTTP 409 Conflict if the email is already registered.
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	// ── 1. Payload Extraction ─────────────────────────────────────────────

	var input registerRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if input.Role == "" {
		input.Role = string(RoleUser)
	}

	// ── 2. Boundary Validation ────────────────────────────────────────────

	// Admin accounts are provisioned, never self-registered.
	validator := &validate.Validator{}
	validator.
		Required("email", input.Email).
		Email("email", input.Email).
		Required("password", input.Password).
		MinLen("password", input.Password, constants.MinPasswordLength).
		Required("display_name", input.DisplayName).
		MaxLen("display_name", input.DisplayName, 100).
		OneOf("role", input.Role, string(RoleUser), string(RoleProvider))

	if validator.HasErrors() {
		respond.Error(writer, request, validator.Err())
		return
	}

	// ── 3. Application Execution ──────────────────────────────────────────

	identity, err := handler.authority.SignUp(request.Context(), SignUpInput{
		Email:       input.Email,
		Password:    input.Password,
		DisplayName: input.DisplayName,
		Role:        Role(input.Role),
		Extras: OnboardingExtras{
			Timezone: input.Timezone,
			Country:  input.Country,
			EmergencyContact: EmergencyContact{
				Name:  input.EmergencyContactName,
				Phone: input.EmergencyContactPhone,
			},
			Consents: Consents{
				DataSharing: input.ConsentDataSharing,
				Research:    input.ConsentResearch,
			},
		},
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// ── 4. Presentation Output ────────────────────────────────────────────

	snapshot := handler.authority.CurrentSnapshot()
	respond.Created(writer, map[string]any{
		"user":    identity,
		"session": snapshot.Session,
	})
}

// loginRequest represents the JSON payload expected for authentication.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// login handles POST /api/v1/auth/login requests.
//
// # Returns
//   - Writes HTTP 200 OK on success with the bearer token and profile.
//   - Writes HTTP 401 Unauthorized for bad credentials.
//   - Writes HTTP 503 Service Unavailable when the backend is unreachable.
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if input.Email == "" || input.Password == "" {
		respond.Error(writer, request, validate.RequiredError("email/password", "are required"))
		return
	}

	identity, err := handler.authority.SignIn(request.Context(), input.Email, input.Password)
	if err != nil {
		// 401 without leaking whether the email exists.
		respond.Error(writer, request, err)
		return
	}

	snapshot := handler.authority.CurrentSnapshot()
	respond.OK(writer, map[string]any{
		"user":    identity,
		"session": snapshot.Session,
	})
}

// logout handles POST /api/v1/auth/logout requests. Always succeeds.
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	if err := handler.authority.SignOut(request.Context()); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// refresh handles POST /api/v1/auth/refresh requests. A failed fetch keeps
// the previous cached profile and still returns the caller's state.
func (handler *Handler) refresh(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.authority.RefreshProfile(request.Context())

	snapshot, err := handler.callerSnapshot(request, claims)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, snapshot)
}

// session handles GET /api/v1/auth/session requests.
func (handler *Handler) session(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	snapshot, err := handler.callerSnapshot(request, claims)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, snapshot)
}

// callerSnapshot resolves the session state for the identity behind the
// presented bearer token. The bearer token is never echoed back; sign-in
// and registration are the only places it appears in a response body.
func (handler *Handler) callerSnapshot(request *http.Request, claims *sec.AuthClaims) (Snapshot, error) {
	snapshot := handler.authority.CurrentSnapshot()
	if snapshot.Identity != nil && snapshot.Identity.ID == claims.UserID {
		return snapshot.Redacted(), nil
	}

	// The authority caches a single identity per process; any other caller
	// gets their state assembled from the backend and the token's claims.
	identity, err := handler.backend.FetchProfile(request.Context(), claims.UserID)
	if err != nil {
		return Snapshot{}, err
	}

	session := &Session{UserID: claims.UserID}
	if claims.ExpiresAt != nil {
		session.ExpiresAt = claims.ExpiresAt.Time
	}
	if claims.IssuedAt != nil {
		session.CreatedAt = claims.IssuedAt.Time
	}
	return Snapshot{Identity: identity, Session: session}, nil
}

// me handles GET /api/v1/auth/me requests. Unlike /session, this resolves
// the profile for the presented bearer token, not the authority snapshot.
func (handler *Handler) me(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	identity, err := handler.backend.FetchProfile(request.Context(), claims.UserID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, identity)
}

// updateProfileRequest represents the JSON payload for profile settings.
type updateProfileRequest struct {
	DisplayName       string `json:"display_name"`
	Timezone          string `json:"timezone"`
	Country           string `json:"country"`
	IsAnonymousHandle bool   `json:"is_anonymous_handle"`
}

// updateMe handles PUT /api/v1/auth/me requests. Members can change their
// display name, locale settings, and pseudonymity preference; email, role,
// and credentials stay fixed.
func (handler *Handler) updateMe(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateProfileRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.
		Required("display_name", input.DisplayName).
		MaxLen("display_name", input.DisplayName, 100).
		MaxLen("timezone", input.Timezone, 64).
		MaxLen("country", input.Country, 64)

	if validator.HasErrors() {
		respond.Error(writer, request, validator.Err())
		return
	}

	identity, err := handler.authority.UpdateProfile(request.Context(), claims.UserID, ProfileUpdate{
		DisplayName:       input.DisplayName,
		Timezone:          input.Timezone,
		Country:           input.Country,
		IsAnonymousHandle: input.IsAnonymousHandle,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, identity)
}
