// Copyright (c) 2026 Niramaya. All rights reserved.

package crisis

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/niramaya/api/internal/platform/request"
	"github.com/niramaya/api/internal/platform/respond"
	"github.com/niramaya/api/pkg/query"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// NewLocalHandler serves only the hotline directory. Check-ins and history
// need the relational backend and stay unmounted without one.
func NewLocalHandler() *Handler {
	return &Handler{}
}

// CanCheckIn reports whether the check-in endpoints are wired.
func (handler *Handler) CanCheckIn() bool {
	return handler.service != nil
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Post("/check-in", handler.checkIn)
	router.Get("/history", handler.history)
}

// RegisterPublicRoutes mounts the endpoints that must never sit behind a
// session check.
func (handler *Handler) RegisterPublicRoutes(router chi.Router) {
	router.Get("/hotlines", handler.hotlines)
}

type checkInRequest struct {
	CurrentFeeling     string `json:"current_feeling"`
	ThoughtsOfSelfHarm bool   `json:"thoughts_of_self_harm"`
	HasImmediatePlan   bool   `json:"has_immediate_plan"`
}

func (handler *Handler) checkIn(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input checkInRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.SubmitCheckIn(request.Context(), userID, CheckInInput{
		CurrentFeeling:     Feeling(input.CurrentFeeling),
		ThoughtsOfSelfHarm: input.ThoughtsOfSelfHarm,
		HasImmediatePlan:   input.HasImmediatePlan,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, result)
}

func (handler *Handler) history(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	limit := query.Int(request.URL.Query().Get("limit"), 20)
	checkIns, err := handler.service.History(request.Context(), userID, limit)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, checkIns)
}

// hotlines is reachable without a session on purpose. Someone in crisis
// should never be stopped by an expired login.
func (handler *Handler) hotlines(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, Hotlines())
}
