// Copyright (c) 2026 Niramaya. All rights reserved.

package mood

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/niramaya/api/internal/platform/request"
	"github.com/niramaya/api/internal/platform/respond"
	"github.com/niramaya/api/pkg/pagination"
	"github.com/niramaya/api/pkg/query"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Post("/", handler.checkIn)
	router.Get("/", handler.history)
	router.Get("/trends", handler.trends)
}

type checkInRequest struct {
	MoodScore   int      `json:"mood_score"`
	EnergyLevel int      `json:"energy_level"`
	SleepHours  *float64 `json:"sleep_hours"`
	Note        string   `json:"note"`
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

	checkIn, err := handler.service.CheckIn(request.Context(), userID, CheckInInput{
		MoodScore:   input.MoodScore,
		EnergyLevel: input.EnergyLevel,
		SleepHours:  input.SleepHours,
		Note:        input.Note,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, checkIn)
}

func (handler *Handler) history(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)
	checkIns, total, err := handler.service.History(request.Context(), userID, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, checkIns, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) trends(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	days := query.Int(request.URL.Query().Get("days"), 30)
	summary, err := handler.service.Trends(request.Context(), userID, days)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, summary)
}
