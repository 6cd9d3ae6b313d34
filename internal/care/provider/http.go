// Copyright (c) 2026 Niramaya. All rights reserved.

package provider

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/niramaya/api/internal/care/crisis"
	"github.com/niramaya/api/internal/care/journal"
	"github.com/niramaya/api/internal/care/mood"
	requestutil "github.com/niramaya/api/internal/platform/request"
	"github.com/niramaya/api/internal/platform/respond"
	"github.com/niramaya/api/pkg/pagination"
	"github.com/niramaya/api/pkg/query"
)

// Handler serves both sides of the provider-client relationship. The
// provider-facing routes are additionally gated behind the provider role by
// the server; the client-facing routes only need a session.
type Handler struct {
	service  *Service
	journals *journal.Service
	moods    *mood.Service
	crises   *crisis.Service
}

func NewHandler(service *Service, journals *journal.Service, moods *mood.Service, crises *crisis.Service) *Handler {
	return &Handler{
		service:  service,
		journals: journals,
		moods:    moods,
		crises:   crises,
	}
}

// RegisterProviderRoutes mounts the provider-role surface.
func (handler *Handler) RegisterProviderRoutes(router chi.Router) {
	router.Post("/links", handler.requestLink)
	router.Get("/links/pending", handler.listPending)
	router.Get("/clients", handler.listClients)
	router.Get("/clients/{id}/journal", handler.clientJournal)
	router.Get("/clients/{id}/mood", handler.clientMood)
	router.Post("/clients/{id}/clear-crisis-flag", handler.clearCrisisFlag)
}

// RegisterClientRoutes mounts the client-side consent surface.
func (handler *Handler) RegisterClientRoutes(router chi.Router) {
	router.Get("/", handler.listClientLinks)
	router.Post("/{id}/accept", handler.acceptLink)
	router.Post("/{id}/end", handler.endLink)
}

type requestLinkRequest struct {
	ClientID string `json:"client_id"`
}

func (handler *Handler) requestLink(writer http.ResponseWriter, request *http.Request) {
	providerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input requestLinkRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	link, err := handler.service.RequestLink(request.Context(), providerID, input.ClientID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, link)
}

func (handler *Handler) listPending(writer http.ResponseWriter, request *http.Request) {
	providerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	links, err := handler.service.ListPending(request.Context(), providerID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, links)
}

func (handler *Handler) listClients(writer http.ResponseWriter, request *http.Request) {
	providerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	links, err := handler.service.ListClients(request.Context(), providerID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, links)
}

// clientJournal returns only the entries the client opted to share, and only
// across an active link.
func (handler *Handler) clientJournal(writer http.ResponseWriter, request *http.Request) {
	providerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	clientID := requestutil.ID(request, "id")
	if err := handler.service.VerifyActiveLink(request.Context(), providerID, clientID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)
	entries, total, err := handler.journals.ListShared(request.Context(), clientID, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, entries, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) clientMood(writer http.ResponseWriter, request *http.Request) {
	providerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	clientID := requestutil.ID(request, "id")
	if err := handler.service.VerifyActiveLink(request.Context(), providerID, clientID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	days := query.Int(request.URL.Query().Get("days"), 30)
	summary, err := handler.moods.Trends(request.Context(), clientID, days)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, summary)
}

func (handler *Handler) clearCrisisFlag(writer http.ResponseWriter, request *http.Request) {
	providerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	clientID := requestutil.ID(request, "id")
	if err := handler.service.VerifyActiveLink(request.Context(), providerID, clientID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.crises.ClearFlag(request.Context(), clientID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

func (handler *Handler) listClientLinks(writer http.ResponseWriter, request *http.Request) {
	clientID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	links, err := handler.service.ListLinksForClient(request.Context(), clientID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, links)
}

func (handler *Handler) acceptLink(writer http.ResponseWriter, request *http.Request) {
	clientID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	link, err := handler.service.AcceptLink(request.Context(), clientID, requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, link)
}

func (handler *Handler) endLink(writer http.ResponseWriter, request *http.Request) {
	callerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.EndLink(request.Context(), callerID, requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
