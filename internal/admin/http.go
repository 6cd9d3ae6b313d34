package admin

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/niramaya/api/internal/platform/respond"
	"github.com/niramaya/api/pkg/pagination"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/stats", handler.stats)
	router.Get("/accounts", handler.accounts)
}

func (handler *Handler) stats(writer http.ResponseWriter, request *http.Request) {
	stats, err := handler.service.Stats(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, stats)
}

func (handler *Handler) accounts(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	accounts, total, err := handler.service.Accounts(request.Context(), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, accounts, pagination.NewMeta(params.Page, params.Limit, total))
}
