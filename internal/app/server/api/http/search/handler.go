package search

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"reviewroom/internal/app/server/api/http/apierror"
	"reviewroom/internal/domain/search"
)

type Handler struct {
	service    search.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service search.Servicer, log *slog.Logger, mws huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log,
		middleware: mws,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.searchOp(), h.search)
}

func (h *Handler) search(ctx context.Context, input *searchInput) (*searchOutput, error) {
	candidates, err := h.service.Search(ctx, input.Kind, input.Query)
	if err != nil {
		return nil, apierror.From(h.log, err)
	}

	return &searchOutput{Body: Response{Candidates: candidates}}, nil
}
