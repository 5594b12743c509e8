package record

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
	"golang.org/x/exp/slog"

	"reviewroom/internal/app/server/api/http/apierror"
	"reviewroom/internal/app/server/api/http/middleware/auth"
	"reviewroom/internal/domain/record"
)

type Handler struct {
	service    record.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service record.Servicer, log *slog.Logger, mws huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log,
		middleware: mws,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.listOp(), h.list)
	huma.Register(api, h.createOp(), h.create)
	huma.Register(api, h.deleteOp(), h.delete)
}

func (h *Handler) list(ctx context.Context, _ *struct{}) (*listOutput, error) {
	username, ok := auth.GetUsername(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	records, err := h.service.List(ctx, username)
	if err != nil {
		return nil, apierror.From(h.log, err)
	}

	return &listOutput{Body: ListResponse{Records: FromDomain(records)}}, nil
}

func (h *Handler) create(ctx context.Context, input *createInput) (*createOutput, error) {
	username, ok := auth.GetUsername(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	id, err := h.service.Append(ctx, username, input.Body.draft())
	if err != nil {
		return nil, apierror.From(h.log, err)
	}

	return &createOutput{Body: CreateResponse{ID: id, Status: "Ok"}}, nil
}

func (h *Handler) delete(ctx context.Context, input *deleteInput) (*deleteOutput, error) {
	username, ok := auth.GetUsername(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	id, err := uuid.Parse(input.ID)
	if err != nil {
		return nil, huma.Error404NotFound(record.ErrNotFound.Error())
	}

	if err := h.service.Remove(ctx, username, id); err != nil {
		return nil, apierror.From(h.log, err)
	}

	return &deleteOutput{Body: StatusResponse{Status: "Ok"}}, nil
}
