package room

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
	"golang.org/x/exp/slog"

	"reviewroom/internal/app/server/api/http/apierror"
	"reviewroom/internal/app/server/api/http/middleware/auth"
	recordAPI "reviewroom/internal/app/server/api/http/record"
	"reviewroom/internal/domain/room"
)

type Handler struct {
	service        room.Servicer
	log            *slog.Logger
	middleware     huma.Middlewares
	authMiddleware huma.Middlewares
}

// NewHandler takes the viewer chain (public) and the creator chain (authed).
func NewHandler(service room.Servicer, log *slog.Logger, public, authed huma.Middlewares) *Handler {
	return &Handler{
		service:        service,
		log:            log,
		middleware:     public,
		authMiddleware: authed,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.createOp(), h.create)
	huma.Register(api, h.listOp(), h.list)
	huma.Register(api, h.getOp(), h.get)
	huma.Register(api, h.unlockOp(), h.unlock)
	huma.Register(api, h.recordsOp(), h.records)
}

func (h *Handler) create(ctx context.Context, input *createInput) (*createOutput, error) {
	username, ok := auth.GetUsername(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	ids := make([]uuid.UUID, 0, len(input.Body.RecordIDs))
	for _, raw := range input.Body.RecordIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, huma.Error422UnprocessableEntity("invalid record id: " + raw)
		}
		ids = append(ids, id)
	}

	id, err := h.service.Create(ctx, username, input.Body.Name, input.Body.Password, ids)
	if err != nil {
		return nil, apierror.From(h.log, err)
	}

	return &createOutput{Body: CreateResponse{
		ID:     id,
		Link:   room.Room{ID: id}.Link(),
		Status: "Ok",
	}}, nil
}

func (h *Handler) list(ctx context.Context, _ *struct{}) (*listOutput, error) {
	username, ok := auth.GetUsername(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	rooms, err := h.service.ListByCreator(ctx, username)
	if err != nil {
		return nil, apierror.From(h.log, err)
	}

	out := make([]Summary, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, summary(r))
	}
	return &listOutput{Body: ListResponse{Rooms: out}}, nil
}

func (h *Handler) get(ctx context.Context, input *roomPath) (*getOutput, error) {
	r, err := h.resolve(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &getOutput{Body: summary(r)}, nil
}

func (h *Handler) unlock(ctx context.Context, input *unlockInput) (*unlockOutput, error) {
	id, err := parseRoomID(input.ID)
	if err != nil {
		return nil, err
	}

	token, err := h.service.Unlock(ctx, id, input.Body.Password)
	if err != nil {
		return nil, apierror.From(h.log, err)
	}

	return &unlockOutput{Body: UnlockResponse{Token: token, Status: "Ok"}}, nil
}

func (h *Handler) records(ctx context.Context, input *recordsInput) (*recordsOutput, error) {
	r, err := h.resolve(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	records, err := h.service.Records(ctx, r.ID, input.RoomToken)
	if err != nil {
		return nil, apierror.From(h.log, err)
	}

	return &recordsOutput{Body: RecordsResponse{
		Room:    summary(r),
		Records: recordAPI.FromDomain(records),
	}}, nil
}

func (h *Handler) resolve(ctx context.Context, raw string) (room.Room, error) {
	id, err := parseRoomID(raw)
	if err != nil {
		return room.Room{}, err
	}

	r, err := h.service.Resolve(ctx, id)
	if err != nil {
		return room.Room{}, apierror.From(h.log, err)
	}
	return r, nil
}

func parseRoomID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, huma.Error404NotFound(room.ErrNotFound.Error())
	}
	return id, nil
}
