package user

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"reviewroom/internal/app/server/api/http/apierror"
	"reviewroom/internal/app/server/api/http/middleware/auth"
	"reviewroom/internal/domain/user"
)

type Handler struct {
	service        user.Servicer
	log            *slog.Logger
	middleware     huma.Middlewares
	authMiddleware huma.Middlewares
}

// NewHandler takes two chains: public for register and login, authed for
// logout.
func NewHandler(service user.Servicer, log *slog.Logger, public, authed huma.Middlewares) *Handler {
	return &Handler{
		service:        service,
		log:            log,
		middleware:     public,
		authMiddleware: authed,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.registerOp(), h.register)
	huma.Register(api, h.loginOp(), h.login)
	huma.Register(api, h.logoutOp(), h.logout)
}

func (h *Handler) register(ctx context.Context, input *registerInput) (*registerOutput, error) {
	if err := h.service.Register(ctx, input.Body.Username, input.Body.Password); err != nil {
		return nil, apierror.From(h.log, err)
	}

	return &registerOutput{
		Body: RegisterResponse{Username: input.Body.Username, Status: "Ok"},
	}, nil
}

func (h *Handler) login(ctx context.Context, input *loginInput) (*loginOutput, error) {
	token, err := h.service.Login(ctx, input.Body.Username, input.Body.Password)
	if err != nil {
		return nil, apierror.From(h.log, err)
	}

	return &loginOutput{
		Body: LoginResponse{Token: token, Status: "Ok"},
	}, nil
}

func (h *Handler) logout(ctx context.Context, _ *struct{}) (*logoutOutput, error) {
	token, ok := auth.GetToken(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	if err := h.service.Logout(ctx, token); err != nil {
		return nil, apierror.From(h.log, err)
	}

	return &logoutOutput{Body: StatusResponse{Status: "Ok"}}, nil
}
