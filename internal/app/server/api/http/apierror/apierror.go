// Package apierror turns domain errors into HTTP problem responses.
package apierror

import (
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"reviewroom/internal/domain/record"
	"reviewroom/internal/domain/room"
	"reviewroom/internal/domain/user"
	"reviewroom/internal/infrastructure/storage"
)

func From(log *slog.Logger, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, user.ErrUsernameTaken):
		return huma.Error409Conflict(err.Error())
	case errors.Is(err, user.ErrInvalidInput),
		errors.Is(err, record.ErrMissingTitle),
		errors.Is(err, record.ErrInvalidType),
		errors.Is(err, room.ErrEmptyName),
		errors.Is(err, room.ErrEmptySelection):
		return huma.Error422UnprocessableEntity(err.Error())
	case errors.Is(err, user.ErrInvalidCredentials),
		errors.Is(err, room.ErrUnauthorized):
		return huma.Error401Unauthorized(err.Error())
	case errors.Is(err, record.ErrNotFound),
		errors.Is(err, room.ErrNotFound),
		errors.Is(err, user.ErrNotFound):
		return huma.Error404NotFound(err.Error())
	case errors.Is(err, storage.ErrCorruptDocument):
		log.Error("corrupt document", slog.Any("error", err))
		return huma.Error500InternalServerError("stored data is unreadable")
	default:
		log.Error("request failed", slog.Any("error", err))
		return huma.Error500InternalServerError("internal error")
	}
}
