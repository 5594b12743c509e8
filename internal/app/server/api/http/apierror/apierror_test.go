package apierror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reviewroom/internal/domain/record"
	"reviewroom/internal/domain/room"
	"reviewroom/internal/domain/user"
	"reviewroom/internal/infrastructure/storage"
	"reviewroom/internal/utils/logger"
)

func TestFrom(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{err: user.ErrUsernameTaken, status: http.StatusConflict},
		{err: fmt.Errorf("%w: username is required", user.ErrInvalidInput), status: http.StatusUnprocessableEntity},
		{err: record.ErrMissingTitle, status: http.StatusUnprocessableEntity},
		{err: record.ErrInvalidType, status: http.StatusUnprocessableEntity},
		{err: room.ErrEmptyName, status: http.StatusUnprocessableEntity},
		{err: room.ErrEmptySelection, status: http.StatusUnprocessableEntity},
		{err: user.ErrInvalidCredentials, status: http.StatusUnauthorized},
		{err: room.ErrUnauthorized, status: http.StatusUnauthorized},
		{err: room.ErrNotFound, status: http.StatusNotFound},
		{err: record.ErrNotFound, status: http.StatusNotFound},
		{err: &storage.CorruptDocumentError{Name: "rooms", Err: errors.New("bad")}, status: http.StatusInternalServerError},
		{err: errors.New("boom"), status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			got := From(logger.Discard(), tt.err)

			var se huma.StatusError
			require.ErrorAs(t, got, &se)
			assert.Equal(t, tt.status, se.GetStatus())
		})
	}

	assert.NoError(t, From(logger.Discard(), nil))
}
