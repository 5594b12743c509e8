package room

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) createOp() huma.Operation {
	return huma.Operation{
		OperationID:   "rooms-create",
		Method:        http.MethodPost,
		Path:          "/api/v1/rooms",
		Summary:       "Create a sharing room from selected records",
		Tags:          []string{"rooms"},
		Security:      []map[string][]string{{"bearer": {}}},
		DefaultStatus: http.StatusCreated,
		Errors:        []int{http.StatusUnprocessableEntity},
		Middlewares:   h.authMiddleware,
	}
}

func (h *Handler) listOp() huma.Operation {
	return huma.Operation{
		OperationID: "rooms-list",
		Method:      http.MethodGet,
		Path:        "/api/v1/rooms",
		Summary:     "List the caller's rooms",
		Tags:        []string{"rooms"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.authMiddleware,
	}
}

func (h *Handler) getOp() huma.Operation {
	return huma.Operation{
		OperationID: "rooms-get",
		Method:      http.MethodGet,
		Path:        "/api/v1/rooms/{id}",
		Summary:     "Public room summary",
		Tags:        []string{"rooms"},
		Errors:      []int{http.StatusNotFound},
		Middlewares: h.middleware,
	}
}

func (h *Handler) unlockOp() huma.Operation {
	return huma.Operation{
		OperationID: "rooms-unlock",
		Method:      http.MethodPost,
		Path:        "/api/v1/rooms/{id}/unlock",
		Summary:     "Check the room password and get a room token",
		Tags:        []string{"rooms"},
		Errors:      []int{http.StatusUnauthorized, http.StatusNotFound, http.StatusTooManyRequests},
		Middlewares: h.middleware,
	}
}

func (h *Handler) recordsOp() huma.Operation {
	return huma.Operation{
		OperationID: "rooms-records",
		Method:      http.MethodGet,
		Path:        "/api/v1/rooms/{id}/records",
		Summary:     "Records shared in a room",
		Tags:        []string{"rooms"},
		Errors:      []int{http.StatusUnauthorized, http.StatusNotFound},
		Middlewares: h.middleware,
	}
}
