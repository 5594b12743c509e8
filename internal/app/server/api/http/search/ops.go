package search

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) searchOp() huma.Operation {
	return huma.Operation{
		OperationID: "search",
		Method:      http.MethodGet,
		Path:        "/api/v1/search",
		Summary:     "Look up movie or book metadata",
		Description: "Provider failures and timeouts return an empty candidate list.",
		Tags:        []string{"search"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}
