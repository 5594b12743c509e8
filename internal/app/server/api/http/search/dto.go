package search

import "reviewroom/internal/domain/record"

type searchInput struct {
	Kind  record.Type `query:"kind" required:"true" doc:"movie or book"`
	Query string      `query:"q" doc:"Free text query"`
}

type searchOutput struct {
	Body Response
}

type Response struct {
	Candidates []record.Candidate `json:"candidates"`
}
