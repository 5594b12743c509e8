package record

import (
	"time"

	"github.com/google/uuid"

	"reviewroom/internal/domain/record"
)

type createRequest struct {
	Type        record.Type `json:"type" doc:"movie or book"`
	Title       string      `json:"title" doc:"Title of the work"`
	CreatorName string      `json:"creator_name,omitempty" doc:"Director or author"`
	ReleaseDate string      `json:"release_date,omitempty" doc:"Free-form year or date"`
	Genre       string      `json:"genre,omitempty"`
	ImageURL    string      `json:"image_url,omitempty"`
	Rating      int         `json:"rating,omitempty" doc:"1 to 5, 3 when omitted; other values are clamped"`
	Review      string      `json:"review,omitempty"`
}

func (r createRequest) draft() record.Draft {
	return record.Draft{
		Type:        r.Type,
		Title:       r.Title,
		CreatorName: r.CreatorName,
		ReleaseDate: r.ReleaseDate,
		Genre:       r.Genre,
		ImageURL:    r.ImageURL,
		Rating:      r.Rating,
		Review:      r.Review,
	}
}

type createInput struct {
	Body createRequest
}

type createOutput struct {
	Body CreateResponse
}

type CreateResponse struct {
	ID     uuid.UUID `json:"id"`
	Status string    `json:"status"`
}

type listOutput struct {
	Body ListResponse
}

type ListResponse struct {
	Records []Record `json:"records"`
}

type deleteInput struct {
	ID string `path:"id" doc:"Record id"`
}

type deleteOutput struct {
	Body StatusResponse
}

type StatusResponse struct {
	Status string `json:"status"`
}

// Record is the wire form of record.Record.
type Record struct {
	ID          uuid.UUID   `json:"id"`
	Owner       string      `json:"owner"`
	Type        record.Type `json:"type"`
	Title       string      `json:"title"`
	CreatorName string      `json:"creator_name"`
	ReleaseDate string      `json:"release_date"`
	Genre       string      `json:"genre"`
	ImageURL    string      `json:"image_url"`
	Rating      int         `json:"rating"`
	Review      string      `json:"review"`
	RecordedAt  time.Time   `json:"recorded_at"`
}

func FromDomain(records []record.Record) []Record {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		out = append(out, Record(r))
	}
	return out
}
