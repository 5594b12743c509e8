package room

import (
	"time"

	"github.com/google/uuid"

	recordAPI "reviewroom/internal/app/server/api/http/record"
	"reviewroom/internal/domain/room"
)

type createRequest struct {
	Name      string   `json:"name" doc:"Room name"`
	Password  string   `json:"password,omitempty" doc:"Empty for a public room"`
	RecordIDs []string `json:"record_ids" doc:"Ids of the caller's records to share"`
}

type createInput struct {
	Body createRequest
}

type createOutput struct {
	Body CreateResponse
}

type CreateResponse struct {
	ID     uuid.UUID `json:"id"`
	Link   string    `json:"link"`
	Status string    `json:"status"`
}

type roomPath struct {
	ID string `path:"id" doc:"Room id"`
}

type getOutput struct {
	Body Summary
}

// Summary is what anyone holding the id may see. It never carries the
// password.
type Summary struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Creator     string    `json:"creator"`
	Protected   bool      `json:"protected"`
	RecordCount int       `json:"record_count"`
	Link        string    `json:"link"`
	CreatedAt   time.Time `json:"created_at"`
}

func summary(r room.Room) Summary {
	return Summary{
		ID:          r.ID,
		Name:        r.Name,
		Creator:     r.Creator,
		Protected:   r.IsProtected(),
		RecordCount: len(r.RecordIDs),
		Link:        r.Link(),
		CreatedAt:   r.CreatedAt,
	}
}

type listOutput struct {
	Body ListResponse
}

type ListResponse struct {
	Rooms []Summary `json:"rooms"`
}

type unlockInput struct {
	ID   string `path:"id" doc:"Room id"`
	Body struct {
		Password string `json:"password"`
	}
}

type unlockOutput struct {
	Body UnlockResponse
}

type UnlockResponse struct {
	Token  string `json:"token"`
	Status string `json:"status"`
}

type recordsInput struct {
	ID        string `path:"id" doc:"Room id"`
	RoomToken string `header:"X-Room-Token" doc:"Token from the unlock call, required for protected rooms"`
}

type recordsOutput struct {
	Body RecordsResponse
}

type RecordsResponse struct {
	Room    Summary            `json:"room"`
	Records []recordAPI.Record `json:"records"`
}
