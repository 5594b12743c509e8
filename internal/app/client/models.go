package client

import (
	"time"

	"github.com/google/uuid"

	"reviewroom/internal/domain/record"
)

// State is everything the client keeps between invocations. It is separate
// from anything the server stores.
type State struct {
	Username   string
	Token      string
	RoomTokens map[uuid.UUID]string
	Selection  []uuid.UUID
}

func (s State) LoggedIn() bool {
	return s.Token != ""
}

// RoomSummary mirrors the server's public room view.
type RoomSummary struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Creator     string    `json:"creator"`
	Protected   bool      `json:"protected"`
	RecordCount int       `json:"record_count"`
	Link        string    `json:"link"`
	CreatedAt   time.Time `json:"created_at"`
}

type RoomView struct {
	Room    RoomSummary     `json:"room"`
	Records []record.Record `json:"records"`
}

type CreatedRoom struct {
	ID   uuid.UUID `json:"id"`
	Link string    `json:"link"`
}
