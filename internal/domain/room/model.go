package room

import (
	"time"

	"github.com/google/uuid"
)

// Room is an immutable, optionally password-protected view of part of its
// creator's ledger. RecordIDs are weak references: records removed later
// are skipped when the room is viewed.
type Room struct {
	ID        uuid.UUID   `json:"id"`
	Name      string      `json:"name"`
	Creator   string      `json:"creator"`
	Password  string      `json:"password"`
	RecordIDs []uuid.UUID `json:"record_ids"`
	CreatedAt time.Time   `json:"created_at"`
}

func (r Room) IsProtected() bool {
	return r.Password != ""
}

// Link is the path a viewer opens to reach the room.
func (r Room) Link() string {
	return "/?room_id=" + r.ID.String()
}
