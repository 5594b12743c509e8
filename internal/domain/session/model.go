package session

import "time"

// Kind separates user logins from unlocked sharing rooms, so a token issued
// for one can never be replayed as the other.
type Kind string

const (
	KindUser Kind = "user"
	KindRoom Kind = "room"
)

type Session struct {
	Kind      Kind      `json:"kind"`
	Subject   string    `json:"subject"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
