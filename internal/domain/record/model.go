package record

import (
	"time"

	"github.com/google/uuid"
)

const (
	MinRating     = 1
	MaxRating     = 5
	DefaultRating = 3
)

// Record is one user's review of a movie or a book. ID and Owner never
// change after Append.
type Record struct {
	ID          uuid.UUID `json:"id"`
	Owner       string    `json:"owner"`
	Type        Type      `json:"type"`
	Title       string    `json:"title"`
	CreatorName string    `json:"creator_name"`
	ReleaseDate string    `json:"release_date"`
	Genre       string    `json:"genre"`
	ImageURL    string    `json:"image_url"`
	Rating      int       `json:"rating"`
	Review      string    `json:"review"`
	RecordedAt  time.Time `json:"recorded_at"`
}

// Draft is what a user submits; the ledger fills in the rest.
type Draft struct {
	Type        Type
	Title       string
	CreatorName string
	ReleaseDate string
	Genre       string
	ImageURL    string
	Rating      int
	Review      string
}

// Candidate is a search hit. Only Title is required, and only when the
// candidate is appended.
type Candidate struct {
	Title       string `json:"title"`
	CreatorName string `json:"creator_name,omitempty"`
	Date        string `json:"date,omitempty"`
	Genre       string `json:"genre,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
	Summary     string `json:"summary,omitempty"`
}

// ClampRating maps an unset rating to the default and keeps everything
// else inside [MinRating, MaxRating].
func ClampRating(r int) int {
	switch {
	case r == 0:
		return DefaultRating
	case r < MinRating:
		return MinRating
	case r > MaxRating:
		return MaxRating
	default:
		return r
	}
}

// DraftFromCandidate prefills a draft from a search hit. The candidate's
// summary becomes the review text unless the caller already wrote one.
func DraftFromCandidate(t Type, c Candidate, rating int, review string) Draft {
	if review == "" {
		review = c.Summary
	}
	return Draft{
		Type:        t,
		Title:       c.Title,
		CreatorName: c.CreatorName,
		ReleaseDate: c.Date,
		Genre:       c.Genre,
		ImageURL:    c.ImageURL,
		Rating:      rating,
		Review:      review,
	}
}
