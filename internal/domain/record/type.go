package record

import (
	"fmt"
	"strings"

	"github.com/danielgtaylor/huma/v2"
)

type Type string

const (
	TypeMovie Type = "movie"
	TypeBook  Type = "book"
)

func (Type) Schema(huma.Registry) *huma.Schema {
	return &huma.Schema{
		Type:        "string",
		Enum:        []any{string(TypeMovie), string(TypeBook)},
		Description: "Kind of reviewed work",
		Examples:    []any{TypeMovie},
	}
}

// Validate rejects anything but movie and book.
func (t Type) Validate() error {
	switch t {
	case TypeMovie, TypeBook:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidType, string(t))
}

// ParseType accepts the type name case-insensitively.
func ParseType(s string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(s)))
	if err := t.Validate(); err != nil {
		return "", err
	}
	return t, nil
}

func (t Type) String() string {
	return string(t)
}

// DisplayName is the label used by the client.
func (t Type) DisplayName() string {
	switch t {
	case TypeMovie:
		return "Movie"
	case TypeBook:
		return "Book"
	default:
		return "Unknown"
	}
}

// CreatorLabel names the creator field for this kind of work.
func (t Type) CreatorLabel() string {
	if t == TypeBook {
		return "Author"
	}
	return "Director"
}
