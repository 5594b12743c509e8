// Package selection holds the record ids a user is gathering for a new
// sharing room.
package selection

import (
	"github.com/google/uuid"
)

// Set is an insertion-ordered set of record ids. Operations return a new
// Set and never modify the receiver.
type Set struct {
	ids   []uuid.UUID
	index map[uuid.UUID]struct{}
}

func NewSet(ids ...uuid.UUID) Set {
	return Set{}.with(ids...)
}

func (s Set) Contains(id uuid.UUID) bool {
	_, ok := s.index[id]
	return ok
}

func (s Set) Len() int {
	return len(s.ids)
}

// IDs returns a copy in insertion order.
func (s Set) IDs() []uuid.UUID {
	return append([]uuid.UUID{}, s.ids...)
}

// with appends the ids not already present. Nil ids are ignored.
func (s Set) with(ids ...uuid.UUID) Set {
	out := Set{
		ids:   make([]uuid.UUID, len(s.ids), len(s.ids)+len(ids)),
		index: make(map[uuid.UUID]struct{}, len(s.ids)+len(ids)),
	}
	copy(out.ids, s.ids)
	for id := range s.index {
		out.index[id] = struct{}{}
	}
	for _, id := range ids {
		if id == uuid.Nil || out.Contains(id) {
			continue
		}
		out.index[id] = struct{}{}
		out.ids = append(out.ids, id)
	}
	return out
}

func (s Set) without(ids ...uuid.UUID) Set {
	drop := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}
	return s.filter(func(id uuid.UUID) bool {
		_, ok := drop[id]
		return !ok
	})
}

func (s Set) filter(keep func(uuid.UUID) bool) Set {
	out := Set{
		ids:   make([]uuid.UUID, 0, len(s.ids)),
		index: make(map[uuid.UUID]struct{}, len(s.ids)),
	}
	for _, id := range s.ids {
		if keep(id) {
			out.ids = append(out.ids, id)
			out.index[id] = struct{}{}
		}
	}
	return out
}

// Reconcile keeps the ids of prev that are still in valid, in prev's order.
func Reconcile(prev, valid Set) Set {
	return prev.filter(valid.Contains)
}

func Clear() Set {
	return Set{}
}
