package selection

import "github.com/google/uuid"

// Curation is the only writer of a selection. Callers read it through IDs
// and reconcile it once per render against the live ledger.
type Curation struct {
	set Set
}

func NewCuration(ids ...uuid.UUID) *Curation {
	return &Curation{set: NewSet(ids...)}
}

func (c *Curation) Select(ids ...uuid.UUID) {
	c.set = c.set.with(ids...)
}

func (c *Curation) Deselect(ids ...uuid.UUID) {
	c.set = c.set.without(ids...)
}

// Toggle flips id and reports whether it is selected afterwards.
func (c *Curation) Toggle(id uuid.UUID) bool {
	if c.set.Contains(id) {
		c.set = c.set.without(id)
		return false
	}
	c.set = c.set.with(id)
	return c.set.Contains(id)
}

// Reconcile drops every selected id that is no longer valid and returns
// what is left.
func (c *Curation) Reconcile(valid []uuid.UUID) []uuid.UUID {
	c.set = Reconcile(c.set, NewSet(valid...))
	return c.set.IDs()
}

func (c *Curation) Reset() {
	c.set = Clear()
}

func (c *Curation) IDs() []uuid.UUID {
	return c.set.IDs()
}

func (c *Curation) Contains(id uuid.UUID) bool {
	return c.set.Contains(id)
}

func (c *Curation) Len() int {
	return c.set.Len()
}
