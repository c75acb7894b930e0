package domain

// Collection is an immutable, newest-first snapshot of loaded negotiations.
// Mutating helpers return a new Collection; the receiver is never modified,
// so a *Collection can be shared freely between readers.
type Collection struct {
	items   []Negotiation
	index   map[string]int
	version uint64
}

// NewCollection builds a snapshot from items in display order. Later duplicates of
// an id are dropped so the snapshot never holds two records with the same id.
func NewCollection(items []Negotiation, version uint64) *Collection {
	c := &Collection{
		items:   make([]Negotiation, 0, len(items)),
		index:   make(map[string]int, len(items)),
		version: version,
	}
	for _, n := range items {
		if _, dup := c.index[n.ID]; dup {
			continue
		}
		c.index[n.ID] = len(c.items)
		c.items = append(c.items, n)
	}
	return c
}

// Version identifies the snapshot. Every replacement gets a strictly larger version.
func (c *Collection) Version() uint64 {
	if c == nil {
		return 0
	}
	return c.version
}

// Len returns the number of records.
func (c *Collection) Len() int {
	if c == nil {
		return 0
	}
	return len(c.items)
}

// Items returns a copy of the records in display order.
func (c *Collection) Items() []Negotiation {
	if c == nil {
		return []Negotiation{}
	}
	out := make([]Negotiation, len(c.items))
	copy(out, c.items)
	return out
}

// Get returns the record with the given id.
func (c *Collection) Get(id string) (Negotiation, bool) {
	if c == nil {
		return Negotiation{}, false
	}
	i, ok := c.index[id]
	if !ok {
		return Negotiation{}, false
	}
	return c.items[i], true
}

// Prepend returns a snapshot with n at the front. If n.ID is already present the
// existing entry is replaced in place instead.
func (c *Collection) Prepend(n Negotiation, version uint64) *Collection {
	if _, ok := c.Get(n.ID); ok {
		return c.Replace(n, version)
	}
	items := make([]Negotiation, 0, c.Len()+1)
	items = append(items, n)
	items = append(items, c.Items()...)
	return NewCollection(items, version)
}

// Replace returns a snapshot where the record with n.ID is swapped for n.
// A record that is not present is prepended.
func (c *Collection) Replace(n Negotiation, version uint64) *Collection {
	i, ok := c.indexOf(n.ID)
	if !ok {
		return c.Prepend(n, version)
	}
	items := c.Items()
	items[i] = n
	return NewCollection(items, version)
}

// Remove returns a snapshot without the record with the given id.
func (c *Collection) Remove(id string, version uint64) *Collection {
	i, ok := c.indexOf(id)
	if !ok {
		return NewCollection(c.Items(), version)
	}
	items := c.Items()
	items = append(items[:i], items[i+1:]...)
	return NewCollection(items, version)
}

func (c *Collection) indexOf(id string) (int, bool) {
	if c == nil {
		return 0, false
	}
	i, ok := c.index[id]
	return i, ok
}
