package content

import (
	"fmt"
	"strings"
)

// Catalog is an ordered, read-only list of items keyed by ID.
type Catalog struct {
	items []Item
	index map[string]int
}

// NewCatalog builds a catalog, rejecting empty and duplicate IDs.
func NewCatalog(items []Item) (*Catalog, error) {
	c := &Catalog{
		items: make([]Item, 0, len(items)),
		index: make(map[string]int, len(items)),
	}
	for i, it := range items {
		id := strings.TrimSpace(it.ID)
		if id == "" {
			return nil, fmt.Errorf("catalog entry %d has an empty id", i)
		}
		if _, dup := c.index[id]; dup {
			return nil, fmt.Errorf("catalog entry %q is defined more than once", id)
		}
		it.ID = id
		it.Type = NormalizeType(it.Type)
		if it.Title == "" {
			it.Title = id
		}
		c.index[id] = len(c.items)
		c.items = append(c.items, it)
	}
	return c, nil
}

// Lookup returns the item with the given id.
func (c *Catalog) Lookup(id string) (Item, bool) {
	if c == nil {
		return Item{}, false
	}
	i, ok := c.index[strings.TrimSpace(id)]
	if !ok {
		return Item{}, false
	}
	return c.items[i], true
}

// Items returns a copy of all items in catalog order.
func (c *Catalog) Items() []Item {
	if c == nil {
		return nil
	}
	return append([]Item(nil), c.items...)
}

// Len returns the number of items.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.items)
}
