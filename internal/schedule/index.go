package schedule

import (
	"slices"
	"strings"
)

// Index is the in-memory set of timeline items keyed by id. It is the only
// mutable state of the scheduling core and is not safe for concurrent use.
type Index struct {
	items map[string]Item
}

// NewIndex creates an empty index.
func NewIndex() *Index {
	return &Index{items: make(map[string]Item)}
}

// Add stores it, replacing any item with the same id.
func (x *Index) Add(it Item) {
	x.items[it.ID] = it.Clone()
}

// Update stores it, replacing any item with the same id. There is no merge:
// the given item becomes the full new value.
func (x *Index) Update(it Item) {
	x.Add(it)
}

// Remove deletes the item with id. Absent ids are ignored.
func (x *Index) Remove(id string) {
	delete(x.items, id)
}

// Get returns a copy of the item with id.
func (x *Index) Get(id string) (Item, bool) {
	it, ok := x.items[id]
	if !ok {
		return Item{}, false
	}
	return it.Clone(), true
}

// All returns copies of every item ordered by group, start and id.
func (x *Index) All() []Item {
	result := make([]Item, 0, len(x.items))
	for _, it := range x.items {
		result = append(result, it.Clone())
	}
	sortItems(result)
	return result
}

// InGroup returns copies of the items on one machine, ordered by start.
func (x *Index) InGroup(group string) []Item {
	var result []Item
	for _, it := range x.items {
		if it.Group == group {
			result = append(result, it.Clone())
		}
	}
	sortItems(result)
	return result
}

// Replace drops every item and loads items in their place.
func (x *Index) Replace(items []Item) {
	clear(x.items)
	for _, it := range items {
		x.Add(it)
	}
}

// Len returns the number of items.
func (x *Index) Len() int {
	return len(x.items)
}

func sortItems(items []Item) {
	slices.SortFunc(items, func(a, b Item) int {
		if c := strings.Compare(a.Group, b.Group); c != 0 {
			return c
		}
		if c := a.Start.Compare(b.Start); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
}
