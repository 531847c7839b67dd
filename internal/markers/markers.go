// Package markers models the marker-object hierarchy: top-level collections
// keyed by location name, each holding named child collections of positioned
// marker objects (fighter spawn points, spice markers).
package markers

import (
	"github.com/duneboard/exporter/internal/geometry"
)

// Collection is a named group of marker objects with named child collections.
type Collection struct {
	// Name is the collection's full name (e.g. "Arrakeen" or "Arrakeen Spice").
	Name string
	// Objects holds the positions of objects directly contained in this
	// collection, in source order.
	Objects []geometry.Vec3

	children map[string]*Collection
	order    []string
}

// AddChild attaches a child collection, replacing any existing child with the
// same name. First-insertion order is preserved for iteration.
func (c *Collection) AddChild(child *Collection) {
	if c.children == nil {
		c.children = make(map[string]*Collection)
	}
	if _, ok := c.children[child.Name]; !ok {
		c.order = append(c.order, child.Name)
	}
	c.children[child.Name] = child
}

// Child returns the named child collection, if one exists.
//
// Postcondition: returns (child, true) if found, or (nil, false) otherwise.
// A missing child is a soft outcome, never an error.
func (c *Collection) Child(name string) (*Collection, bool) {
	child, ok := c.children[name]
	return child, ok
}

// Children returns the child collection names in first-insertion order.
func (c *Collection) Children() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Hierarchy is the set of top-level collections, keyed by location name.
type Hierarchy struct {
	top   map[string]*Collection
	order []string
}

// NewHierarchy constructs an empty Hierarchy.
func NewHierarchy() *Hierarchy {
	return &Hierarchy{top: make(map[string]*Collection)}
}

// Add attaches a top-level collection, replacing any existing collection with
// the same name.
func (h *Hierarchy) Add(c *Collection) {
	if _, ok := h.top[c.Name]; !ok {
		h.order = append(h.order, c.Name)
	}
	h.top[c.Name] = c
}

// Location returns the top-level collection for the given location name.
//
// Postcondition: returns (collection, true) if found, or (nil, false)
// otherwise. Whether absence is fatal is the caller's decision.
func (h *Hierarchy) Location(name string) (*Collection, bool) {
	c, ok := h.top[name]
	return c, ok
}

// Locations returns the top-level collection names in first-insertion order.
func (h *Hierarchy) Locations() []string {
	out := make([]string, len(h.order))
	copy(out, h.order)
	return out
}
