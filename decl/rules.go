package decl

import (
	"iter"

	"github.com/elliotchance/orderedmap/v3"
)

// Rules maps class names to declaration trees, preserving insertion order.
// It is what utility and variant generators produce.
type Rules struct {
	entries *orderedmap.OrderedMap[string, *Tree]
}

// NewRules returns an empty rule set.
func NewRules() *Rules {
	return &Rules{entries: orderedmap.NewOrderedMap[string, *Tree]()}
}

// Set stores tree under name. An existing name keeps its position and gets
// the new tree. Set returns true when name was not present before.
func (r *Rules) Set(name string, tree *Tree) bool {
	if tree == nil {
		tree = New()
	}
	return r.entries.Set(name, tree)
}

// Add is Set without the result, for chaining.
func (r *Rules) Add(name string, tree *Tree) *Rules {
	r.Set(name, tree)
	return r
}

// Get returns the tree registered under name.
func (r *Rules) Get(name string) (*Tree, bool) {
	if r == nil || r.entries == nil {
		return nil, false
	}
	return r.entries.Get(name)
}

// Has reports whether name is present.
func (r *Rules) Has(name string) bool {
	if r == nil || r.entries == nil {
		return false
	}
	return r.entries.Has(name)
}

// Len returns the number of class names.
func (r *Rules) Len() int {
	if r == nil || r.entries == nil {
		return 0
	}
	return r.entries.Len()
}

// Names returns the class names in insertion order.
func (r *Rules) Names() []string {
	names := make([]string, 0, r.Len())
	for name := range r.All() {
		names = append(names, name)
	}
	return names
}

// All iterates over the rules in insertion order.
func (r *Rules) All() iter.Seq2[string, *Tree] {
	return func(yield func(string, *Tree) bool) {
		if r == nil || r.entries == nil {
			return
		}
		for name, tree := range r.entries.AllFromFront() {
			if !yield(name, tree) {
				return
			}
		}
	}
}
