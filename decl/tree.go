// Package decl models CSS declaration trees: ordered mappings from property
// or selector keys to values or nested blocks, and their serialization into
// flat CSS text.
package decl

import (
	"fmt"
	"iter"
	"strconv"
	"strings"

	"github.com/elliotchance/orderedmap/v3"
)

// IsSelectorKey reports whether key opens a nested block rather than naming
// a property. Any key containing '&' or '@' is a selector key.
func IsSelectorKey(key string) bool {
	return strings.ContainsAny(key, "&@")
}

// Node is a single entry of a Tree: either a leaf value or a nested block.
type Node struct {
	Value string // Leaf value ("red", "1rem")
	Block *Tree  // Nested declarations, nil for leaves
}

// IsBlock reports whether the node holds nested declarations.
func (n Node) IsBlock() bool {
	return n.Block != nil
}

// Tree is an insertion-ordered declaration tree.
// The zero value is not usable; create trees with New or Of.
type Tree struct {
	entries *orderedmap.OrderedMap[string, Node]
}

// New returns an empty tree.
func New() *Tree {
	return &Tree{entries: orderedmap.NewOrderedMap[string, Node]()}
}

// Of builds a tree from alternating key/value pairs:
//
//	decl.Of("color", "red", "&:hover", decl.Of("color", "blue"))
//
// It panics on an odd number of arguments or a non-string key.
func Of(pairs ...any) *Tree {
	if len(pairs)%2 != 0 {
		panic("decl.Of: odd number of arguments")
	}
	t := New()
	for i := 0; i < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			panic(fmt.Sprintf("decl.Of: key at position %d is %T, not string", i, pairs[i]))
		}
		t.Set(key, pairs[i+1])
	}
	return t
}

// Set stores value under key and returns the tree for chaining.
// Setting an existing key replaces its value in place.
//
// value may be a *Tree, a Node, a string, a number, a bool or anything
// implementing fmt.Stringer; other values are formatted with %v.
func (t *Tree) Set(key string, value any) *Tree {
	t.entries.Set(key, toNode(value))
	return t
}

func toNode(value any) Node {
	switch v := value.(type) {
	case *Tree:
		if v == nil {
			return Node{Block: New()}
		}
		return Node{Block: v}
	case Node:
		return v
	case string:
		return Node{Value: v}
	case int:
		return Node{Value: strconv.Itoa(v)}
	case int64:
		return Node{Value: strconv.FormatInt(v, 10)}
	case float64:
		return Node{Value: strconv.FormatFloat(v, 'f', -1, 64)}
	case bool:
		return Node{Value: strconv.FormatBool(v)}
	case fmt.Stringer:
		return Node{Value: v.String()}
	default:
		return Node{Value: fmt.Sprintf("%v", v)}
	}
}

// Get returns the node stored under key.
func (t *Tree) Get(key string) (Node, bool) {
	if t == nil || t.entries == nil {
		return Node{}, false
	}
	return t.entries.Get(key)
}

// Len returns the number of top-level keys.
func (t *Tree) Len() int {
	if t == nil || t.entries == nil {
		return 0
	}
	return t.entries.Len()
}

// Keys returns the top-level keys in insertion order.
func (t *Tree) Keys() []string {
	keys := make([]string, 0, t.Len())
	for key := range t.All() {
		keys = append(keys, key)
	}
	return keys
}

// All iterates over the top-level entries in insertion order.
func (t *Tree) All() iter.Seq2[string, Node] {
	return func(yield func(string, Node) bool) {
		if t == nil || t.entries == nil {
			return
		}
		for key, node := range t.entries.AllFromFront() {
			if !yield(key, node) {
				return
			}
		}
	}
}

// String returns the serialized declarations joined by single spaces.
func (t *Tree) String() string {
	return strings.Join(Serialize(t, false), " ")
}
