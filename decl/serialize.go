package decl

import "strings"

// Serialize flattens tree into CSS text fragments, one per top-level key,
// in key order. Selector keys become "<key> { ... }" blocks whose nested
// fragments are concatenated without separator; property keys become
// "<key>: <value>;". With important set, every leaf at every depth gets
// " !important".
//
// Keys and values are emitted verbatim.
func Serialize(tree *Tree, important bool) []string {
	out := make([]string, 0, tree.Len())
	for key, node := range tree.All() {
		if IsSelectorKey(key) {
			out = append(out, key+" { "+strings.Join(Serialize(node.Block, important), "")+" }")
			continue
		}
		out = append(out, FormatDeclaration(key, leafValue(node, important), important))
	}
	return out
}

// FormatDeclaration renders a single "property: value;" declaration.
func FormatDeclaration(property, value string, important bool) string {
	if important {
		return property + ": " + value + " !important;"
	}
	return property + ": " + value + ";"
}

// leafValue stringifies a block found under a property key.
func leafValue(node Node, important bool) string {
	if node.Block == nil {
		return node.Value
	}
	return strings.Join(Serialize(node.Block, important), " ")
}
