package decl

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// UnmarshalYAML decodes a YAML mapping into the tree, keeping document order.
// Selector keys must hold mappings and property keys must hold scalars.
func (t *Tree) UnmarshalYAML(value *yaml.Node) error {
	value = resolveAlias(value)
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: declarations must be a mapping, got %s", value.Line, kindName(value.Kind))
	}

	if t.entries == nil {
		*t = *New()
	}

	for i := 0; i+1 < len(value.Content); i += 2 {
		keyNode, valNode := value.Content[i], resolveAlias(value.Content[i+1])
		key := keyNode.Value

		if IsSelectorKey(key) {
			if valNode.Kind != yaml.MappingNode {
				return fmt.Errorf("line %d: selector %q must hold a mapping, got %s", valNode.Line, key, kindName(valNode.Kind))
			}
			nested := New()
			if err := nested.UnmarshalYAML(valNode); err != nil {
				return err
			}
			t.Set(key, nested)
			continue
		}

		if valNode.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: property %q must hold a scalar, got %s", valNode.Line, key, kindName(valNode.Kind))
		}
		t.Set(key, scalarValue(valNode))
	}

	return nil
}

// UnmarshalYAML decodes a mapping of class name to declarations.
func (r *Rules) UnmarshalYAML(value *yaml.Node) error {
	value = resolveAlias(value)
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: rules must be a mapping, got %s", value.Line, kindName(value.Kind))
	}

	if r.entries == nil {
		*r = *NewRules()
	}

	for i := 0; i+1 < len(value.Content); i += 2 {
		name := value.Content[i].Value
		tree := New()
		if err := tree.UnmarshalYAML(value.Content[i+1]); err != nil {
			return fmt.Errorf("class %q: %w", name, err)
		}
		r.Set(name, tree)
	}

	return nil
}

func resolveAlias(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

func scalarValue(n *yaml.Node) string {
	if n.Tag == "!!null" {
		return ""
	}
	return n.Value
}

func kindName(k yaml.Kind) string {
	switch k {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "unknown"
	}
}
