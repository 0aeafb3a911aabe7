package utilcss

import (
	"fmt"
	"sort"
	"strings"

	"github.com/knadh/koanf/maps"
	"github.com/maruel/natural"
)

// Theme is the design-token bag handed to every generator. The engine never
// looks inside it; generators use Lookup and Scale.
type Theme map[string]any

// ScaleEntry is one flattened theme value, e.g. {Key: "red-500", Value: "#ef4444"}.
type ScaleEntry struct {
	Key   string
	Value string
}

// Lookup returns the value at a dot-separated path ("colors.red.500").
// Keys that contain dots themselves ("spacing.0.5") are found by trying
// the longest matching key first.
func (t Theme) Lookup(path string) (any, bool) {
	if t == nil || path == "" {
		return nil, false
	}
	parts := strings.Split(path, ".")
	if v := maps.Search(t, parts); v != nil {
		return v, true
	}
	return lookupDotted(map[string]any(t), parts)
}

func lookupDotted(v any, parts []string) (any, bool) {
	if len(parts) == 0 {
		return v, v != nil
	}

	var m map[string]any
	switch node := v.(type) {
	case map[string]any:
		m = node
	case Theme:
		m = node
	default:
		return nil, false
	}

	for i := len(parts); i > 0; i-- {
		next, ok := m[strings.Join(parts[:i], ".")]
		if !ok {
			continue
		}
		if found, ok := lookupDotted(next, parts[i:]); ok {
			return found, true
		}
	}
	return nil, false
}

// Scale flattens the map found at path into entries sorted in natural key
// order. Nested keys are joined with "-"; a nested "DEFAULT" key takes its
// parent's name. A scalar at path yields a single entry keyed "DEFAULT".
func (t Theme) Scale(path string) []ScaleEntry {
	v, ok := t.Lookup(path)
	if !ok {
		return nil
	}

	var out []ScaleEntry
	flattenScale("", v, &out)
	sort.SliceStable(out, func(i, j int) bool {
		return natural.Less(out[i].Key, out[j].Key)
	})
	return out
}

func flattenScale(prefix string, v any, out *[]ScaleEntry) {
	switch m := v.(type) {
	case map[string]any:
		for k, nested := range m {
			flattenScale(joinScaleKey(prefix, k), nested, out)
		}
	case Theme:
		flattenScale(prefix, map[string]any(m), out)
	case map[string]string:
		for k, s := range m {
			*out = append(*out, ScaleEntry{Key: joinScaleKey(prefix, k), Value: s})
		}
	default:
		if prefix == "" {
			prefix = "DEFAULT"
		}
		*out = append(*out, ScaleEntry{Key: prefix, Value: fmt.Sprint(v)})
	}
}

func joinScaleKey(prefix, key string) string {
	switch {
	case prefix == "":
		return key
	case key == "DEFAULT":
		return prefix
	default:
		return prefix + "-" + key
	}
}

// MergeTheme returns a deep copy of base with over merged on top of it.
// Nested maps merge key by key; any other value in over replaces the one in base.
func MergeTheme(base, over Theme) Theme {
	out := Theme{}
	if len(base) > 0 {
		out = maps.Copy(base)
	}
	if len(over) > 0 {
		maps.Merge(maps.Copy(over), out)
	}
	return out
}
