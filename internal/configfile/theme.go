package configfile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// loadThemeFile reads a theme overlay. Files ending in .toml are TOML;
// everything else is YAML.
func loadThemeFile(path string) (map[string]any, error) {
	// #nosec G304 - path comes from configuration
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var theme map[string]any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(data, &theme)
	default:
		var doc any
		if err = yaml.Unmarshal(data, &doc); err == nil && doc != nil {
			normalized, ok := normalizeValue(doc).(map[string]any)
			if !ok {
				err = errNotMapping
			}
			theme = normalized
		}
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return normalizeMap(theme), nil
}

// normalizeMap converts YAML's map[any]any (produced for numeric keys such
// as color shades) into map[string]any all the way down.
func normalizeMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = normalizeValue(v)
	}
	return out
}

func normalizeValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return normalizeMap(t)
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, nested := range t {
			out[fmt.Sprint(k)] = normalizeValue(nested)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, nested := range t {
			out[i] = normalizeValue(nested)
		}
		return out
	default:
		return v
	}
}
