// Package configfile loads engine configuration from a YAML document.
//
//	prefix: tw
//	theme:
//	  colors: {brand: "#0af"}
//	utilities:
//	  - rules: {card: {padding: '{{ theme "spacing.4" }}'}}
//	  - each: colors
//	    class: 'border-{{ .Key }}'
//	    declarations: {border-color: '{{ .Value }}'}
//	variants:
//	  - {name: hover, selector: '&:hover', match: ['border-*']}
//	apply:
//	  btn: [rounded, px-4]
//
// Leaf values, keys and class names are text/template strings with the
// slim-sprig functions and a theme function. Templates are rendered against
// the theme the engine passes to each generator.
package configfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/maruel/natural"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/yacobolo/utilcss/decl"
)

// File is a parsed configuration document.
type File struct {
	Prefix     *string             `yaml:"prefix"`
	Defaults   *bool               `yaml:"defaults"` // Keep built-in utilities, variants and aliases (default true)
	Theme      map[string]any      `yaml:"theme"`
	ThemeFiles []string            `yaml:"theme-files"`
	Normalize  *decl.Tree          `yaml:"normalize"`
	Utilities  []UtilityEntry      `yaml:"utilities"`
	Variants   []VariantEntry      `yaml:"variants"`
	Apply      map[string][]string `yaml:"apply"`

	path       string
	themeFiles []map[string]any // Loaded ThemeFiles, in merge order
	log        *zap.Logger
}

// UtilityEntry is one utility generator. Exactly one form is used:
// Rules, Each with Class and Declarations, or Files.
type UtilityEntry struct {
	Rules        *decl.Rules `yaml:"rules"`        // class -> declarations
	Each         string      `yaml:"each"`         // theme path to iterate with Theme.Scale
	Class        string      `yaml:"class"`        // class template, e.g. "border-{{ .Key }}"
	Declarations *decl.Tree  `yaml:"declarations"` // declarations template per scale entry
	Files        []string    `yaml:"files"`        // doublestar patterns of YAML rule files

	loaded []*decl.Rules
}

// VariantEntry is one variant generator: a state variant (Name and
// Selector) or responsive variants derived from a theme key (Screens).
type VariantEntry struct {
	Name     string   `yaml:"name"`     // "hover"
	Selector string   `yaml:"selector"` // "&:hover"
	Screens  string   `yaml:"screens"`  // "screens"
	Match    []string `yaml:"match"`    // doublestar patterns over utility names
}

// Path returns the file the configuration was loaded from.
func (f *File) Path() string {
	return f.path
}

// UseDefaults reports whether built-in generators are kept.
func (f *File) UseDefaults() bool {
	return f.Defaults == nil || *f.Defaults
}

// Load reads and validates the configuration at path. Relative theme and
// utility file patterns are resolved against the file's directory. Every
// problem found is reported in the returned error.
func Load(path string, log *zap.Logger) (*File, error) {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("configfile")

	// #nosec G304 - path comes from the command line
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	f, err := Parse(data, log)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	f.path = path

	// errors name the file they came from
	if err := f.loadFiles(filepath.Dir(path)); err != nil {
		return nil, err
	}

	log.Debug("config loaded",
		zap.String("path", path),
		zap.Int("utilities", len(f.Utilities)),
		zap.Int("variants", len(f.Variants)),
		zap.Int("theme_files", len(f.themeFiles)),
		zap.Int("apply", len(f.Apply)))

	return f, nil
}

// Parse decodes and validates a configuration document without touching
// the filesystem; entries using Files or ThemeFiles stay empty until Load.
func Parse(data []byte, log *zap.Logger) (*File, error) {
	if log == nil {
		log = zap.NewNop()
	}

	f := &File{log: log}
	if err := yaml.Unmarshal(data, f); err != nil {
		return nil, err
	}
	f.Theme = normalizeMap(f.Theme)

	if err := f.validate(); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *File) validate() error {
	var err error

	for i, u := range f.Utilities {
		forms := 0
		if u.Rules != nil {
			forms++
		}
		if u.Each != "" {
			forms++
			if u.Class == "" || u.Declarations == nil {
				err = multierr.Append(err, fmt.Errorf("utilities[%d]: each requires class and declarations", i))
			}
		}
		if len(u.Files) > 0 {
			forms++
		}
		if forms != 1 {
			err = multierr.Append(err, fmt.Errorf("utilities[%d]: exactly one of rules, each or files is required", i))
		}
	}

	for i, v := range f.Variants {
		switch {
		case v.Screens != "" && (v.Name != "" || v.Selector != ""):
			err = multierr.Append(err, fmt.Errorf("variants[%d]: screens cannot be combined with name or selector", i))
		case v.Screens == "" && (v.Name == "" || v.Selector == ""):
			err = multierr.Append(err, fmt.Errorf("variants[%d]: name and selector are required", i))
		}
		for _, pattern := range v.Match {
			if !doublestar.ValidatePattern(pattern) {
				err = multierr.Append(err, fmt.Errorf("variants[%d]: invalid match pattern %q", i, pattern))
			}
		}
	}

	for alias, classes := range f.Apply {
		if strings.TrimSpace(alias) == "" || len(strings.Fields(alias)) != 1 {
			err = multierr.Append(err, fmt.Errorf("apply: alias %q must be a single class name", alias))
		}
		if len(classes) == 0 {
			err = multierr.Append(err, fmt.Errorf("apply: alias %q has no classes", alias))
		}
	}

	return err
}

// loadFiles reads theme files and utility rule files relative to dir
func (f *File) loadFiles(dir string) error {
	var err error

	themePaths, globErr := expand(dir, f.ThemeFiles)
	err = multierr.Append(err, globErr)
	for _, path := range themePaths {
		theme, loadErr := loadThemeFile(path)
		if loadErr != nil {
			err = multierr.Append(err, loadErr)
			continue
		}
		f.log.Debug("theme file loaded", zap.String("path", path))
		f.themeFiles = append(f.themeFiles, theme)
	}

	for i := range f.Utilities {
		u := &f.Utilities[i]
		paths, globErr := expand(dir, u.Files)
		err = multierr.Append(err, globErr)
		for _, path := range paths {
			rules, loadErr := loadRulesFile(path)
			if loadErr != nil {
				err = multierr.Append(err, loadErr)
				continue
			}
			f.log.Debug("utility file loaded", zap.String("path", path), zap.Int("classes", rules.Len()))
			u.loaded = append(u.loaded, rules)
		}
	}

	return err
}

// expand resolves doublestar patterns against dir into a deduplicated list
// in natural order. A pattern matching nothing is an error.
func expand(dir string, patterns []string) ([]string, error) {
	var err error
	seen := make(map[string]bool)
	var out []string

	for _, pattern := range patterns {
		if !filepath.IsAbs(pattern) {
			pattern = filepath.Join(dir, pattern)
		}
		matches, globErr := doublestar.FilepathGlob(pattern)
		if globErr != nil {
			err = multierr.Append(err, fmt.Errorf("pattern %q: %w", pattern, globErr))
			continue
		}
		if len(matches) == 0 {
			err = multierr.Append(err, fmt.Errorf("pattern %q matched no files", pattern))
			continue
		}
		sort.Sort(natural.StringSlice(matches))
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				out = append(out, m)
			}
		}
	}
	return out, err
}

// loadRulesFile reads a YAML document mapping class names to declarations
func loadRulesFile(path string) (*decl.Rules, error) {
	// #nosec G304 - path comes from configuration
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	rules := decl.NewRules()
	if err := yaml.Unmarshal(data, rules); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rules, nil
}

// errNotMapping is returned for theme documents that are not a mapping
var errNotMapping = errors.New("theme document must be a mapping")
