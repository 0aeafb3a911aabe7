package utilcss

import (
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/maruel/natural"

	"github.com/yacobolo/utilcss/decl"
)

// StateVariant derives "<name>:<class>" for every utility matching one of
// patterns (all utilities when none are given), nesting the utility's
// declarations under selector:
//
//	StateVariant("hover", "&:hover", "bg-*")
//	// bg-red-500 -> hover:bg-red-500 { &:hover { background-color: ... } }
func StateVariant(name, selector string, patterns ...string) VariantFunc {
	return func(utilities *decl.Rules, _ Theme) *decl.Rules {
		out := decl.NewRules()
		for className, tree := range utilities.All() {
			if MatchClass(className, patterns) {
				out.Set(name+":"+className, decl.New().Set(selector, tree))
			}
		}
		return out
	}
}

// ResponsiveVariants derives one variant per breakpoint found under
// themeKey ("screens"), wrapping matching utilities in a min-width media
// query. Breakpoints are emitted smallest first.
func ResponsiveVariants(themeKey string, patterns ...string) VariantFunc {
	return func(utilities *decl.Rules, theme Theme) *decl.Rules {
		screens := theme.Scale(themeKey)
		sort.SliceStable(screens, func(i, j int) bool {
			return natural.Less(screens[i].Value, screens[j].Value)
		})

		out := decl.NewRules()
		for _, screen := range screens {
			query := "@media (min-width: " + screen.Value + ")"
			for className, tree := range utilities.All() {
				if MatchClass(className, patterns) {
					out.Set(screen.Key+":"+className, decl.New().Set(query, tree))
				}
			}
		}
		return out
	}
}

// MatchClass reports whether className matches any of the doublestar
// patterns. No patterns match everything; malformed patterns match nothing.
func MatchClass(className string, patterns []string) bool {
	if len(patterns) == 0 {
		return true
	}
	for _, pattern := range patterns {
		if ok, err := doublestar.Match(pattern, className); err == nil && ok {
			return true
		}
	}
	return false
}
