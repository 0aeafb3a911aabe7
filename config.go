package utilcss

import (
	"slices"

	"github.com/yacobolo/utilcss/decl"
)

// UtilityFunc produces utility classes from the theme.
// A nil result contributes nothing.
type UtilityFunc func(theme Theme) *decl.Rules

// VariantFunc produces classes derived from the merged utility classes,
// e.g. "hover:bg-red-500". It runs after every UtilityFunc.
type VariantFunc func(utilities *decl.Rules, theme Theme) *decl.Rules

// NormalizeFunc produces the ruleset included first in every StyleWith result.
type NormalizeFunc func(theme Theme) *decl.Tree

// Config holds engine configuration.
// Zero values fall back to: no prefix, empty theme, empty normalize ruleset,
// no utilities, no variants, no aliases.
type Config struct {
	Prefix    string              // "tw" turns "block" into "tw-block"
	Theme     Theme               // Passed unchanged to every generator
	Normalize NormalizeFunc       // Base ruleset
	Utilities []UtilityFunc       // Evaluated in order, last write wins
	Variants  []VariantFunc       // Evaluated in order after utilities, last write wins
	Apply     map[string][]string // Alias -> class names, one level deep
}

// ConfigFunc customizes the default configuration. It receives
// DefaultConfig() and returns the configuration the engine will use.
type ConfigFunc func(base Config) Config

// withDefaults fills in zero fields
func (c Config) withDefaults() Config {
	if c.Theme == nil {
		c.Theme = Theme{}
	}
	if c.Normalize == nil {
		c.Normalize = func(Theme) *decl.Tree { return decl.New() }
	}
	if c.Apply == nil {
		c.Apply = map[string][]string{}
	}
	return c
}

// cloneApply copies the alias table and every class list in it.
func cloneApply(apply map[string][]string) map[string][]string {
	out := make(map[string][]string, len(apply))
	for alias, classes := range apply {
		out[alias] = slices.Clone(classes)
	}
	return out
}

// Extend returns a ConfigFunc that keeps the base configuration and appends
// the given generators and aliases to it. Aliases in apply replace base
// aliases of the same name.
func Extend(utilities []UtilityFunc, variants []VariantFunc, apply map[string][]string) ConfigFunc {
	return func(base Config) Config {
		base.Utilities = append(append([]UtilityFunc{}, base.Utilities...), utilities...)
		base.Variants = append(append([]VariantFunc{}, base.Variants...), variants...)

		merged := make(map[string][]string, len(base.Apply)+len(apply))
		for k, v := range base.Apply {
			merged[k] = v
		}
		for k, v := range apply {
			merged[k] = v
		}
		base.Apply = merged
		return base
	}
}
