package utilcss

import (
	"iter"

	"go.uber.org/zap"

	"github.com/yacobolo/utilcss/decl"
)

// Registry is the flat, prefixed mapping from class name to declarations.
// It is built once by New and never modified afterwards.
type Registry struct {
	rules *decl.Rules
}

// Get returns the declarations registered for className.
func (r *Registry) Get(className string) (*decl.Tree, bool) {
	return r.rules.Get(className)
}

// Has reports whether className is a registered utility.
func (r *Registry) Has(className string) bool {
	return r.rules.Has(className)
}

// Len returns the number of registered classes.
func (r *Registry) Len() int {
	return r.rules.Len()
}

// Names returns every class name in registration order.
func (r *Registry) Names() []string {
	return r.rules.Names()
}

// All iterates over the registry in registration order.
func (r *Registry) All() iter.Seq2[string, *decl.Tree] {
	return r.rules.All()
}

// buildRegistry evaluates utility generators, then variant generators, and
// prefixes the combined result. Later writes win over earlier ones.
func buildRegistry(cfg Config, log *zap.Logger) *Registry {
	utilities := createUtilityMap(cfg.Utilities, cfg.Theme, log)
	variants := createVariantMap(cfg.Variants, utilities, cfg.Theme, log)

	prefix := prefixString(cfg.Prefix)

	rules := decl.NewRules()
	for name, tree := range utilities.All() {
		rules.Set(prefix+name, tree)
	}
	for name, tree := range variants.All() {
		if !rules.Set(prefix+name, tree) {
			log.Debug("variant overrides utility", zap.String("class", prefix+name))
		}
	}

	log.Debug("registry built",
		zap.Int("utilities", utilities.Len()),
		zap.Int("variants", variants.Len()),
		zap.Int("classes", rules.Len()),
		zap.String("prefix", cfg.Prefix))

	return &Registry{rules: rules}
}

// createUtilityMap merges the output of every utility generator
func createUtilityMap(generators []UtilityFunc, theme Theme, log *zap.Logger) *decl.Rules {
	merged := decl.NewRules()
	for i, generate := range generators {
		if generate == nil {
			continue
		}
		mergeRules(merged, generate(theme), "utility", i, log)
	}
	return merged
}

// createVariantMap merges the output of every variant generator. Each
// generator sees the complete utility map but not other variants.
func createVariantMap(generators []VariantFunc, utilities *decl.Rules, theme Theme, log *zap.Logger) *decl.Rules {
	merged := decl.NewRules()
	for i, generate := range generators {
		if generate == nil {
			continue
		}
		mergeRules(merged, generate(utilities, theme), "variant", i, log)
	}
	return merged
}

func mergeRules(dst, src *decl.Rules, kind string, index int, log *zap.Logger) {
	for name, tree := range src.All() {
		if !dst.Set(name, tree) {
			log.Debug("class redefined",
				zap.String("kind", kind),
				zap.Int("generator", index),
				zap.String("class", name))
		}
	}
}

// prefixString returns "<prefix>-", or "" for an empty prefix.
func prefixString(prefix string) string {
	if prefix == "" {
		return ""
	}
	return prefix + "-"
}
