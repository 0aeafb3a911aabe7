package configfile

import (
	"fmt"
	"maps"
	"slices"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/yacobolo/utilcss"
	"github.com/yacobolo/utilcss/decl"
)

// Resolve applies the file on top of base:
//   - prefix replaces the base prefix when set
//   - theme, then every theme file, is deep-merged over the base theme
//   - normalize replaces the base normalize ruleset when set
//   - utilities and variants are appended after the base generators, or
//     replace them when defaults is false
//   - apply entries are added to the base aliases, replacing equal keys
//
// Every template is rendered once against the resolved theme and all
// failures are returned together. The returned Config is usable even when
// the error is non-nil: failing values are left out.
func (f *File) Resolve(base utilcss.Config) (utilcss.Config, error) {
	cfg := base
	if f.Prefix != nil {
		cfg.Prefix = *f.Prefix
	}

	theme := utilcss.MergeTheme(base.Theme, f.Theme)
	for _, overlay := range f.themeFiles {
		theme = utilcss.MergeTheme(theme, overlay)
	}
	cfg.Theme = theme

	if f.UseDefaults() {
		cfg.Utilities = slices.Clone(base.Utilities)
		cfg.Variants = slices.Clone(base.Variants)
		cfg.Apply = maps.Clone(base.Apply)
	} else {
		cfg.Utilities, cfg.Variants, cfg.Apply = nil, nil, nil
	}
	if cfg.Apply == nil {
		cfg.Apply = map[string][]string{}
	}

	if f.Normalize != nil {
		cfg.Normalize = f.normalizeFunc()
	}
	for i := range f.Utilities {
		cfg.Utilities = append(cfg.Utilities, f.utilityFunc(i))
	}
	for _, v := range f.Variants {
		cfg.Variants = append(cfg.Variants, variantFunc(v))
	}
	maps.Copy(cfg.Apply, f.Apply)

	return cfg, f.dryRun(cfg.Theme)
}

// ConfigFunc adapts Resolve for utilcss.New. The Resolve error, if any, is
// stored in errp.
func (f *File) ConfigFunc(errp *error) utilcss.ConfigFunc {
	return func(base utilcss.Config) utilcss.Config {
		cfg, err := f.Resolve(base)
		if errp != nil {
			*errp = err
		}
		return cfg
	}
}

// dryRun renders every template against theme and collects the errors
func (f *File) dryRun(theme utilcss.Theme) error {
	var err error
	if f.Normalize != nil {
		if _, renderErr := newRenderer(theme).tree(f.Normalize); renderErr != nil {
			err = multierr.Append(err, fmt.Errorf("normalize: %w", renderErr))
		}
	}
	for i := range f.Utilities {
		_, genErr := f.generate(i, theme)
		err = multierr.Append(err, genErr)
	}
	return err
}

func (f *File) normalizeFunc() utilcss.NormalizeFunc {
	return func(theme utilcss.Theme) *decl.Tree {
		tree, err := newRenderer(theme).tree(f.Normalize)
		if err != nil {
			f.log.Warn("normalize template failed", zap.Error(err))
			return decl.New()
		}
		return tree
	}
}

func (f *File) utilityFunc(index int) utilcss.UtilityFunc {
	return func(theme utilcss.Theme) *decl.Rules {
		rules, err := f.generate(index, theme)
		if err != nil {
			f.log.Warn("utility generator failed", zap.Int("index", index), zap.Error(err))
		}
		return rules
	}
}

// generate evaluates one utility entry. Classes that fail to render are
// skipped; the rest are returned along with the combined error.
func (f *File) generate(index int, theme utilcss.Theme) (*decl.Rules, error) {
	u := f.Utilities[index]
	r := newRenderer(theme)
	out := decl.NewRules()
	var err error

	merge := func(src *decl.Rules) {
		for _, renderErr := range multierr.Errors(r.rules(out, src)) {
			err = multierr.Append(err, fmt.Errorf("utilities[%d]: %w", index, renderErr))
		}
	}

	switch {
	case u.Rules != nil:
		merge(u.Rules)

	case u.Each != "":
		scale := theme.Scale(u.Each)
		if len(scale) == 0 {
			return out, fmt.Errorf("utilities[%d]: theme has no values at %q", index, u.Each)
		}
		for _, entry := range scale {
			er := r.with(entry)
			className, classErr := er.expand("class", u.Class)
			if classErr != nil {
				err = multierr.Append(err, fmt.Errorf("utilities[%d]: class for %q: %w", index, entry.Key, classErr))
				continue
			}
			tree, treeErr := er.tree(u.Declarations)
			if treeErr != nil {
				err = multierr.Append(err, fmt.Errorf("utilities[%d]: class %q: %w", index, className, treeErr))
				continue
			}
			out.Set(className, tree)
		}

	default:
		for _, rules := range u.loaded {
			merge(rules)
		}
	}

	return out, err
}

func variantFunc(v VariantEntry) utilcss.VariantFunc {
	if v.Screens != "" {
		return utilcss.ResponsiveVariants(v.Screens, v.Match...)
	}
	return utilcss.StateVariant(v.Name, v.Selector, v.Match...)
}
