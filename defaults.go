package utilcss

import "github.com/yacobolo/utilcss/decl"

// DefaultTheme returns a fresh copy of the built-in theme.
func DefaultTheme() Theme {
	shades := func(s50, s100, s300, s500, s700, s900 string) map[string]any {
		return map[string]any{
			"50": s50, "100": s100, "300": s300, "500": s500, "700": s700, "900": s900,
		}
	}

	return Theme{
		"colors": map[string]any{
			"transparent": "transparent",
			"current":     "currentColor",
			"black":       "#000",
			"white":       "#fff",
			"gray":        shades("#f9fafb", "#f3f4f6", "#d1d5db", "#6b7280", "#374151", "#111827"),
			"red":         shades("#fef2f2", "#fee2e2", "#fca5a5", "#ef4444", "#b91c1c", "#7f1d1d"),
			"green":       shades("#f0fdf4", "#dcfce7", "#86efac", "#22c55e", "#15803d", "#14532d"),
			"blue":        shades("#eff6ff", "#dbeafe", "#93c5fd", "#3b82f6", "#1d4ed8", "#1e3a8a"),
		},
		"spacing": map[string]any{
			"0": "0", "px": "1px", "0.5": "0.125rem", "1": "0.25rem", "2": "0.5rem",
			"3": "0.75rem", "4": "1rem", "6": "1.5rem", "8": "2rem", "12": "3rem", "16": "4rem",
		},
		"fontSize": map[string]any{
			"xs": "0.75rem", "sm": "0.875rem", "base": "1rem", "lg": "1.125rem",
			"xl": "1.25rem", "2xl": "1.5rem",
		},
		"borderRadius": map[string]any{
			"none": "0", "sm": "0.125rem", "DEFAULT": "0.25rem", "md": "0.375rem",
			"lg": "0.5rem", "full": "9999px",
		},
		"screens": map[string]any{
			"sm": "640px", "md": "768px", "lg": "1024px", "xl": "1280px",
		},
	}
}

// DefaultConfig returns the built-in configuration every ConfigFunc starts from.
func DefaultConfig() Config {
	return Config{
		Theme:     DefaultTheme(),
		Normalize: defaultNormalize,
		Utilities: []UtilityFunc{
			displayUtilities,
			spacingUtilities("p", "padding"),
			spacingUtilities("m", "margin"),
			colorUtilities("text", "color"),
			colorUtilities("bg", "background-color"),
			fontSizeUtilities,
			borderRadiusUtilities,
		},
		Variants: []VariantFunc{
			StateVariant("hover", "&:hover", "bg-*", "text-*"),
			StateVariant("focus", "&:focus", "bg-*", "text-*"),
			ResponsiveVariants("screens"),
		},
		Apply: map[string][]string{},
	}
}

func defaultNormalize(Theme) *decl.Tree {
	return decl.Of(
		"box-sizing", "border-box",
		"line-height", "1.5",
		"-webkit-text-size-adjust", "100%",
		"& *, & *::before, & *::after", decl.Of("box-sizing", "inherit"),
		"& img", decl.Of("display", "block", "max-width", "100%"),
	)
}

func displayUtilities(Theme) *decl.Rules {
	rules := decl.NewRules()
	for _, display := range []string{"block", "inline-block", "inline", "flex", "inline-flex", "grid"} {
		rules.Set(display, decl.Of("display", display))
	}
	return rules.Add("hidden", decl.Of("display", "none"))
}

// spacingUtilities builds p-4, px-4, pt-4... (or m-*) from theme.spacing
func spacingUtilities(short, property string) UtilityFunc {
	sides := []struct {
		suffix     string
		properties []string
	}{
		{suffix: "", properties: []string{property}},
		{suffix: "x", properties: []string{property + "-left", property + "-right"}},
		{suffix: "y", properties: []string{property + "-top", property + "-bottom"}},
		{suffix: "t", properties: []string{property + "-top"}},
		{suffix: "r", properties: []string{property + "-right"}},
		{suffix: "b", properties: []string{property + "-bottom"}},
		{suffix: "l", properties: []string{property + "-left"}},
	}

	return func(theme Theme) *decl.Rules {
		rules := decl.NewRules()
		for _, side := range sides {
			for _, entry := range theme.Scale("spacing") {
				tree := decl.New()
				for _, p := range side.properties {
					tree.Set(p, entry.Value)
				}
				rules.Set(short+side.suffix+"-"+entry.Key, tree)
			}
		}
		return rules
	}
}

func colorUtilities(short, property string) UtilityFunc {
	return func(theme Theme) *decl.Rules {
		rules := decl.NewRules()
		for _, entry := range theme.Scale("colors") {
			rules.Set(short+"-"+entry.Key, decl.Of(property, entry.Value))
		}
		return rules
	}
}

func fontSizeUtilities(theme Theme) *decl.Rules {
	rules := decl.NewRules()
	for _, entry := range theme.Scale("fontSize") {
		rules.Set("text-"+entry.Key, decl.Of("font-size", entry.Value))
	}
	return rules
}

func borderRadiusUtilities(theme Theme) *decl.Rules {
	rules := decl.NewRules()
	for _, entry := range theme.Scale("borderRadius") {
		name := "rounded"
		if entry.Key != "DEFAULT" {
			name += "-" + entry.Key
		}
		rules.Set(name, decl.Of("border-radius", entry.Value))
	}
	return rules
}
