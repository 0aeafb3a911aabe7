// Package utilcss composes utility-first class names into scoped styles.
//
// An Engine is built from a Config: a theme, a normalize ruleset, utility
// generators, variant generators and an alias table. Generators run once and
// produce a flat registry of class name to declaration tree.
//
//	engine := utilcss.New(func(base utilcss.Config) utilcss.Config {
//		base.Prefix = "tw"
//		return base
//	})
//	class := engine.StyleWith("tw-p-4 tw-hover:bg-red-500 card", false)
//	// "css-1x2y css-3z4w css-5v6u card"
//
// StyleWith registers the normalize ruleset and every recognized class with
// the engine's Registrar (a sheet.Sheet by default) and returns the tokens
// followed by the unrecognized names verbatim. CSSForUtility returns the
// declarations of a single class without registering anything.
//
// # Checking templates
//
// ScanFiles finds class strings in templates and Check reports the names an
// engine does not know:
//
//	refs, _, err := utilcss.ScanFiles([]string{"views/**/*.templ"}, nil)
//	result, err := utilcss.Check(engine, refs, utilcss.CheckConfig{})
//
// # CLI Tool
//
// utilcss also provides a CLI tool. Install with:
//
//	go install github.com/yacobolo/utilcss/cmd/utilcss@latest
package utilcss
