package configfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/yacobolo/utilcss"
	"github.com/yacobolo/utilcss/decl"
)

func parse(t *testing.T, doc string) *File {
	t.Helper()
	f, err := Parse([]byte(doc), nil)
	require.NoError(t, err)
	return f
}

// engineFor builds an engine from a resolved config, bypassing the defaults
func engineFor(cfg utilcss.Config) *utilcss.Engine {
	return utilcss.New(func(utilcss.Config) utilcss.Config { return cfg })
}

func TestResolveRulesWithThemeTemplates(t *testing.T) {
	f := parse(t, `
prefix: tw
defaults: false
theme:
  spacing:
    4: 1rem
    8: 2rem
utilities:
  - rules:
      card:
        padding: '{{ theme "spacing.4" }}'
        '&:hover':
          padding: '{{ theme "spacing.8" }}'
      shout:
        text-transform: '{{ "upper" | lower }}case'
apply:
  panel: [tw-card]
`)

	var err error
	engine := utilcss.New(f.ConfigFunc(&err))
	require.NoError(t, err)

	assert.Equal(t, []string{"tw-card", "tw-shout"}, engine.Utilities().Names())
	assert.Equal(t, "padding: 1rem; &:hover { padding: 2rem; }", engine.CSSForUtility("tw-card", false))
	assert.Equal(t, "text-transform: uppercase;", engine.CSSForUtility("tw-shout", false))
	assert.Equal(t, map[string][]string{"panel": {"tw-card"}}, engine.Apply())
}

func TestResolveThemeKeysWithDots(t *testing.T) {
	f := parse(t, `
utilities:
  - rules:
      hairline:
        padding: '{{ theme "spacing.0.5" }}'
`)

	var err error
	engine := utilcss.New(f.ConfigFunc(&err))
	require.NoError(t, err)
	assert.Equal(t, "padding: 0.125rem;", engine.CSSForUtility("hairline", false))
}

func TestResolveKeepsDefaults(t *testing.T) {
	f := parse(t, `
utilities:
  - rules:
      card: {padding: 1rem}
apply:
  btn: [rounded, px-4]
`)

	var err error
	engine := utilcss.New(f.ConfigFunc(&err))
	require.NoError(t, err)

	assert.True(t, engine.Utilities().Has("card"))
	assert.True(t, engine.Utilities().Has("p-4"))
	assert.True(t, engine.Utilities().Has("hover:bg-red-500"))
	assert.Equal(t, "", engine.Config().Prefix)
	assert.True(t, engine.IsAlias("btn"))
}

func TestResolveEach(t *testing.T) {
	f := parse(t, `
defaults: false
theme:
  colors:
    brand: "#0af"
    ink:
      DEFAULT: "#111"
      light: "#333"
utilities:
  - each: colors
    class: 'border-{{ .Key }}'
    declarations:
      border-color: '{{ .Value }}'
      border-style: solid
`)

	cfg, err := f.Resolve(utilcss.Config{})
	require.NoError(t, err)

	engine := engineFor(cfg)
	assert.Equal(t, []string{"border-brand", "border-ink", "border-ink-light"}, engine.Utilities().Names())
	assert.Equal(t, "border-color: #0af; border-style: solid;", engine.CSSForUtility("border-brand", false))
	assert.Equal(t, "border-color: #333; border-style: solid;", engine.CSSForUtility("border-ink-light", false))
}

func TestResolveEachMissingScale(t *testing.T) {
	f := parse(t, `
utilities:
  - each: shadows
    class: 'shadow-{{ .Key }}'
    declarations: {box-shadow: '{{ .Value }}'}
`)

	_, err := f.Resolve(utilcss.Config{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `theme has no values at "shadows"`)
}

func TestResolveVariants(t *testing.T) {
	f := parse(t, `
defaults: false
theme:
  screens: {md: 768px, sm: 640px}
utilities:
  - rules:
      bg-a: {background: red}
      p-1: {padding: 4px}
variants:
  - name: hover
    selector: '&:hover'
    match: ['bg-*']
  - screens: screens
    match: ['p-*']
`)

	cfg, err := f.Resolve(utilcss.Config{})
	require.NoError(t, err)

	engine := engineFor(cfg)
	assert.Equal(t, []string{"bg-a", "p-1", "hover:bg-a", "sm:p-1", "md:p-1"}, engine.Utilities().Names())
	assert.Equal(t, "@media (min-width: 768px) { padding: 4px; }", engine.CSSForUtility("md:p-1", false))
	assert.Equal(t, "&:hover { background: red; }", engine.CSSForUtility("hover:bg-a", false))
}

func TestResolveNormalize(t *testing.T) {
	f := parse(t, `
theme:
  fonts: {body: Inter}
normalize:
  font-family: '{{ theme "fonts.body" }}'
  '& a': {color: inherit}
`)

	cfg, err := f.Resolve(utilcss.DefaultConfig())
	require.NoError(t, err)

	assert.Equal(t, "font-family: Inter; & a { color: inherit; }", cfg.Normalize(cfg.Theme).String())
}

func TestResolveCollectsTemplateErrors(t *testing.T) {
	f := parse(t, `
defaults: false
utilities:
  - rules:
      ok: {color: red}
      bad: {color: '{{ theme "colors.nope" }}'}
      broken: {color: '{{ .Missing'}
`)

	cfg, err := f.Resolve(utilcss.Config{Theme: utilcss.Theme{"colors": map[string]any{"red": "#f00"}}})
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 2)
	assert.Contains(t, err.Error(), `class "bad"`)
	assert.Contains(t, err.Error(), `theme has no value at "colors.nope"`)
	assert.Contains(t, err.Error(), `class "broken"`)

	engine := engineFor(cfg)
	assert.Equal(t, []string{"ok"}, engine.Utilities().Names())
}

func TestRendererRulesSkipsFailedClasses(t *testing.T) {
	r := newRenderer(utilcss.Theme{"spacing": map[string]any{"4": "1rem"}})
	src := decl.NewRules().
		Add("pad", decl.Of("padding", `{{ theme "spacing.4" }}`)).
		Add("bad", decl.Of("padding", `{{ theme "spacing.9" }}`)).
		Add("hover", decl.Of("&:hover", decl.Of("margin", `{{ theme "nope" }}`)))

	dst := decl.NewRules().Add("kept", decl.Of("display", "block"))
	err := r.rules(dst, src)

	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 2)
	assert.Contains(t, err.Error(), `class "bad"`)
	assert.Contains(t, err.Error(), `class "hover"`)
	assert.Equal(t, []string{"kept", "pad"}, dst.Names())

	pad, _ := dst.Get("pad")
	assert.Equal(t, "padding: 1rem;", decl.Serialize(pad, false)[0])
}

func TestParseValidation(t *testing.T) {
	_, err := Parse([]byte(`
utilities:
  - {}
  - each: colors
  - rules: {a: {color: red}}
    files: [x.yaml]
variants:
  - name: hover
  - screens: screens
    name: x
  - name: f
    selector: '&:focus'
    match: ['[']
apply:
  "a b": [x]
  empty: []
`), nil)
	require.Error(t, err)

	errs := multierr.Errors(err)
	assert.Len(t, errs, 8)
	assert.Contains(t, err.Error(), "utilities[0]: exactly one of rules, each or files is required")
	assert.Contains(t, err.Error(), "utilities[1]: each requires class and declarations")
	assert.Contains(t, err.Error(), "utilities[2]: exactly one of rules, each or files is required")
	assert.Contains(t, err.Error(), "variants[0]: name and selector are required")
	assert.Contains(t, err.Error(), "variants[1]: screens cannot be combined with name or selector")
	assert.Contains(t, err.Error(), `variants[2]: invalid match pattern "["`)
	assert.Contains(t, err.Error(), `apply: alias "a b" must be a single class name`)
	assert.Contains(t, err.Error(), `apply: alias "empty" has no classes`)
}

func TestParseRejectsBadDeclarations(t *testing.T) {
	_, err := Parse([]byte(`
utilities:
  - rules:
      card: {padding: [1, 2]}
`), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `property "padding" must hold a scalar`)
}

func TestParseNormalizesNumericThemeKeys(t *testing.T) {
	f := parse(t, `
theme:
  colors:
    red:
      500: "#f00"
`)

	theme := utilcss.Theme(f.Theme)
	v, ok := theme.Lookup("colors.red.500")
	require.True(t, ok)
	assert.Equal(t, "#f00", v)
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadWithFiles(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "utilcss.yaml", `
theme-files: [theme/*.yaml, theme/*.toml]
utilities:
  - files: [utilities/**/*.yaml]
`)
	writeFile(t, dir, "theme/2.yaml", "colors:\n  brand: \"#222\"\n")
	writeFile(t, dir, "theme/10.yaml", "colors:\n  brand: \"#100\"\n")
	writeFile(t, dir, "theme/extra.toml", "[spacing]\n\"4\" = \"1.1rem\"\n")
	writeFile(t, dir, "utilities/a.yaml", "card:\n  padding: '{{ theme \"spacing.4\" }}'\n")
	writeFile(t, dir, "utilities/nested/b.yaml", "chip:\n  color: '{{ theme \"colors.brand\" }}'\n")

	core, logs := observer.New(zapcore.DebugLevel)
	f, err := Load(path, zap.New(core))
	require.NoError(t, err)
	assert.Equal(t, path, f.Path())

	var resolveErr error
	engine := utilcss.New(f.ConfigFunc(&resolveErr))
	require.NoError(t, resolveErr)

	assert.Equal(t, "padding: 1.1rem;", engine.CSSForUtility("card", false))
	assert.Equal(t, "color: #100;", engine.CSSForUtility("chip", false))
	assert.True(t, engine.Utilities().Has("block"))

	loaded := logs.FilterMessage("config loaded").All()
	require.Len(t, loaded, 1)
	assert.Equal(t, "configfile", loaded[0].LoggerName)
	assert.Equal(t, 3, logs.FilterMessage("theme file loaded").Len())
	assert.Equal(t, 2, logs.FilterMessage("utility file loaded").Len())
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil)
		assert.ErrorContains(t, err, "reading config")
	})

	t.Run("unmatched patterns and bad files", func(t *testing.T) {
		dir := t.TempDir()
		path := writeFile(t, dir, "utilcss.yaml", `
theme-files: [missing/*.toml, theme.toml]
utilities:
  - files: [rules.yaml]
`)
		writeFile(t, dir, "theme.toml", "not = [valid")
		writeFile(t, dir, "rules.yaml", "card: plain\n")

		_, err := Load(path, nil)
		require.Error(t, err)
		assert.Len(t, multierr.Errors(err), 3)
		assert.Contains(t, err.Error(), "matched no files")
		assert.Contains(t, err.Error(), "theme.toml")
		assert.Contains(t, err.Error(), `class "card"`)
	})

	t.Run("theme file must be a mapping", func(t *testing.T) {
		dir := t.TempDir()
		path := writeFile(t, dir, "utilcss.yaml", "theme-files: [theme.yaml]\n")
		writeFile(t, dir, "theme.yaml", "- a\n- b\n")

		_, err := Load(path, nil)
		assert.ErrorIs(t, err, errNotMapping)
	})
}
