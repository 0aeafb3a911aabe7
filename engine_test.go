package utilcss

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yacobolo/utilcss/decl"
	"github.com/yacobolo/utilcss/sheet"
)

// recorder is a Registrar that remembers every CSS block it was handed
type recorder struct {
	calls []string
}

func (r *recorder) Register(cssText string) string {
	r.calls = append(r.calls, cssText)
	return "t" + string(rune('a'+len(r.calls)-1))
}

func static(rules *decl.Rules) UtilityFunc {
	return func(Theme) *decl.Rules { return rules }
}

// bare replaces the default configuration entirely
func bare(cfg Config) ConfigFunc {
	return func(Config) Config { return cfg }
}

func TestStyleWith(t *testing.T) {
	utilities := decl.NewRules().
		Add("rounded", decl.Of("border-radius", "0.25rem")).
		Add("px-4", decl.Of("padding-left", "1rem", "padding-right", "1rem")).
		Add("border", decl.Of("border-width", "1px"))

	tests := []struct {
		name      string
		apply     map[string][]string
		request   string
		important bool
		want      string
		wantCalls []string
	}{
		{
			name:      "empty request still yields normalize token",
			request:   "",
			want:      "ta",
			wantCalls: []string{"margin: 0;"},
		},
		{
			name:      "recognized then passthrough",
			request:   "foo rounded bar",
			want:      "ta tb foo bar",
			wantCalls: []string{"margin: 0;", "border-radius: 0.25rem;"},
		},
		{
			name:      "passthrough only",
			request:   "foo bar",
			want:      "ta foo bar",
			wantCalls: []string{"margin: 0;"},
		},
		{
			name:      "important flag",
			request:   "rounded",
			important: true,
			want:      "ta tb",
			wantCalls: []string{"margin: 0 !important;", "border-radius: 0.25rem !important;"},
		},
		{
			name:      "duplicates are not collapsed",
			request:   "rounded rounded",
			want:      "ta tb tc",
			wantCalls: []string{"margin: 0;", "border-radius: 0.25rem;", "border-radius: 0.25rem;"},
		},
		{
			name:      "alias adds classes and stays as passthrough",
			apply:     map[string][]string{"btn": {"rounded", "px-4"}},
			request:   "btn",
			want:      "ta tb tc btn",
			wantCalls: []string{"margin: 0;", "border-radius: 0.25rem;", "padding-left: 1rem;padding-right: 1rem;"},
		},
		{
			name:      "alias expansion is one level deep",
			apply:     map[string][]string{"btn": {"rounded", "px-4"}, "rounded": {"border"}},
			request:   "btn",
			want:      "ta tb tc btn",
			wantCalls: []string{"margin: 0;", "border-radius: 0.25rem;", "padding-left: 1rem;padding-right: 1rem;"},
		},
		{
			name:      "alias classes follow all requested names",
			apply:     map[string][]string{"btn": {"px-4", "ghost"}},
			request:   "btn rounded extra",
			want:      "ta tb tc btn extra ghost",
			wantCalls: []string{"margin: 0;", "border-radius: 0.25rem;", "padding-left: 1rem;padding-right: 1rem;"},
		},
		{
			name:      "runs of whitespace",
			request:   "  foo \t\n rounded  ",
			want:      "ta tb foo",
			wantCalls: []string{"margin: 0;", "border-radius: 0.25rem;"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{}
			engine := New(bare(Config{
				Normalize: func(Theme) *decl.Tree { return decl.Of("margin", 0) },
				Utilities: []UtilityFunc{static(utilities)},
				Apply:     tt.apply,
			}), WithRegistrar(rec))

			assert.Equal(t, tt.want, engine.StyleWith(tt.request, tt.important))
			assert.Equal(t, tt.wantCalls, rec.calls)
		})
	}
}

func TestStyleWithNestedDeclarations(t *testing.T) {
	rec := &recorder{}
	engine := New(bare(Config{
		Utilities: []UtilityFunc{static(decl.NewRules().
			Add("link", decl.Of("color", "red", "&:hover", decl.Of("color", "blue", "text-decoration", "underline"))))},
	}), WithRegistrar(rec))

	engine.StyleWith("link", false)

	require.Len(t, rec.calls, 2)
	assert.Equal(t, "", rec.calls[0], "empty normalize is still registered")
	assert.Equal(t, "color: red;&:hover { color: blue;text-decoration: underline; }", rec.calls[1])
}

func TestStyleWithIsDeterministic(t *testing.T) {
	build := func() *Engine {
		return New(nil, WithRegistrar(sheet.New()))
	}

	request := "p-4 text-red-500 hover:bg-blue-500 md:p-8 custom"
	first := build().StyleWith(request, false)
	again := build().StyleWith(request, false)

	engine := build()
	assert.Equal(t, first, again)
	assert.Equal(t, engine.StyleWith(request, false), engine.StyleWith(request, false))
	assert.True(t, strings.HasSuffix(first, " custom"))
}

func TestStyleWithDefaultRegistrar(t *testing.T) {
	engine := New(bare(Config{
		Utilities: []UtilityFunc{static(decl.NewRules().Add("block", decl.Of("display", "block")))},
	}))

	s, ok := engine.Registrar().(*sheet.Sheet)
	require.True(t, ok)

	got := engine.StyleWith("block", false)
	assert.Equal(t, s.Token("")+" "+s.Token("display: block;"), got)
	assert.Equal(t, 2, s.Len())
}

func TestCSSForUtility(t *testing.T) {
	engine := New(bare(Config{
		Utilities: []UtilityFunc{static(decl.NewRules().
			Add("link", decl.Of("color", "red", "&:hover", decl.Of("color", "blue"))))},
	}), WithRegistrar(&recorder{}))

	assert.Equal(t, "color: red; &:hover { color: blue; }", engine.CSSForUtility("link", false))
	assert.Equal(t, "color: red !important; &:hover { color: blue !important; }", engine.CSSForUtility("link", true))
	assert.Equal(t, "", engine.CSSForUtility("missing", false))
}

func TestCSSForUtilityDoesNotRegister(t *testing.T) {
	rec := &recorder{}
	engine := New(nil, WithRegistrar(rec))
	require.NotEmpty(t, engine.CSSForUtility("p-4", false))
	assert.Empty(t, rec.calls)
}

func TestNewWithNilConfigFuncUsesDefaults(t *testing.T) {
	engine := New(nil)
	assert.True(t, engine.Utilities().Has("block"))
	assert.True(t, engine.Utilities().Has("hover:bg-red-500"))
	assert.True(t, engine.Utilities().Has("md:p-4"))
	assert.Equal(t, "padding: 1rem;", engine.CSSForUtility("p-4", false))
	assert.Equal(t, "padding-left: 1rem; padding-right: 1rem;", engine.CSSForUtility("px-4", false))
}

func TestConfigFuncReceivesDefaults(t *testing.T) {
	var seen Config
	engine := New(func(base Config) Config {
		seen = base
		base.Prefix = "tw"
		return base
	})

	assert.NotEmpty(t, seen.Utilities)
	assert.Equal(t, "tw", engine.Config().Prefix)
	assert.True(t, engine.Utilities().Has("tw-block"))
	assert.False(t, engine.Utilities().Has("block"))
}

func TestZeroConfigDefaults(t *testing.T) {
	engine := New(bare(Config{}), WithRegistrar(&recorder{}))

	cfg := engine.Config()
	assert.Equal(t, "", cfg.Prefix)
	assert.NotNil(t, cfg.Theme)
	assert.NotNil(t, cfg.Apply)
	require.NotNil(t, cfg.Normalize)
	assert.Equal(t, 0, cfg.Normalize(cfg.Theme).Len())
	assert.Equal(t, 0, engine.Utilities().Len())
}

func TestPartition(t *testing.T) {
	engine := New(bare(Config{
		Utilities: []UtilityFunc{static(decl.NewRules().Add("block", decl.Of("display", "block")))},
		Apply:     map[string][]string{"stack": {"block", "gap"}},
	}), WithRegistrar(&recorder{}))

	recognized, unrecognized := engine.Partition("stack block x")
	assert.Equal(t, []string{"block", "block"}, recognized)
	assert.Equal(t, []string{"stack", "x", "gap"}, unrecognized)
	assert.True(t, engine.IsAlias("stack"))
	assert.False(t, engine.IsAlias("block"))
}

func TestApplyReturnsCopy(t *testing.T) {
	engine := New(bare(Config{Apply: map[string][]string{"btn": {"rounded"}}}), WithRegistrar(&recorder{}))

	apply := engine.Apply()
	apply["other"] = []string{"x"}
	assert.False(t, engine.IsAlias("other"))
}

func TestAliasTableIsImmutableAfterNew(t *testing.T) {
	apply := map[string][]string{"btn": {"block"}}
	engine := New(bare(Config{
		Utilities: []UtilityFunc{static(decl.NewRules().Add("block", decl.Of("display", "block")))},
		Apply:     apply,
	}), WithRegistrar(&recorder{}))

	_, before := engine.Partition("btn x")

	apply["btn"] = nil
	apply["y"] = []string{"block"}
	engine.Config().Apply["x"] = []string{"block"}
	engine.Apply()["btn"][0] = "hidden"

	recognized, unrecognized := engine.Partition("btn x")
	assert.Equal(t, []string{"block"}, recognized)
	assert.Equal(t, before, unrecognized)
	assert.Equal(t, []string{"btn", "x"}, unrecognized)
	assert.False(t, engine.IsAlias("y"))
	assert.Equal(t, []string{"block"}, engine.Config().Apply["btn"])
}

func TestExtend(t *testing.T) {
	extra := static(decl.NewRules().Add("card", decl.Of("padding", "1rem")))
	engine := New(Extend([]UtilityFunc{extra}, nil, map[string][]string{"panel": {"card", "rounded"}}))

	assert.True(t, engine.Utilities().Has("card"))
	assert.True(t, engine.Utilities().Has("block"), "defaults are kept")
	assert.Equal(t, []string{"card", "rounded"}, engine.Apply()["panel"])
}
