package decl

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsSelectorKey(t *testing.T) {
	tests := []struct {
		key  string
		want bool
	}{
		{key: "color", want: false},
		{key: "-webkit-appearance", want: false},
		{key: "&:hover", want: true},
		{key: "& > *", want: true},
		{key: "@media (min-width: 640px)", want: true},
		{key: "@supports (display: grid)", want: true},
		{key: ".child &", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.want, IsSelectorKey(tt.key))
		})
	}
}

func TestSerialize(t *testing.T) {
	tests := []struct {
		name      string
		tree      *Tree
		important bool
		want      []string
	}{
		{
			name: "empty tree",
			tree: New(),
			want: []string{},
		},
		{
			name: "single leaf",
			tree: Of("display", "block"),
			want: []string{"display: block;"},
		},
		{
			name: "leaf before nested",
			tree: Of("color", "red", "&:hover", Of("color", "blue")),
			want: []string{"color: red;", "&:hover { color: blue; }"},
		},
		{
			name:      "important reaches nested leaves",
			tree:      Of("color", "red", "&:hover", Of("color", "blue")),
			important: true,
			want:      []string{"color: red !important;", "&:hover { color: blue !important; }"},
		},
		{
			name: "nested fragments concatenated",
			tree: Of("@media (min-width: 640px)", Of("padding", "1rem", "margin", 0)),
			want: []string{"@media (min-width: 640px) { padding: 1rem;margin: 0; }"},
		},
		{
			name: "deep nesting",
			tree: Of("@media print", Of("&:hover", Of("color", "black"))),
			want: []string{"@media print { &:hover { color: black; } }"},
		},
		{
			name: "insertion order kept",
			tree: Of("z-index", 10, "align-items", "center", "opacity", 0.5),
			want: []string{"z-index: 10;", "align-items: center;", "opacity: 0.5;"},
		},
		{
			name: "values passed through verbatim",
			tree: Of("content", `"\201C"`, "grid-template-columns", "repeat(2, 1fr)"),
			want: []string{`content: "\201C";`, "grid-template-columns: repeat(2, 1fr);"},
		},
		{
			name: "scalar under selector key renders empty block",
			tree: Of("&:focus", "oops"),
			want: []string{"&:focus {  }"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Serialize(tt.tree, tt.important))
		})
	}
}

func TestSerializeNilTree(t *testing.T) {
	assert.Empty(t, Serialize(nil, false))
}

func TestTreeSetReplacesInPlace(t *testing.T) {
	tree := Of("color", "red", "padding", "1rem")
	tree.Set("color", "blue")

	require.Equal(t, []string{"color", "padding"}, tree.Keys())
	node, ok := tree.Get("color")
	require.True(t, ok)
	assert.Equal(t, "blue", node.Value)
	assert.False(t, node.IsBlock())
}

func TestOfPanicsOnOddArguments(t *testing.T) {
	assert.Panics(t, func() { Of("color") })
	assert.Panics(t, func() { Of(1, "red") })
}

func TestTreeString(t *testing.T) {
	tree := Of("color", "red", "&:hover", Of("color", "blue"))
	assert.Equal(t, "color: red; &:hover { color: blue; }", tree.String())
}

func TestRulesLastWriteWins(t *testing.T) {
	rules := NewRules()
	assert.True(t, rules.Set("text-lg", Of("font-size", "1.125rem")))
	assert.True(t, rules.Set("block", Of("display", "block")))
	assert.False(t, rules.Set("text-lg", Of("font-size", "1.25rem")))

	assert.Equal(t, []string{"text-lg", "block"}, rules.Names())
	tree, ok := rules.Get("text-lg")
	require.True(t, ok)
	assert.Equal(t, "font-size: 1.25rem;", strings.Join(Serialize(tree, false), " "))
}

func TestNilRulesAreEmpty(t *testing.T) {
	var rules *Rules
	assert.Equal(t, 0, rules.Len())
	assert.False(t, rules.Has("x"))
	assert.Empty(t, rules.Names())
}
