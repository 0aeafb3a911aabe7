package utilcss

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yacobolo/utilcss/decl"
)

func TestWriteCheckJSON(t *testing.T) {
	result, err := Check(checkEngine("tw"), []ClassReference{ref("a.templ", 3, 13, "p-4 card")}, CheckConfig{})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteCheckJSON(&buf, result))

	var out JSONCheckOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))

	assert.Equal(t, JSONVersion, out.Version)
	assert.NotEmpty(t, out.Timestamp)
	assert.Equal(t, JSONSummary{TotalIssues: 2, Warnings: 2}, out.Summary)
	assert.Equal(t, result.Stats, out.Stats)
	require.Len(t, out.Issues, 2)
	assert.Equal(t, JSONIssue{
		File:       "a.templ",
		Line:       3,
		Column:     13,
		Severity:   SeverityWarning,
		Message:    `unknown class "p-4", did you mean "tw-p-4"?`,
		Linter:     LinterName,
		Source:     `<div class="p-4 card">`,
		Suggestion: "tw-p-4",
	}, out.Issues[0])
	assert.Contains(t, out.Issues[1].Message, `"card"`)
	assert.Len(t, out.TopUnknown, 2)
}

func TestWriteRegistryJSON(t *testing.T) {
	engine := New(bare(Config{
		Prefix: "tw",
		Utilities: []UtilityFunc{static(decl.NewRules().
			Add("z", decl.Of("z-index", 1, "color", "red")).
			Add("a", decl.Of("display", "block")).
			Add("link", decl.Of("color", "red", "&:hover", decl.Of("color", "blue"))))},
		Apply: map[string][]string{"btn": {"tw-a"}},
	}), WithRegistrar(&recorder{}))

	var buf bytes.Buffer
	require.NoError(t, WriteRegistryJSON(&buf, engine))

	assert.JSONEq(t, `{
		"version": "1.0",
		"prefix": "tw",
		"utilities": [
			{"class": "tw-z", "category": "Layout", "css": "z-index: 1; color: red;", "declarations": {"z-index": "1", "color": "red"}},
			{"class": "tw-a", "category": "Layout", "css": "display: block;", "declarations": {"display": "block"}},
			{"class": "tw-link", "category": "Visual", "css": "color: red; &:hover { color: blue; }", "declarations": {"color": "red", "&:hover": {"color": "blue"}}}
		],
		"apply": {"btn": ["tw-a"]}
	}`, buf.String())

	// declarations keep insertion order
	assert.Contains(t, buf.String(), `"z-index": "1",`)
	// selector keys are not HTML-escaped
	assert.Contains(t, buf.String(), `"&:hover": {`)
}
