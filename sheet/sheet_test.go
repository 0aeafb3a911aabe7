package sheet

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestRegisterIsDeterministicAndDeduplicates(t *testing.T) {
	s := New()

	first := s.Register("color: red;")
	second := s.Register("color: red;")
	other := s.Register("color: blue;")

	assert.Equal(t, first, second)
	assert.NotEqual(t, first, other)
	assert.True(t, strings.HasPrefix(first, "css-"))
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, first, New().Register("color: red;"), "tokens must not depend on sheet state")
}

func TestRegisterEmptyText(t *testing.T) {
	s := New()
	token := s.Register("")
	assert.NotEmpty(t, token)
	assert.Empty(t, s.String(), "empty blocks render nothing")
}

func TestWithKey(t *testing.T) {
	s := New(WithKey("tw"))
	assert.True(t, strings.HasPrefix(s.Register("display: block;"), "tw-"))
}

func TestTokenMatchesRegister(t *testing.T) {
	s := New()
	assert.Equal(t, s.Token("display: flex;"), s.Register("display: flex;"))
	assert.Equal(t, 1, s.Len())
}

func TestRulesKeepRegistrationOrder(t *testing.T) {
	s := New()
	a := s.Register("display: block;")
	b := s.Register("display: flex;")
	s.Register("display: block;")

	rules := s.Rules()
	require.Len(t, rules, 2)
	assert.Equal(t, a, rules[0].Token)
	assert.Equal(t, b, rules[1].Token)
	assert.Equal(t, "display: flex;", rules[1].CSS)
	assert.Equal(t, 2, s.Len())
}

func TestWriteTo(t *testing.T) {
	s := New()
	token := s.Register("color: red;&:hover { color: blue; }@media (min-width: 640px) { padding: 1rem; }")

	var b strings.Builder
	n, err := s.WriteTo(&b)
	require.NoError(t, err)
	assert.Equal(t, int64(b.Len()), n)

	want := "." + token + " {\n  color: red;\n}\n" +
		"." + token + ":hover {\n  color: blue;\n}\n" +
		"@media (min-width: 640px) {\n  ." + token + " {\n    padding: 1rem;\n  }\n}\n"
	assert.Equal(t, want, b.String())
}

func TestRegisterConcurrent(t *testing.T) {
	s := New()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Register("margin: 0;")
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, s.Len())
}

func TestRegisterLogsNewBlocksOnly(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	s := New(WithLogger(zap.New(core)))

	s.Register("margin: 0;")
	s.Register("margin: 0;")

	entries := logs.FilterMessage("registered style").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "sheet", entries[0].LoggerName)
}
