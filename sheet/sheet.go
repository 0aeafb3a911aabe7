// Package sheet implements a scoped style registrar: it turns raw CSS
// declaration text into stable class tokens and renders the registered
// blocks as a stylesheet.
package sheet

import (
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/elliotchance/orderedmap/v3"
	"go.uber.org/zap"
)

// DefaultKey prefixes every token unless WithKey says otherwise.
const DefaultKey = "css"

// Rule is one registered CSS block.
type Rule struct {
	Token string // "css-1x2y3z"
	CSS   string // Declaration text as registered
}

// Option configures a Sheet.
type Option func(*Sheet)

// WithLogger sets the logger used for registration diagnostics.
func WithLogger(log *zap.Logger) Option {
	return func(s *Sheet) {
		if log != nil {
			s.log = log.Named("sheet")
		}
	}
}

// WithKey sets the token prefix.
func WithKey(key string) Option {
	return func(s *Sheet) {
		if key != "" {
			s.key = key
		}
	}
}

// Sheet collects CSS blocks keyed by a hash of their text.
// Registering the same text twice yields the same token and stores it once.
// A Sheet is safe for concurrent use.
type Sheet struct {
	mu    sync.Mutex
	rules *orderedmap.OrderedMap[string, string] // token -> css
	key   string
	log   *zap.Logger
}

// New creates an empty sheet.
func New(opts ...Option) *Sheet {
	s := &Sheet{
		rules: orderedmap.NewOrderedMap[string, string](),
		key:   DefaultKey,
		log:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Token returns the token cssText would be registered under, without
// registering it.
func (s *Sheet) Token(cssText string) string {
	return s.key + "-" + strconv.FormatUint(xxhash.Sum64String(normalizeSpace(cssText)), 36)
}

// Register stores cssText and returns its token.
func (s *Sheet) Register(cssText string) string {
	cssText = normalizeSpace(cssText)
	token := s.Token(cssText)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.rules.Has(token) {
		return token
	}
	s.rules.Set(token, cssText)
	s.log.Debug("registered style", zap.String("token", token), zap.Int("bytes", len(cssText)))

	return token
}

// Len returns the number of distinct registered blocks.
func (s *Sheet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rules.Len()
}

// Rules returns the registered blocks in first-registration order.
func (s *Sheet) Rules() []Rule {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Rule, 0, s.rules.Len())
	for token, css := range s.rules.AllFromFront() {
		out = append(out, Rule{Token: token, CSS: css})
	}
	return out
}

// WriteTo renders all registered blocks as a stylesheet.
func (s *Sheet) WriteTo(w io.Writer) (int64, error) {
	var b strings.Builder
	for _, rule := range s.Rules() {
		writeBlocks(&b, Flatten("."+rule.Token, rule.CSS))
	}
	n, err := io.WriteString(w, b.String())
	return int64(n), err
}

// String returns the rendered stylesheet.
func (s *Sheet) String() string {
	var b strings.Builder
	_, _ = s.WriteTo(&b)
	return b.String()
}

// normalizeSpace trims the text so that formatting differences at the edges
// do not produce distinct tokens.
func normalizeSpace(cssText string) string {
	return strings.TrimSpace(cssText)
}
