package utilcss

import (
	"strings"

	"go.uber.org/zap"

	"github.com/yacobolo/utilcss/decl"
	"github.com/yacobolo/utilcss/sheet"
)

// Engine resolves requested class names against a utility registry.
// It is immutable after New and safe for concurrent use when its
// Registrar is.
type Engine struct {
	config    Config
	registry  *Registry
	registrar Registrar
	log       *zap.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger for build and resolve diagnostics.
func WithLogger(log *zap.Logger) Option {
	return func(e *Engine) {
		if log != nil {
			e.log = log
		}
	}
}

// WithRegistrar sets the registrar StyleWith hands CSS text to.
// Without it every engine gets its own sheet.Sheet.
func WithRegistrar(r Registrar) Option {
	return func(e *Engine) {
		e.registrar = r
	}
}

// New builds an engine from DefaultConfig transformed by fn.
// A nil fn uses the default configuration unchanged.
func New(fn ConfigFunc, opts ...Option) *Engine {
	e := &Engine{log: zap.NewNop()}
	for _, opt := range opts {
		opt(e)
	}
	if e.registrar == nil {
		e.registrar = sheet.New(sheet.WithLogger(e.log))
	}
	e.log = e.log.Named("engine")

	cfg := DefaultConfig()
	if fn != nil {
		cfg = fn(cfg)
	}
	e.config = cfg.withDefaults()
	e.config.Apply = cloneApply(e.config.Apply)
	e.registry = buildRegistry(e.config, e.log)

	return e
}

// Config returns the resolved configuration. Its alias table is a copy.
func (e *Engine) Config() Config {
	cfg := e.config
	cfg.Apply = cloneApply(e.config.Apply)
	return cfg
}

// Utilities returns the class registry.
func (e *Engine) Utilities() *Registry {
	return e.registry
}

// Registrar returns the registrar used by StyleWith.
func (e *Engine) Registrar() Registrar {
	return e.registrar
}

// Apply returns a copy of the alias table.
func (e *Engine) Apply() map[string][]string {
	return cloneApply(e.config.Apply)
}

// IsAlias reports whether name is a key of the alias table.
func (e *Engine) IsAlias(name string) bool {
	_, ok := e.config.Apply[name]
	return ok
}

// CSSForUtility returns the serialized declarations of a registered class,
// or "" when className is not registered. The registrar is not involved.
func (e *Engine) CSSForUtility(className string, important bool) string {
	tree, ok := e.registry.Get(className)
	if !ok {
		return ""
	}
	return strings.Join(decl.Serialize(tree, important), " ")
}

// Partition splits classNames, appends the classes contributed by aliases,
// and separates registered utilities from everything else. Both results keep
// encounter order and duplicates.
func (e *Engine) Partition(classNames string) (recognized, unrecognized []string) {
	classList := strings.Fields(classNames)
	classList = append(classList, expandApply(classList, e.config.Apply)...)

	for _, className := range classList {
		if e.registry.Has(className) {
			recognized = append(recognized, className)
		} else {
			unrecognized = append(unrecognized, className)
		}
	}
	return recognized, unrecognized
}

// StyleWith resolves a whitespace-separated list of class names into the
// class string to render: the normalize token, one registrar token per
// recognized utility, then the unrecognized names verbatim.
func (e *Engine) StyleWith(classNames string, important bool) string {
	normalizeClass := e.registrar.Register(e.serialize(e.config.Normalize(e.config.Theme), important))

	recognized, unrecognized := e.Partition(classNames)

	tokens := make([]string, 0, len(recognized))
	for _, className := range recognized {
		tree, _ := e.registry.Get(className)
		tokens = append(tokens, e.registrar.Register(e.serialize(tree, important)))
	}

	e.log.Debug("resolved classes",
		zap.String("request", classNames),
		zap.Int("recognized", len(recognized)),
		zap.Int("passthrough", len(unrecognized)))

	segments := []string{normalizeClass}
	if len(tokens) > 0 {
		segments = append(segments, strings.Join(tokens, " "))
	}
	if len(unrecognized) > 0 {
		segments = append(segments, strings.Join(unrecognized, " "))
	}
	return strings.TrimSpace(strings.Join(segments, " "))
}

func (e *Engine) serialize(tree *decl.Tree, important bool) string {
	return strings.Join(decl.Serialize(tree, important), "")
}
