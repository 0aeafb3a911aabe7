package utilcss

import "github.com/yacobolo/utilcss/sheet"

// Registrar turns CSS declaration text into a class token that can be
// placed in a class attribute. Implementations may deduplicate identical
// text; the engine does not rely on it.
type Registrar interface {
	Register(cssText string) string
}

// RegistrarFunc adapts a function to Registrar.
type RegistrarFunc func(cssText string) string

// Register calls f(cssText).
func (f RegistrarFunc) Register(cssText string) string {
	return f(cssText)
}

var _ Registrar = (*sheet.Sheet)(nil)
