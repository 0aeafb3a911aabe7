package configfile

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"
	"go.uber.org/multierr"

	"github.com/yacobolo/utilcss"
	"github.com/yacobolo/utilcss/decl"
)

// Values is the data available to templates. Key and Value are set for
// entries generated with "each".
type Values struct {
	Key   string
	Value string
	Theme utilcss.Theme
}

// renderer expands templates against one theme
type renderer struct {
	funcMap template.FuncMap
	values  Values
}

func newRenderer(theme utilcss.Theme) *renderer {
	// slim-sprig functions plus a theme lookup
	funcMap := sprig.TxtFuncMap()
	funcMap["theme"] = func(path string) (any, error) {
		v, ok := theme.Lookup(path)
		if !ok {
			return nil, fmt.Errorf("theme has no value at %q", path)
		}
		return v, nil
	}

	return &renderer{funcMap: funcMap, values: Values{Theme: theme}}
}

// with returns a renderer for one scale entry
func (r *renderer) with(entry utilcss.ScaleEntry) *renderer {
	next := *r
	next.values.Key = entry.Key
	next.values.Value = entry.Value
	return &next
}

// expand renders text, returning it unchanged when it holds no action
func (r *renderer) expand(name, text string) (string, error) {
	if !strings.Contains(text, "{{") {
		return text, nil
	}

	tmpl, err := template.New(name).Funcs(r.funcMap).Option("missingkey=error").Parse(text)
	if err != nil {
		return "", err
	}

	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, r.values); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// tree renders every key and leaf value of src into a new tree
func (r *renderer) tree(src *decl.Tree) (*decl.Tree, error) {
	out := decl.New()
	for key, node := range src.All() {
		k, err := r.expand(key, key)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", key, err)
		}

		if node.IsBlock() {
			nested, err := r.tree(node.Block)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", k, err)
			}
			out.Set(k, nested)
			continue
		}

		v, err := r.expand(key, node.Value)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", k, err)
		}
		out.Set(k, v)
	}
	return out, nil
}

// rules renders every tree of src into dst. Classes that fail to render
// are skipped and their errors combined.
func (r *renderer) rules(dst, src *decl.Rules) error {
	var errs error
	for name, tree := range src.All() {
		rendered, err := r.tree(tree)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("class %q: %w", name, err))
			continue
		}
		dst.Set(name, rendered)
	}
	return errs
}
