package sheet

import (
	"slices"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// Block is a flat CSS rule: a selector, the at-rules wrapping it (outermost
// first) and its declarations.
type Block struct {
	AtRules      []string // ["@media (min-width: 640px)"]
	Selector     string   // ".css-1x2y:hover"
	Declarations []string // ["color: blue;"]
}

// frame tracks one open brace while flattening
type frame struct {
	selector string
	atRules  []string
	block    int // index into the output slice
}

// Flatten resolves nested blocks in cssText against selector. Nested
// selectors containing '&' substitute the parent selector for it; others
// are treated as descendants. At-rule blocks keep the parent selector and
// wrap everything inside them.
//
// Blocks are returned in the order their braces open, so a parent always
// precedes its children. Blocks without declarations are kept; callers
// decide whether to skip them.
func Flatten(selector, cssText string) []Block {
	blocks := []Block{{Selector: selector}}
	stack := []frame{{selector: selector, block: 0}}

	var buf strings.Builder
	flushDeclaration := func() {
		decl := strings.TrimSpace(buf.String())
		buf.Reset()
		if decl == "" {
			return
		}
		top := stack[len(stack)-1]
		blocks[top.block].Declarations = append(blocks[top.block].Declarations, decl+";")
	}

	lexer := css.NewLexer(parse.NewInputString(cssText))
	for {
		tt, text := lexer.Next()
		switch tt {
		case css.ErrorToken:
			// EOF, or the lexer gave up; keep what we have
			flushDeclaration()
			return blocks

		case css.LeftBraceToken:
			prelude := strings.TrimSpace(buf.String())
			buf.Reset()

			parent := stack[len(stack)-1]
			next := frame{selector: parent.selector, atRules: parent.atRules}
			if strings.HasPrefix(prelude, "@") {
				next.atRules = append(slices.Clone(parent.atRules), prelude)
			} else {
				next.selector = resolveSelector(prelude, parent.selector)
			}
			next.block = len(blocks)
			blocks = append(blocks, Block{AtRules: next.atRules, Selector: next.selector})
			stack = append(stack, next)

		case css.RightBraceToken:
			flushDeclaration()
			if len(stack) > 1 {
				stack = stack[:len(stack)-1]
			}

		case css.SemicolonToken:
			flushDeclaration()

		case css.WhitespaceToken:
			if buf.Len() > 0 {
				buf.WriteByte(' ')
			}

		case css.CommentToken:
			continue

		default:
			buf.Write(text)
		}
	}
}

// resolveSelector combines a nested selector list with its parent list.
func resolveSelector(nested, parent string) string {
	if nested == "" {
		return parent
	}

	var out []string
	for _, p := range splitSelectorList(parent) {
		for _, n := range splitSelectorList(nested) {
			if strings.Contains(n, "&") {
				out = append(out, strings.ReplaceAll(n, "&", p))
			} else {
				out = append(out, p+" "+n)
			}
		}
	}
	return strings.Join(out, ", ")
}

// splitSelectorList splits on top-level commas, leaving ":is(a, b)" intact.
func splitSelectorList(list string) []string {
	var parts []string
	depth, start := 0, 0
	for i, r := range list {
		switch r {
		case '(', '[':
			depth++
		case ')', ']':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, strings.TrimSpace(list[start:i]))
				start = i + 1
			}
		}
	}
	return append(parts, strings.TrimSpace(list[start:]))
}

// writeBlocks renders non-empty blocks with two-space indentation.
func writeBlocks(b *strings.Builder, blocks []Block) {
	for _, block := range blocks {
		if len(block.Declarations) == 0 {
			continue
		}

		indent := ""
		for _, at := range block.AtRules {
			b.WriteString(indent + at + " {\n")
			indent += "  "
		}

		b.WriteString(indent + block.Selector + " {\n")
		for _, decl := range block.Declarations {
			b.WriteString(indent + "  " + decl + "\n")
		}
		b.WriteString(indent + "}\n")

		for i := len(block.AtRules) - 1; i >= 0; i-- {
			indent = indent[:len(indent)-2]
			b.WriteString(indent + "}\n")
		}
	}
}
