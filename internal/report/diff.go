package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// WriteDiff writes the lines that differ between oldText and newText,
// "-" for removed and "+" for added. Unchanged lines are omitted.
// It reports whether anything differed.
func WriteDiff(w io.Writer, oldText, newText string, useColors bool) bool {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(oldText, newText)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	changed := false
	for _, d := range diffs {
		var prefix string
		var style lipgloss.Style
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix, style = "-", StyleRed
		case diffmatchpatch.DiffInsert:
			prefix, style = "+", StyleGreen
		default:
			continue
		}

		changed = true
		for _, line := range strings.Split(strings.TrimSuffix(d.Text, "\n"), "\n") {
			fmt.Fprintln(w, RenderStyle(style, prefix+" "+line, useColors))
		}
	}
	return changed
}
