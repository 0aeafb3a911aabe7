package report

import (
	"fmt"
	"io"

	"github.com/yacobolo/utilcss"
)

// VerboseReporter prints statistics and listings
type VerboseReporter struct {
	w         io.Writer
	useColors bool
}

// NewVerboseReporter creates a verbose reporter
func NewVerboseReporter(w io.Writer, useColors bool) *VerboseReporter {
	return &VerboseReporter{
		w:         w,
		useColors: useColors,
	}
}

func (r *VerboseReporter) header(title string) {
	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleCyan, title, r.useColors))
	fmt.Fprintln(r.w, "------------------------")
}

// PrintScanStatistics outputs file discovery counts
func (r *VerboseReporter) PrintScanStatistics(stats utilcss.ScanStats) {
	r.header("Scan Statistics")
	fmt.Fprintf(r.w, "Files Discovered:  %d\n", stats.FilesDiscovered)
	fmt.Fprintf(r.w, "Files Scanned:     %d\n", stats.FilesScanned)
	fmt.Fprintf(r.w, "Files Skipped:     %d\n", stats.FilesSkipped)
	fmt.Fprintf(r.w, "Class Strings:     %d\n", stats.References)
}

// PrintStatistics outputs class usage counts
func (r *VerboseReporter) PrintStatistics(result *utilcss.CheckResult) {
	s := result.Stats
	r.header("Class Statistics")
	fmt.Fprintf(r.w, "Files With Classes: %d\n", s.Files)
	fmt.Fprintf(r.w, "Class Strings:      %d\n", s.References)
	fmt.Fprintf(r.w, "Class Names:        %d\n", s.Classes)
	fmt.Fprintf(r.w, "Utilities:          %d (%.1f%%)\n", s.Recognized, percent(s.Recognized, s.Classes))
	fmt.Fprintf(r.w, "Aliases:            %d\n", s.Aliases)
	fmt.Fprintf(r.w, "Ignored:            %d\n", s.Ignored)
	fmt.Fprintf(r.w, "Unknown:            %d (%d distinct)\n", s.Unknown, s.UniqueUnknown)
}

// PrintTopUnknown lists the most frequent unknown classes
func (r *VerboseReporter) PrintTopUnknown(result *utilcss.CheckResult) {
	if len(result.TopUnknown) == 0 {
		return
	}

	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleYellow, "Most Frequent Unknown Classes", r.useColors))
	fmt.Fprintln(r.w, "-----------------------------")

	for i, u := range result.TopUnknown {
		line := fmt.Sprintf("%d. %q - %s", i+1, u.ClassName, pluralizeCount(u.Occurrences, "occurrence", "occurrences"))
		if u.Suggestion != "" {
			line += " → " + RenderStyle(StyleGreen, u.Suggestion, r.useColors)
		}
		fmt.Fprintln(r.w, line)
	}
}

// PrintGroups lists classes under their category headers
func (r *VerboseReporter) PrintGroups(groups []utilcss.CategoryGroup) {
	for i, group := range groups {
		if i > 0 {
			fmt.Fprintln(r.w, "")
		}
		title := fmt.Sprintf("%s (%d)", group.Category, len(group.Classes))
		fmt.Fprintln(r.w, RenderStyle(StyleCyan, title, r.useColors))
		for _, className := range group.Classes {
			fmt.Fprintf(r.w, "  %s\n", className)
		}
	}
}

func percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}
