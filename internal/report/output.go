package report

import (
	"fmt"
	"io"

	"github.com/yacobolo/utilcss"
)

// OutputFormat represents the check output format
type OutputFormat string

const (
	// OutputIssues shows issues in golangci-lint format (CI-friendly)
	OutputIssues OutputFormat = "issues"
	// OutputSummary shows statistics and the most frequent unknown classes
	OutputSummary OutputFormat = "summary"
	// OutputJSON exports structured data for tooling
	OutputJSON OutputFormat = "json"
)

// ParseOutputFormat validates a --output-format value. Empty selects
// OutputIssues.
func ParseOutputFormat(value string) (OutputFormat, error) {
	switch OutputFormat(value) {
	case "", OutputIssues:
		return OutputIssues, nil
	case OutputSummary, OutputJSON:
		return OutputFormat(value), nil
	default:
		return "", fmt.Errorf("unknown output format %q (want issues, summary or json)", value)
	}
}

// WriteCheck writes a check result in the given format. Scan statistics
// are included by the summary format only.
func WriteCheck(w io.Writer, result *utilcss.CheckResult, stats utilcss.ScanStats, format OutputFormat, opts Options) error {
	switch format {
	case OutputJSON:
		return utilcss.WriteCheckJSON(w, result)

	case OutputSummary:
		verbose := NewVerboseReporter(w, ShouldUseColors(opts.Color))
		verbose.PrintScanStatistics(stats)
		verbose.PrintStatistics(result)
		verbose.PrintTopUnknown(result)
		return nil

	default:
		reporter := NewReporter(w, opts)
		reporter.PrintIssues(result.Issues)
		reporter.PrintSummary(result)
		return nil
	}
}
