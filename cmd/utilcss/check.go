package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yacobolo/utilcss"
	"github.com/yacobolo/utilcss/internal/report"
)

// errIssuesFound fails check --strict after the issues were printed
var errIssuesFound = errors.New("issues found")

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Report classes in templates that are neither utilities nor aliases",
	Long: `Scan templates for class strings and report every class name the engine
does not know. Unknown classes are passed through by StyleWith, so they are
warnings unless --strict is set.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runCheck,
}

func init() {
	f := checkCmd.Flags()
	f.StringSlice("paths", defaultScanPaths, "File patterns to scan for class strings")
	f.StringSlice("ignore", nil, "Class name patterns never reported (e.g. js-*)")
	f.Bool("strict", false, "Exit 1 on any issue (CI mode)")
	f.String("output-format", "", "Output format: issues|summary|json")
	f.Int("max-issues", 0, "Max issues to show (0=unlimited)")
	f.Int("max-same-issues", 0, "Max repeated issues to show (0=unlimited)")
	f.Bool("print-lines", true, "Show source lines with issues")
	f.Bool("print-linter-name", true, "Show (utilcss) suffix on issues")
}

func runCheck(cmd *cobra.Command, _ []string) error {
	format, err := report.ParseOutputFormat(getStringWithFallback("output-format", "check.output-format", ""))
	if err != nil {
		return err
	}

	a, err := newApp(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	refs, stats, err := utilcss.ScanFiles(scanPaths("check"), a.log)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	result, err := utilcss.Check(a.engine, refs, buildCheckConfig())
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	if !a.settings.Quiet {
		if err := report.WriteCheck(cmd.OutOrStdout(), result, stats, format, buildReportOptions()); err != nil {
			return err
		}
	}

	if getBoolWithFallback("strict", "check.strict", false) && len(result.Issues) > 0 {
		return errIssuesFound
	}
	return nil
}
