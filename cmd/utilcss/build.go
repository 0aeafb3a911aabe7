package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/yacobolo/utilcss"
	"github.com/yacobolo/utilcss/internal/report"
	"github.com/yacobolo/utilcss/internal/watch"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Write the stylesheet for every class string in your templates",
	Long: `Scan templates for class strings, resolve each one and write the resulting
stylesheet. Use --output - to write to stdout.

--check compares the stylesheet with the file on disk instead of writing it
and fails with a diff when they differ. --watch rebuilds whenever a scanned
template or the styles file changes.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runBuild,
}

func init() {
	f := buildCmd.Flags()
	f.StringSlice("paths", defaultScanPaths, "File patterns to scan for class strings")
	f.StringP("output", "o", "utilcss.css", "Stylesheet path, or - for stdout")
	f.Bool("check", false, "Fail if the stylesheet on disk is out of date")
	f.Bool("watch", false, "Rebuild when templates or the styles file change")
}

func runBuild(cmd *cobra.Command, _ []string) error {
	// "check" is also the check command's config section, so the flag is
	// read directly rather than through koanf
	check, _ := cmd.Flags().GetBool("check")
	if !cmd.Flags().Changed("check") {
		check = k.Bool("build.check")
	}
	watching := getBoolWithFallback("watch", "build.watch", false)
	if check && watching {
		return errors.New("--check and --watch cannot be combined")
	}

	if err := buildOnce(cmd, check); err != nil {
		return err
	}
	if !watching {
		return nil
	}
	return watchAndBuild(cmd)
}

// buildOnce scans, resolves and writes (or checks) the stylesheet.
func buildOnce(cmd *cobra.Command, check bool) error {
	a, err := newApp(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	refs, stats, err := utilcss.ScanFiles(scanPaths("build"), a.log)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	for _, ref := range refs {
		a.engine.StyleWith(ref.ClassValue, a.settings.Important)
	}

	var css bytes.Buffer
	if _, err := a.sheet.WriteTo(&css); err != nil {
		return fmt.Errorf("rendering stylesheet: %w", err)
	}

	output := getStringWithFallback("output", "build.output", "utilcss.css")
	if check {
		return checkOutput(cmd, a, output, css.String())
	}

	summary := cmd.OutOrStdout()
	if output == "-" {
		summary = cmd.ErrOrStderr()
		if _, err := css.WriteTo(cmd.OutOrStdout()); err != nil {
			return fmt.Errorf("writing stylesheet: %w", err)
		}
	} else if err := writeSheet(output, &css); err != nil {
		return err
	}

	a.log.Debug("build complete", zap.String("output", output), zap.Int("rules", a.sheet.Len()))

	if !a.settings.Quiet {
		fmt.Fprintf(summary, "Wrote %d rules to %s\n", a.sheet.Len(), output)
		fmt.Fprintf(summary, "  Files scanned: %d\n", stats.FilesScanned)
		fmt.Fprintf(summary, "  Class strings: %d\n", stats.References)
	}
	return nil
}

// checkOutput compares want with the stylesheet at path and prints a diff
// when they differ.
func checkOutput(cmd *cobra.Command, a *app, path, want string) error {
	if path == "-" {
		return errors.New("--check needs an output file")
	}

	// #nosec G304 - path comes from the command line
	current, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("reading stylesheet: %w", err)
	}

	out := cmd.OutOrStdout()
	if a.settings.Quiet {
		out = io.Discard
	}

	useColors := report.ShouldUseColors(buildReportOptions().Color)
	if !report.WriteDiff(out, string(current), want, useColors) {
		fmt.Fprintf(out, "%s is up to date\n", path)
		return nil
	}
	return fmt.Errorf("%s is out of date, run utilcss build", path)
}

// watchAndBuild rebuilds on every change until the command is cancelled.
// Rebuild failures are logged and watching continues.
func watchAndBuild(cmd *cobra.Command) error {
	s := buildSettings()
	log := newLogger(cmd.ErrOrStderr(), s.Verbose, s.Quiet)

	w, err := watch.New(watch.DefaultConfig(scanPaths("build"), s.Styles), log)
	if err != nil {
		return err
	}
	changes, err := w.Start()
	if err != nil {
		return multierr.Append(err, w.Stop())
	}

	if !s.Quiet {
		fmt.Fprintln(cmd.ErrOrStderr(), "Watching for changes (Ctrl+C to stop)")
	}

	ctx := cmd.Context()
	for {
		select {
		case <-ctx.Done():
			return w.Stop()
		case <-changes:
			if err := buildOnce(cmd, false); err != nil {
				log.Error("rebuild failed", zap.Error(err))
			}
		}
	}
}

func writeSheet(path string, w io.WriterTo) (err error) {
	// #nosec G304 - path comes from the command line
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating stylesheet: %w", err)
	}
	defer func() {
		err = multierr.Append(err, f.Close())
	}()

	if _, err = w.WriteTo(f); err != nil {
		return fmt.Errorf("writing stylesheet: %w", err)
	}
	return nil
}
