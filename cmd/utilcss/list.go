package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/yacobolo/utilcss"
	"github.com/yacobolo/utilcss/internal/report"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered utilities and aliases",
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runList,
}

func init() {
	f := listCmd.Flags()
	f.Bool("group", false, "Group utilities by property category")
	f.Bool("aliases", false, "List apply aliases instead of utilities")
	f.String("output-format", "text", "Output format: text|json")
}

func runList(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	switch format := getStringWithFallback("output-format", "list.output-format", "text"); format {
	case "json":
		return utilcss.WriteRegistryJSON(out, a.engine)
	case "text":
	default:
		return fmt.Errorf("unknown output format %q (want text or json)", format)
	}

	if getBoolWithFallback("aliases", "list.aliases", false) {
		apply := a.engine.Apply()
		aliases := make([]string, 0, len(apply))
		for alias := range apply {
			aliases = append(aliases, alias)
		}
		sort.Strings(aliases)
		for _, alias := range aliases {
			fmt.Fprintf(out, "%s: %v\n", alias, apply[alias])
		}
		return nil
	}

	if getBoolWithFallback("group", "list.group", false) {
		useColors := report.ShouldUseColors(buildReportOptions().Color)
		report.NewVerboseReporter(out, useColors).PrintGroups(utilcss.GroupByCategory(a.engine.Utilities()))
		return nil
	}

	for _, name := range a.engine.Utilities().Names() {
		fmt.Fprintln(out, name)
	}
	return nil
}
