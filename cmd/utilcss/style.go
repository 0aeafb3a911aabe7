package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var styleCmd = &cobra.Command{
	Use:   "style [classes...]",
	Short: "Print the scoped class string for a list of classes",
	Long: `Resolve classes the way StyleWith does: the normalize token, one token per
known utility, then every unknown class unchanged.`,
	Example: `  utilcss style p-4 hover:bg-red-500 card
  utilcss style --css "btn md:p-8"`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runStyle,
}

func init() {
	styleCmd.Flags().Bool("css", false, "Also print the stylesheet for the result")
}

func runStyle(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, a.engine.StyleWith(strings.Join(args, " "), a.settings.Important))

	if getBoolWithFallback("css", "style.css", false) {
		fmt.Fprintln(out)
		if _, err := a.sheet.WriteTo(out); err != nil {
			return fmt.Errorf("writing stylesheet: %w", err)
		}
	}
	return nil
}
