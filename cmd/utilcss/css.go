package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var cssCmd = &cobra.Command{
	Use:   "css <class>",
	Short: "Print the declarations of a single utility",
	Args:  cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.ErrOrStderr())
		if err != nil {
			return err
		}

		className := args[0]
		if !a.engine.Utilities().Has(className) {
			return fmt.Errorf("unknown class %q", className)
		}
		fmt.Fprintln(cmd.OutOrStdout(), a.engine.CSSForUtility(className, a.settings.Important))
		return nil
	},
}
