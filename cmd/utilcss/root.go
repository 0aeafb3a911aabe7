package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "utilcss",
	Short: "Utility-first class composition for Go templates",
	Long: `Compose utility classes into scoped, deduplicated styles.
Utilities, variants and aliases come from the built-in defaults,
optionally extended by a styles file (utilcss.yaml).`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags (inherited by all subcommands)
	pf := rootCmd.PersistentFlags()
	pf.String("config", defaultConfigFile, "CLI config file path")
	pf.String("styles", defaultStylesFile, "Styles file with theme, utilities, variants and aliases")
	pf.BoolP("verbose", "v", false, "Enable debug logging")
	pf.Bool("quiet", false, "Suppress all output (exit code only)")
	pf.String("color", "auto", "Color output: auto|always|never")
	pf.Lookup("color").NoOptDefVal = "always"
	pf.Bool("important", false, "Append !important to every declaration")
	pf.String("key", "css", "Prefix of generated class tokens")

	rootCmd.AddCommand(styleCmd)
	rootCmd.AddCommand(cssCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(completionCmd)
	rootCmd.AddCommand(versionCmd)
}
