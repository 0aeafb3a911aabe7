package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate default .utilcss.yaml and utilcss.yaml files",
	Long: `Create the CLI configuration (.utilcss.yaml) and an example styles file
(utilcss.yaml) in the current directory.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		force, _ := cmd.Flags().GetBool("force")

		files := []struct {
			path    string
			content string
		}{
			{path: defaultConfigFile, content: defaultConfig},
			{path: defaultStylesFile, content: defaultStyles},
		}

		for _, f := range files {
			if _, err := os.Stat(f.path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", f.path)
			}
		}

		for _, f := range files {
			if err := os.WriteFile(f.path, []byte(f.content), 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", f.path, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", f.path)
		}
		return nil
	},
}

const defaultConfig = `# utilcss CLI configuration
# Flags override these values, UTILCSS_* environment variables override the file.

styles: utilcss.yaml
key: css
important: false
verbose: false

build:
  paths:
    - "**/*.templ"
  output: utilcss.css

check:
  paths:
    - "**/*.templ"
  ignore:
    - "js-*"
  strict: false
  output-format: issues    # issues | summary | json
  max-issues: 0            # 0 = unlimited
  max-same-issues: 0       # 0 = unlimited
  print-lines: true
  print-linter-name: true
`

const defaultStyles = `# utilcss styles
# Values are Go templates with sprig functions and theme "path.to.value".

# prefix: tw
# defaults: false          # drop the built-in utilities, variants and aliases

theme:
  colors:
    brand:
      DEFAULT: "#2563eb"
      light: "#60a5fa"

utilities:
  - rules:
      card:
        padding: '{{ theme "spacing.4" }}'
        border-radius: '{{ theme "borderRadius.md" }}'
        background-color: '{{ theme "colors.white" }}'
  - each: colors
    class: 'border-{{ .Key }}'
    declarations:
      border-color: '{{ .Value }}'

variants:
  - name: hover
    selector: '&:hover'
    match: ["border-*"]

apply:
  btn: [rounded, px-4, py-2, bg-brand, text-white]
`

func init() {
	initCmd.Flags().Bool("force", false, "Overwrite existing files")
}
