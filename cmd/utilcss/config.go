package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"

	"github.com/yacobolo/utilcss"
	"github.com/yacobolo/utilcss/internal/report"
	"github.com/yacobolo/utilcss/sheet"
)

const (
	defaultConfigFile = ".utilcss.yaml"
	defaultStylesFile = "utilcss.yaml"
)

var defaultScanPaths = []string{"**/*.templ", "**/*.html"}

var k = koanf.New(".")

// loadConfig loads configuration with precedence: flags > env > file > defaults.
// It must be called after cobra parses flags (in PreRunE or RunE).
func loadConfig(cmd *cobra.Command) error {
	k = koanf.New(".")

	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = defaultConfigFile
	}

	if err := loadConfigFromPath(configPath); err != nil {
		return err
	}

	// Only flags the user set; defaults live in the get*WithFallback calls
	// so they do not shadow the config file.
	if err := k.Load(posflag.Provider(cmd.Flags(), ".", nil), nil); err != nil {
		return fmt.Errorf("loading command flags: %w", err)
	}

	return nil
}

// loadConfigFromPath loads configuration from a file and environment variables.
func loadConfigFromPath(configPath string) error {
	if _, err := os.Stat(configPath); err == nil {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return fmt.Errorf("loading config file %s: %w", configPath, err)
		}
	}

	// UTILCSS_CHECK_STRICT -> check.strict, UTILCSS_VERBOSE -> verbose
	if err := k.Load(env.Provider("UTILCSS_", ".", func(s string) string {
		return strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(s, "UTILCSS_")),
			"_", ".",
		)
	}), nil); err != nil {
		return fmt.Errorf("loading environment variables: %w", err)
	}

	return nil
}

// settings are the options shared by every engine command
type settings struct {
	Styles    string
	Key       string
	Important bool
	Verbose   bool
	Quiet     bool
}

func buildSettings() settings {
	return settings{
		Styles:    getStringWithFallback("styles", "styles", defaultStylesFile),
		Key:       getStringWithFallback("key", "key", sheet.DefaultKey),
		Important: getBoolWithFallback("important", "important", false),
		Verbose:   getBoolWithFallback("verbose", "verbose", false),
		Quiet:     getBoolWithFallback("quiet", "quiet", false),
	}
}

// buildCheckConfig constructs the library's CheckConfig from koanf state.
func buildCheckConfig() utilcss.CheckConfig {
	return utilcss.CheckConfig{
		Ignore:        getStringsWithFallback("ignore", "check.ignore", nil),
		MaxIssues:     getIntWithFallback("max-issues", "check.max-issues", 0),
		MaxSameIssues: getIntWithFallback("max-same-issues", "check.max-same-issues", 0),
	}
}

// buildReportOptions collects issue printing options for the check command.
func buildReportOptions() report.Options {
	return report.Options{
		Color:            report.ColorMode(getStringWithFallback("color", "color", string(report.ColorAuto))),
		PrintIssuedLines: getBoolWithFallback("print-lines", "check.print-lines", true),
		PrintLinterName:  getBoolWithFallback("print-linter-name", "check.print-linter-name", true),
	}
}

// scanPaths returns the file patterns of a scanning command ("build", "check").
func scanPaths(section string) []string {
	return getStringsWithFallback("paths", section+".paths", defaultScanPaths)
}

// getStringWithFallback checks the flag key first, then the config file key, then returns the default.
func getStringWithFallback(flagKey, configKey, defaultVal string) string {
	if v := k.String(flagKey); v != "" {
		return v
	}
	if v := k.String(configKey); v != "" {
		return v
	}
	return defaultVal
}

// getStringsWithFallback checks the flag key first, then the config file key, then returns the default.
func getStringsWithFallback(flagKey, configKey string, defaultVal []string) []string {
	if v := k.Strings(flagKey); len(v) > 0 {
		return v
	}
	if v := k.Strings(configKey); len(v) > 0 {
		return v
	}
	return defaultVal
}

// getBoolWithFallback checks the flag key first, then the config file key, then returns the default.
func getBoolWithFallback(flagKey, configKey string, defaultVal bool) bool {
	if k.Exists(flagKey) {
		return k.Bool(flagKey)
	}
	if k.Exists(configKey) {
		return k.Bool(configKey)
	}
	return defaultVal
}

// getIntWithFallback checks the flag key first, then the config file key, then returns the default.
func getIntWithFallback(flagKey, configKey string, defaultVal int) int {
	if k.Exists(flagKey) {
		return k.Int(flagKey)
	}
	if k.Exists(configKey) {
		return k.Int(configKey)
	}
	return defaultVal
}
