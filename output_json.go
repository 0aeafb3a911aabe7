package utilcss

import (
	"encoding/json"
	"io"
	"time"

	"github.com/yacobolo/utilcss/decl"
)

// JSONVersion is the schema version written by the JSON encoders
const JSONVersion = "1.0"

// JSONCheckOutput represents the structured check export schema
type JSONCheckOutput struct {
	Version    string        `json:"version"`
	Timestamp  string        `json:"timestamp"`
	Summary    JSONSummary   `json:"summary"`
	Stats      CheckStats    `json:"stats"`
	Issues     []JSONIssue   `json:"issues"`
	TopUnknown []JSONUnknown `json:"top_unknown"`
}

// JSONSummary contains high-level issue counts
type JSONSummary struct {
	TotalIssues int `json:"total_issues"`
	Errors      int `json:"errors"`
	Warnings    int `json:"warnings"`
	Truncated   int `json:"truncated"`
}

// JSONIssue represents a single check issue
type JSONIssue struct {
	File       string `json:"file"`
	Line       int    `json:"line"`
	Column     int    `json:"column"`
	Severity   string `json:"severity"`
	Message    string `json:"message"`
	Linter     string `json:"linter"`
	Source     string `json:"source,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

// JSONUnknown is a frequently used unknown class
type JSONUnknown struct {
	Class       string `json:"class"`
	Occurrences int    `json:"occurrences"`
	Suggestion  string `json:"suggestion,omitempty"`
}

// JSONRegistryOutput describes an engine's classes and aliases
type JSONRegistryOutput struct {
	Version   string              `json:"version"`
	Prefix    string              `json:"prefix"`
	Utilities []JSONUtility       `json:"utilities"`
	Apply     map[string][]string `json:"apply"`
}

// JSONUtility is one registered class
type JSONUtility struct {
	Class        string           `json:"class"`
	Category     PropertyCategory `json:"category"`
	CSS          string           `json:"css"`
	Declarations *decl.Tree       `json:"declarations"`
}

// WriteCheckJSON writes the check result as JSON
func WriteCheckJSON(w io.Writer, result *CheckResult) error {
	return encodeJSON(w, buildCheckJSON(result))
}

// WriteRegistryJSON writes every registered class of engine, in registry
// order, with its declarations
func WriteRegistryJSON(w io.Writer, engine *Engine) error {
	output := JSONRegistryOutput{
		Version:   JSONVersion,
		Prefix:    engine.Config().Prefix,
		Utilities: make([]JSONUtility, 0, engine.Utilities().Len()),
		Apply:     engine.Apply(),
	}
	for className, tree := range engine.Utilities().All() {
		output.Utilities = append(output.Utilities, JSONUtility{
			Class:        className,
			Category:     Categorize(tree),
			CSS:          engine.CSSForUtility(className, false),
			Declarations: tree,
		})
	}
	return encodeJSON(w, output)
}

func encodeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(v)
}

// buildCheckJSON converts CheckResult to JSONCheckOutput
func buildCheckJSON(result *CheckResult) JSONCheckOutput {
	var errors, warnings int
	for _, issue := range result.Issues {
		switch issue.Severity {
		case SeverityError:
			errors++
		case SeverityWarning:
			warnings++
		}
	}

	issues := make([]JSONIssue, len(result.Issues))
	for i, issue := range result.Issues {
		source := ""
		if len(issue.SourceLines) > 0 {
			source = issue.SourceLines[0]
		}
		suggestion := ""
		if issue.Replacement != nil {
			suggestion = issue.Replacement.NewText
		}
		issues[i] = JSONIssue{
			File:       issue.Pos.Filename,
			Line:       issue.Pos.Line,
			Column:     issue.Pos.Column,
			Severity:   issue.Severity,
			Message:    issue.Text,
			Linter:     issue.FromLinter,
			Source:     source,
			Suggestion: suggestion,
		}
	}

	unknown := make([]JSONUnknown, len(result.TopUnknown))
	for i, u := range result.TopUnknown {
		unknown[i] = JSONUnknown{
			Class:       u.ClassName,
			Occurrences: u.Occurrences,
			Suggestion:  u.Suggestion,
		}
	}

	return JSONCheckOutput{
		Version:   JSONVersion,
		Timestamp: time.Now().Format(time.RFC3339),
		Summary: JSONSummary{
			TotalIssues: len(result.Issues),
			Errors:      errors,
			Warnings:    warnings,
			Truncated:   result.TruncatedCount,
		},
		Stats:      result.Stats,
		Issues:     issues,
		TopUnknown: unknown,
	}
}
