package utilcss

import (
	"fmt"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// CheckConfig holds class checking configuration
type CheckConfig struct {
	Ignore        []string // Doublestar patterns of class names that are never reported ("js-*")
	MaxIssues     int      // 0 = unlimited (default)
	MaxSameIssues int      // 0 = unlimited (default)
}

// CheckStats summarizes the classes found in scanned references
type CheckStats struct {
	Files         int `json:"files"`          // Files with at least one class string
	References    int `json:"references"`     // Class strings
	Classes       int `json:"classes"`        // Individual class names
	Recognized    int `json:"recognized"`     // Registered utilities
	Aliases       int `json:"aliases"`        // Apply aliases
	Ignored       int `json:"ignored"`        // Matched an ignore pattern
	Unknown       int `json:"unknown"`        // Reported as issues
	UniqueUnknown int `json:"unique_unknown"` // Distinct unknown names
}

// UnknownClass is an unknown class name with its occurrence count
type UnknownClass struct {
	ClassName   string // "p-44"
	Occurrences int    // 12
	Suggestion  string // "tw-p-44" when a prefixed utility exists
}

// CheckResult contains check results
type CheckResult struct {
	Stats          CheckStats
	Issues         []Issue
	TopUnknown     []UnknownClass // Most frequent unknown classes
	TruncatedCount int            // Issues removed due to limits
}

// Check reports every class name in refs that is neither a registered
// utility nor an apply alias of engine. Issues keep reference order.
func Check(engine *Engine, refs []ClassReference, config CheckConfig) (*CheckResult, error) {
	for _, pattern := range config.Ignore {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid ignore pattern %q", pattern)
		}
	}

	result := &CheckResult{}
	unknown := make(map[string]int)
	suggestions := make(map[string]string)

	for _, ref := range refs {
		result.Stats.References++

		for _, field := range ref.Fields() {
			className := field.Name
			result.Stats.Classes++

			switch {
			case engine.Utilities().Has(className):
				result.Stats.Recognized++
				continue
			case engine.IsAlias(className):
				result.Stats.Aliases++
				continue
			case ignored(className, config.Ignore):
				result.Stats.Ignored++
				continue
			}

			result.Stats.Unknown++
			unknown[className]++

			issue := Issue{
				FromLinter:  LinterName,
				Text:        fmt.Sprintf(IssueUnknownClass, className),
				Severity:    SeverityWarning,
				SourceLines: []string{ref.Location.Text},
				Pos: IssuePos{
					Filename: GetRelativePath(ref.Location.File),
					Line:     ref.Location.Line,
					Column:   field.Column,
				},
			}

			if suggestion := suggestPrefixed(engine, className); suggestion != "" {
				suggestions[className] = suggestion
				issue.Text = fmt.Sprintf(IssueMissingPrefix, className, suggestion)
				issue.Replacement = &Replacement{
					NewText:      suggestion,
					InlineLength: len(className),
				}
			}

			result.Issues = append(result.Issues, issue)
		}
	}

	result.Stats.Files = countUniqueFiles(refs)
	result.Stats.UniqueUnknown = len(unknown)
	result.TopUnknown = sortByFrequency(unknown, suggestions)

	if config.MaxIssues > 0 || config.MaxSameIssues > 0 {
		result.Issues, result.TruncatedCount = limitIssues(result.Issues, config)
	}

	return result, nil
}

func ignored(className string, patterns []string) bool {
	for _, pattern := range patterns {
		if ok, _ := doublestar.Match(pattern, className); ok {
			return true
		}
	}
	return false
}

// suggestPrefixed returns the prefixed form of className when the engine
// has a prefix and registers that form.
func suggestPrefixed(engine *Engine, className string) string {
	prefix := prefixString(engine.Config().Prefix)
	if prefix == "" {
		return ""
	}
	if candidate := prefix + className; engine.Utilities().Has(candidate) {
		return candidate
	}
	return ""
}

// sortByFrequency converts a frequency map to a sorted slice, most frequent
// first and ties by name, limited to the top 10
func sortByFrequency(freq map[string]int, suggestions map[string]string) []UnknownClass {
	var classes []UnknownClass
	for className, count := range freq {
		classes = append(classes, UnknownClass{
			ClassName:   className,
			Occurrences: count,
			Suggestion:  suggestions[className],
		})
	}

	sort.Slice(classes, func(i, j int) bool {
		if classes[i].Occurrences != classes[j].Occurrences {
			return classes[i].Occurrences > classes[j].Occurrences
		}
		return classes[i].ClassName < classes[j].ClassName
	})

	if len(classes) > 10 {
		classes = classes[:10]
	}
	return classes
}

// countUniqueFiles counts unique files in references
func countUniqueFiles(refs []ClassReference) int {
	files := make(map[string]bool)
	for _, ref := range refs {
		files[ref.Location.File] = true
	}
	return len(files)
}

// limitIssues applies MaxIssues, then MaxSameIssues, and reports how many
// issues were dropped
func limitIssues(issues []Issue, config CheckConfig) ([]Issue, int) {
	originalCount := len(issues)

	if config.MaxIssues > 0 && len(issues) > config.MaxIssues {
		issues = issues[:config.MaxIssues]
	}

	// Deduplication by message text
	if config.MaxSameIssues > 0 {
		issues = deduplicateSameIssues(issues, config.MaxSameIssues)
	}

	return issues, originalCount - len(issues)
}

// deduplicateSameIssues limits how many times the same message appears
func deduplicateSameIssues(issues []Issue, maxSame int) []Issue {
	messageCounts := make(map[string]int)
	var filtered []Issue

	for _, issue := range issues {
		if messageCounts[issue.Text] < maxSame {
			filtered = append(filtered, issue)
			messageCounts[issue.Text]++
		}
	}

	return filtered
}
