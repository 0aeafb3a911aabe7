package utilcss

// LinterName is reported as FromLinter on every issue
const LinterName = "utilcss"

// Issue represents a single check finding in golangci-lint format
type Issue struct {
	FromLinter  string       `json:"FromLinter"`  // "utilcss"
	Text        string       `json:"Text"`        // "unknown class \"p-44\""
	Severity    string       `json:"Severity"`    // "", "warning", "error"
	SourceLines []string     `json:"SourceLines"` // Lines of code with issue
	Pos         IssuePos     `json:"Pos"`         // File location
	LineRange   *LineRange   `json:"LineRange"`   // Optional range
	Replacement *Replacement `json:"Replacement"` // Optional fix suggestion
}

// IssuePos specifies the exact location of an issue
type IssuePos struct {
	Filename string `json:"Filename"` // "views/page.templ"
	Line     int    `json:"Line"`     // 35
	Column   int    `json:"Column"`   // 15 (1-based, exact start of the class name)
}

// LineRange specifies a range of lines
type LineRange struct {
	From int `json:"From"`
	To   int `json:"To"`
}

// Replacement provides a fix suggestion
type Replacement struct {
	NewText      string // "tw-p-4"
	InlineLength int    // Length of text to replace
}

// IssueSeverity constants
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
	SeverityInfo    = ""
)

// Issue message formats
const (
	IssueUnknownClass  = "unknown class %q is neither a utility nor an alias"
	IssueMissingPrefix = "unknown class %q, did you mean %q?"
)
