package utilcss

import (
	"bufio"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/maruel/natural"
	ignore "github.com/sabhiram/go-gitignore"
	"go.uber.org/zap"
)

// ClassReference is a class string found in a template or source file
type ClassReference struct {
	ClassValue string       // Full attribute value: "btn p-4 text-red-500"
	Location   FileLocation // Where it was found
}

// Classes returns the individual class names of the reference.
func (r ClassReference) Classes() []string {
	return strings.Fields(r.ClassValue)
}

// FileLocation tracks where a class reference was found
type FileLocation struct {
	File   string
	Line   int
	Column int    // 1-based column of the class value
	Text   string // Full line content for source display
}

// ScanStats tracks file scanning statistics
type ScanStats struct {
	FilesDiscovered int // Total files found by glob patterns
	FilesScanned    int // Files actually scanned (after filtering)
	FilesSkipped    int // Files skipped due to filtering
	References      int // Class strings found
}

// scanPattern is a regex whose first group captures a class string
type scanPattern struct {
	name  string
	regex *regexp.Regexp
}

var (
	// Ordered from most specific to least specific; the first pattern that
	// claims a span wins so nested forms are not reported twice.
	patterns = []scanPattern{
		{name: "templ.Classes with string", regex: regexp.MustCompile(`templ\.Classes\(\s*"([^"]*)"`)},
		{name: "StyleWith call", regex: regexp.MustCompile(`StyleWith\(\s*"([^"]*)"`)},
		{name: "class with string literal in braces", regex: regexp.MustCompile(`class=\{\s*"([^"]*)"`)},
		{name: "className attribute", regex: regexp.MustCompile(`className="([^"]*)"`)},
		{name: "class attribute with double quotes", regex: regexp.MustCompile(`\bclass="([^"]*)"`)},
		{name: "class attribute with single quotes", regex: regexp.MustCompile(`\bclass='([^']*)'`)},
	}

	// Comment lines are skipped
	commentPattern = regexp.MustCompile(`^\s*//`)

	// gitignore caching
	gitIgnoreCache *ignore.GitIgnore
	gitIgnoreOnce  sync.Once
)

// isGenerated checks for generated Go files (templ output and *.gen.go)
func isGenerated(path string) bool {
	return strings.HasSuffix(path, "_templ.go") ||
		strings.HasSuffix(path, ".templ.go") ||
		strings.HasSuffix(path, ".gen.go")
}

// loadGitIgnore loads the .gitignore file once (thread-safe)
// Gracefully degrades if .gitignore doesn't exist
func loadGitIgnore() *ignore.GitIgnore {
	gitIgnoreOnce.Do(func() {
		gi, err := ignore.CompileIgnoreFile(".gitignore")
		if err != nil {
			gitIgnoreCache = nil
			return
		}
		gitIgnoreCache = gi
	})
	return gitIgnoreCache
}

// shouldSkipFile determines if a file should be excluded from scanning
//
// Two-layer filtering:
// 1. Pattern check (fast): generated files
// 2. Gitignore check: only for relative paths, absolute paths (/tmp/...)
// are outside the project
func shouldSkipFile(path string) bool {
	if isGenerated(path) {
		return true
	}

	if !filepath.IsAbs(path) {
		gi := loadGitIgnore()
		if gi != nil && gi.MatchesPath(path) {
			return true
		}
	}

	return false
}

// ScanFiles scans files matching the given doublestar patterns for class strings.
// Unreadable files are logged and skipped.
func ScanFiles(scanPatterns []string, log *zap.Logger) ([]ClassReference, ScanStats, error) {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("scanner")

	files, stats, err := ExpandGlobs(scanPatterns)
	if err != nil {
		return nil, stats, err
	}

	log.Debug("scanning files",
		zap.Int("discovered", stats.FilesDiscovered),
		zap.Int("scanned", stats.FilesScanned),
		zap.Int("skipped", stats.FilesSkipped))

	var allRefs []ClassReference
	for _, file := range files {
		refs, err := scanFile(file)
		if err != nil {
			log.Warn("skipping unreadable file", zap.String("file", file), zap.Error(err))
			continue
		}
		allRefs = append(allRefs, refs...)
	}
	stats.References = len(allRefs)

	return allRefs, stats, nil
}

// ExpandGlobs expands doublestar patterns into a deduplicated list of
// regular files in natural order, applying the generated-file and
// .gitignore filters.
func ExpandGlobs(globs []string) ([]string, ScanStats, error) {
	var allFiles []string
	seen := make(map[string]bool)
	stats := ScanStats{}

	for _, pattern := range globs {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, stats, err
		}

		for _, match := range matches {
			if seen[match] {
				continue
			}
			seen[match] = true

			info, err := os.Stat(match)
			if err != nil || info.IsDir() {
				continue
			}
			stats.FilesDiscovered++

			if shouldSkipFile(match) {
				stats.FilesSkipped++
				continue
			}
			allFiles = append(allFiles, match)
			stats.FilesScanned++
		}
	}

	sort.Sort(natural.StringSlice(allFiles))
	return allFiles, stats, nil
}

// scanFile scans a single file for class strings
func scanFile(filePath string) ([]ClassReference, error) {
	// #nosec G304 - path comes from trusted configuration
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var refs []ClassReference
	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		refs = append(refs, extractClassesFromLine(scanner.Text(), lineNum, filePath)...)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return refs, nil
}

// extractClassesFromLine extracts all class strings from a line
func extractClassesFromLine(line string, lineNum int, file string) []ClassReference {
	if commentPattern.MatchString(line) {
		return nil
	}

	var refs []ClassReference
	var claimed [][2]int

	for _, pattern := range patterns {
		for _, match := range pattern.regex.FindAllStringSubmatchIndex(line, -1) {
			if len(match) < 4 || overlaps(claimed, match[2], match[3]) {
				continue
			}
			claimed = append(claimed, [2]int{match[2], match[3]})

			value := line[match[2]:match[3]]
			if strings.TrimSpace(value) == "" {
				continue
			}

			refs = append(refs, ClassReference{
				ClassValue: value,
				Location: FileLocation{
					File:   file,
					Line:   lineNum,
					Column: match[2] + 1, // 1-based start of the value
					Text:   line,
				},
			})
		}
	}

	sort.SliceStable(refs, func(i, j int) bool {
		return refs[i].Location.Column < refs[j].Location.Column
	})
	return refs
}

// overlaps reports whether [start, end) intersects a claimed span
func overlaps(claimed [][2]int, start, end int) bool {
	for _, span := range claimed {
		if start < span[1] && span[0] < end {
			return true
		}
	}
	return false
}

// ClassField is one class name of a reference and its 1-based column.
type ClassField struct {
	Name   string
	Column int
}

// Fields returns every class name of the reference with its column, so
// repeated names get distinct columns.
func (r ClassReference) Fields() []ClassField {
	var fields []ClassField
	offset := 0
	for _, name := range strings.Fields(r.ClassValue) {
		idx := strings.Index(r.ClassValue[offset:], name)
		fields = append(fields, ClassField{Name: name, Column: r.Location.Column + offset + idx})
		offset += idx + len(name)
	}
	return fields
}

// GetRelativePath returns a relative path from the current working directory
func GetRelativePath(absPath string) string {
	cwd, err := os.Getwd()
	if err != nil {
		return absPath
	}

	rel, err := filepath.Rel(cwd, absPath)
	if err != nil {
		return absPath
	}

	return rel
}
