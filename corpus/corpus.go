// Package corpus aggregates coordinate usage across a set of GraphQL
// documents, typically a checked-in directory of operations selected by glob
// patterns.
package corpus

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/graph-tools/coordinates"
)

// Report is the aggregate of one corpus scan.
type Report struct {
	// Counts maps each coordinate to the number of documents that reference
	// it. A document referencing the same coordinate many times counts once.
	Counts map[string]int
	// Documents is the number of documents successfully extracted.
	Documents int
	// Failures maps a document path to its terminal extraction error.
	Failures map[string]error
}

// Coordinates returns every coordinate in the report, sorted.
func (r *Report) Coordinates() []string {
	out := make([]string, 0, len(r.Counts))
	for coord := range r.Counts {
		out = append(out, coord)
	}
	sort.Strings(out)
	return out
}

// Scan expands patterns to document files and extracts each one against
// schema. A document that fails to read or extract is recorded in
// Report.Failures and skipped, unless failFast is set, in which case Scan
// returns that error immediately.
func Scan(schema *coordinates.Schema, patterns []string, failFast bool) (*Report, error) {
	files, err := ExpandPatterns(patterns)
	if err != nil {
		return nil, err
	}

	report := &Report{
		Counts:   make(map[string]int),
		Failures: make(map[string]error),
	}
	for _, file := range files {
		coords, err := extractFile(schema, file)
		if err != nil {
			if failFast {
				return nil, fmt.Errorf("%s: %w", file, err)
			}
			report.Failures[file] = err
			continue
		}
		report.Documents++
		for _, coord := range coords {
			report.Counts[coord]++
		}
	}
	return report, nil
}

// ExpandPatterns resolves doublestar glob patterns to a deduplicated list of
// files, preserving first-appearance order. A pattern without glob characters
// is taken as a literal path and must exist.
func ExpandPatterns(patterns []string) ([]string, error) {
	var files []string
	seen := make(map[string]bool)

	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, pattern := range patterns {
		if !strings.ContainsAny(pattern, "*?[{") {
			if _, err := os.Stat(pattern); err != nil {
				return nil, err
			}
			add(pattern)
			continue
		}
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("glob %q: %w", pattern, err)
		}
		for _, match := range matches {
			info, err := os.Stat(match)
			if err != nil {
				return nil, err
			}
			if !info.IsDir() {
				add(match)
			}
		}
	}
	return files, nil
}

func extractFile(schema *coordinates.Schema, path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return schema.ExtractCoordinates(string(data))
}
