// Package reporter provides output formatters for validation results.
//
// The package supports multiple output formats:
//   - text: the plain "VALIDATION FAILED" listing, optionally styled
//   - json: Machine-readable JSON output
//   - sarif: Static Analysis Results Interchange Format for CI/CD integration
//   - github-actions: Native GitHub Actions workflow annotations
//   - markdown: Concise markdown tables
package reporter

import (
	"cmp"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"slices"

	"github.com/wharflab/docklint/internal/rules"
)

// ReportMetadata contains contextual information about the run.
type ReportMetadata struct {
	// Files lists every validated file in input order, including files
	// without violations.
	Files []string
	// FilesScanned is the total number of files that were scanned.
	FilesScanned int
	// RulesEnabled is the total number of rules that were active (not "off").
	RulesEnabled int
}

// Reporter formats and outputs violations.
type Reporter interface {
	// Report writes violations to the configured output.
	// The metadata parameter provides context like the files scanned.
	Report(violations []rules.Violation, sources map[string][]byte, metadata ReportMetadata) error
}

// Format represents an output format type.
type Format string

const (
	// FormatText is the plain listing.
	FormatText Format = "text"
	// FormatJSON is machine-readable JSON output.
	FormatJSON Format = "json"
	// FormatSARIF is Static Analysis Results Interchange Format.
	FormatSARIF Format = "sarif"
	// FormatGitHubActions is GitHub Actions workflow command output.
	FormatGitHubActions Format = "github-actions"
	// FormatMarkdown is concise markdown tables.
	FormatMarkdown Format = "markdown"
)

// ParseFormat parses a format string into a Format type.
// "auto" is resolved by the caller before this point.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "text", "":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "sarif":
		return FormatSARIF, nil
	case "github-actions", "github":
		return FormatGitHubActions, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("unknown format: %q (valid: text, json, sarif, github-actions, markdown)", s)
	}
}

// Options configures reporter creation.
type Options struct {
	// Format specifies the output format.
	Format Format

	// Writer is the output destination.
	Writer io.Writer

	// ErrWriter receives the failure listing of the text format.
	// nil sends everything to Writer.
	ErrWriter io.Writer

	// Color enables/disables colored output (text format only).
	// nil means auto-detect.
	Color *bool

	// ShowSource adds details and source lines (text format only).
	ShowSource bool

	// ToolVersion is included in SARIF output.
	ToolVersion string

	// ToolName is the tool name for SARIF output.
	ToolName string

	// ToolURI is the tool information URI for SARIF output.
	ToolURI string
}

// DefaultOptions returns sensible defaults for reporter options.
func DefaultOptions() Options {
	return Options{
		Format:      FormatText,
		Writer:      os.Stdout,
		ErrWriter:   os.Stderr,
		ToolName:    defaultToolName,
		ToolURI:     defaultToolURI,
		ToolVersion: "dev",
	}
}

// New creates a reporter based on the format specified in options.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = os.Stdout
	}

	switch opts.Format {
	case FormatText, "":
		return NewTextReporter(opts.Writer, opts.ErrWriter, TextOptions{
			Color:      opts.Color,
			ShowSource: opts.ShowSource,
		}), nil

	case FormatJSON:
		return NewJSONReporter(opts.Writer), nil

	case FormatSARIF:
		return NewSARIFReporter(opts.Writer, opts.ToolName, opts.ToolVersion, opts.ToolURI), nil

	case FormatGitHubActions:
		return NewGitHubActionsReporter(opts.Writer), nil

	case FormatMarkdown:
		return NewMarkdownReporter(opts.Writer), nil

	default:
		return nil, fmt.Errorf("unknown format: %q", opts.Format)
	}
}

// fileGroup holds the violations of one file in finding order.
type fileGroup struct {
	File       string
	Violations []rules.Violation
}

// groupByFile groups violations per file. Files listed in metadata come
// first in their given order (even when clean), followed by any other file
// in order of first appearance. Finding order inside a file is kept.
// Paths are normalized to forward slashes.
func groupByFile(violations []rules.Violation, files []string) []fileGroup {
	var groups []fileGroup
	index := make(map[string]int)

	add := func(file string) int {
		file = filepath.ToSlash(file)
		if i, ok := index[file]; ok {
			return i
		}
		index[file] = len(groups)
		groups = append(groups, fileGroup{File: file})
		return len(groups) - 1
	}

	for _, f := range files {
		add(f)
	}
	for _, v := range violations {
		v.Location.File = filepath.ToSlash(v.Location.File)
		i := add(v.Location.File)
		groups[i].Violations = append(groups[i].Violations, v)
	}
	return groups
}

// SortViolations sorts violations by file and line for stable output.
// File-level violations sort after the line-bound ones of the same file;
// ties keep their original order.
func SortViolations(violations []rules.Violation) []rules.Violation {
	sorted := slices.Clone(violations)
	slices.SortStableFunc(sorted, compareLocation)
	return sorted
}

func compareLocation(a, b rules.Violation) int {
	if c := cmp.Compare(a.Location.File, b.Location.File); c != 0 {
		return c
	}
	return cmp.Compare(sortLine(a), sortLine(b))
}

// sortLine places file-level violations last.
func sortLine(v rules.Violation) int {
	if v.Location.IsFileLevel() {
		return math.MaxInt
	}
	return v.Location.Start.Line
}

// GetWriter returns an io.Writer for the given output path.
// Supports "stdout", "stderr", or file paths; "auto" and "" mean stdout.
func GetWriter(path string) (io.Writer, func() error, error) {
	switch path {
	case "stdout", "auto", "":
		return os.Stdout, func() error { return nil }, nil
	case "stderr":
		return os.Stderr, func() error { return nil }, nil
	default:
		f, err := os.Create(path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create output file: %w", err)
		}
		return f, f.Close, nil
	}
}
