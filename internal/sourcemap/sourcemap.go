// Package sourcemap provides line-based access to Dockerfile sources for
// snippet extraction.
package sourcemap

import (
	"bytes"
	"slices"
	"strings"
)

// SourceMap provides efficient access to source code by line.
//
// All line numbers are 0-based.
type SourceMap struct {
	source []byte
	lines  []string
}

// New creates a SourceMap from source content.
// Lines are split on \n (handles both \n and \r\n).
func New(source []byte) *SourceMap {
	rawLines := bytes.Split(source, []byte{'\n'})
	lines := make([]string, len(rawLines))
	for i, line := range rawLines {
		lines[i] = strings.TrimSuffix(string(line), "\r")
	}
	return &SourceMap{source: source, lines: lines}
}

// FromDocument creates a SourceMap whose lines are numbered the way the
// validator numbers them: leading and trailing whitespace of the whole
// document is dropped first.
func FromDocument(source []byte) *SourceMap {
	return New(bytes.TrimSpace(source))
}

// Lines returns all lines (without line endings).
// The returned slice should not be modified.
func (sm *SourceMap) Lines() []string {
	return sm.lines
}

// LineCount returns the total number of lines.
func (sm *SourceMap) LineCount() int {
	return len(sm.lines)
}

// Line returns the text of a specific line (0-based).
// Returns empty string if line is out of range.
func (sm *SourceMap) Line(line int) string {
	if line < 0 || line >= len(sm.lines) {
		return ""
	}
	return sm.lines[line]
}

// Snippet extracts a range of lines as a single string.
// Both startLine and endLine are 0-based and inclusive.
// Returns empty string if range is invalid.
func (sm *SourceMap) Snippet(startLine, endLine int) string {
	startLine = max(startLine, 0)
	endLine = min(endLine, len(sm.lines)-1)
	if startLine > endLine {
		return ""
	}
	return strings.Join(sm.lines[startLine:endLine+1], "\n")
}

// Source returns the raw source content.
// The returned slice should not be modified.
func (sm *SourceMap) Source() []byte {
	return sm.source
}

// Comment is a line whose first non-blank character is #.
type Comment struct {
	// Line is the 0-based line number where the comment appears.
	Line int

	// Text is the trimmed comment text, including the leading #.
	Text string

	// IsDirective is true for comments such as "# docklint ignore=..."
	// or "# check=skip=..." that control reporting.
	IsDirective bool
}

// Comments returns every comment line in line order.
func (sm *SourceMap) Comments() []Comment {
	var comments []Comment
	for i, line := range sm.lines {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "#") {
			continue
		}
		comments = append(comments, Comment{
			Line:        i,
			Text:        trimmed,
			IsDirective: isDirectiveComment(trimmed),
		})
	}
	return comments
}

// directivePrefixes must be followed by a space or = so that words like
// "docklinted" are not mistaken for directives.
var directivePrefixes = []string{
	"docklint ",
	"hadolint ",
	"check=",
}

func isDirectiveComment(text string) bool {
	content := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(text, "#")))
	return slices.ContainsFunc(directivePrefixes, func(prefix string) bool {
		return strings.HasPrefix(content, prefix)
	})
}
