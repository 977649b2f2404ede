// Package directive implements comment-based suppression of findings.
//
// Three spellings are understood:
//
//	# docklint ignore=missing-cmd,bad-parameters
//	# docklint global ignore=all
//	# hadolint ignore=bad-parameters
//	# check=skip=missing-cmd
//
// A plain ignore applies to the next line that is neither blank nor a
// comment. "global" and check=skip apply to the whole file, including
// findings that have no line (missing FROM or CMD).
package directive

import (
	"math"
	"strings"
)

// DirectiveType indicates the scope of a directive.
type DirectiveType int

const (
	// TypeNextLine affects only the next non-comment line.
	TypeNextLine DirectiveType = iota
	// TypeGlobal affects the entire file.
	TypeGlobal
)

func (t DirectiveType) String() string {
	switch t {
	case TypeNextLine:
		return "next-line"
	case TypeGlobal:
		return "global"
	default:
		return "unknown"
	}
}

// LineRange is an inclusive range of 0-based lines.
type LineRange struct {
	Start int
	End   int
}

// Contains reports whether the 0-based line is within the range.
func (r LineRange) Contains(line int) bool {
	return line >= r.Start && line <= r.End
}

// GlobalRange covers the entire file.
func GlobalRange() LineRange {
	return LineRange{Start: 0, End: math.MaxInt}
}

// noLine matches nothing; used when an ignore comment is the last line.
var noLine = LineRange{Start: -1, End: -1}

// DirectiveSource identifies which spelling a directive used.
type DirectiveSource string

const (
	SourceDocklint DirectiveSource = "docklint"
	SourceHadolint DirectiveSource = "hadolint"
	SourceBuildx   DirectiveSource = "buildx"
)

// Directive is one parsed suppression comment.
type Directive struct {
	Type DirectiveType

	// Rules holds the rule codes to suppress as written; "all" matches
	// every rule.
	Rules []string

	// Line is the 0-based line of the comment.
	Line int

	AppliesTo LineRange

	// Used is set by Filter when the directive suppressed a finding.
	Used bool

	RawText string
	Source  DirectiveSource

	// Reason is the optional text after "reason=".
	Reason string
}

// SuppressesRule reports whether the directive names ruleCode. Both
// "docklint/missing-cmd" and "missing-cmd" match the same rule.
func (d *Directive) SuppressesRule(ruleCode string) bool {
	for _, r := range d.Rules {
		if r == "all" || matchesRule(r, ruleCode) {
			return true
		}
	}
	return false
}

func matchesRule(pattern, ruleCode string) bool {
	pattern = strings.ToLower(pattern)
	if pattern == ruleCode {
		return true
	}
	return bareCode(pattern) == bareCode(ruleCode)
}

func bareCode(code string) string {
	if idx := strings.LastIndexByte(code, '/'); idx != -1 {
		return code[idx+1:]
	}
	return code
}

// SuppressesLine reports whether a finding on the 0-based line is covered.
// File-level findings pass -1 and are only covered by global directives.
func (d *Directive) SuppressesLine(line int) bool {
	if line < 0 {
		return d.Type == TypeGlobal
	}
	return d.AppliesTo.Contains(line)
}

// ParseResult holds the directives of one file and any malformed ones.
type ParseResult struct {
	Directives []Directive
	Errors     []ParseError
}

// ParseError describes a directive comment that could not be used.
type ParseError struct {
	// Line is the 0-based line of the comment.
	Line    int
	Message string
	RawText string
}

func (e ParseError) Error() string {
	return e.Message
}
