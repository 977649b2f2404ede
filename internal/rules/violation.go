package rules

import (
	"strconv"

	"github.com/wharflab/docklint/internal/validate"
)

// Violation is a finding bound to a file, ready for post-processing and output.
type Violation struct {
	// Location specifies where the violation occurred.
	Location Location `json:"location"`

	// RuleCode is the namespaced rule identifier (e.g., "docklint/missing-cmd").
	RuleCode string `json:"rule"`

	// Message is the finding text, e.g. "Bad parameters".
	Message string `json:"message"`

	// Detail provides additional context (optional).
	Detail string `json:"detail,omitempty"`

	// Severity indicates how critical this violation is.
	Severity Severity `json:"severity"`

	// Priority is the validator priority (0 structural, 1 parameter).
	Priority validate.Priority `json:"priority"`

	// SourceCode is the source snippet where the violation occurred (optional).
	// Populated by post-processing.
	SourceCode string `json:"sourceCode,omitempty"`
}

// NewViolation creates a new violation with the minimum required fields.
func NewViolation(loc Location, ruleCode, message string, severity Severity) Violation {
	return Violation{
		Location: loc,
		RuleCode: ruleCode,
		Message:  message,
		Severity: severity,
	}
}

// FromFinding converts a validator finding for file into a Violation with the
// rule's default severity.
func FromFinding(file string, f validate.Finding) Violation {
	loc := NewFileLocation(file)
	if f.HasLine() {
		loc = NewLineSpan(file, f.Line, f.EndLine)
	}
	return Violation{
		Location: loc,
		RuleCode: CodeFor(f.Message),
		Message:  f.Message.String(),
		Detail:   f.Detail,
		Severity: SeverityForPriority(f.Priority),
		Priority: f.Priority,
	}
}

// FromResult converts every finding of a validation result.
func FromResult(file string, res validate.Result) []Violation {
	if res.Valid {
		return nil
	}
	out := make([]Violation, 0, len(res.Findings))
	for _, f := range res.Findings {
		out = append(out, FromFinding(file, f))
	}
	return out
}

// WithDetail adds a detail message to the violation.
func (v Violation) WithDetail(detail string) Violation {
	v.Detail = detail
	return v
}

// WithSourceCode adds source code snippet to the violation.
func (v Violation) WithSourceCode(code string) Violation {
	v.SourceCode = code
	return v
}

// File returns the file path from the location.
func (v Violation) File() string {
	return v.Location.File
}

// Line returns the starting line number, or -1 for file-level violations.
func (v Violation) Line() int {
	return v.Location.Start.Line
}

// Text renders the violation the way the plain-text report lists it:
// the message, followed by " at line N" when it has a line.
func (v Violation) Text() string {
	if v.Location.IsFileLevel() {
		return v.Message
	}
	return v.Message + " at line " + strconv.Itoa(v.Location.Start.Line)
}
