package validate

import "encoding/json"

// MessageKind identifies the kind of a finding.
type MessageKind int

const (
	InvalidType MessageKind = iota
	MissingFrom
	InvalidInstruction
	BadParameters
	MalformedParameters
	MissingCmd
)

// MessageKinds returns every finding kind in declaration order.
func MessageKinds() []MessageKind {
	return []MessageKind{InvalidType, MissingFrom, InvalidInstruction, BadParameters, MalformedParameters, MissingCmd}
}

// String returns the user-facing message text.
func (k MessageKind) String() string {
	switch k {
	case InvalidType:
		return "Invalid type"
	case MissingFrom:
		return "Missing or misplaced FROM"
	case InvalidInstruction:
		return "Invalid instruction"
	case BadParameters:
		return "Bad parameters"
	case MalformedParameters:
		return "Malformed parameters"
	case MissingCmd:
		return "Missing CMD"
	default:
		return "Unknown finding"
	}
}

// Code returns the stable, kebab-case identifier used for rule codes and config keys.
func (k MessageKind) Code() string {
	switch k {
	case InvalidType:
		return "invalid-type"
	case MissingFrom:
		return "missing-from"
	case InvalidInstruction:
		return "invalid-instruction"
	case BadParameters:
		return "bad-parameters"
	case MalformedParameters:
		return "malformed-parameters"
	case MissingCmd:
		return "missing-cmd"
	default:
		return "unknown"
	}
}

// Priority returns the fixed priority of the kind.
func (k MessageKind) Priority() Priority {
	switch k {
	case BadParameters, MalformedParameters, MissingCmd:
		return Parameter
	default:
		return Structural
	}
}

// MarshalJSON implements json.Marshaler.
func (k MessageKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// Priority orders findings. Lower is more important.
type Priority int

const (
	// Structural covers presence/order violations and unrecognized instructions.
	Structural Priority = 0
	// Parameter covers grammar failures and the missing CMD check.
	// Quiet mode drops these.
	Parameter Priority = 1
)

// Finding is a single diagnostic produced by Validate.
type Finding struct {
	Message MessageKind `json:"message"`
	// Line is the 1-based physical line of the instruction; 0 means the finding
	// is not tied to a line.
	Line int `json:"line,omitempty"`
	// EndLine is the last physical line consumed by a continued instruction.
	EndLine  int      `json:"-"`
	Priority Priority `json:"priority"`
	// Detail carries an optional hint such as a suggested keyword.
	Detail string `json:"detail,omitempty"`
}

// HasLine reports whether the finding points at a source line.
func (f Finding) HasLine() bool {
	return f.Line > 0
}

// Result is the outcome of validating one document.
type Result struct {
	Valid    bool      `json:"valid"`
	Findings []Finding `json:"errors,omitempty"`
}

// Options tunes a validation run.
type Options struct {
	// Quiet suppresses Parameter priority findings.
	Quiet bool
}
