// Package rules turns validator findings into reportable violations and
// describes the rule behind each finding kind.
package rules

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/wharflab/docklint/internal/validate"
)

// Severity represents the severity level of a violation.
//
//nolint:recvcheck // UnmarshalJSON requires pointer receiver per json.Unmarshaler interface
type Severity int

const (
	// SeverityError indicates a structural problem: the file is not a usable Dockerfile.
	SeverityError Severity = iota
	// SeverityWarning indicates an instruction whose parameters do not parse.
	SeverityWarning
	// SeverityInfo is available for severity overrides.
	SeverityInfo
	// SeverityStyle is available for severity overrides.
	SeverityStyle

	// SeverityOff disables the rule completely.
	// Placed after other severities to avoid zero-value confusion.
	SeverityOff
)

var severityNames = map[string]Severity{
	"off":     SeverityOff,
	"error":   SeverityError,
	"warning": SeverityWarning,
	"warn":    SeverityWarning,
	"info":    SeverityInfo,
	"style":   SeverityStyle,
}

// String returns the string representation of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityOff:
		return "off"
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	case SeverityStyle:
		return "style"
	default:
		return "unknown"
	}
}

// MarshalJSON implements json.Marshaler.
func (s Severity) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *Severity) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	parsed, err := ParseSeverity(str)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseSeverity parses a severity string into a Severity value.
func ParseSeverity(s string) (Severity, error) {
	if sev, ok := severityNames[strings.ToLower(s)]; ok {
		return sev, nil
	}
	return SeverityError, fmt.Errorf("unknown severity: %q", s)
}

// SeverityForPriority maps a finding priority to its default severity.
func SeverityForPriority(p validate.Priority) Severity {
	if p == validate.Structural {
		return SeverityError
	}
	return SeverityWarning
}

// IsMoreSevereThan returns true if s is more severe than other.
func (s Severity) IsMoreSevereThan(other Severity) bool {
	return s < other // Lower value = more severe
}

// IsAtLeast returns true if s is at least as severe as threshold.
func (s Severity) IsAtLeast(threshold Severity) bool {
	return s <= threshold
}
