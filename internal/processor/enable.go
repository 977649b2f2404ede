package processor

import (
	"github.com/wharflab/docklint/internal/rules"
)

// EnableFilter removes violations whose severity is "off".
// Runs after SeverityOverride.
type EnableFilter struct{}

// NewEnableFilter creates a new enable filter processor.
func NewEnableFilter() *EnableFilter {
	return &EnableFilter{}
}

// Name returns the processor's identifier.
func (p *EnableFilter) Name() string {
	return "enable-filter"
}

// Process filters out violations for disabled rules.
func (p *EnableFilter) Process(violations []rules.Violation, _ *Context) []rules.Violation {
	return filterViolations(violations, func(v rules.Violation) bool {
		return v.Severity != rules.SeverityOff
	})
}
