package processor

import (
	"github.com/wharflab/docklint/internal/rules"
)

// SeverityOverride applies [rules.<code>] severity overrides from configuration.
type SeverityOverride struct{}

// NewSeverityOverride creates a new severity override processor.
func NewSeverityOverride() *SeverityOverride {
	return &SeverityOverride{}
}

// Name returns the processor's identifier.
func (p *SeverityOverride) Name() string {
	return "severity-override"
}

// Process replaces the default severity with the configured one.
// Invalid severities are rejected when the config is loaded, so a parse
// failure here leaves the violation unchanged.
func (p *SeverityOverride) Process(violations []rules.Violation, ctx *Context) []rules.Violation {
	return transformViolations(violations, func(v rules.Violation) rules.Violation {
		rc, ok := ctx.ConfigForFile(v.Location.File).Rule(v.RuleCode)
		if !ok || rc.Severity == "" {
			return v
		}
		if sev, err := rules.ParseSeverity(rc.Severity); err == nil {
			v.Severity = sev
		}
		return v
	})
}
