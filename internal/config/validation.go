package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/wharflab/docklint/internal/rules"
)

// ValidFormats lists the accepted output formats.
var ValidFormats = []string{"text", "json", "sarif", "github-actions", "markdown", "auto"}

// FailLevelNone disables the findings-based exit code.
const FailLevelNone = "none"

// Validate checks the decoded configuration for unknown or malformed values.
// All problems are reported together.
func (c *Config) Validate() error {
	var errs []error

	if !slices.Contains(ValidFormats, c.Output.Format) {
		errs = append(errs, fmt.Errorf(
			"output.format: unknown format %q (expected one of %s)",
			c.Output.Format, strings.Join(ValidFormats, ", ")))
	}

	if c.Output.FailLevel != FailLevelNone {
		if _, err := rules.ParseSeverity(c.Output.FailLevel); err != nil {
			errs = append(errs, fmt.Errorf("output.fail-level: %w", err))
		}
	}

	if c.FileValidation.MaxFileSize < 0 {
		errs = append(errs, fmt.Errorf("file-validation.max-file-size: must not be negative, got %d",
			c.FileValidation.MaxFileSize))
	}

	codes := make([]string, 0, len(c.Rules))
	for code := range c.Rules {
		codes = append(codes, code)
	}
	slices.Sort(codes)

	for _, code := range codes {
		rc := c.Rules[code]
		if _, ok := rules.Get(code); !ok {
			errs = append(errs, fmt.Errorf("rules.%s: unknown rule", code))
			continue
		}
		if rc.Severity != "" {
			if _, err := rules.ParseSeverity(rc.Severity); err != nil {
				errs = append(errs, fmt.Errorf("rules.%s.severity: %w", code, err))
			}
		}
		for _, pattern := range rc.Exclude.Paths {
			if !doublestar.ValidatePattern(pattern) {
				errs = append(errs, fmt.Errorf("rules.%s.exclude.paths: invalid pattern %q", code, pattern))
			}
		}
	}

	return errors.Join(errs...)
}

// FailSeverity returns the threshold at which findings fail the run.
// ok is false when fail-level is "none".
func (c *Config) FailSeverity() (rules.Severity, bool) {
	if c.Output.FailLevel == FailLevelNone {
		return 0, false
	}
	sev, err := rules.ParseSeverity(c.Output.FailLevel)
	if err != nil {
		return rules.SeverityStyle, true
	}
	return sev, true
}
