package reporter

import (
	"io"
	"path/filepath"
	"sort"

	"github.com/owenrumney/go-sarif/v3/pkg/report/v210/sarif"

	"github.com/wharflab/docklint/internal/rules"
)

// Default SARIF tool information.
const (
	defaultToolName = "docklint"
	defaultToolURI  = "https://github.com/wharflab/docklint"
)

// SARIFReporter formats violations as SARIF (Static Analysis Results Interchange Format).
// SARIF is a standard format for static analysis tools, widely supported by CI/CD systems
// including GitHub Code Scanning and Azure DevOps.
//
// See: https://docs.oasis-open.org/sarif/sarif/v2.1.0/
type SARIFReporter struct {
	writer      io.Writer
	toolName    string
	toolVersion string
	toolURI     string
	registry    *rules.Registry
}

// NewSARIFReporter creates a new SARIF reporter.
func NewSARIFReporter(w io.Writer, toolName, toolVersion, toolURI string) *SARIFReporter {
	if toolName == "" {
		toolName = defaultToolName
	}
	if toolURI == "" {
		toolURI = defaultToolURI
	}
	return &SARIFReporter{
		writer:      w,
		toolName:    toolName,
		toolVersion: toolVersion,
		toolURI:     toolURI,
		registry:    rules.DefaultRegistry(),
	}
}

// Report implements Reporter.
func (r *SARIFReporter) Report(violations []rules.Violation, _ map[string][]byte, metadata ReportMetadata) error {
	report := sarif.NewReport()

	run := sarif.NewRunWithInformationURI(r.toolName, r.toolURI)
	if r.toolVersion != "" {
		run.Tool.Driver.WithVersion(r.toolVersion)
	}

	// Rules that fired, in code order
	ruleSet := make(map[string]struct{})
	for _, v := range violations {
		ruleSet[v.RuleCode] = struct{}{}
	}
	ruleCodes := make([]string, 0, len(ruleSet))
	for code := range ruleSet {
		ruleCodes = append(ruleCodes, code)
	}
	sort.Strings(ruleCodes)

	for _, code := range ruleCodes {
		rule := run.AddRule(code)
		if meta, ok := r.registry.Get(code); ok {
			rule.WithName(meta.Name)
			rule.WithShortDescription(sarif.NewMultiformatMessageString().WithText(meta.Description))
		}
	}

	// Every validated file is an artifact, clean or not.
	for _, g := range groupByFile(violations, metadata.Files) {
		run.AddDistinctArtifact(g.File)
	}

	for _, v := range violations {
		filePath := filepath.ToSlash(v.Location.File)

		message := v.Message
		if v.Detail != "" {
			message += ": " + v.Detail
		}
		result := sarif.NewRuleResult(v.RuleCode).
			WithMessage(sarif.NewTextMessage(message)).
			WithLevel(severityToSARIFLevel(v.Severity))

		physicalLocation := sarif.NewPhysicalLocation().
			WithArtifactLocation(sarif.NewSimpleArtifactLocation(filePath))

		// File-level findings (missing CMD) carry no region.
		if !v.Location.IsFileLevel() {
			region := sarif.NewRegion().
				WithStartLine(v.Location.Start.Line)
			if !v.Location.IsPointLocation() {
				region.WithEndLine(v.Location.End.Line)
			}
			if v.SourceCode != "" {
				region.WithSnippet(sarif.NewArtifactContent().WithText(v.SourceCode))
			}
			physicalLocation.WithRegion(region)
		}

		result.WithLocations([]*sarif.Location{
			sarif.NewLocationWithPhysicalLocation(physicalLocation),
		})
		run.AddResult(result)
	}

	report.AddRun(run)

	return report.PrettyWrite(r.writer)
}

// SARIF severity levels.
const (
	sarifLevelError   = "error"
	sarifLevelWarning = "warning"
	sarifLevelNote    = "note"
)

// severityToSARIFLevel maps our Severity to SARIF levels.
// SARIF uses: "error", "warning", "note", "none"
func severityToSARIFLevel(s rules.Severity) string {
	switch s {
	case rules.SeverityError:
		return sarifLevelError
	case rules.SeverityWarning:
		return sarifLevelWarning
	case rules.SeverityInfo, rules.SeverityStyle, rules.SeverityOff:
		return sarifLevelNote
	default:
		return sarifLevelWarning
	}
}
