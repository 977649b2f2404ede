package reporter

import (
	"fmt"
	"io"
	"strings"

	"github.com/wharflab/docklint/internal/rules"
)

// GitHubActionsReporter formats violations as GitHub Actions workflow commands.
// These commands appear as annotations in the GitHub Actions UI.
//
// Format: ::{level} file={file},line={line},endLine={end},title={rule}::{message}
//
// See: https://docs.github.com/actions/using-workflows/workflow-commands-for-github-actions#setting-an-error-message
type GitHubActionsReporter struct {
	writer io.Writer
}

// NewGitHubActionsReporter creates a new GitHub Actions reporter.
func NewGitHubActionsReporter(w io.Writer) *GitHubActionsReporter {
	return &GitHubActionsReporter{writer: w}
}

// Report implements Reporter.
func (r *GitHubActionsReporter) Report(violations []rules.Violation, _ map[string][]byte, _ ReportMetadata) error {
	for _, g := range groupByFile(violations, nil) {
		for _, v := range SortViolations(g.Violations) {
			if err := r.annotate(g.File, v); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *GitHubActionsReporter) annotate(file string, v rules.Violation) error {
	parts := []string{"file=" + escapeGitHubProperty(file)}
	if !v.Location.IsFileLevel() {
		parts = append(parts, fmt.Sprintf("line=%d", v.Location.Start.Line))
		if !v.Location.IsPointLocation() {
			parts = append(parts, fmt.Sprintf("endLine=%d", v.Location.End.Line))
		}
	}
	parts = append(parts, "title="+escapeGitHubProperty(v.RuleCode))

	message := v.Message
	if v.Detail != "" {
		message += " (" + v.Detail + ")"
	}

	_, err := fmt.Fprintf(r.writer, "::%s %s::%s\n",
		severityToGitHubLevel(v.Severity),
		strings.Join(parts, ","),
		escapeGitHubMessage(message),
	)
	return err
}

// GitHub Actions annotation levels.
const (
	ghLevelError   = "error"
	ghLevelWarning = "warning"
	ghLevelNotice  = "notice"
)

// severityToGitHubLevel maps our Severity to GitHub Actions levels.
// GitHub supports: "error", "warning", "notice", "debug"
func severityToGitHubLevel(s rules.Severity) string {
	switch s {
	case rules.SeverityError:
		return ghLevelError
	case rules.SeverityWarning:
		return ghLevelWarning
	case rules.SeverityInfo, rules.SeverityStyle:
		return ghLevelNotice
	default:
		return ghLevelWarning
	}
}

// escapeGitHubMessage escapes "%", "\r" and "\n" in workflow command messages.
// See: https://github.com/actions/toolkit/blob/main/packages/core/src/command.ts
func escapeGitHubMessage(s string) string {
	s = strings.ReplaceAll(s, "%", "%25")
	s = strings.ReplaceAll(s, "\r", "%0D")
	s = strings.ReplaceAll(s, "\n", "%0A")
	return s
}

// escapeGitHubProperty additionally escapes ":" and "," in properties.
func escapeGitHubProperty(s string) string {
	s = escapeGitHubMessage(s)
	s = strings.ReplaceAll(s, ":", "%3A")
	s = strings.ReplaceAll(s, ",", "%2C")
	return s
}
