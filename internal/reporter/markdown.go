package reporter

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/wharflab/docklint/internal/rules"
)

// MarkdownReporter formats violations as concise markdown tables.
type MarkdownReporter struct {
	writer io.Writer
}

// NewMarkdownReporter creates a new Markdown reporter.
func NewMarkdownReporter(w io.Writer) *MarkdownReporter {
	return &MarkdownReporter{writer: w}
}

// Report implements Reporter.
func (r *MarkdownReporter) Report(violations []rules.Violation, _ map[string][]byte, _ ReportMetadata) error {
	if len(violations) == 0 {
		_, err := fmt.Fprintln(r.writer, "**No issues found**")
		return err
	}

	groups := groupByFile(violations, nil)
	var sorted []rules.Violation
	for _, g := range groups {
		sorted = append(sorted, g.Violations...)
	}
	sorted = SortViolationsBySeverity(sorted)

	var b strings.Builder
	if len(groups) == 1 {
		fmt.Fprintf(&b, "**%d %s** in `%s`\n\n",
			len(sorted), pluralize(len(sorted), "issue", "issues"), groups[0].File)
		b.WriteString("| Line | Issue |\n")
		b.WriteString("|------|-------|\n")
		for _, v := range sorted {
			fmt.Fprintf(&b, "| %s | %s %s |\n", formatLineNumber(v), severityEmoji(v.Severity), issueText(v))
		}
	} else {
		fmt.Fprintf(&b, "**%d %s** across %d files\n\n",
			len(sorted), pluralize(len(sorted), "issue", "issues"), len(groups))
		b.WriteString("| File | Line | Issue |\n")
		b.WriteString("|------|------|-------|\n")
		for _, v := range sorted {
			fmt.Fprintf(&b, "| %s | %s | %s %s |\n",
				v.Location.File, formatLineNumber(v), severityEmoji(v.Severity), issueText(v))
		}
	}

	_, err := io.WriteString(r.writer, b.String())
	return err
}

func issueText(v rules.Violation) string {
	if v.Detail == "" {
		return escapeMarkdown(v.Message)
	}
	return escapeMarkdown(v.Message + ": " + v.Detail)
}

// formatLineNumber returns the display string for a violation's line number.
func formatLineNumber(v rules.Violation) string {
	if v.Location.IsFileLevel() {
		return "-"
	}
	if v.Location.IsPointLocation() {
		return strconv.Itoa(v.Location.Start.Line)
	}
	return fmt.Sprintf("%d-%d", v.Location.Start.Line, v.Location.End.Line)
}

// SortViolationsBySeverity sorts violations by severity (errors first), then by
// file and line. Ties keep their original order.
func SortViolationsBySeverity(violations []rules.Violation) []rules.Violation {
	sorted := slices.Clone(violations)
	slices.SortStableFunc(sorted, func(a, b rules.Violation) int {
		if a.Severity != b.Severity {
			return severityRank(a.Severity) - severityRank(b.Severity)
		}
		return compareLocation(a, b)
	})
	return sorted
}

// severityRank returns a numeric rank for sorting (lower = more severe).
func severityRank(s rules.Severity) int {
	switch s {
	case rules.SeverityError:
		return 0
	case rules.SeverityWarning:
		return 1
	case rules.SeverityInfo:
		return 2
	case rules.SeverityStyle:
		return 3
	default:
		return 4
	}
}

// severityEmoji returns an emoji indicator for the severity level.
func severityEmoji(s rules.Severity) string {
	switch s {
	case rules.SeverityError:
		return "❌"
	case rules.SeverityInfo:
		return "ℹ️"
	case rules.SeverityStyle:
		return "💅"
	default:
		return "⚠️"
	}
}

// escapeMarkdown escapes special markdown characters in table cells.
func escapeMarkdown(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", "")
	return s
}

// pluralize returns singular or plural form based on count.
func pluralize(count int, singular, plural string) string {
	if count == 1 {
		return singular
	}
	return plural
}
