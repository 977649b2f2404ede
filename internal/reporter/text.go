package reporter

import (
	"fmt"
	"io"
	"os"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"github.com/wharflab/docklint/internal/rules"
)

const (
	failedBanner = "VALIDATION FAILED"
	passedBanner = "Dockerfile looks good!"
)

// Styles for different parts of the output
var (
	failedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196")) // Red

	passedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("42")) // Green

	fileStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("252")) // Light gray

	detailStyle = lipgloss.NewStyle().
			Italic(true).
			Foreground(lipgloss.Color("245")) // Gray

	lineNumStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // Dark gray

	severityStyles = map[rules.Severity]lipgloss.Style{
		rules.SeverityError: lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")),
		rules.SeverityWarning: lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")), // Orange
		rules.SeverityInfo: lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")), // Blue
		rules.SeverityStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")),
	}
)

// TextOptions configures the text reporter output.
type TextOptions struct {
	// Color enables/disables colored output. nil means auto-detect.
	Color *bool

	// ShowSource prints the finding detail and the offending source lines
	// under each finding.
	ShowSource bool
}

// TextReporter writes the plain listing:
//
//	VALIDATION FAILED
//	Missing or misplaced FROM at line 1
//	Missing CMD
//
// Failing files go to the error writer, passing files to the output writer.
// With more than one file every block is preceded by the file path.
type TextReporter struct {
	out    io.Writer
	errOut io.Writer
	opts   TextOptions
}

// NewTextReporter creates a text reporter. A nil errOut sends failures to out.
func NewTextReporter(out, errOut io.Writer, opts TextOptions) *TextReporter {
	if errOut == nil {
		errOut = out
	}
	return &TextReporter{out: out, errOut: errOut, opts: opts}
}

// Report implements Reporter.
func (r *TextReporter) Report(violations []rules.Violation, _ map[string][]byte, metadata ReportMetadata) error {
	groups := groupByFile(violations, metadata.Files)
	multi := len(groups) > 1

	for _, g := range groups {
		w := r.out
		if len(g.Violations) > 0 {
			w = r.errOut
		}
		if err := r.printFile(w, g, multi); err != nil {
			return err
		}
	}
	return nil
}

func (r *TextReporter) printFile(w io.Writer, g fileGroup, withHeader bool) error {
	color := r.colorEnabled(w)
	var b strings.Builder

	if withHeader {
		b.WriteString(render(color, fileStyle, g.File))
		b.WriteByte('\n')
	}

	if len(g.Violations) == 0 {
		b.WriteString(render(color, passedStyle, passedBanner))
		b.WriteByte('\n')
		_, err := io.WriteString(w, b.String())
		return err
	}

	b.WriteString(render(color, failedStyle, failedBanner))
	b.WriteByte('\n')
	for _, v := range g.Violations {
		b.WriteString(render(color, severityStyles[v.Severity], v.Text()))
		b.WriteByte('\n')
		if r.opts.ShowSource {
			writeSource(&b, v, color)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// writeSource renders the detail and the source snippet of v, if any.
func writeSource(b *strings.Builder, v rules.Violation, color bool) {
	if v.Detail != "" {
		b.WriteString("  ")
		b.WriteString(render(color, detailStyle, v.Detail))
		b.WriteByte('\n')
	}
	if v.SourceCode == "" || v.Location.IsFileLevel() {
		return
	}

	sep := "|"
	if color {
		sep = "│"
	}
	for i, line := range strings.Split(v.SourceCode, "\n") {
		num := fmt.Sprintf("  %4d %s", v.Location.Start.Line+i, sep)
		b.WriteString(render(color, lineNumStyle, num))
		b.WriteByte(' ')
		b.WriteString(line)
		b.WriteByte('\n')
	}
}

func (r *TextReporter) colorEnabled(w io.Writer) bool {
	if r.opts.Color != nil {
		return *r.opts.Color
	}
	return detectColor(w)
}

// detectColor enables styling only for terminals. termenv honours NO_COLOR
// and CLICOLOR_FORCE.
func detectColor(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	if !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
		return false
	}
	return termenv.EnvColorProfile() != termenv.Ascii
}

func render(color bool, style lipgloss.Style, s string) string {
	if !color {
		return s
	}
	return style.Render(s)
}
