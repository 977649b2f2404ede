package validate

import "strings"

// LogicalLine is one instruction after continuation lines have been folded in.
type LogicalLine struct {
	// Text is the trimmed instruction text with continuation backslashes removed.
	Text string
	// Line is the 1-based physical line the instruction starts on.
	Line int
	// EndLine is the last physical line folded into Text.
	EndLine int
	// Continued is true when at least one continuation line was folded in.
	Continued bool
}

// Preprocess splits a document into logical lines.
//
// The document is trimmed before splitting, so line numbers count physical
// lines of the trimmed text. Blank and comment lines are dropped and do not
// affect continuation state: a comment inside a continued RUN does not end it.
func Preprocess(text string) []LogicalLine {
	doc := strings.TrimSpace(text)
	if doc == "" {
		return nil
	}

	var (
		lines     []LogicalLine
		continued bool
	)
	for i, raw := range strings.Split(doc, "\n") {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		body, escaped := strings.CutSuffix(trimmed, `\`)
		body = strings.TrimSpace(body)

		if continued && len(lines) > 0 {
			last := &lines[len(lines)-1]
			last.Text = joinContinuation(last.Text, body)
			last.EndLine = i + 1
			last.Continued = true
		} else {
			lines = append(lines, LogicalLine{Text: body, Line: i + 1, EndLine: i + 1})
		}
		continued = escaped
	}
	return lines
}

func joinContinuation(head, tail string) string {
	switch {
	case tail == "":
		return head
	case head == "":
		return tail
	default:
		return head + " " + tail
	}
}
