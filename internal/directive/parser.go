package directive

import (
	"errors"
	"regexp"
	"strings"

	"github.com/wharflab/docklint/internal/sourcemap"
)

var (
	// # docklint [global] ignore=RULE1,RULE2 [reason=...]
	docklintPattern = regexp.MustCompile(`(?i)#\s*docklint\s+(global\s+)?ignore\s*=\s*([A-Za-z0-9_/,-]*)`)

	// # hadolint [global] ignore=RULE1,RULE2
	hadolintPattern = regexp.MustCompile(`(?i)#\s*hadolint\s+(global\s+)?ignore\s*=\s*([A-Za-z0-9_/,-]*)`)

	// # check=skip=RULE1,RULE2 (always file-level)
	buildxPattern = regexp.MustCompile(`(?i)#\s*check\s*=\s*skip\s*=\s*([A-Za-z0-9_/,-]*)`)

	reasonPattern = regexp.MustCompile(`(?i)\breason\s*=\s*(.+)$`)
)

var errEmptyRuleList = errors.New("empty rule list")

// RuleValidator reports whether a rule code is known.
type RuleValidator func(string) bool

// Parse extracts the suppression directives of a file. sm must number lines
// the same way findings do. With a non-nil validator, unknown rule codes are
// reported as errors; the directive is still kept.
func Parse(sm *sourcemap.SourceMap, validator RuleValidator) *ParseResult {
	result := &ParseResult{}

	for _, comment := range sm.Comments() {
		if !comment.IsDirective {
			continue
		}

		var (
			d   *Directive
			err *ParseError
		)
		switch {
		case docklintPattern.MatchString(comment.Text):
			d, err = parseIgnore(comment, sm, docklintPattern, SourceDocklint)
		case hadolintPattern.MatchString(comment.Text):
			d, err = parseIgnore(comment, sm, hadolintPattern, SourceHadolint)
		case buildxPattern.MatchString(comment.Text):
			d, err = parseBuildx(comment)
		default:
			continue
		}

		if err != nil {
			result.Errors = append(result.Errors, *err)
		}
		if d != nil {
			validateDirective(d, validator, result)
		}
	}

	return result
}

func validateDirective(d *Directive, validator RuleValidator, result *ParseResult) {
	if validator != nil {
		var unknown []string
		for _, rule := range d.Rules {
			if rule != "all" && !validator(rule) {
				unknown = append(unknown, rule)
			}
		}
		if len(unknown) > 0 {
			result.Errors = append(result.Errors, ParseError{
				Line:    d.Line,
				Message: "unknown rule code(s): " + strings.Join(unknown, ", "),
				RawText: d.RawText,
			})
		}
	}
	result.Directives = append(result.Directives, *d)
}

func parseIgnore(
	comment sourcemap.Comment,
	sm *sourcemap.SourceMap,
	pattern *regexp.Regexp,
	source DirectiveSource,
) (*Directive, *ParseError) {
	matches := pattern.FindStringSubmatch(comment.Text)
	if matches == nil {
		return nil, nil
	}

	rules, err := parseRuleList(matches[2])
	if err != nil {
		return nil, &ParseError{Line: comment.Line, Message: err.Error(), RawText: comment.Text}
	}

	d := &Directive{
		Rules:   rules,
		Line:    comment.Line,
		RawText: comment.Text,
		Source:  source,
		Reason:  parseReason(comment.Text),
	}
	if strings.TrimSpace(matches[1]) != "" {
		d.Type = TypeGlobal
		d.AppliesTo = GlobalRange()
	} else {
		d.Type = TypeNextLine
		d.AppliesTo = nextNonCommentLineRange(comment.Line, sm)
	}
	return d, nil
}

func parseBuildx(comment sourcemap.Comment) (*Directive, *ParseError) {
	matches := buildxPattern.FindStringSubmatch(comment.Text)
	if matches == nil {
		return nil, nil
	}

	rules, err := parseRuleList(matches[1])
	if err != nil {
		return nil, &ParseError{Line: comment.Line, Message: err.Error(), RawText: comment.Text}
	}

	return &Directive{
		Type:      TypeGlobal,
		Rules:     rules,
		Line:      comment.Line,
		AppliesTo: GlobalRange(),
		RawText:   comment.Text,
		Source:    SourceBuildx,
	}, nil
}

func parseRuleList(s string) ([]string, error) {
	var rules []string
	for part := range strings.SplitSeq(s, ",") {
		if rule := strings.TrimSpace(part); rule != "" {
			rules = append(rules, rule)
		}
	}
	if len(rules) == 0 {
		return nil, errEmptyRuleList
	}
	return rules, nil
}

func parseReason(text string) string {
	if m := reasonPattern.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// nextNonCommentLineRange returns the first line after directiveLine that is
// neither blank nor a comment.
func nextNonCommentLineRange(directiveLine int, sm *sourcemap.SourceMap) LineRange {
	for i := directiveLine + 1; i < sm.LineCount(); i++ {
		line := strings.TrimSpace(sm.Line(i))
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		return LineRange{Start: i, End: i}
	}
	return noLine
}
