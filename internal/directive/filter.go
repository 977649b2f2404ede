package directive

import "github.com/wharflab/docklint/internal/rules"

// FilterResult splits findings into kept and suppressed ones.
type FilterResult struct {
	Violations       []rules.Violation
	Suppressed       []rules.Violation
	UnusedDirectives []Directive
}

// Filter drops every violation that a directive covers by both rule and
// line. The first matching directive is marked as used; the input
// directives are not modified.
func Filter(violations []rules.Violation, directives []Directive) *FilterResult {
	result := &FilterResult{
		Violations: make([]rules.Violation, 0, len(violations)),
	}

	ds := make([]Directive, len(directives))
	copy(ds, directives)

	for _, v := range violations {
		// Violations are 1-based, directives 0-based. File-level findings
		// become -1.
		line0 := -1
		if !v.Location.IsFileLevel() {
			line0 = v.Line() - 1
		}

		suppressed := false
		for i := range ds {
			d := &ds[i]
			if d.SuppressesLine(line0) && d.SuppressesRule(v.RuleCode) {
				d.Used = true
				suppressed = true
				break
			}
		}

		if suppressed {
			result.Suppressed = append(result.Suppressed, v)
		} else {
			result.Violations = append(result.Violations, v)
		}
	}

	for _, d := range ds {
		if !d.Used {
			result.UnusedDirectives = append(result.UnusedDirectives, d)
		}
	}
	return result
}
