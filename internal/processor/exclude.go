package processor

import (
	"github.com/wharflab/docklint/internal/discovery"
	"github.com/wharflab/docklint/internal/rules"
)

// PathExclusionFilter removes violations based on per-rule path exclusions
// ([rules.<code>] exclude.paths).
type PathExclusionFilter struct{}

// NewPathExclusionFilter creates a new path exclusion filter processor.
func NewPathExclusionFilter() *PathExclusionFilter {
	return &PathExclusionFilter{}
}

// Name returns the processor's identifier.
func (p *PathExclusionFilter) Name() string {
	return "path-exclusion-filter"
}

// Process filters out violations for files that match the rule's exclusion patterns.
func (p *PathExclusionFilter) Process(violations []rules.Violation, ctx *Context) []rules.Violation {
	return filterViolations(violations, func(v rules.Violation) bool {
		rc, ok := ctx.ConfigForFile(v.Location.File).Rule(v.RuleCode)
		if !ok || len(rc.Exclude.Paths) == 0 {
			return true
		}
		return !discovery.MatchesAny(v.Location.File, rc.Exclude.Paths)
	})
}
