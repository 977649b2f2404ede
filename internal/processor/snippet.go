package processor

import (
	"github.com/wharflab/docklint/internal/rules"
)

// SnippetAttachment populates the SourceCode field of violations with the
// lines they cover, so reporters need not re-read files.
type SnippetAttachment struct{}

// NewSnippetAttachment creates a new snippet attachment processor.
func NewSnippetAttachment() *SnippetAttachment {
	return &SnippetAttachment{}
}

// Name returns the processor's identifier.
func (p *SnippetAttachment) Name() string {
	return "snippet-attachment"
}

// Process attaches source code snippets to violations. File-level
// violations and files missing from the context are left alone.
func (p *SnippetAttachment) Process(violations []rules.Violation, ctx *Context) []rules.Violation {
	return transformViolations(violations, func(v rules.Violation) rules.Violation {
		if v.SourceCode != "" || v.Location.IsFileLevel() {
			return v
		}
		sm := ctx.GetSourceMap(v.Location.File)
		if sm == nil {
			return v
		}
		// Location lines are 1-based; SourceMap is 0-based.
		v.SourceCode = sm.Snippet(v.Location.Start.Line-1, v.Location.EndLine()-1)
		return v
	})
}
