// Package processor provides a composable violation processing pipeline.
//
// Violations flow through a sequence of processors, each transforming
// the slice (filtering, modifying, or augmenting). Processors never reorder
// violations: the validator's discovery order is the report order.
//
// Standard pipeline order:
//  1. SeverityOverride - Apply config severity overrides
//  2. EnableFilter - Remove violations for rules set to "off"
//  3. PathExclusionFilter - Remove per-rule path exclusions
//  4. SnippetAttachment - Populate SourceCode field
//  5. PathNormalization - Forward slashes in output paths
package processor

import (
	"github.com/wharflab/docklint/internal/config"
	"github.com/wharflab/docklint/internal/rules"
	"github.com/wharflab/docklint/internal/sourcemap"
)

// Processor transforms a slice of violations.
type Processor interface {
	// Name returns the processor's identifier (for debugging/logging).
	Name() string

	// Process applies the processor's logic to violations.
	// Must not modify the input slice; return a new slice if filtering.
	Process(violations []rules.Violation, ctx *Context) []rules.Violation
}

// Context provides shared state for processors.
type Context struct {
	// Config is the run-wide configuration.
	Config *config.Config

	// FileConfigs holds per-file configuration discovered next to each
	// Dockerfile. Files without an entry use Config.
	FileConfigs map[string]*config.Config

	// FileSources maps file paths to their raw source content.
	FileSources map[string][]byte

	sourceMaps map[string]*sourcemap.SourceMap
}

// NewContext creates a new processor context.
func NewContext(cfg *config.Config, fileConfigs map[string]*config.Config, fileSources map[string][]byte) *Context {
	return &Context{
		Config:      cfg,
		FileConfigs: fileConfigs,
		FileSources: fileSources,
		sourceMaps:  make(map[string]*sourcemap.SourceMap),
	}
}

// ConfigForFile returns the configuration that applies to file.
func (ctx *Context) ConfigForFile(file string) *config.Config {
	if cfg, ok := ctx.FileConfigs[file]; ok && cfg != nil {
		return cfg
	}
	return ctx.Config
}

// GetSourceMap returns or creates a SourceMap for the given file, numbered
// the way the validator numbers lines. Returns nil if the file is unknown.
func (ctx *Context) GetSourceMap(file string) *sourcemap.SourceMap {
	if sm, ok := ctx.sourceMaps[file]; ok {
		return sm
	}
	source, ok := ctx.FileSources[file]
	if !ok {
		return nil
	}
	sm := sourcemap.FromDocument(source)
	ctx.sourceMaps[file] = sm
	return sm
}

// Chain runs processors in sequence.
type Chain struct {
	processors []Processor
}

// NewChain creates a new processor chain.
func NewChain(processors ...Processor) *Chain {
	return &Chain{processors: processors}
}

// DefaultChain returns the standard pipeline.
func DefaultChain() *Chain {
	return NewChain(
		NewSeverityOverride(),
		NewEnableFilter(),
		NewPathExclusionFilter(),
		NewSnippetAttachment(),
		NewPathNormalization(),
	)
}

// Process runs all processors in sequence.
func (c *Chain) Process(violations []rules.Violation, ctx *Context) []rules.Violation {
	for _, p := range c.processors {
		violations = p.Process(violations, ctx)
	}
	return violations
}

// Names returns the processor names in execution order.
func (c *Chain) Names() []string {
	names := make([]string, 0, len(c.processors))
	for _, p := range c.processors {
		names = append(names, p.Name())
	}
	return names
}

// filterViolations returns a new slice containing only violations where keep() returns true.
func filterViolations(violations []rules.Violation, keep func(v rules.Violation) bool) []rules.Violation {
	result := make([]rules.Violation, 0, len(violations))
	for _, v := range violations {
		if keep(v) {
			result = append(result, v)
		}
	}
	return result
}

// transformViolations returns a new slice with each violation transformed by transform().
func transformViolations(
	violations []rules.Violation,
	transform func(v rules.Violation) rules.Violation,
) []rules.Violation {
	result := make([]rules.Violation, len(violations))
	for i, v := range violations {
		result[i] = transform(v)
	}
	return result
}
