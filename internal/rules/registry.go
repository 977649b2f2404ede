package rules

import (
	"slices"
	"strings"

	"github.com/wharflab/docklint/internal/validate"
)

// RulePrefix is the namespace prefix for docklint rule codes.
const RulePrefix = "docklint/"

// RuleMetadata contains static information about a rule.
type RuleMetadata struct {
	// Code is the namespaced identifier, e.g. "docklint/bad-parameters".
	Code string `json:"code"`

	// Kind is the validator finding the rule reports.
	Kind validate.MessageKind `json:"-"`

	// Name is the human-readable rule name (the finding message).
	Name string `json:"name"`

	// Description explains what the rule checks.
	Description string `json:"description"`

	// DefaultSeverity is the severity when not overridden.
	DefaultSeverity Severity `json:"defaultSeverity"`

	// Category groups related rules ("structure" or "parameters").
	Category string `json:"category"`
}

var descriptions = map[validate.MessageKind]string{
	validate.InvalidType:         "The file is not text: it is not valid UTF-8 or contains NUL bytes.",
	validate.MissingFrom:         "The first instruction must be FROM.",
	validate.InvalidInstruction:  "Every instruction must start with a known keyword followed by whitespace.",
	validate.BadParameters:       "Instruction parameters must match the grammar of the instruction.",
	validate.MalformedParameters: "Parameters opening with [\" must form an array of non-empty quoted strings.",
	validate.MissingCmd:          "The Dockerfile must contain a CMD instruction.",
}

// Registry holds the metadata of every rule, keyed by code.
type Registry struct {
	rules map[string]RuleMetadata
}

// NewRegistry builds a registry with one rule per validator finding kind.
func NewRegistry() *Registry {
	r := &Registry{rules: make(map[string]RuleMetadata)}
	for _, kind := range validate.MessageKinds() {
		category := "structure"
		if kind.Priority() == validate.Parameter {
			category = "parameters"
		}
		meta := RuleMetadata{
			Code:            CodeFor(kind),
			Kind:            kind,
			Name:            kind.String(),
			Description:     descriptions[kind],
			DefaultSeverity: SeverityForPriority(kind.Priority()),
			Category:        category,
		}
		r.rules[meta.Code] = meta
	}
	return r
}

// Get retrieves a rule by its code. Unprefixed codes are accepted.
func (r *Registry) Get(code string) (RuleMetadata, bool) {
	meta, ok := r.rules[NormalizeCode(code)]
	return meta, ok
}

// Has returns true if a rule with the given code is registered.
func (r *Registry) Has(code string) bool {
	_, ok := r.Get(code)
	return ok
}

// All returns all rules in finding-kind order.
func (r *Registry) All() []RuleMetadata {
	result := make([]RuleMetadata, 0, len(r.rules))
	for _, meta := range r.rules {
		result = append(result, meta)
	}
	slices.SortFunc(result, func(a, b RuleMetadata) int {
		return int(a.Kind) - int(b.Kind)
	})
	return result
}

// Codes returns all registered rule codes sorted alphabetically.
func (r *Registry) Codes() []string {
	codes := make([]string, 0, len(r.rules))
	for code := range r.rules {
		codes = append(codes, code)
	}
	slices.Sort(codes)
	return codes
}

// CodeFor returns the namespaced rule code of a finding kind.
func CodeFor(kind validate.MessageKind) string {
	return RulePrefix + kind.Code()
}

// NormalizeCode adds the namespace prefix to bare codes such as "missing-cmd".
func NormalizeCode(code string) string {
	if strings.HasPrefix(code, RulePrefix) {
		return code
	}
	return RulePrefix + code
}

// defaultRegistry is the global default registry.
var defaultRegistry = NewRegistry()

// DefaultRegistry returns the global default registry.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// Get retrieves a rule from the default registry.
func Get(code string) (RuleMetadata, bool) {
	return defaultRegistry.Get(code)
}

// All returns all rules from the default registry.
func All() []RuleMetadata {
	return defaultRegistry.All()
}

// Codes returns all rule codes from the default registry.
func Codes() []string {
	return defaultRegistry.Codes()
}
