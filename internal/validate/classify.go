package validate

import (
	"maps"
	"slices"
	"strings"
	"unicode"

	"github.com/moby/buildkit/util/suggest"
)

// ParsedInstruction is a logical line split into keyword and parameters.
type ParsedInstruction struct {
	Instruction Instruction
	// Params is the text after the keyword and its separating whitespace.
	Params  string
	Line    int
	EndLine int
}

// knownKeywords is the sorted lowercase keyword list used for suggestions.
var knownKeywords = func() []string {
	keys := slices.Collect(maps.Keys(byKeyword))
	slices.Sort(keys)
	return keys
}()

// Classify identifies the instruction on a logical line. The keyword must be
// followed by whitespace or end the line; ok is false otherwise.
func Classify(l LogicalLine) (ParsedInstruction, bool) {
	word, params := splitKeyword(l.Text)
	inst, ok := LookupInstruction(word)
	if !ok {
		return ParsedInstruction{}, false
	}
	return ParsedInstruction{
		Instruction: inst,
		Params:      params,
		Line:        l.Line,
		EndLine:     l.EndLine,
	}, true
}

func splitKeyword(text string) (string, string) {
	idx := strings.IndexFunc(text, unicode.IsSpace)
	if idx < 0 {
		return text, ""
	}
	return text[:idx], strings.TrimSpace(text[idx:])
}

// startsWithFrom is the prefix test applied to the first logical line.
func startsWithFrom(text string) bool {
	const kw = "FROM"
	return len(text) >= len(kw) && strings.EqualFold(text[:len(kw)], kw)
}

// suggestKeyword returns the closest known keyword for an unknown leading
// token, or "" when nothing is close enough.
func suggestKeyword(text string) string {
	word, _ := splitKeyword(text)
	if word == "" {
		return ""
	}
	match, ok := suggest.Search(strings.ToLower(word), knownKeywords, true)
	if !ok || match == "" {
		return ""
	}
	return `did you mean "` + strings.ToUpper(match) + `"?`
}
