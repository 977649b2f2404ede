package validate

import (
	"regexp"
	"strings"
)

var (
	// looseArrayPattern accepts any bracketed list of double-quoted strings,
	// empty strings included. It is part of the primary grammars.
	looseArrayPattern = regexp.MustCompile(`^\[\s*"(?:[^"\\]|\\.)*"(?:\s*,\s*"(?:[^"\\]|\\.)*")*\s*\]$`)

	// strictArrayPattern is the shape enforced once params announce an array
	// with `["`: non-empty, comma-separated, double-quoted strings and a closing bracket.
	strictArrayPattern = regexp.MustCompile(`^\[\s*"(?:[^"\\]|\\.)+"(?:\s*,\s*"(?:[^"\\]|\\.)+")*\s*\]$`)

	arrayElementPattern = regexp.MustCompile(`"((?:[^"\\]|\\.)*)"`)
)

// announcesArray reports whether params open with `["`, the signal that an
// array literal was intended.
func announcesArray(params string) bool {
	return strings.HasPrefix(params, `["`)
}

// isMalformedArray is the independent recheck run after the primary grammar passed.
func isMalformedArray(params string) bool {
	return announcesArray(params) && !strictArrayPattern.MatchString(params)
}

// arrayElements returns the quoted strings of a loose array literal, or nil
// when params is not one.
func arrayElements(params string) []string {
	if !looseArrayPattern.MatchString(params) {
		return nil
	}
	matches := arrayElementPattern.FindAllStringSubmatch(params, -1)
	elems := make([]string, 0, len(matches))
	for _, m := range matches {
		elems = append(elems, m[1])
	}
	return elems
}
