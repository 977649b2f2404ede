// Package pathcheck answers lexical questions about build-context paths
// without touching the filesystem.
package pathcheck

import (
	"path"
	"strings"
)

// IsURL reports whether s looks like a remote source accepted by ADD.
func IsURL(s string) bool {
	lower := strings.ToLower(s)
	for _, scheme := range []string{"http://", "https://", "ftp://"} {
		if strings.HasPrefix(lower, scheme) && len(s) > len(scheme) {
			return true
		}
	}
	return false
}

// Normalize cleans p lexically, resolving "." and ".." segments.
// Backslashes are treated as separators so Windows-style paths clean the same way.
func Normalize(p string) string {
	return path.Clean(strings.ReplaceAll(p, `\`, "/"))
}

// EscapesContext reports whether p, once normalized, starts with a parent
// reference. Intermediate segments that cancel out are resolved first, so
// "./a/../../b" escapes while "a/../b" does not. URLs never escape.
func EscapesContext(p string) bool {
	if p == "" || IsURL(p) {
		return false
	}
	clean := Normalize(p)
	return clean == ".." || strings.HasPrefix(clean, "../")
}
