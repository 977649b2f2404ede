// Package discovery resolves command-line inputs to Dockerfiles.
package discovery

import (
	"cmp"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DiscoveredFile represents a Dockerfile discovered from an input.
type DiscoveredFile struct {
	// Path is the path to the Dockerfile.
	// Explicit file inputs keep their original spelling (relative or absolute);
	// files found through directories or globs are absolute.
	Path string

	// ConfigRoot is the directory to use for config file discovery.
	ConfigRoot string
}

// Options configures file discovery behavior.
type Options struct {
	// Patterns are the file name patterns used inside directories
	// (default: DefaultPatterns()).
	Patterns []string

	// ExcludePatterns are doublestar patterns removed from the results.
	ExcludePatterns []string
}

// FileNotFoundError is returned for a literal path that does not exist.
type FileNotFoundError struct {
	Path string
}

func (e *FileNotFoundError) Error() string {
	return "Dockerfile not found: " + e.Path
}

// DefaultPatterns returns the default Dockerfile name patterns:
// Dockerfile, Dockerfile.*, *.Dockerfile and the Containerfile equivalents.
func DefaultPatterns() []string {
	return []string{
		"Dockerfile",
		"Dockerfile.*",
		"*.Dockerfile",
		"Containerfile",
		"Containerfile.*",
		"*.Containerfile",
	}
}

// Discover finds Dockerfiles matching the given inputs.
// Each input can be:
//   - a specific file path
//   - a directory (searched recursively with Options.Patterns)
//   - a doublestar glob pattern
//
// Results keep input order, are sorted by path within each input and are
// deduplicated by absolute path. A literal path that does not exist yields
// a *FileNotFoundError; a glob that matches nothing yields no files.
func Discover(inputs []string, opts Options) ([]DiscoveredFile, error) {
	if len(opts.Patterns) == 0 {
		opts.Patterns = DefaultPatterns()
	}

	seen := make(map[string]bool)
	var results []DiscoveredFile
	for _, input := range inputs {
		found, err := discoverInput(input, opts, seen)
		if err != nil {
			return nil, err
		}
		slices.SortFunc(found, func(a, b DiscoveredFile) int {
			return cmp.Compare(a.Path, b.Path)
		})
		results = append(results, found...)
	}
	return results, nil
}

func discoverInput(input string, opts Options, seen map[string]bool) ([]DiscoveredFile, error) {
	// Glob characters skip os.Stat, which fails on Windows for paths containing '*'.
	if containsGlobChars(input) {
		return globMatches(input, opts, seen)
	}

	info, err := os.Stat(input)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, &FileNotFoundError{Path: input}
	case err != nil:
		return nil, fmt.Errorf("stat %s: %w", input, err)
	case info.IsDir():
		return discoverDirectory(input, opts, seen)
	default:
		return discoverFile(input, opts, seen)
	}
}

func containsGlobChars(path string) bool {
	return strings.ContainsAny(path, "*?[]")
}

func discoverFile(path string, opts Options, seen map[string]bool) ([]DiscoveredFile, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	if isExcluded(absPath, opts.ExcludePatterns) || seen[absPath] {
		return nil, nil
	}
	seen[absPath] = true
	return []DiscoveredFile{{Path: path, ConfigRoot: filepath.Dir(absPath)}}, nil
}

func discoverDirectory(dir string, opts Options, seen map[string]bool) ([]DiscoveredFile, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}

	var results []DiscoveredFile
	for _, pattern := range opts.Patterns {
		// "**" also matches zero directories, so this covers dir itself.
		found, err := globMatches(filepath.Join(absDir, "**", pattern), opts, seen)
		if err != nil {
			return nil, err
		}
		results = append(results, found...)
	}
	return results, nil
}

func globMatches(pattern string, opts Options, seen map[string]bool) ([]DiscoveredFile, error) {
	matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("glob %s: %w", pattern, err)
	}

	var results []DiscoveredFile
	for _, match := range matches {
		absPath, err := filepath.Abs(match)
		if err != nil {
			return nil, err
		}
		if isExcluded(absPath, opts.ExcludePatterns) || seen[absPath] {
			continue
		}
		seen[absPath] = true
		results = append(results, DiscoveredFile{Path: absPath, ConfigRoot: filepath.Dir(absPath)})
	}
	return results, nil
}

// isExcluded matches a path against exclusion patterns three ways: the full
// absolute path, the base name, and every trailing sub-path (so "vendor/*"
// matches ".../vendor/Dockerfile" at any depth). Matching uses forward slashes.
func isExcluded(absPath string, excludePatterns []string) bool {
	if len(excludePatterns) == 0 {
		return false
	}

	full := filepath.ToSlash(absPath)
	parts := strings.Split(strings.TrimPrefix(full, filepath.ToSlash(filepath.VolumeName(absPath))), "/")

	for _, pattern := range excludePatterns {
		pattern = filepath.ToSlash(pattern)
		if ok, _ := doublestar.Match(pattern, full); ok {
			return true
		}
		for i := range parts {
			sub := strings.Join(parts[i:], "/")
			if sub == "" {
				continue
			}
			if ok, _ := doublestar.Match(pattern, sub); ok {
				return true
			}
		}
	}
	return false
}

// MatchesAny reports whether path matches one of the doublestar patterns
// using the same strategy as discovery exclusions.
func MatchesAny(path string, patterns []string) bool {
	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}
	return isExcluded(absPath, patterns)
}
