// Package config provides configuration loading and discovery for docklint.
//
// Configuration is loaded from multiple sources with the following priority
// (highest to lowest):
//  1. CLI flags
//  2. Environment variables (DOCKLINT_* prefix)
//  3. Config file (closest .docklint.toml or docklint.toml)
//  4. Built-in defaults
//
// Config file discovery walks up from the target file's directory until a
// config file is found. The closest config wins (no merging).
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	gotoml "github.com/pelletier/go-toml/v2"

	"github.com/wharflab/docklint/internal/rules"
)

// ConfigFileNames defines the config file names to search for, in priority order.
var ConfigFileNames = []string{".docklint.toml", "docklint.toml"}

// EnvPrefix is the prefix for environment variables.
const EnvPrefix = "DOCKLINT_"

// Config represents the complete docklint configuration.
type Config struct {
	// Quiet drops parameter-level findings (bad or malformed parameters, missing CMD).
	Quiet bool `json:"quiet" koanf:"quiet" toml:"quiet"`

	// Output configures output format and destination.
	Output OutputConfig `json:"output" koanf:"output" toml:"output"`

	// Rules holds per-rule overrides keyed by bare rule code, e.g. "missing-cmd".
	Rules map[string]RuleConfig `json:"rules,omitempty" koanf:"rules" toml:"rules,omitempty"`

	// FileValidation configures checks run before a file is read.
	FileValidation FileValidationConfig `json:"file-validation" koanf:"file-validation" toml:"file-validation"`

	// ConfigFile is the path to the config file that was loaded (if any).
	ConfigFile string `json:"-" koanf:"-" toml:"-"`
}

// OutputConfig configures output formatting and behavior.
//
// Example TOML configuration:
//
//	[output]
//	format = "json"
//	path = "report.json"
//	fail-level = "error"
type OutputConfig struct {
	// Format is one of text, json, sarif, github-actions, markdown or auto.
	Format string `json:"format,omitempty" koanf:"format" toml:"format"`

	// Path is "auto", "stdout", "stderr" or a file path. With "auto" the
	// text report for failing files goes to stderr and everything else to stdout.
	Path string `json:"path,omitempty" koanf:"path" toml:"path"`

	// ShowSource prints the offending source lines under each finding in text output.
	ShowSource bool `json:"show-source,omitempty" koanf:"show-source" toml:"show-source"`

	// FailLevel sets the minimum severity that causes a non-zero exit code,
	// or "none" to never fail on findings.
	FailLevel string `json:"fail-level,omitempty" koanf:"fail-level" toml:"fail-level"`
}

// RuleConfig represents per-rule configuration.
//
//	[rules.missing-cmd]
//	severity = "off"
//
//	[rules.bad-parameters]
//	exclude.paths = ["legacy/**"]
type RuleConfig struct {
	// Severity overrides the rule's default severity. "off" disables the rule.
	Severity string `json:"severity,omitempty" koanf:"severity" toml:"severity,omitempty"`

	// Exclude contains path patterns where this rule is not reported.
	Exclude ExcludeConfig `json:"exclude" koanf:"exclude" toml:"exclude,omitempty"`
}

// ExcludeConfig defines file exclusion patterns for a rule.
type ExcludeConfig struct {
	// Paths contains doublestar glob patterns for files to exclude.
	Paths []string `json:"paths,omitempty" koanf:"paths" toml:"paths,omitempty"`
}

// FileValidationConfig configures pre-read file validation checks.
//
//	[file-validation]
//	max-file-size = 102400
type FileValidationConfig struct {
	// MaxFileSize is the maximum file size in bytes (0 = unlimited).
	MaxFileSize int64 `json:"max-file-size,omitempty" koanf:"max-file-size" toml:"max-file-size"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			Format:    "text",
			Path:      "auto",
			FailLevel: "style", // Any finding causes exit code 1
		},
		FileValidation: FileValidationConfig{
			MaxFileSize: 100 * 1024, // 100 KB
		},
	}
}

// Rule returns the override for a rule code, namespaced or bare.
func (c *Config) Rule(code string) (RuleConfig, bool) {
	if c == nil {
		return RuleConfig{}, false
	}
	rc, ok := c.Rules[strings.TrimPrefix(code, rules.RulePrefix)]
	return rc, ok
}

// TOML renders the effective configuration as a TOML document.
func (c *Config) TOML() ([]byte, error) {
	out, err := gotoml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return out, nil
}

// Load loads configuration for a target file path.
// It discovers the closest config file, loads it, and applies
// environment variable overrides.
func Load(targetPath string) (*Config, error) {
	return LoadWithOverrides(Discover(targetPath), nil)
}

// LoadFromFile loads configuration from a specific config file path.
// Unlike Load, it does not perform config discovery.
func LoadFromFile(configPath string) (*Config, error) {
	return LoadWithOverrides(configPath, nil)
}

// LoadWithOverrides loads defaults, the config file at configPath (if not
// empty), environment variables and finally overrides, which use the same
// nested shape as the TOML file:
//
//	overrides := map[string]any{
//	  "quiet":  true,
//	  "output": map[string]any{"format": "json"},
//	}
func LoadWithOverrides(configPath string, overrides map[string]any) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	// 2. Config file
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), toml.Parser()); err != nil {
			return nil, fmt.Errorf("load %s: %w", configPath, err)
		}
	}

	// 3. Environment variables (DOCKLINT_* prefix)
	// DOCKLINT_RULES_MISSING_CMD_SEVERITY -> rules.missing-cmd.severity
	if err := k.Load(env.Provider(".", env.Opt{
		Prefix:        EnvPrefix,
		TransformFunc: envKeyTransform,
	}), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	// 4. CLI overrides
	if len(overrides) > 0 {
		if err := k.Load(confmap.Provider(overrides, ""), nil); err != nil {
			return nil, fmt.Errorf("load overrides: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		if configPath != "" {
			return nil, fmt.Errorf("%s: %w", configPath, err)
		}
		return nil, err
	}

	cfg.ConfigFile = configPath
	return &cfg, nil
}

// knownHyphenatedKeys maps dot-separated patterns to their hyphenated equivalents.
// Add new entries here when adding keys or rules with hyphenated names.
var knownHyphenatedKeys = map[string]string{
	"show.source":          "show-source",
	"fail.level":           "fail-level",
	"file.validation":      "file-validation",
	"max.file.size":        "max-file-size",
	"invalid.type":         "invalid-type",
	"missing.from":         "missing-from",
	"invalid.instruction":  "invalid-instruction",
	"bad.parameters":       "bad-parameters",
	"malformed.parameters": "malformed-parameters",
	"missing.cmd":          "missing-cmd",
}

var allowedEnvTopLevelKeys = map[string]struct{}{
	"quiet":           {},
	"rules":           {},
	"output":          {},
	"file-validation": {},
}

// envKeyTransform converts environment variable names to config keys.
// DOCKLINT_OUTPUT_FORMAT -> output.format
// DOCKLINT_RULES_MISSING_CMD_SEVERITY -> rules.missing-cmd.severity
// Variables outside the config tree (e.g. DOCKLINT_CONFIG, read by the CLI)
// are ignored.
func envKeyTransform(k, v string) (string, any) {
	s := strings.ToLower(strings.TrimPrefix(k, EnvPrefix))
	s = strings.ReplaceAll(s, "_", ".")
	for pattern, replacement := range knownHyphenatedKeys {
		s = strings.ReplaceAll(s, pattern, replacement)
	}

	topLevel, _, _ := strings.Cut(s, ".")
	if _, ok := allowedEnvTopLevelKeys[topLevel]; !ok {
		return "", nil
	}
	if strings.HasSuffix(s, ".exclude.paths") {
		return s, strings.Fields(strings.ReplaceAll(v, ",", " "))
	}
	return s, v
}

// Discover finds the closest config file for a target file path.
// It walks up the directory tree from the target's directory,
// checking for config files at each level.
// Returns empty string if no config file is found.
func Discover(targetPath string) string {
	absPath, err := filepath.Abs(targetPath)
	if err != nil {
		return ""
	}

	dir := absPath
	if info, err := os.Stat(absPath); err != nil || !info.IsDir() {
		dir = filepath.Dir(absPath)
	}

	for {
		for _, name := range ConfigFileNames {
			configPath := filepath.Join(dir, name)
			if fileExists(configPath) {
				return configPath
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

// fileExists checks if a file exists and is not a directory.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
