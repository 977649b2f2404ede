package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wharflab/docklint/internal/config"
	"github.com/wharflab/docklint/internal/rules"
)

const (
	validDockerfile    = "FROM vader/death-star\nCMD fire\n"
	invalidDockerfile  = "Hi mom!\n"
	badParamDockerfile = "FROM Vader/Death-Star\nCMD [\"x\"]\n"
)

func writeDockerfile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(name))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

type lintOutcome struct {
	code   int
	stdout string
	stderr string
}

func runLintFor(t *testing.T, req lintRequest) lintOutcome {
	t.Helper()
	var out, errOut bytes.Buffer
	log := newLogger(&errOut, false)
	code := lint(context.Background(), req, streams{out: &out, err: &errOut}, log)
	return lintOutcome{code: code, stdout: out.String(), stderr: errOut.String()}
}

func TestLint_Valid(t *testing.T) {
	t.Parallel()

	path := writeDockerfile(t, t.TempDir(), "Dockerfile", validDockerfile)
	got := runLintFor(t, lintRequest{inputs: []string{path}})

	assert.Equal(t, ExitSuccess, got.code)
	assert.Equal(t, "Dockerfile looks good!\n", got.stdout)
	assert.Empty(t, got.stderr)
}

func TestLint_Invalid(t *testing.T) {
	t.Parallel()

	path := writeDockerfile(t, t.TempDir(), "Dockerfile", invalidDockerfile)
	got := runLintFor(t, lintRequest{inputs: []string{path}})

	assert.Equal(t, ExitViolations, got.code)
	assert.Empty(t, got.stdout)
	assert.Equal(t, "VALIDATION FAILED\n"+
		"Missing or misplaced FROM at line 1\n"+
		"Invalid instruction at line 1\n"+
		"Missing CMD\n", got.stderr)
}

func TestLint_MissingFile(t *testing.T) {
	t.Parallel()

	got := runLintFor(t, lintRequest{inputs: []string{filepath.Join(t.TempDir(), "Dockerfile")}})

	assert.Equal(t, ExitNoFiles, got.code)
	assert.Equal(t, "ERROR: Dockerfile not found\n", got.stderr)
	assert.Empty(t, got.stdout)
}

func TestLint_EmptyDirectory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	got := runLintFor(t, lintRequest{inputs: []string{dir}})

	assert.Equal(t, ExitNoFiles, got.code)
	assert.Contains(t, got.stderr, "no Dockerfile or Containerfile found in")
}

func TestLint_Quiet(t *testing.T) {
	t.Parallel()

	path := writeDockerfile(t, t.TempDir(), "Dockerfile", badParamDockerfile)

	loud := runLintFor(t, lintRequest{inputs: []string{path}})
	assert.Equal(t, ExitViolations, loud.code)
	assert.Contains(t, loud.stderr, "Bad parameters at line 1")

	quiet := runLintFor(t, lintRequest{inputs: []string{path}, overrides: map[string]any{"quiet": true}})
	assert.Equal(t, ExitSuccess, quiet.code)
	assert.Equal(t, "Dockerfile looks good!\n", quiet.stdout)
}

func TestLint_FailLevel(t *testing.T) {
	t.Parallel()

	path := writeDockerfile(t, t.TempDir(), "Dockerfile", badParamDockerfile)

	tests := []struct {
		level string
		want  int
	}{
		{"style", ExitViolations},
		{"warning", ExitViolations},
		{"error", ExitSuccess},
		{"none", ExitSuccess},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			t.Parallel()
			got := runLintFor(t, lintRequest{
				inputs:    []string{path},
				overrides: map[string]any{"output": map[string]any{"fail-level": tt.level}},
			})
			assert.Equal(t, tt.want, got.code)
			assert.Contains(t, got.stderr, "VALIDATION FAILED", "findings are reported regardless of fail level")
		})
	}
}

func TestLint_MultipleFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeDockerfile(t, dir, "a/Dockerfile", validDockerfile)
	writeDockerfile(t, dir, "b/Dockerfile", invalidDockerfile)

	got := runLintFor(t, lintRequest{inputs: []string{dir}})

	assert.Equal(t, ExitViolations, got.code)
	assert.Equal(t, filepath.ToSlash(filepath.Join(dir, "a", "Dockerfile"))+"\nDockerfile looks good!\n", got.stdout)
	assert.Contains(t, got.stderr, filepath.ToSlash(filepath.Join(dir, "b", "Dockerfile"))+"\nVALIDATION FAILED\n")
}

func TestLint_JSONToStdout(t *testing.T) {
	t.Parallel()

	path := writeDockerfile(t, t.TempDir(), "Dockerfile", invalidDockerfile)
	got := runLintFor(t, lintRequest{
		inputs:    []string{path},
		overrides: map[string]any{"output": map[string]any{"format": "json"}},
	})

	assert.Equal(t, ExitViolations, got.code)
	assert.Empty(t, got.stderr)

	var out struct {
		Files []struct {
			Valid      bool `json:"valid"`
			Violations []struct {
				Rule string `json:"rule"`
			} `json:"violations"`
		} `json:"files"`
		FilesScanned int `json:"files_scanned"`
		RulesEnabled int `json:"rules_enabled"`
	}
	require.NoError(t, json.Unmarshal([]byte(got.stdout), &out), got.stdout)
	require.Len(t, out.Files, 1)
	assert.False(t, out.Files[0].Valid)
	require.Len(t, out.Files[0].Violations, 3)
	assert.Equal(t, "docklint/missing-from", out.Files[0].Violations[0].Rule)
	assert.Equal(t, 1, out.FilesScanned)
	assert.Equal(t, len(rules.All()), out.RulesEnabled)
}

func TestLint_OutputFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeDockerfile(t, dir, "Dockerfile", invalidDockerfile)
	report := filepath.Join(dir, "report.txt")

	got := runLintFor(t, lintRequest{
		inputs:    []string{path},
		overrides: map[string]any{"output": map[string]any{"path": report}},
	})
	assert.Equal(t, ExitViolations, got.code)
	assert.Empty(t, got.stdout)
	assert.Empty(t, got.stderr)

	content, err := os.ReadFile(report)
	require.NoError(t, err)
	assert.Contains(t, string(content), "VALIDATION FAILED\nMissing or misplaced FROM at line 1\n")
}

func TestLint_ConfigFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeDockerfile(t, dir, "Dockerfile", invalidDockerfile)
	writeDockerfile(t, dir, ".docklint.toml", "[rules.missing-cmd]\nseverity = \"off\"\n"+
		"[rules.invalid-instruction]\nseverity = \"off\"\n")

	got := runLintFor(t, lintRequest{inputs: []string{path}})
	assert.Equal(t, ExitViolations, got.code)
	assert.Equal(t, "VALIDATION FAILED\nMissing or misplaced FROM at line 1\n", got.stderr)
}

func TestLint_InlineDirectives(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeDockerfile(t, dir, "Dockerfile", "# check=skip=missing-cmd\n"+
		"FROM vader/death-star\n# docklint ignore=bad-parameters\nEXPOSE http\n")
	got := runLintFor(t, lintRequest{inputs: []string{path}})
	assert.Equal(t, ExitSuccess, got.code)
	assert.Equal(t, "Dockerfile looks good!\n", got.stdout)

	path = writeDockerfile(t, dir, "unknown/Dockerfile", "# docklint global ignore=missing-cmd,nope\n"+
		"FROM vader/death-star\n")
	got = runLintFor(t, lintRequest{inputs: []string{path}})
	assert.Equal(t, ExitSuccess, got.code)
	assert.Contains(t, got.stderr, "unknown rule code(s): nope")
}

func TestLint_InvalidConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeDockerfile(t, dir, "Dockerfile", validDockerfile)
	cfgPath := writeDockerfile(t, dir, "custom.toml", "[output]\nformat = \"xml\"\n")

	got := runLintFor(t, lintRequest{inputs: []string{path}, configPath: cfgPath})
	assert.Equal(t, ExitConfigError, got.code)
	assert.Contains(t, got.stderr, "failed to load config")
}

func TestLint_MaxFileSize(t *testing.T) {
	t.Parallel()

	path := writeDockerfile(t, t.TempDir(), "Dockerfile", validDockerfile)
	got := runLintFor(t, lintRequest{
		inputs:    []string{path},
		overrides: map[string]any{"file-validation": map[string]any{"max-file-size": int64(4)}},
	})
	assert.Equal(t, ExitConfigError, got.code)
	assert.Contains(t, got.stderr, "file too large")
}

func TestLint_ShowSource(t *testing.T) {
	t.Parallel()

	path := writeDockerfile(t, t.TempDir(), "Dockerfile", "FROM vader/death-star\nWORKDR /app\nCMD fire\n")
	got := runLintFor(t, lintRequest{
		inputs:    []string{path},
		overrides: map[string]any{"output": map[string]any{"show-source": true}},
	})

	assert.Equal(t, ExitViolations, got.code)
	assert.Equal(t, "VALIDATION FAILED\n"+
		"Invalid instruction at line 2\n"+
		"  did you mean \"WORKDIR\"?\n"+
		"     2 | WORKDR /app\n", got.stderr)
}

func TestResolveFormat(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "github-actions", resolveFormat("auto", true))
	assert.Equal(t, "text", resolveFormat("auto", false))
	assert.Equal(t, "json", resolveFormat("json", true))
}

func TestDetermineExitCode(t *testing.T) {
	t.Parallel()

	warning := []rules.Violation{
		rules.NewViolation(rules.NewLineLocation("Dockerfile", 1), "docklint/bad-parameters", "Bad parameters",
			rules.SeverityWarning),
	}

	cfg := config.Default()
	assert.Equal(t, ExitSuccess, determineExitCode(nil, cfg))
	assert.Equal(t, ExitViolations, determineExitCode(warning, cfg))

	cfg.Output.FailLevel = "error"
	assert.Equal(t, ExitSuccess, determineExitCode(warning, cfg))
}

func TestEnabledRuleCount(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	assert.Equal(t, 6, enabledRuleCount(cfg))

	cfg.Rules = map[string]config.RuleConfig{"missing-cmd": {Severity: "off"}}
	assert.Equal(t, 5, enabledRuleCount(cfg))
}

func TestNewLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	assert.Equal(t, logrus.WarnLevel, newLogger(&buf, false).GetLevel())

	log := newLogger(&buf, true)
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())
	log.WithField("file", "Dockerfile").Debug("validated")
	assert.Contains(t, buf.String(), "file=Dockerfile")
	assert.NotContains(t, buf.String(), "time=")
}
