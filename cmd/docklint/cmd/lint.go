package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/gkampitakis/ciinfo"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/wharflab/docklint/internal/config"
	"github.com/wharflab/docklint/internal/directive"
	"github.com/wharflab/docklint/internal/discovery"
	"github.com/wharflab/docklint/internal/fileval"
	"github.com/wharflab/docklint/internal/processor"
	"github.com/wharflab/docklint/internal/reporter"
	"github.com/wharflab/docklint/internal/rules"
	"github.com/wharflab/docklint/internal/sourcemap"
	"github.com/wharflab/docklint/internal/validate"
	"github.com/wharflab/docklint/internal/version"
)

// Exit codes
const (
	ExitSuccess     = 0 // No violations (or below fail-level threshold)
	ExitViolations  = 1 // Violations found at or above fail-level
	ExitConfigError = 2 // Config, usage or I/O error
	ExitNoFiles     = 3 // No Dockerfiles found (missing file, empty glob, empty directory)
)

const formatAuto = "auto"

func lintFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to config file (default: auto-discover)",
			Sources: cli.EnvVars("DOCKLINT_CONFIG"),
		},
		&cli.BoolFlag{
			Name:    "quiet",
			Aliases: []string{"q"},
			Usage:   "Report structural problems only (skip parameter findings)",
			Sources: cli.EnvVars("DOCKLINT_QUIET"),
		},
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "Output format: text, json, sarif, github-actions, markdown, auto",
			Sources: cli.EnvVars("DOCKLINT_FORMAT", "DOCKLINT_OUTPUT_FORMAT"),
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output path: auto, stdout, stderr, or file path",
			Sources: cli.EnvVars("DOCKLINT_OUTPUT_PATH"),
		},
		&cli.BoolFlag{
			Name:    "no-color",
			Usage:   "Disable colored output",
			Sources: cli.EnvVars("NO_COLOR"),
		},
		&cli.BoolFlag{
			Name:    "show-source",
			Usage:   "Show finding details and source lines in text output",
			Sources: cli.EnvVars("DOCKLINT_OUTPUT_SHOW_SOURCE"),
		},
		&cli.StringFlag{
			Name:    "fail-level",
			Usage:   "Minimum severity to cause non-zero exit: error, warning, info, style, none",
			Sources: cli.EnvVars("DOCKLINT_OUTPUT_FAIL_LEVEL"),
		},
		&cli.StringSliceFlag{
			Name:    "exclude",
			Usage:   "Glob pattern to exclude files (can be repeated)",
			Sources: cli.EnvVars("DOCKLINT_EXCLUDE"),
		},
		&cli.Int64Flag{
			Name:    "max-file-size",
			Usage:   "Maximum Dockerfile size in bytes (0 = unlimited)",
			Sources: cli.EnvVars("DOCKLINT_FILE_VALIDATION_MAX_FILE_SIZE"),
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "Log discovery and validation progress to stderr",
			Sources: cli.EnvVars("DOCKLINT_VERBOSE"),
		},
	}
}

func lintCommand() *cli.Command {
	return &cli.Command{
		Name:      "lint",
		Usage:     "Validate Dockerfile(s)",
		ArgsUsage: "[DOCKERFILE...]",
		Action:    runLint,
	}
}

// lintRequest is everything the lint run needs from the command line.
type lintRequest struct {
	inputs     []string
	configPath string
	overrides  map[string]any
	exclude    []string
	color      *bool
	// githubActions resolves --format auto.
	githubActions bool
}

// streams are the process output streams, replaceable in tests.
type streams struct {
	out io.Writer
	err io.Writer
}

// runLint is the action handler for the lint command.
func runLint(ctx context.Context, cmd *cli.Command) error {
	root := cmd.Root()
	s := streams{out: root.Writer, err: root.ErrWriter}
	if s.out == nil {
		s.out = os.Stdout
	}
	if s.err == nil {
		s.err = os.Stderr
	}

	req := requestFromCommand(cmd)
	log := newLogger(s.err, cmd.Bool("verbose"))

	if code := lint(ctx, req, s, log); code != ExitSuccess {
		return cli.Exit("", code)
	}
	return nil
}

func requestFromCommand(cmd *cli.Command) lintRequest {
	req := lintRequest{
		inputs:        cmd.Args().Slice(),
		configPath:    cmd.String("config"),
		overrides:     cliOverrides(cmd),
		exclude:       cmd.StringSlice("exclude"),
		githubActions: ciinfo.GITHUB_ACTIONS,
	}
	if cmd.IsSet("no-color") && cmd.Bool("no-color") {
		noColor := false
		req.color = &noColor
	}
	return req
}

// cliOverrides turns explicitly set flags into koanf overrides shaped like
// the TOML file. Unset flags leave config file values alone.
func cliOverrides(cmd *cli.Command) map[string]any {
	overrides := make(map[string]any)
	output := make(map[string]any)

	if cmd.IsSet("quiet") {
		overrides["quiet"] = cmd.Bool("quiet")
	}
	if cmd.IsSet("format") {
		output["format"] = cmd.String("format")
	}
	if cmd.IsSet("output") {
		output["path"] = cmd.String("output")
	}
	if cmd.IsSet("show-source") {
		output["show-source"] = cmd.Bool("show-source")
	}
	if cmd.IsSet("fail-level") {
		output["fail-level"] = cmd.String("fail-level")
	}
	if len(output) > 0 {
		overrides["output"] = output
	}
	if cmd.IsSet("max-file-size") {
		overrides["file-validation"] = map[string]any{"max-file-size": cmd.Int64("max-file-size")}
	}
	return overrides
}

// fileResult holds the outcome of validating one file.
type fileResult struct {
	path       string
	cfg        *config.Config
	source     []byte
	violations []rules.Violation
}

// lint runs discovery, validation, post-processing and reporting and returns
// the process exit code. Errors are written to s.err.
func lint(ctx context.Context, req lintRequest, s streams, log *logrus.Logger) int {
	inputs := req.inputs
	if len(inputs) == 0 {
		inputs = []string{"."}
	}

	discovered, err := discovery.Discover(inputs, discovery.Options{
		Patterns:        discovery.DefaultPatterns(),
		ExcludePatterns: req.exclude,
	})
	if err != nil {
		var notFound *discovery.FileNotFoundError
		if errors.As(err, &notFound) {
			log.WithField("file", notFound.Path).Debug("input does not exist")
			fmt.Fprintln(s.err, "ERROR: Dockerfile not found")
			return ExitNoFiles
		}
		fmt.Fprintf(s.err, "Error: failed to discover files: %v\n", err)
		return ExitConfigError
	}
	if len(discovered) == 0 {
		reportNoFilesFound(s.err, inputs)
		return ExitNoFiles
	}
	log.WithField("count", len(discovered)).Debug("discovered Dockerfiles")

	results, err := validateFiles(ctx, discovered, req, log)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			fmt.Fprintln(s.err, "ERROR: Dockerfile not found")
			return ExitNoFiles
		}
		fmt.Fprintf(s.err, "Error: %v\n", err)
		return ExitConfigError
	}

	files := make([]string, 0, len(results))
	fileConfigs := make(map[string]*config.Config, len(results))
	fileSources := make(map[string][]byte, len(results))
	var violations []rules.Violation
	for _, r := range results {
		files = append(files, r.path)
		fileConfigs[r.path] = r.cfg
		fileSources[r.path] = r.source
		violations = append(violations, r.violations...)
	}

	// Output settings come from the first file's config.
	cfg := results[0].cfg
	procCtx := processor.NewContext(cfg, fileConfigs, fileSources)
	violations = processor.DefaultChain().Process(violations, procCtx)

	metadata := reporter.ReportMetadata{
		Files:        files,
		FilesScanned: len(files),
		RulesEnabled: enabledRuleCount(cfg),
	}
	if err := writeReport(req, s, cfg, violations, fileSources, metadata); err != nil {
		fmt.Fprintf(s.err, "Error: %v\n", err)
		return ExitConfigError
	}

	return determineExitCode(violations, cfg)
}

// validateFiles validates every discovered file concurrently. Results keep
// discovery order.
func validateFiles(
	ctx context.Context, discovered []discovery.DiscoveredFile, req lintRequest, log *logrus.Logger,
) ([]fileResult, error) {
	results := make([]fileResult, len(discovered))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, df := range discovered {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := validateFile(df.Path, req, log)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func validateFile(path string, req lintRequest, log *logrus.Logger) (fileResult, error) {
	cfg, err := loadConfigForFile(req, path)
	if err != nil {
		return fileResult{}, fmt.Errorf("failed to load config for %s: %w", path, err)
	}
	if cfg.ConfigFile != "" {
		log.WithFields(logrus.Fields{"file": path, "config": cfg.ConfigFile}).Debug("using config file")
	}

	if err := fileval.ValidateFile(path, cfg.FileValidation.MaxFileSize); err != nil {
		return fileResult{}, fmt.Errorf("failed to validate %s: %w", path, err)
	}
	source, err := fileval.ReadFile(path, cfg.FileValidation.MaxFileSize)
	if err != nil {
		return fileResult{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	res := validate.ValidateBytes(source, validate.Options{Quiet: cfg.Quiet})
	violations := applyDirectives(path, source, rules.FromResult(path, res), log)
	log.WithFields(logrus.Fields{"file": path, "findings": len(violations)}).Debug("validated")

	return fileResult{path: path, cfg: cfg, source: source, violations: violations}, nil
}

// applyDirectives drops findings suppressed by inline comments such as
// "# docklint ignore=bad-parameters". Malformed directives are logged.
func applyDirectives(path string, source []byte, violations []rules.Violation, log *logrus.Logger) []rules.Violation {
	parsed := directive.Parse(sourcemap.FromDocument(source), isKnownRule)
	for _, perr := range parsed.Errors {
		log.WithFields(logrus.Fields{"file": path, "line": perr.Line + 1}).Warnf("directive: %s", perr.Message)
	}
	if len(parsed.Directives) == 0 {
		return violations
	}

	filtered := directive.Filter(violations, parsed.Directives)
	if n := len(filtered.Suppressed); n > 0 {
		log.WithFields(logrus.Fields{"file": path, "suppressed": n}).Debug("applied inline directives")
	}
	return filtered.Violations
}

func isKnownRule(code string) bool {
	return rules.DefaultRegistry().Has(strings.ToLower(code))
}

// loadConfigForFile loads configuration for a target file, applying CLI overrides.
func loadConfigForFile(req lintRequest, targetPath string) (*config.Config, error) {
	configPath := req.configPath
	if configPath == "" {
		configPath = config.Discover(targetPath)
	}
	return config.LoadWithOverrides(configPath, req.overrides)
}

// writeReport formats and writes the violation report.
func writeReport(
	req lintRequest, s streams, cfg *config.Config, violations []rules.Violation,
	fileSources map[string][]byte, metadata reporter.ReportMetadata,
) error {
	formatType, err := reporter.ParseFormat(resolveFormat(cfg.Output.Format, req.githubActions))
	if err != nil {
		return err
	}

	opts := reporter.Options{
		Format:      formatType,
		Color:       req.color,
		ShowSource:  cfg.Output.ShowSource,
		ToolName:    "docklint",
		ToolVersion: version.RawVersion(),
		ToolURI:     "https://github.com/wharflab/docklint",
	}

	switch cfg.Output.Path {
	case "auto", "":
		// Passing files go to stdout, failing files to stderr.
		opts.Writer = s.out
		if formatType == reporter.FormatText {
			opts.ErrWriter = s.err
		}
	case "stdout":
		opts.Writer = s.out
	case "stderr":
		opts.Writer = s.err
	default:
		writer, closeWriter, err := reporter.GetWriter(filepath.Clean(cfg.Output.Path))
		if err != nil {
			return err
		}
		defer func() {
			if err := closeWriter(); err != nil {
				fmt.Fprintf(s.err, "Warning: failed to close output: %v\n", err)
			}
		}()
		opts.Writer = writer
	}

	rep, err := reporter.New(opts)
	if err != nil {
		return fmt.Errorf("failed to create reporter: %w", err)
	}
	if err := rep.Report(violations, fileSources, metadata); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// resolveFormat maps "auto" to github-actions inside GitHub Actions and to
// text everywhere else.
func resolveFormat(format string, githubActions bool) string {
	if format != formatAuto {
		return format
	}
	if githubActions {
		return string(reporter.FormatGitHubActions)
	}
	return string(reporter.FormatText)
}

// determineExitCode returns the appropriate exit code based on violations and fail-level.
func determineExitCode(violations []rules.Violation, cfg *config.Config) int {
	threshold, fail := cfg.FailSeverity()
	if !fail {
		return ExitSuccess
	}
	for _, v := range violations {
		if v.Severity.IsAtLeast(threshold) {
			return ExitViolations
		}
	}
	return ExitSuccess
}

// enabledRuleCount counts the rules not switched off in cfg.
func enabledRuleCount(cfg *config.Config) int {
	n := 0
	for _, meta := range rules.All() {
		if rc, ok := cfg.Rule(meta.Code); ok && rc.Severity == "off" {
			continue
		}
		n++
	}
	return n
}

// reportNoFilesFound prints a context-aware message when no Dockerfiles are found.
func reportNoFilesFound(w io.Writer, inputs []string) {
	for _, input := range inputs {
		if info, err := os.Stat(input); err == nil && info.IsDir() {
			abs, err := filepath.Abs(input)
			if err != nil {
				abs = input
			}
			fmt.Fprintf(w, "Error: no Dockerfile or Containerfile found in %s\n", abs)
			return
		}
	}
	fmt.Fprintf(w, "Error: no Dockerfiles matched: %v\n", inputs)
}
