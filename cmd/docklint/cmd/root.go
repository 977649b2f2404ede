package cmd

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/wharflab/docklint/internal/version"
)

// NewApp creates the CLI application
func NewApp() *cli.Command {
	return &cli.Command{
		Name:    "docklint",
		Usage:   "A syntax validator for Dockerfiles",
		Version: version.Version(),
		Description: `docklint checks that Dockerfiles are syntactically valid: the first
instruction is FROM, a CMD is present, every instruction keyword is known and
its parameters match the instruction's grammar.

Examples:
  docklint Dockerfile
  docklint --quiet Dockerfile
  docklint --format json .
  docklint rules`,
		// Root flags are persistent, so "docklint -f json lint x" and
		// "docklint lint -f json x" behave the same.
		Flags:          lintFlags(),
		DefaultCommand: "lint",
		Commands: []*cli.Command{
			lintCommand(),
			rulesCommand(),
			configCommand(),
			versionCommand(),
		},
	}
}

// Execute runs the CLI application
func Execute() error {
	return NewApp().Run(context.Background(), os.Args)
}
