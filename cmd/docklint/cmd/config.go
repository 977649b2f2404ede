package cmd

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

func configCommand() *cli.Command {
	return &cli.Command{
		Name:      "config",
		Usage:     "Print the effective configuration for a path as TOML",
		ArgsUsage: "[PATH]",
		Action: func(_ context.Context, cmd *cli.Command) error {
			target := cmd.Args().First()
			if target == "" {
				target = "."
			}

			cfg, err := loadConfigForFile(requestFromCommand(cmd), target)
			if err != nil {
				return cli.Exit(fmt.Sprintf("Error: %v", err), ExitConfigError)
			}

			out, err := cfg.TOML()
			if err != nil {
				return cli.Exit(fmt.Sprintf("Error: %v", err), ExitConfigError)
			}

			w := cmd.Root().Writer
			if cfg.ConfigFile != "" {
				if _, err := fmt.Fprintf(w, "# loaded from %s\n", cfg.ConfigFile); err != nil {
					return err
				}
			}
			_, err = w.Write(out)
			return err
		},
	}
}
