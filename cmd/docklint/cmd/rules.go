package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/urfave/cli/v3"

	"github.com/wharflab/docklint/internal/rules"
)

func rulesCommand() *cli.Command {
	return &cli.Command{
		Name:  "rules",
		Usage: "List the checks docklint performs",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output rule metadata as JSON",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			w := cmd.Root().Writer
			all := rules.All()

			if cmd.Bool("json") {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(all)
			}

			t := table.New().
				Border(lipgloss.NormalBorder()).
				Headers("RULE", "SEVERITY", "CATEGORY", "DESCRIPTION")
			for _, r := range all {
				t.Row(r.Code, r.DefaultSeverity.String(), r.Category, r.Description)
			}
			_, err := fmt.Fprintln(w, t.String())
			return err
		},
	}
}
