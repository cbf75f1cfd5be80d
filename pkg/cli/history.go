package cli

import (
	"context"
	"fmt"

	"github.com/identra-io/ghostvault/pkg/model"
	"github.com/identra-io/ghostvault/pkg/usecase/recall"
	"github.com/urfave/cli/v3"
)

func historyCommand() *cli.Command {
	var (
		cfg    config
		limit  int64
		recent bool
	)

	flags := []cli.Flag{
		&cli.IntFlag{
			Name:        "limit",
			Aliases:     []string{"l"},
			Usage:       "Maximum number of records to display",
			Value:       50,
			Sources:     cli.EnvVars("GHOSTVAULT_HISTORY_LIMIT"),
			Destination: &limit,
		},
		&cli.BoolFlag{
			Name:        "recent",
			Aliases:     []string{"r"},
			Usage:       "Fetch newest records instead of the full listing",
			Destination: &recent,
		},
	}
	flags = append(flags, globalFlags(&cfg)...)

	return &cli.Command{
		Name:  "history",
		Usage: "List stored memory records",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			ctx, err := cfg.setup(ctx, c)
			if err != nil {
				return err
			}

			backend, err := cfg.newBackend()
			if err != nil {
				return err
			}
			defer backend.Close()

			uc := recall.New(backend.Memory(), nil)

			var records []*model.MemoryRecord
			if recent {
				records, err = uc.Recent(ctx, int(limit))
			} else {
				records, err = uc.History(ctx, int(limit))
			}
			if err != nil {
				return err
			}

			if len(records) == 0 {
				fmt.Fprintf(c.Root().Writer, "No records found\n")
				return nil
			}

			for _, r := range records {
				fmt.Fprintf(c.Root().Writer, "%s\t%s\t%s\n",
					r.ID,
					r.CreatedAt.Format("2006-01-02 15:04:05"),
					truncate(r.Content, 60),
				)
			}

			return nil
		},
	}
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
