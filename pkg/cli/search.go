package cli

import (
	"context"
	"fmt"

	"github.com/identra-io/ghostvault/pkg/usecase/recall"
	"github.com/urfave/cli/v3"
)

func searchCommand() *cli.Command {
	var (
		cfg   config
		query string
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "query",
			Aliases:     []string{"q"},
			Usage:       "Natural language query",
			Sources:     cli.EnvVars("GHOSTVAULT_SEARCH_QUERY"),
			Destination: &query,
			Required:    true,
		},
	}
	flags = append(flags, searchFlags(&cfg)...)
	flags = append(flags, globalFlags(&cfg)...)

	return &cli.Command{
		Name:  "search",
		Usage: "Semantic search over stored memories",
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

			embedder, err := cfg.newEmbedder()
			if err != nil {
				return err
			}

			uc := recall.New(backend.Memory(), embedder,
				recall.WithTopK(int(cfg.topK)),
				recall.WithThreshold(cfg.threshold),
			)

			matches, err := uc.Search(ctx, query)
			if err != nil {
				return err
			}

			if len(matches) == 0 {
				fmt.Fprintf(c.Root().Writer, "No matches found\n")
				return nil
			}

			// Content is shown as stored; vaulted records remain ciphertext
			// until decrypted explicitly.
			for i, m := range matches {
				fmt.Fprintf(c.Root().Writer, "%d. %s (score: %.3f)\n", i+1, m.Memory.ID, m.Score)
				fmt.Fprintf(c.Root().Writer, "   %s\n", truncate(m.Memory.Content, 80))
			}

			return nil
		},
	}
}
