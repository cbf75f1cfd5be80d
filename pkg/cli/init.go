package cli

import (
	"context"
	"fmt"

	"github.com/identra-io/ghostvault/pkg/usecase/vault"
	"github.com/urfave/cli/v3"
)

func initCommand() *cli.Command {
	var cfg config

	return &cli.Command{
		Name:  "init",
		Usage: "Initialize the session key and unlock the vault",
		Flags: globalFlags(&cfg),
		Action: func(ctx context.Context, c *cli.Command) error {
			ctx, err := cfg.setup(ctx, c)
			if err != nil {
				return err
			}

			uc := vault.New(cfg.newSession(), nil)
			msg, err := uc.Initialize(ctx)
			if err != nil {
				return err
			}

			fmt.Fprintf(c.Root().Writer, "%s\n", msg)
			return nil
		},
	}
}
