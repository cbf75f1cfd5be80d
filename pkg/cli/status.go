package cli

import (
	"context"
	"fmt"

	"github.com/identra-io/ghostvault/pkg/usecase/vault"
	"github.com/urfave/cli/v3"
)

func statusCommand() *cli.Command {
	var cfg config

	return &cli.Command{
		Name:  "status",
		Usage: "Show vault status for this process",
		Flags: globalFlags(&cfg),
		Action: func(ctx context.Context, c *cli.Command) error {
			if _, err := cfg.setup(ctx, c); err != nil {
				return err
			}

			uc := vault.New(cfg.newSession(), nil)
			st := uc.Status()

			fmt.Fprintf(c.Root().Writer, "Vault:          %s\n", st.State)
			fmt.Fprintf(c.Root().Writer, "Identity:       %s\n", orDash(st.ActiveIdentity))
			fmt.Fprintf(c.Root().Writer, "Security level: %s\n", st.SecurityLevel)
			fmt.Fprintf(c.Root().Writer, "Bytes vaulted:  %d\n", st.Metrics.BytesEncrypted)

			return nil
		},
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
