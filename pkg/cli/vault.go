package cli

import (
	"context"
	"fmt"

	"github.com/identra-io/ghostvault/pkg/crypto"
	"github.com/identra-io/ghostvault/pkg/usecase/vault"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func storeCommand() *cli.Command {
	var (
		cfg     config
		content string
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "content",
			Aliases:     []string{"m"},
			Usage:       "Content to encrypt and vault",
			Destination: &content,
			Required:    true,
		},
	}
	flags = append(flags, globalFlags(&cfg)...)

	return &cli.Command{
		Name:  "store",
		Usage: "Encrypt content and store it in the vault",
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

			// One-shot invocation: unlock explicitly before storing. The
			// long-lived shell keeps init as a separate step.
			sess := cfg.newSession()
			uc := vault.New(sess, backend.Memory())
			if _, err := uc.Initialize(ctx); err != nil {
				return err
			}

			id, err := uc.Store(ctx, content)
			if err != nil {
				return goerr.Wrap(err, "failed to vault content")
			}

			fmt.Fprintf(c.Root().Writer, "Stored successfully (ID: %s)\n", id)
			return nil
		},
	}
}

func decryptCommand() *cli.Command {
	var (
		cfg  config
		blob string
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "blob",
			Aliases:     []string{"b"},
			Usage:       "Encrypted blob to decrypt",
			Destination: &blob,
			Required:    true,
		},
	}
	flags = append(flags, globalFlags(&cfg)...)

	return &cli.Command{
		Name:  "decrypt",
		Usage: "Decrypt a blob sealed under the session key",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			ctx, err := cfg.setup(ctx, c)
			if err != nil {
				return err
			}

			sess := cfg.newSession()
			uc := vault.New(sess, nil)
			if _, err := uc.Initialize(ctx); err != nil {
				return err
			}

			plaintext, err := uc.Decrypt(ctx, crypto.Blob(blob))
			if err != nil {
				return goerr.Wrap(err, "failed to decrypt content")
			}

			fmt.Fprintf(c.Root().Writer, "%s\n", plaintext)
			return nil
		},
	}
}
