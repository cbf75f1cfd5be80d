package cli

import (
	"context"
	"fmt"

	"github.com/identra-io/ghostvault/pkg/usecase/account"
	"github.com/urfave/cli/v3"
)

func loginCommand() *cli.Command {
	var (
		cfg      config
		username string
		password string
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "username",
			Aliases:     []string{"u"},
			Usage:       "Account username",
			Sources:     cli.EnvVars("GHOSTVAULT_USERNAME"),
			Destination: &username,
			Required:    true,
		},
		&cli.StringFlag{
			Name:        "password",
			Usage:       "Account password",
			Sources:     cli.EnvVars("GHOSTVAULT_PASSWORD"),
			Destination: &password,
			Required:    true,
		},
	}
	flags = append(flags, globalFlags(&cfg)...)

	return &cli.Command{
		Name:  "login",
		Usage: "Authenticate against the backend",
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

			uc := account.New(backend.Auth(), cfg.newSession())
			token, err := uc.Login(ctx, username, password)
			if err != nil {
				return err
			}

			fmt.Fprintf(c.Root().Writer, "%s\n", token)
			return nil
		},
	}
}

func registerCommand() *cli.Command {
	var (
		cfg      config
		username string
		email    string
		password string
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "username",
			Aliases:     []string{"u"},
			Usage:       "Account username",
			Destination: &username,
			Required:    true,
		},
		&cli.StringFlag{
			Name:        "email",
			Usage:       "Account email address",
			Destination: &email,
			Required:    true,
		},
		&cli.StringFlag{
			Name:        "password",
			Usage:       "Account password",
			Sources:     cli.EnvVars("GHOSTVAULT_PASSWORD"),
			Destination: &password,
			Required:    true,
		},
	}
	flags = append(flags, globalFlags(&cfg)...)

	return &cli.Command{
		Name:  "register",
		Usage: "Create a new account",
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

			uc := account.New(backend.Auth(), cfg.newSession())
			userID, err := uc.Register(ctx, username, email, password)
			if err != nil {
				return err
			}

			fmt.Fprintf(c.Root().Writer, "Registered (user ID: %s)\n", userID)
			return nil
		},
	}
}
