package cli

import (
	"context"

	"github.com/urfave/cli/v3"
)

type Error struct {
	Code    int
	Message string
}

func Run(ctx context.Context, argv []string) *Error {
	cmd := &cli.Command{
		Name:  "ghostvault",
		Usage: "Client-side encrypted memory vault",
		Commands: []*cli.Command{
			statusCommand(),
			initCommand(),
			storeCommand(),
			decryptCommand(),
			historyCommand(),
			searchCommand(),
			loginCommand(),
			registerCommand(),
			shellCommand(),
		},
	}

	if err := cmd.Run(ctx, argv); err != nil {
		return &Error{
			Code:    1,
			Message: err.Error(),
		}
	}

	return nil
}
