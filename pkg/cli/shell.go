package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/chzyer/readline"
	"github.com/identra-io/ghostvault/pkg/crypto"
	"github.com/identra-io/ghostvault/pkg/model"
	"github.com/identra-io/ghostvault/pkg/usecase/account"
	"github.com/identra-io/ghostvault/pkg/usecase/recall"
	"github.com/identra-io/ghostvault/pkg/usecase/vault"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// shellCommand is the interactive surface: one long-lived session shared by
// every operation, with the lock state machine exposed as-is. The vault
// starts locked; "init" unlocks it for the rest of the run.
func shellCommand() *cli.Command {
	var cfg config

	flags := searchFlags(&cfg)
	flags = append(flags, globalFlags(&cfg)...)

	return &cli.Command{
		Name:  "shell",
		Usage: "Interactive vault shell",
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

			sess := cfg.newSession()
			sh := &shell{
				out:     c.Root().Writer,
				vault:   vault.New(sess, backend.Memory()),
				recall:  recall.New(backend.Memory(), embedder, recall.WithTopK(int(cfg.topK)), recall.WithThreshold(cfg.threshold)),
				account: account.New(backend.Auth(), sess),
			}

			rl, err := readline.New("ghostvault> ")
			if err != nil {
				return goerr.Wrap(err, "failed to start shell")
			}
			defer rl.Close()

			fmt.Fprintf(sh.out, "ghostvault shell. Type 'help' for commands, 'exit' to quit.\n")

			for {
				line, err := rl.Readline()
				if err == readline.ErrInterrupt {
					continue
				}
				if err == io.EOF {
					return nil
				}
				if err != nil {
					return goerr.Wrap(err, "failed to read input")
				}

				line = strings.TrimSpace(line)
				if line == "" {
					continue
				}
				if line == "exit" || line == "quit" {
					return nil
				}

				if err := sh.dispatch(ctx, line); err != nil {
					fmt.Fprintf(sh.out, "error: %s\n", err.Error())
				}
			}
		},
	}
}

type shell struct {
	out     io.Writer
	vault   *vault.UseCase
	recall  *recall.UseCase
	account *account.UseCase
}

func (sh *shell) dispatch(ctx context.Context, line string) error {
	cmd, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	switch cmd {
	case "help":
		fmt.Fprint(sh.out, shellHelp)
		return nil

	case "status":
		st := sh.vault.Status()
		fmt.Fprintf(sh.out, "vault=%s identity=%s bytes=%d\n",
			st.State, orDash(st.ActiveIdentity), st.Metrics.BytesEncrypted)
		return nil

	case "init":
		msg, err := sh.vault.Initialize(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(sh.out, "%s\n", msg)
		return nil

	case "store":
		var id model.MemoryID
		err := sh.spin(func() (err error) {
			id, err = sh.vault.Store(ctx, rest)
			return err
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(sh.out, "stored (ID: %s)\n", id)
		return nil

	case "decrypt":
		plaintext, err := sh.vault.Decrypt(ctx, crypto.Blob(rest))
		if err != nil {
			return err
		}
		fmt.Fprintf(sh.out, "%s\n", plaintext)
		return nil

	case "history":
		limit := 50
		if rest != "" {
			n, err := strconv.Atoi(rest)
			if err != nil {
				return goerr.Wrap(err, "invalid limit")
			}
			limit = n
		}
		recs, err := sh.recall.History(ctx, limit)
		if err != nil {
			return err
		}
		for _, r := range recs {
			fmt.Fprintf(sh.out, "%s\t%s\t%s\n", r.ID, r.CreatedAt.Format("2006-01-02 15:04:05"), truncate(r.Content, 60))
		}
		return nil

	case "search":
		if rest == "" {
			return goerr.New("usage: search <query>")
		}
		matches, err := sh.recall.Search(ctx, rest)
		if err != nil {
			return err
		}
		for i, m := range matches {
			fmt.Fprintf(sh.out, "%d. %s (%.3f) %s\n", i+1, m.Memory.ID, m.Score, truncate(m.Memory.Content, 60))
		}
		return nil

	case "login":
		fields := strings.Fields(rest)
		if len(fields) != 2 {
			return goerr.New("usage: login <username> <password>")
		}
		token, err := sh.account.Login(ctx, fields[0], fields[1])
		if err != nil {
			return err
		}
		fmt.Fprintf(sh.out, "token: %s\n", token)
		return nil

	case "register":
		fields := strings.Fields(rest)
		if len(fields) != 3 {
			return goerr.New("usage: register <username> <email> <password>")
		}
		userID, err := sh.account.Register(ctx, fields[0], fields[1], fields[2])
		if err != nil {
			return err
		}
		fmt.Fprintf(sh.out, "registered (user ID: %s)\n", userID)
		return nil

	default:
		return goerr.New("unknown command (try 'help')", goerr.Value("command", cmd))
	}
}

// spin runs fn with a terminal spinner while the network call is in flight.
func (sh *shell) spin(fn func() error) error {
	sp := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	sp.Start()
	defer sp.Stop()
	return fn()
}

const shellHelp = `commands:
  init                              unlock the vault
  status                            show vault state
  store <content>                   encrypt and store content
  decrypt <blob>                    decrypt a blob
  history [limit]                   list stored records
  search <query>                    semantic search
  login <username> <password>       authenticate
  register <user> <email> <pass>    create an account
  exit                              quit
`
