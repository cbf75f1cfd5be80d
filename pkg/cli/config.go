package cli

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/identra-io/ghostvault/pkg/adapter"
	"github.com/identra-io/ghostvault/pkg/crypto"
	"github.com/identra-io/ghostvault/pkg/session"
	"github.com/identra-io/ghostvault/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

// config holds configuration values shared across commands
type config struct {
	// Backend
	endpoint string
	timeout  time.Duration

	// Vault
	keyPath string

	// Search
	topK      int64
	threshold float64
	embedder  string

	// Logging
	logLevel  string
	logFormat string

	// Optional YAML config file
	configPath string
}

// fileConfig mirrors the YAML config file layout. File values only fill in
// settings left at their flag defaults. Search fields are pointers so that an
// explicit zero in the file is distinguishable from an absent key.
type fileConfig struct {
	Endpoint string `yaml:"endpoint"`
	KeyPath  string `yaml:"key_path"`
	Search   struct {
		TopK      *int64   `yaml:"top_k"`
		Threshold *float64 `yaml:"threshold"`
	} `yaml:"search"`
}

// globalFlags returns common flags used across commands with destination config
func globalFlags(cfg *config) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "endpoint",
			Aliases:     []string{"e"},
			Usage:       "Backend gRPC endpoint",
			Value:       "localhost:50051",
			Sources:     cli.EnvVars("GHOSTVAULT_ENDPOINT"),
			Destination: &cfg.endpoint,
		},
		&cli.StringFlag{
			Name:        "key-path",
			Usage:       "Path to the session key slot",
			Sources:     cli.EnvVars("GHOSTVAULT_KEY_PATH"),
			Destination: &cfg.keyPath,
		},
		&cli.DurationFlag{
			Name:        "timeout",
			Usage:       "Per-request timeout for backend calls",
			Value:       30 * time.Second,
			Sources:     cli.EnvVars("GHOSTVAULT_TIMEOUT"),
			Destination: &cfg.timeout,
		},
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "Log level (debug, info, warn, error)",
			Value:       "info",
			Sources:     cli.EnvVars("GHOSTVAULT_LOG_LEVEL"),
			Destination: &cfg.logLevel,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "Log format (console, json)",
			Value:       "console",
			Sources:     cli.EnvVars("GHOSTVAULT_LOG_FORMAT"),
			Destination: &cfg.logFormat,
		},
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "Path to YAML config file",
			Sources:     cli.EnvVars("GHOSTVAULT_CONFIG"),
			Destination: &cfg.configPath,
		},
	}
}

// searchFlags returns flags for semantic search configuration
func searchFlags(cfg *config) []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:        "top-k",
			Usage:       "Maximum number of semantic search results",
			Value:       10,
			Sources:     cli.EnvVars("GHOSTVAULT_SEARCH_TOP_K"),
			Destination: &cfg.topK,
		},
		&cli.FloatFlag{
			Name:        "threshold",
			Aliases:     []string{"t"},
			Usage:       "Minimum similarity score (0.0-1.0)",
			Value:       0.7,
			Sources:     cli.EnvVars("GHOSTVAULT_SEARCH_THRESHOLD"),
			Destination: &cfg.threshold,
		},
		&cli.StringFlag{
			Name:        "embedder",
			Usage:       "Embedding provider (hash, onnx)",
			Value:       "hash",
			Sources:     cli.EnvVars("GHOSTVAULT_EMBEDDER"),
			Destination: &cfg.embedder,
		},
	}
}

// setup applies the config file (if any) and attaches a configured logger to
// the context. Call it at the top of every command action.
func (cfg *config) setup(ctx context.Context, c *cli.Command) (context.Context, error) {
	if cfg.configPath != "" {
		if err := cfg.loadFile(c); err != nil {
			return ctx, err
		}
	}

	logger := logging.New(cfg.logLevel, cfg.logFormat, os.Stderr)
	logging.SetDefault(logger)
	return logging.With(ctx, logger), nil
}

// loadFile merges the YAML config file under the flags: a file value applies
// only when the corresponding flag was not set explicitly (by argument or
// environment variable).
func (cfg *config) loadFile(c *cli.Command) error {
	data, err := os.ReadFile(cfg.configPath)
	if err != nil {
		return goerr.Wrap(err, "failed to read config file", goerr.Value("path", cfg.configPath))
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return goerr.Wrap(err, "failed to parse config file", goerr.Value("path", cfg.configPath))
	}

	if fc.Endpoint != "" && !c.IsSet("endpoint") {
		cfg.endpoint = fc.Endpoint
	}
	if fc.KeyPath != "" && !c.IsSet("key-path") {
		cfg.keyPath = fc.KeyPath
	}
	if fc.Search.TopK != nil && !c.IsSet("top-k") {
		cfg.topK = *fc.Search.TopK
	}
	if fc.Search.Threshold != nil && !c.IsSet("threshold") {
		cfg.threshold = *fc.Search.Threshold
	}

	return nil
}

// sessionKeyPath returns the configured key slot, defaulting to a well-known
// file in the OS temp directory.
func (cfg *config) sessionKeyPath() string {
	if cfg.keyPath != "" {
		return cfg.keyPath
	}
	return filepath.Join(os.TempDir(), "ghostvault_session_key.bin")
}

// newBackend creates the shared backend connection
func (cfg *config) newBackend() (*adapter.Backend, error) {
	backend, err := adapter.NewBackend(cfg.endpoint, adapter.WithTimeout(cfg.timeout))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create backend")
	}
	return backend, nil
}

// newSession creates the vault session bound to the key slot
func (cfg *config) newSession() *session.Session {
	return session.New(crypto.NewKeyStore(), cfg.sessionKeyPath())
}

// newEmbedder creates the configured embedding provider, serialized for
// concurrent use
func (cfg *config) newEmbedder() (adapter.Embedder, error) {
	inner, err := buildEmbedder(cfg.embedder)
	if err != nil {
		return nil, err
	}
	return adapter.NewSerialEmbedder(inner), nil
}
