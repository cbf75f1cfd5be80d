package adapter

import (
	"context"
	"time"

	"github.com/identra-io/ghostvault/pkg/model"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// MemoryCapability is the memory storage and retrieval surface of the remote
// service. All methods are network calls.
type MemoryCapability interface {
	// StoreMemory persists content (already encrypted by the caller) and
	// returns the server-assigned memory ID.
	StoreMemory(ctx context.Context, content string, metadata map[string]string, tags []string) (model.MemoryID, error)

	// QueryMemories returns records matching filter, up to limit, in the
	// order the remote returns them. An empty filter is a wildcard meaning
	// "match all"; the history listing relies on this.
	QueryMemories(ctx context.Context, filter string, limit int) ([]*model.MemoryRecord, error)

	// SearchMemories performs vector similarity search. The remote orders
	// results by descending score and drops entries below threshold; the
	// client does not re-filter.
	SearchMemories(ctx context.Context, vector []float32, limit int, threshold float64) ([]*model.SearchMatch, error)

	// GetRecentMemories returns up to limit records, newest first.
	GetRecentMemories(ctx context.Context, limit int) ([]*model.MemoryRecord, error)
}

// AuthCapability is the authentication surface of the remote service.
type AuthCapability interface {
	// Login exchanges credentials for an access token.
	Login(ctx context.Context, username, password string) (string, error)

	// Register creates an account and returns the new user ID.
	Register(ctx context.Context, username, email, password string) (string, error)
}

// Backend is a facade over the remote service capabilities. All capabilities
// share one multiplexed gRPC connection established at construction; the
// connection layer correlates concurrent requests and responses.
type Backend struct {
	conn    *grpc.ClientConn
	memory  *memoryClient
	auth    *authClient
	timeout time.Duration
	dialOpt []grpc.DialOption
}

// BackendOption configures a Backend.
type BackendOption func(*Backend)

// WithTimeout sets the per-call deadline. Expiry surfaces as a transport
// error. Default is 30 seconds.
func WithTimeout(d time.Duration) BackendOption {
	return func(b *Backend) {
		b.timeout = d
	}
}

// WithDialOptions appends extra gRPC dial options, e.g. a custom dialer for
// in-process testing.
func WithDialOptions(opts ...grpc.DialOption) BackendOption {
	return func(b *Backend) {
		b.dialOpt = append(b.dialOpt, opts...)
	}
}

// NewBackend dials endpoint once and returns the capability facade. The
// connection is reused by all subsequent calls; this is not a per-call
// reconnect client.
func NewBackend(endpoint string, opts ...BackendOption) (*Backend, error) {
	if endpoint == "" {
		return nil, goerr.New("endpoint is required")
	}

	b := &Backend{
		timeout: 30 * time.Second,
	}
	for _, opt := range opts {
		opt(b)
	}

	dialOpts := append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.CallContentSubtype(codecName)),
	}, b.dialOpt...)

	conn, err := grpc.NewClient(endpoint, dialOpts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create backend connection",
			goerr.T(model.ErrTagTransport), goerr.Value("endpoint", endpoint))
	}

	b.conn = conn
	b.memory = &memoryClient{conn: conn, timeout: b.timeout}
	b.auth = &authClient{conn: conn, timeout: b.timeout}

	return b, nil
}

// Memory returns the memory capability client.
func (b *Backend) Memory() MemoryCapability {
	return b.memory
}

// Auth returns the authentication capability client.
func (b *Backend) Auth() AuthCapability {
	return b.auth
}

// Close tears down the shared connection.
func (b *Backend) Close() error {
	if err := b.conn.Close(); err != nil {
		return goerr.Wrap(err, "failed to close backend connection")
	}
	return nil
}
