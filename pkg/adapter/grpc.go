package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/identra-io/ghostvault/pkg/model"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

const requestIDHeader = "x-ghostvault-request-id"

// invoke performs one unary call over the shared connection. Failures at the
// transport layer (unreachable, timeout) are tagged as transport errors;
// whether the remote accepted the request is a separate question answered by
// the response body's success flag.
func invoke(ctx context.Context, conn *grpc.ClientConn, timeout time.Duration, method string, in, out any) error {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	ctx = metadata.AppendToOutgoingContext(ctx, requestIDHeader, uuid.New().String())

	if err := conn.Invoke(ctx, method, in, out); err != nil {
		return goerr.Wrap(err, "backend call failed",
			goerr.T(model.ErrTagTransport), goerr.Value("method", method))
	}

	return nil
}

type memoryClient struct {
	conn    *grpc.ClientConn
	timeout time.Duration
}

func (c *memoryClient) StoreMemory(ctx context.Context, content string, metadata map[string]string, tags []string) (model.MemoryID, error) {
	req := &storeMemoryRequest{
		Content:  content,
		Metadata: metadata,
		Tags:     tags,
	}

	var resp storeMemoryResponse
	if err := invoke(ctx, c.conn, c.timeout, methodStoreMemory, req, &resp); err != nil {
		return "", err
	}

	if !resp.Success {
		return "", goerr.New("remote rejected store",
			goerr.T(model.ErrTagRemoteRejected), goerr.Value("message", resp.Message))
	}

	return model.MemoryID(resp.MemoryID), nil
}

func (c *memoryClient) QueryMemories(ctx context.Context, filter string, limit int) ([]*model.MemoryRecord, error) {
	// limit is passed through unvalidated; its boundary behavior belongs to
	// the remote.
	req := &queryMemoriesRequest{
		Query: filter,
		Limit: int32(limit),
	}

	var resp queryMemoriesResponse
	if err := invoke(ctx, c.conn, c.timeout, methodQueryMemories, req, &resp); err != nil {
		return nil, err
	}

	if !resp.Success {
		return nil, goerr.New("remote rejected query",
			goerr.T(model.ErrTagRemoteRejected), goerr.Value("message", resp.Message))
	}

	return toRecords(resp.Memories), nil
}

func (c *memoryClient) SearchMemories(ctx context.Context, vector []float32, limit int, threshold float64) ([]*model.SearchMatch, error) {
	req := &searchMemoriesRequest{
		QueryVector:         vector,
		Limit:               int32(limit),
		SimilarityThreshold: threshold,
	}

	var resp searchMemoriesResponse
	if err := invoke(ctx, c.conn, c.timeout, methodSearchMemories, req, &resp); err != nil {
		return nil, err
	}

	if !resp.Success {
		return nil, goerr.New("remote rejected search",
			goerr.T(model.ErrTagRemoteRejected), goerr.Value("message", resp.Message))
	}

	matches := make([]*model.SearchMatch, 0, len(resp.Matches))
	for _, m := range resp.Matches {
		matches = append(matches, &model.SearchMatch{
			Memory: *toRecord(m.Memory),
			Score:  m.Score,
		})
	}

	return matches, nil
}

func (c *memoryClient) GetRecentMemories(ctx context.Context, limit int) ([]*model.MemoryRecord, error) {
	req := &getRecentMemoriesRequest{Limit: int32(limit)}

	var resp getRecentMemoriesResponse
	if err := invoke(ctx, c.conn, c.timeout, methodGetRecentMemories, req, &resp); err != nil {
		return nil, err
	}

	if !resp.Success {
		return nil, goerr.New("remote rejected recent-memories fetch",
			goerr.T(model.ErrTagRemoteRejected), goerr.Value("message", resp.Message))
	}

	return toRecords(resp.Memories), nil
}

type authClient struct {
	conn    *grpc.ClientConn
	timeout time.Duration
}

func (c *authClient) Login(ctx context.Context, username, password string) (string, error) {
	req := &loginRequest{Username: username, Password: password}

	var resp loginResponse
	if err := invoke(ctx, c.conn, c.timeout, methodLogin, req, &resp); err != nil {
		return "", err
	}

	if !resp.Success {
		// The remote message is surfaced; credentials are not.
		return "", goerr.New("login rejected",
			goerr.T(model.ErrTagAuthRejected), goerr.Value("message", resp.Message))
	}

	return resp.AccessToken, nil
}

func (c *authClient) Register(ctx context.Context, username, email, password string) (string, error) {
	req := &registerRequest{Username: username, Email: email, Password: password}

	var resp registerResponse
	if err := invoke(ctx, c.conn, c.timeout, methodRegister, req, &resp); err != nil {
		return "", err
	}

	if !resp.Success {
		return "", goerr.New("registration rejected",
			goerr.T(model.ErrTagAuthRejected), goerr.Value("message", resp.Message))
	}

	return resp.UserID, nil
}

func toRecord(m wireMemory) *model.MemoryRecord {
	return &model.MemoryRecord{
		ID:        model.MemoryID(m.ID),
		Content:   m.Content,
		Metadata:  m.Metadata,
		Tags:      m.Tags,
		CreatedAt: time.Unix(m.CreatedAt, 0).UTC(),
	}
}

func toRecords(ms []wireMemory) []*model.MemoryRecord {
	records := make([]*model.MemoryRecord, 0, len(ms))
	for _, m := range ms {
		records = append(records, toRecord(m))
	}
	return records
}
