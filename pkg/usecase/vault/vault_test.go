package vault_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/identra-io/ghostvault/pkg/crypto"
	"github.com/identra-io/ghostvault/pkg/model"
	"github.com/identra-io/ghostvault/pkg/session"
	"github.com/identra-io/ghostvault/pkg/usecase/vault"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
)

// mockMemory is a mock implementation of adapter.MemoryCapability for testing
type mockMemory struct {
	storeFunc  func(ctx context.Context, content string, metadata map[string]string, tags []string) (model.MemoryID, error)
	storeCalls int
}

func (m *mockMemory) StoreMemory(ctx context.Context, content string, metadata map[string]string, tags []string) (model.MemoryID, error) {
	m.storeCalls++
	if m.storeFunc != nil {
		return m.storeFunc(ctx, content, metadata, tags)
	}
	return "mem-1", nil
}

func (m *mockMemory) QueryMemories(ctx context.Context, filter string, limit int) ([]*model.MemoryRecord, error) {
	return nil, nil
}

func (m *mockMemory) SearchMemories(ctx context.Context, vector []float32, limit int, threshold float64) ([]*model.SearchMatch, error) {
	return nil, nil
}

func (m *mockMemory) GetRecentMemories(ctx context.Context, limit int) ([]*model.MemoryRecord, error) {
	return nil, nil
}

func newSession(t *testing.T) *session.Session {
	return session.New(crypto.NewKeyStore(), filepath.Join(t.TempDir(), "key.bin"))
}

func TestStoreRejectsEmptyContent(t *testing.T) {
	ctx := context.Background()
	sess := newSession(t)
	gt.NoError(t, sess.Initialize(ctx))

	mem := &mockMemory{}
	uc := vault.New(sess, mem)

	for _, content := range []string{"", "   ", "\t\n "} {
		_, err := uc.Store(ctx, content)
		gt.Error(t, err)
		gt.True(t, goerr.HasTag(err, model.ErrTagValidation))
	}

	// Rejection happens before any crypto or network work.
	gt.Equal(t, mem.storeCalls, 0)
	gt.Equal(t, sess.Status().Metrics.BytesEncrypted, uint64(0))
}

func TestStoreLockedVault(t *testing.T) {
	ctx := context.Background()
	mem := &mockMemory{}
	uc := vault.New(newSession(t), mem)

	_, err := uc.Store(ctx, "x")
	gt.Error(t, err)
	gt.True(t, goerr.HasTag(err, model.ErrTagVaultLocked))
	gt.Equal(t, mem.storeCalls, 0)
}

func TestStoreSuccess(t *testing.T) {
	ctx := context.Background()
	sess := newSession(t)
	gt.NoError(t, sess.Initialize(ctx))

	var (
		storedContent  string
		storedMetadata map[string]string
		storedTags     []string
	)
	mem := &mockMemory{
		storeFunc: func(_ context.Context, content string, metadata map[string]string, tags []string) (model.MemoryID, error) {
			storedContent = content
			storedMetadata = metadata
			storedTags = tags
			return "mem-42", nil
		},
	}

	uc := vault.New(sess, mem)
	id, err := uc.Store(ctx, "hello world")
	gt.NoError(t, err)
	gt.Equal(t, id, model.MemoryID("mem-42"))

	// Metrics count plaintext bytes of the completed write.
	gt.Equal(t, sess.Status().Metrics.BytesEncrypted, uint64(len("hello world")))

	// The stored payload is ciphertext that round-trips under the session key.
	gt.NotEqual(t, storedContent, "hello world")
	key, err := sess.CurrentKey()
	gt.NoError(t, err)
	plaintext, err := crypto.Decrypt(crypto.Blob(storedContent), key)
	gt.NoError(t, err)
	gt.Equal(t, plaintext, "hello world")

	gt.Equal(t, storedMetadata["encrypted"], "true")
	gt.NotEqual(t, storedMetadata["timestamp"], "")
	gt.Equal(t, len(storedTags), 0)
}

func TestStoreRemoteFailureKeepsMetrics(t *testing.T) {
	ctx := context.Background()
	sess := newSession(t)
	gt.NoError(t, sess.Initialize(ctx))

	mem := &mockMemory{
		storeFunc: func(context.Context, string, map[string]string, []string) (model.MemoryID, error) {
			return "", goerr.New("storage rejected", goerr.T(model.ErrTagRemoteRejected))
		},
	}

	uc := vault.New(sess, mem)
	_, err := uc.Store(ctx, "hello")
	gt.Error(t, err)
	gt.True(t, goerr.HasTag(err, model.ErrTagRemoteRejected))

	// Encryption succeeded but the store failed: no metrics update.
	gt.Equal(t, sess.Status().Metrics.BytesEncrypted, uint64(0))
}

func TestDecryptLockedVault(t *testing.T) {
	uc := vault.New(newSession(t), nil)

	_, err := uc.Decrypt(context.Background(), crypto.Blob("anything"))
	gt.Error(t, err)
	gt.True(t, goerr.HasTag(err, model.ErrTagVaultLocked))
}

func TestStoreDecryptEndToEnd(t *testing.T) {
	ctx := context.Background()
	sess := newSession(t)
	gt.NoError(t, sess.Initialize(ctx))

	var storedContent string
	mem := &mockMemory{
		storeFunc: func(_ context.Context, content string, _ map[string]string, _ []string) (model.MemoryID, error) {
			storedContent = content
			return "mem-1", nil
		},
	}

	uc := vault.New(sess, mem)
	_, err := uc.Store(ctx, "hello world")
	gt.NoError(t, err)

	plaintext, err := uc.Decrypt(ctx, crypto.Blob(storedContent))
	gt.NoError(t, err)
	gt.Equal(t, plaintext, "hello world")

	// A blob sealed directly under the session key decrypts the same way.
	key, err := sess.CurrentKey()
	gt.NoError(t, err)
	blob, err := crypto.Encrypt("hello world", key)
	gt.NoError(t, err)

	plaintext, err = uc.Decrypt(ctx, blob)
	gt.NoError(t, err)
	gt.Equal(t, plaintext, "hello world")
}

func TestInitializeReturnsStatusMessage(t *testing.T) {
	uc := vault.New(newSession(t), nil)

	msg, err := uc.Initialize(context.Background())
	gt.NoError(t, err)
	gt.Equal(t, msg, "Vault Unlocked")
}
