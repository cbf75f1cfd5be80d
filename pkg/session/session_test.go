package session_test

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/identra-io/ghostvault/pkg/crypto"
	"github.com/identra-io/ghostvault/pkg/model"
	"github.com/identra-io/ghostvault/pkg/session"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
)

func newSession(t *testing.T) *session.Session {
	path := filepath.Join(t.TempDir(), "session_key.bin")
	return session.New(crypto.NewKeyStore(), path)
}

func TestCurrentKeyLockedBeforeInitialize(t *testing.T) {
	sess := newSession(t)

	_, err := sess.CurrentKey()
	gt.Error(t, err)
	gt.True(t, goerr.HasTag(err, model.ErrTagVaultLocked))

	gt.Equal(t, sess.Status().State, model.VaultLocked)
}

func TestInitializeUnlocks(t *testing.T) {
	sess := newSession(t)
	ctx := context.Background()

	gt.NoError(t, sess.Initialize(ctx))
	gt.Equal(t, sess.Status().State, model.VaultUnlocked)

	key, err := sess.CurrentKey()
	gt.NoError(t, err)
	gt.Equal(t, len(key), crypto.KeySize)
}

func TestInitializeIdempotent(t *testing.T) {
	sess := newSession(t)
	ctx := context.Background()

	gt.NoError(t, sess.Initialize(ctx))
	first, err := sess.CurrentKey()
	gt.NoError(t, err)

	// Re-initializing stays unlocked and re-derives the same key from the
	// same slot.
	gt.NoError(t, sess.Initialize(ctx))
	gt.Equal(t, sess.Status().State, model.VaultUnlocked)

	second, err := sess.CurrentKey()
	gt.NoError(t, err)
	gt.Equal(t, first, second)
}

func TestCurrentKeyReturnsCopy(t *testing.T) {
	sess := newSession(t)
	gt.NoError(t, sess.Initialize(context.Background()))

	key, err := sess.CurrentKey()
	gt.NoError(t, err)

	// Mutating the returned key must not affect the held key.
	key[0] ^= 0xff

	again, err := sess.CurrentKey()
	gt.NoError(t, err)
	gt.NotEqual(t, key[0], again[0])
}

func TestRecordWriteAccumulates(t *testing.T) {
	sess := newSession(t)

	sess.RecordWrite(11)
	sess.RecordWrite(5)
	sess.RecordWrite(0)

	gt.Equal(t, sess.Status().Metrics.BytesEncrypted, uint64(16))
}

func TestRecordWriteConcurrent(t *testing.T) {
	sess := newSession(t)

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sess.RecordWrite(3)
		}()
	}
	wg.Wait()

	gt.Equal(t, sess.Status().Metrics.BytesEncrypted, uint64(300))
}

func TestSetIdentity(t *testing.T) {
	sess := newSession(t)

	gt.Equal(t, sess.Status().ActiveIdentity, "")

	sess.SetIdentity("alice")
	gt.Equal(t, sess.Status().ActiveIdentity, "alice")
}

func TestStatusSnapshot(t *testing.T) {
	sess := newSession(t)

	st := sess.Status()
	gt.Equal(t, st.State, model.VaultLocked)
	gt.Equal(t, st.SecurityLevel, "MAXIMUM")
	gt.Equal(t, st.Metrics.BytesEncrypted, uint64(0))
}
