package session

import (
	"context"
	"sync"

	"github.com/identra-io/ghostvault/pkg/crypto"
	"github.com/identra-io/ghostvault/pkg/model"
	"github.com/identra-io/ghostvault/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

// securityLevel is reported verbatim in status snapshots.
const securityLevel = "MAXIMUM"

// Session gates all vault operations behind the lock state and tracks
// aggregate usage. One Session is shared by pointer across every concurrent
// operation in the process; each field group has its own mutex so that, for
// example, a metrics read never contends with key access. The key lock is
// never held across encryption or network calls: CurrentKey hands out a copy.
type Session struct {
	store   *crypto.KeyStore
	keyPath string

	keyMu sync.Mutex
	key   crypto.Key
	state model.VaultState

	metricsMu sync.Mutex
	metrics   model.UsageMetrics

	identityMu sync.Mutex
	identity   string
}

func New(store *crypto.KeyStore, keyPath string) *Session {
	return &Session{
		store:   store,
		keyPath: keyPath,
		state:   model.VaultLocked,
	}
}

// Initialize obtains a session key from the key store and unlocks the vault.
// Idempotent: initializing an already-unlocked session re-derives the key
// from the same slot and stays unlocked.
func (s *Session) Initialize(ctx context.Context) error {
	key, err := s.store.LoadOrCreate(s.keyPath)
	if err != nil {
		return goerr.Wrap(err, "failed to obtain session key")
	}

	s.keyMu.Lock()
	s.key = key
	s.state = model.VaultUnlocked
	s.keyMu.Unlock()

	logging.From(ctx).Info("session initialized, vault unlocked")
	return nil
}

// CurrentKey returns a copy of the session key, or a vault-locked error when
// no key is present. Callers must check this before any encrypt, decrypt or
// store call.
func (s *Session) CurrentKey() (crypto.Key, error) {
	s.keyMu.Lock()
	defer s.keyMu.Unlock()

	if s.state != model.VaultUnlocked || s.key == nil {
		return nil, goerr.New("vault is locked: initialize the session first",
			goerr.T(model.ErrTagVaultLocked))
	}

	return append(crypto.Key(nil), s.key...), nil
}

// RecordWrite adds n plaintext bytes to the usage counter. Call it only
// after the remote store succeeded, so the counter reflects completed
// writes, not attempts.
func (s *Session) RecordWrite(n int) {
	s.metricsMu.Lock()
	defer s.metricsMu.Unlock()

	s.metrics.BytesEncrypted += uint64(n)
}

// SetIdentity records the logged-in principal.
func (s *Session) SetIdentity(name string) {
	s.identityMu.Lock()
	defer s.identityMu.Unlock()

	s.identity = name
}

// Status produces a snapshot without touching the network.
func (s *Session) Status() model.StatusSnapshot {
	s.keyMu.Lock()
	state := s.state
	s.keyMu.Unlock()

	s.metricsMu.Lock()
	metrics := s.metrics
	s.metricsMu.Unlock()

	s.identityMu.Lock()
	identity := s.identity
	s.identityMu.Unlock()

	return model.StatusSnapshot{
		State:          state,
		ActiveIdentity: identity,
		Metrics:        metrics,
		SecurityLevel:  securityLevel,
	}
}
