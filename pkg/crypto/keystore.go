package crypto

import (
	"crypto/rand"
	"os"
	"sync"

	"github.com/identra-io/ghostvault/pkg/model"
	"github.com/identra-io/ghostvault/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

// KeyStore owns the lifecycle of the session key: generate, persist, reload
// and hold in memory. At most one key is held per KeyStore.
type KeyStore struct {
	mu  sync.Mutex
	key Key
}

func NewKeyStore() *KeyStore {
	return &KeyStore{}
}

// LoadOrCreate returns the session key for path. A slot holding exactly
// KeySize bytes is decoded and returned as-is; anything else (absent,
// unreadable, wrong size) triggers generation of a fresh random key. The
// fresh key is persisted best-effort: a write failure is logged and the key
// is still returned, since a working in-memory key matters more than the
// slot surviving a restart.
func (s *KeyStore) LoadOrCreate(path string) (Key, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if data, err := os.ReadFile(path); err == nil && len(data) == KeySize {
		s.key = Key(data)
		return append(Key(nil), s.key...), nil
	}

	key := make(Key, KeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, goerr.Wrap(err, "failed to generate session key", goerr.T(model.ErrTagCrypto))
	}

	if err := os.WriteFile(path, key, 0600); err != nil {
		// Non-fatal, but a process in this state cannot keep the same key
		// across restarts. Surface it where operators can see it.
		logging.Default().Warn("failed to persist session key, continuing with in-memory key",
			"path", path, "error", err.Error())
	}

	s.key = key
	return append(Key(nil), key...), nil
}

// Reset zeroes and drops the in-memory key. The persisted slot is untouched.
func (s *KeyStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	Zero(s.key)
	s.key = nil
}

// Zero overwrites b in place. Used to wipe key material before release.
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
