package vault

import (
	"github.com/identra-io/ghostvault/pkg/adapter"
	"github.com/identra-io/ghostvault/pkg/session"
)

// UseCase provides the vault content operations: initialize, store, decrypt
// and status.
type UseCase struct {
	session *session.Session
	memory  adapter.MemoryCapability
}

// New creates a vault UseCase. memory may be nil for status-only use.
func New(sess *session.Session, memory adapter.MemoryCapability) *UseCase {
	return &UseCase{
		session: sess,
		memory:  memory,
	}
}
