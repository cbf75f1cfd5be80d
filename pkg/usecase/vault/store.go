package vault

import (
	"context"
	"strings"
	"time"

	"github.com/identra-io/ghostvault/pkg/crypto"
	"github.com/identra-io/ghostvault/pkg/model"
	"github.com/identra-io/ghostvault/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

// Store encrypts content under the session key and persists the ciphertext
// remotely. The usage counter is updated only after the remote store
// succeeds, and counts plaintext bytes.
func (u *UseCase) Store(ctx context.Context, content string) (model.MemoryID, error) {
	if strings.TrimSpace(content) == "" {
		return "", goerr.New("content is empty", goerr.T(model.ErrTagValidation))
	}

	key, err := u.session.CurrentKey()
	if err != nil {
		return "", err
	}

	blob, err := crypto.Encrypt(content, key)
	if err != nil {
		return "", goerr.Wrap(err, "failed to encrypt content")
	}

	metadata := map[string]string{
		"encrypted": "true",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}

	id, err := u.memory.StoreMemory(ctx, string(blob), metadata, nil)
	if err != nil {
		return "", goerr.Wrap(err, "failed to store memory")
	}

	u.session.RecordWrite(len(content))

	logging.From(ctx).Info("vaulted content", "memory_id", id, "bytes", len(content))
	return id, nil
}
