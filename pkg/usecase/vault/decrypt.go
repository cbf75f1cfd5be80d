package vault

import (
	"context"

	"github.com/identra-io/ghostvault/pkg/crypto"
	"github.com/m-mizutani/goerr/v2"
)

// Decrypt opens a blob produced by Store (or any blob sealed under the
// current session key) and returns the plaintext.
func (u *UseCase) Decrypt(_ context.Context, blob crypto.Blob) (string, error) {
	key, err := u.session.CurrentKey()
	if err != nil {
		return "", err
	}

	plaintext, err := crypto.Decrypt(blob, key)
	if err != nil {
		return "", goerr.Wrap(err, "failed to decrypt content")
	}

	return plaintext, nil
}
