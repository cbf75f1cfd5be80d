package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"

	"github.com/identra-io/ghostvault/pkg/model"
	"github.com/m-mizutani/goerr/v2"
)

// KeySize is the session key length in bytes (AES-256).
const KeySize = 32

// Key is a session symmetric key. It must never be logged or embedded in
// error values.
type Key []byte

// Blob is an opaque encrypted payload: base64(nonce || ciphertext || tag).
// It is self-describing; Decrypt needs nothing beyond the blob and the key.
type Blob string

// Encrypt seals plaintext under key with AES-256-GCM. A fresh random nonce is
// generated per call and prefixed to the ciphertext, so equal plaintexts never
// produce equal blobs.
func Encrypt(plaintext string, key Key) (Blob, error) {
	aead, err := newGCM(key)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", goerr.Wrap(err, "failed to generate nonce", goerr.T(model.ErrTagCrypto))
	}

	sealed := make([]byte, 0, len(nonce)+len(plaintext)+aead.Overhead())
	sealed = append(sealed, nonce...)
	sealed = aead.Seal(sealed, nonce, []byte(plaintext), nil)

	return Blob(base64.StdEncoding.EncodeToString(sealed)), nil
}

// Decrypt inverts Encrypt. Malformed input (bad encoding, missing nonce) and
// authentication failure (tampered, truncated, or wrong key) are reported as
// distinct errors; no partial plaintext is ever returned.
func Decrypt(blob Blob, key Key) (string, error) {
	aead, err := newGCM(key)
	if err != nil {
		return "", err
	}

	sealed, err := base64.StdEncoding.DecodeString(string(blob))
	if err != nil {
		return "", goerr.Wrap(err, "malformed blob: invalid encoding",
			goerr.T(model.ErrTagCrypto), goerr.T(model.ErrTagCryptoMalformed))
	}
	if len(sealed) < aead.NonceSize() {
		return "", goerr.New("malformed blob: shorter than nonce",
			goerr.T(model.ErrTagCrypto), goerr.T(model.ErrTagCryptoMalformed))
	}

	nonce, ciphertext := sealed[:aead.NonceSize()], sealed[aead.NonceSize():]
	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", goerr.Wrap(err, "authentication failed",
			goerr.T(model.ErrTagCrypto), goerr.T(model.ErrTagCryptoAuthFailed))
	}

	return string(plaintext), nil
}

func newGCM(key Key) (cipher.AEAD, error) {
	if len(key) != KeySize {
		return nil, goerr.New("key rejected: invalid length",
			goerr.T(model.ErrTagCrypto), goerr.T(model.ErrTagCryptoKeyRejected),
			goerr.Value("length", len(key)))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, goerr.Wrap(err, "key rejected",
			goerr.T(model.ErrTagCrypto), goerr.T(model.ErrTagCryptoKeyRejected))
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to construct AEAD", goerr.T(model.ErrTagCrypto))
	}

	return aead, nil
}
