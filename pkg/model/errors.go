package model

import "github.com/m-mizutani/goerr/v2"

// Error tags classify failures across the vault. Callers branch on tags via
// goerr.HasTag; messages are rendered only at the CLI boundary.
var (
	// ErrTagVaultLocked marks operations attempted before session initialization.
	ErrTagVaultLocked = goerr.NewTag("vault_locked")

	// ErrTagCrypto marks encryption/decryption failures. Every crypto error
	// also carries exactly one kind sub-tag below. None of them ever carry
	// key material.
	ErrTagCrypto = goerr.NewTag("crypto")

	// ErrTagCryptoAuthFailed marks ciphertext that failed authentication:
	// tampered, truncated or sealed under a different key.
	ErrTagCryptoAuthFailed = goerr.NewTag("crypto_auth_failed")

	// ErrTagCryptoMalformed marks blobs that are not even decodable: bad
	// encoding or shorter than a nonce.
	ErrTagCryptoMalformed = goerr.NewTag("crypto_malformed")

	// ErrTagCryptoKeyRejected marks keys of the wrong length.
	ErrTagCryptoKeyRejected = goerr.NewTag("crypto_key_rejected")

	// ErrTagTransport marks connection establishment or timeout failures.
	ErrTagTransport = goerr.NewTag("transport")

	// ErrTagRemoteRejected marks responses where the remote explicitly
	// reported failure in its body.
	ErrTagRemoteRejected = goerr.NewTag("remote_rejected")

	// ErrTagAuthRejected marks login/register rejections.
	ErrTagAuthRejected = goerr.NewTag("auth_rejected")

	// ErrTagValidation marks inputs rejected before any side effect.
	ErrTagValidation = goerr.NewTag("validation")
)
