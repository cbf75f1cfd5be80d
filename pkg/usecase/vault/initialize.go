package vault

import (
	"context"

	"github.com/identra-io/ghostvault/pkg/model"
)

// Initialize unlocks the vault, loading or creating the session key. Safe to
// call repeatedly; an unlocked vault stays unlocked.
func (u *UseCase) Initialize(ctx context.Context) (string, error) {
	if err := u.session.Initialize(ctx); err != nil {
		return "", err
	}
	return "Vault Unlocked", nil
}

// Status reports the current session state without any network I/O.
func (u *UseCase) Status() model.StatusSnapshot {
	return u.session.Status()
}
