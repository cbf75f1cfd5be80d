package account_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/identra-io/ghostvault/pkg/crypto"
	"github.com/identra-io/ghostvault/pkg/model"
	"github.com/identra-io/ghostvault/pkg/session"
	"github.com/identra-io/ghostvault/pkg/usecase/account"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
)

// mockAuth is a mock implementation of adapter.AuthCapability for testing
type mockAuth struct {
	loginFunc    func(ctx context.Context, username, password string) (string, error)
	registerFunc func(ctx context.Context, username, email, password string) (string, error)
}

func (m *mockAuth) Login(ctx context.Context, username, password string) (string, error) {
	if m.loginFunc != nil {
		return m.loginFunc(ctx, username, password)
	}
	return "", goerr.New("not implemented")
}

func (m *mockAuth) Register(ctx context.Context, username, email, password string) (string, error) {
	if m.registerFunc != nil {
		return m.registerFunc(ctx, username, email, password)
	}
	return "", goerr.New("not implemented")
}

func newSession(t *testing.T) *session.Session {
	return session.New(crypto.NewKeyStore(), filepath.Join(t.TempDir(), "key.bin"))
}

func TestLoginSetsIdentity(t *testing.T) {
	sess := newSession(t)
	auth := &mockAuth{
		loginFunc: func(_ context.Context, username, password string) (string, error) {
			gt.Equal(t, username, "alice")
			gt.Equal(t, password, "secret")
			return "token-abc", nil
		},
	}

	uc := account.New(auth, sess)
	token, err := uc.Login(context.Background(), "alice", "secret")
	gt.NoError(t, err)
	gt.Equal(t, token, "token-abc")
	gt.Equal(t, sess.Status().ActiveIdentity, "alice")
}

func TestLoginRejectedLeavesIdentityUnset(t *testing.T) {
	sess := newSession(t)
	auth := &mockAuth{
		loginFunc: func(context.Context, string, string) (string, error) {
			return "", goerr.New("login rejected", goerr.T(model.ErrTagAuthRejected))
		},
	}

	uc := account.New(auth, sess)
	_, err := uc.Login(context.Background(), "alice", "wrong")
	gt.Error(t, err)
	gt.True(t, goerr.HasTag(err, model.ErrTagAuthRejected))
	gt.Equal(t, sess.Status().ActiveIdentity, "")
}

func TestRegister(t *testing.T) {
	auth := &mockAuth{
		registerFunc: func(_ context.Context, username, email, password string) (string, error) {
			gt.Equal(t, username, "bob")
			gt.Equal(t, email, "bob@example.com")
			return "user-7", nil
		},
	}

	uc := account.New(auth, newSession(t))
	userID, err := uc.Register(context.Background(), "bob", "bob@example.com", "pw")
	gt.NoError(t, err)
	gt.Equal(t, userID, "user-7")
}

func TestRegisterValidation(t *testing.T) {
	uc := account.New(&mockAuth{}, newSession(t))

	tests := [][3]string{
		{"", "a@b.c", "pw"},
		{"bob", "", "pw"},
		{"bob", "a@b.c", ""},
	}

	for _, tc := range tests {
		_, err := uc.Register(context.Background(), tc[0], tc[1], tc[2])
		gt.Error(t, err)
		gt.True(t, goerr.HasTag(err, model.ErrTagValidation))
	}
}
