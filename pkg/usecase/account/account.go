package account

import (
	"context"

	"github.com/identra-io/ghostvault/pkg/adapter"
	"github.com/identra-io/ghostvault/pkg/model"
	"github.com/identra-io/ghostvault/pkg/session"
	"github.com/identra-io/ghostvault/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

// UseCase provides authentication against the remote service.
type UseCase struct {
	auth    adapter.AuthCapability
	session *session.Session
}

func New(auth adapter.AuthCapability, sess *session.Session) *UseCase {
	return &UseCase{
		auth:    auth,
		session: sess,
	}
}

// Login exchanges credentials for an access token and records the active
// identity on success.
func (u *UseCase) Login(ctx context.Context, username, password string) (string, error) {
	token, err := u.auth.Login(ctx, username, password)
	if err != nil {
		return "", err
	}

	u.session.SetIdentity(username)
	logging.From(ctx).Info("logged in", "username", username)

	return token, nil
}

// Register creates an account and returns the new user ID. It does not log
// the caller in.
func (u *UseCase) Register(ctx context.Context, username, email, password string) (string, error) {
	if username == "" || email == "" || password == "" {
		return "", goerr.New("username, email and password are required",
			goerr.T(model.ErrTagValidation))
	}

	userID, err := u.auth.Register(ctx, username, email, password)
	if err != nil {
		return "", err
	}

	return userID, nil
}
