package apiclient

import (
	"context"
	"net/http"

	"github.com/learnsphere/learnsphere-ui/internal/domain/auth"
	apperrors "github.com/learnsphere/learnsphere-ui/internal/errors"
)

// Login posts credentials to {prefix}/login and returns the new session.
func (c *Client) Login(ctx context.Context, creds auth.Credentials) (auth.Session, error) {
	return c.authenticate(ctx, call{
		endpoint: "auth_login",
		method:   http.MethodPost,
		path:     c.authPrefix + "/login",
		in:       creds,
	})
}

// Register posts a registration to {prefix}/register and returns the new session.
func (c *Client) Register(ctx context.Context, reg auth.Registration) (auth.Session, error) {
	return c.authenticate(ctx, call{
		endpoint: "auth_register",
		method:   http.MethodPost,
		path:     c.authPrefix + "/register",
		in:       reg,
	})
}

func (c *Client) authenticate(ctx context.Context, cl call) (auth.Session, error) {
	var res auth.AuthResult
	cl.out = &res
	if err := c.do(ctx, cl); err != nil {
		return auth.Session{}, err
	}
	s, err := res.Session()
	if err != nil {
		return auth.Session{}, apperrors.Malformed("Unexpected response from server.", err)
	}
	return s, nil
}
