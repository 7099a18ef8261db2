package apiclient

import (
	"sync"

	"golang.org/x/oauth2"

	"github.com/learnsphere/learnsphere-ui/internal/ports"
)

var _ ports.BearerHolder = (*Credentials)(nil)

// Credentials holds the default Authorization value for one client. The
// Session Store writes it; the outgoing transport reads it on every request.
type Credentials struct {
	mu    sync.RWMutex
	token string
}

// NewCredentials returns an empty holder.
func NewCredentials() *Credentials {
	return &Credentials{}
}

// SetBearer installs token as the default bearer credential.
func (c *Credentials) SetBearer(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// ClearBearer removes the default credential.
func (c *Credentials) ClearBearer() {
	c.mu.Lock()
	c.token = ""
	c.mu.Unlock()
}

// Bearer returns the Authorization header value, or "" when no token is held.
func (c *Credentials) Bearer() string {
	t := c.current()
	if t == "" {
		return ""
	}
	return "Bearer " + t
}

func (c *Credentials) current() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// tokenSource snapshots the current token, or returns nil when none is held.
func (c *Credentials) tokenSource() oauth2.TokenSource {
	t := c.current()
	if t == "" {
		return nil
	}
	return oauth2.StaticTokenSource(&oauth2.Token{AccessToken: t, TokenType: "Bearer"})
}
