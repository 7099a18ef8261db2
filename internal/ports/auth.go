package ports

// Package ports defines interfaces (hexagonal ports) for session and backend behavior.
// Implementations live in internal/adapters and internal/apiclient.

import (
	"context"

	"github.com/learnsphere/learnsphere-ui/internal/domain/auth"
)

// AuthAPI exchanges credentials for a session against the backend.
type AuthAPI interface {
	Login(ctx context.Context, creds auth.Credentials) (auth.Session, error)
	Register(ctx context.Context, reg auth.Registration) (auth.Session, error)
}

// BearerHolder is the session-configuration object that carries the default
// Authorization value for outgoing backend requests. The Session Store is its
// only writer.
type BearerHolder interface {
	SetBearer(token string)
	ClearBearer()
	Bearer() string
}

// Navigator receives forced navigations, such as the redirect to the login
// page after the backend rejects the session.
type Navigator interface {
	Navigate(ctx context.Context, path string)
}

// UnauthorizedHandler reacts to a 401 backend response.
type UnauthorizedHandler func(ctx context.Context)
