package httpx

import (
	"github.com/learnsphere/learnsphere-ui/internal/apiclient"
	"github.com/learnsphere/learnsphere-ui/internal/ports"
)

// Backend is the API surface a single request talks to. A fresh one is built
// per request so no bearer token is shared between browsers.
type Backend struct {
	Auth    ports.AuthAPI
	Courses ports.CourseAPI
	Bearer  ports.BearerHolder
	// OnUnauthorized registers the 401 reaction. Optional.
	OnUnauthorized func(ports.UnauthorizedHandler)
}

// BackendFactory builds the Backend for one request.
type BackendFactory func() Backend

// APIClientFactory returns a factory backed by apiclient. opts is shared and
// must not be mutated afterwards.
func APIClientFactory(opts apiclient.Options) BackendFactory {
	return func() Backend {
		creds := apiclient.NewCredentials()
		c := apiclient.New(opts, creds)
		return Backend{
			Auth:           c,
			Courses:        c,
			Bearer:         creds,
			OnUnauthorized: c.OnUnauthorized,
		}
	}
}
