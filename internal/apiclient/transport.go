package apiclient

import (
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"

	"golang.org/x/oauth2"

	"github.com/learnsphere/learnsphere-ui/internal/ports"
)

// origin is the scheme and host of the backend. Redirects leaving it never
// carry the token and never count as a backend 401.
type origin struct {
	scheme string
	host   string
}

func originOf(rawURL string) origin {
	u, err := url.Parse(rawURL)
	if err != nil {
		return origin{}
	}
	return origin{scheme: strings.ToLower(u.Scheme), host: strings.ToLower(u.Host)}
}

func (o origin) matches(u *url.URL) bool {
	if o.host == "" || u == nil {
		return false
	}
	return strings.EqualFold(u.Scheme, o.scheme) && strings.EqualFold(u.Host, o.host)
}

// bearerTransport attaches the held token to every request bound for the
// backend origin. There is no per-request opt-out.
type bearerTransport struct {
	creds  *Credentials
	origin origin
	base   http.RoundTripper
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	src := t.creds.tokenSource()
	if src == nil || !t.origin.matches(req.URL) {
		return t.base.RoundTrip(req)
	}
	return (&oauth2.Transport{Source: src, Base: t.base}).RoundTrip(req)
}

// unauthorizedTransport calls the registered handler once for each 401
// response. The response itself is passed through so the caller still sees
// the failure.
type unauthorizedTransport struct {
	handler *atomic.Pointer[ports.UnauthorizedHandler]
	origin  origin
	base    http.RoundTripper
}

func (t *unauthorizedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.base.RoundTrip(req)
	if err != nil || resp.StatusCode != http.StatusUnauthorized || !t.origin.matches(req.URL) {
		return resp, err
	}
	if h := t.handler.Load(); h != nil && *h != nil {
		(*h)(req.Context())
	}
	return resp, nil
}
