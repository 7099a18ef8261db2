package httpx

import (
	"context"
	"net/http"

	"github.com/learnsphere/learnsphere-ui/internal/domain/auth"
	"github.com/learnsphere/learnsphere-ui/internal/session"
)

// requestState is everything the session middleware prepares for handlers.
type requestState struct {
	clientID string
	store    *session.Store
	backend  Backend
	nav      *redirectNavigator
}

type stateKey struct{}

func withState(ctx context.Context, st *requestState) context.Context {
	return context.WithValue(ctx, stateKey{}, st)
}

func stateFrom(ctx context.Context) (*requestState, bool) {
	st, ok := ctx.Value(stateKey{}).(*requestState)
	return st, ok && st != nil
}

// SessionFromContext returns the current session, or an empty one outside the
// session middleware.
func SessionFromContext(ctx context.Context) auth.Session {
	if st, ok := stateFrom(ctx); ok {
		return st.store.Current()
	}
	return auth.Session{}
}

// ClientIDFromContext returns the client namespace of the request.
func ClientIDFromContext(ctx context.Context) string {
	if st, ok := stateFrom(ctx); ok {
		return st.clientID
	}
	return ""
}

type csrfTokenKey struct{}

func setCSRFTokenInContext(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, csrfTokenKey{}, token)
}

// GetCSRFToken retrieves the CSRF token for forms rendered in this request.
func GetCSRFToken(r *http.Request) string {
	token, _ := r.Context().Value(csrfTokenKey{}).(string)
	return token
}

type routeKey struct{}

// routeLabel is a mutable slot the logging middleware reads after the mux has
// matched, so metrics are labelled by pattern rather than raw path.
type routeLabel struct{ pattern string }

func withRouteLabel(ctx context.Context) (context.Context, *routeLabel) {
	l := &routeLabel{}
	return context.WithValue(ctx, routeKey{}, l), l
}

func recordRoute(r *http.Request) {
	if l, ok := r.Context().Value(routeKey{}).(*routeLabel); ok && l.pattern == "" {
		l.pattern = r.Pattern
	}
}
