package httpx

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/learnsphere/learnsphere-ui/internal/guard"
	"github.com/learnsphere/learnsphere-ui/internal/ports"
	"github.com/learnsphere/learnsphere-ui/internal/session"
)

// ClientCookieName holds the opaque id that selects a storage namespace.
const ClientCookieName = "ls_client"

// SessionConfig wires the per-request session middleware.
type SessionConfig struct {
	Storage      ports.StorageProvider
	Backends     BackendFactory
	Observer     session.Observer
	CookieDomain string
	// CookieMaxAge matches the storage TTL so the cookie and the namespace
	// expire together.
	CookieMaxAge time.Duration
	Logger       *slog.Logger
}

// WithSession identifies the client, builds a Session Store over its storage
// namespace, wires the 401 reaction and restores the persisted session.
func WithSession(cfg SessionConfig) func(http.Handler) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			clientID := ensureClientID(w, r, cfg)

			backend := cfg.Backends()
			nav := &redirectNavigator{}
			store := session.New(session.Options{
				Storage:   cfg.Storage.Namespace(clientID),
				API:       backend.Auth,
				Bearer:    backend.Bearer,
				Navigator: nav,
				Observer:  cfg.Observer,
				Logger:    logger,
			})
			if backend.OnUnauthorized != nil {
				backend.OnUnauthorized(store.HandleUnauthorized)
			}
			store.Restore(r.Context())

			st := &requestState{clientID: clientID, store: store, backend: backend, nav: nav}
			next.ServeHTTP(w, r.WithContext(withState(r.Context(), st)))
		})
	}
}

func ensureClientID(w http.ResponseWriter, r *http.Request, cfg SessionConfig) string {
	if c, err := r.Cookie(ClientCookieName); err == nil {
		if id, parseErr := uuid.Parse(c.Value); parseErr == nil {
			return id.String()
		}
	}
	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     ClientCookieName,
		Value:    id,
		Path:     "/",
		Domain:   cfg.CookieDomain,
		MaxAge:   int(cfg.CookieMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   isSecureRequest(r),
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

// GuardObserver receives every guard decision. Optional.
type GuardObserver interface {
	ObserveGuard(route, decision string)
}

// Guard evaluates the route table for every request and redirects when the
// session may not view the page. It runs after WithSession.
func Guard(obs GuardObserver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			route, decision := guard.Evaluate(SessionFromContext(r.Context()), r.URL.Path)
			if route.Protected && obs != nil {
				obs.ObserveGuard(route.Path, decision.String())
			}
			switch decision {
			case guard.RedirectLogin:
				redirectToLogin(w, r)
			case guard.RedirectUnauthorized:
				http.Redirect(w, r, decision.Redirect(), http.StatusSeeOther)
			default:
				next.ServeHTTP(w, r)
			}
		})
	}
}

// redirectToLogin sends the browser to the login page, remembering where it
// was headed when that is a page it can return to.
func redirectToLogin(w http.ResponseWriter, r *http.Request) {
	target := guard.LoginPath
	if r.Method == http.MethodGet {
		if back := safeRedirectPath(r.URL.RequestURI()); back != "/" {
			target += "?redirect_uri=" + url.QueryEscape(back)
		}
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// navigated turns a navigation requested during the request (a 401 from the
// backend) into a redirect. It reports whether it wrote the response.
func navigated(w http.ResponseWriter, r *http.Request) bool {
	st, ok := stateFrom(r.Context())
	if !ok {
		return false
	}
	target := st.nav.Target()
	if target == "" {
		return false
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
	return true
}

// safeRedirectPath keeps redirects inside the application.
func safeRedirectPath(candidate string) string {
	if candidate == "" || strings.HasPrefix(candidate, "//") || strings.HasPrefix(candidate, `/\`) {
		return "/"
	}
	u, err := url.Parse(candidate)
	if err != nil || u.IsAbs() || u.Host != "" || !strings.HasPrefix(u.Path, "/") {
		return "/"
	}
	return candidate
}

func isSecureRequest(r *http.Request) bool {
	if r.TLS != nil {
		return true
	}
	for _, proto := range strings.Split(r.Header.Get("X-Forwarded-Proto"), ",") {
		if strings.EqualFold(strings.TrimSpace(proto), "https") {
			return true
		}
	}
	return false
}
