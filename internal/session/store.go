// Package session owns the in-memory session of one client and keeps its
// storage mirror and the API client's bearer credential in step with it.
package session

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"

	"github.com/learnsphere/learnsphere-ui/internal/domain/auth"
	apperrors "github.com/learnsphere/learnsphere-ui/internal/errors"
	"github.com/learnsphere/learnsphere-ui/internal/ports"
)

// Persisted storage keys.
const (
	TokenKey = "learnsphere_token"
	UserKey  = "learnsphere_user"
)

// LoginPath is where HandleUnauthorized sends the client.
const LoginPath = "/login"

// Observer is notified of session transitions. Optional.
type Observer interface {
	SessionEvent(event string, err error)
}

// Event names passed to Observer.
const (
	EventLogin        = "login"
	EventRegister     = "register"
	EventLogout       = "logout"
	EventUnauthorized = "unauthorized"
	EventRestore      = "restore"
)

// Options wires a Store.
type Options struct {
	Storage   ports.Storage
	API       ports.AuthAPI
	Bearer    ports.BearerHolder
	Navigator ports.Navigator
	Observer  Observer
	Logger    *slog.Logger
}

// Store is the Session Store. Side effects always run memory first, then
// storage, then the bearer header. Memory is the source of truth for the
// lifetime of the Store; storage carries the session to the next one.
type Store struct {
	mu      sync.RWMutex
	current auth.Session

	storage  ports.Storage
	api      ports.AuthAPI
	bearer   ports.BearerHolder
	nav      ports.Navigator
	observer Observer
	logger   *slog.Logger
}

// New creates an empty store. Call Restore to hydrate it from storage.
func New(opts Options) *Store {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		storage:  opts.Storage,
		api:      opts.API,
		bearer:   opts.Bearer,
		nav:      opts.Navigator,
		observer: opts.Observer,
		logger:   logger.With("component", "session"),
	}
}

// Restore hydrates the session from storage. Both keys must be present and
// the user must decode into a valid user; anything else leaves the session
// empty. Storage errors are logged and read as absent. Restore never fails.
func (s *Store) Restore(ctx context.Context) {
	sess, ok := s.readPersisted(ctx)
	if !ok {
		return
	}

	s.mu.Lock()
	s.current = sess
	s.mu.Unlock()
	if s.bearer != nil {
		s.bearer.SetBearer(sess.Token)
	}
	s.notify(EventRestore, nil)
}

func (s *Store) readPersisted(ctx context.Context) (auth.Session, bool) {
	if s.storage == nil {
		return auth.Session{}, false
	}
	token, okTok, err := s.storage.Get(ctx, TokenKey)
	if err != nil {
		s.logger.WarnContext(ctx, "read persisted token", "error", err)
		return auth.Session{}, false
	}
	rawUser, okUser, err := s.storage.Get(ctx, UserKey)
	if err != nil {
		s.logger.WarnContext(ctx, "read persisted user", "error", err)
		return auth.Session{}, false
	}
	if !okTok || !okUser || strings.TrimSpace(token) == "" {
		return auth.Session{}, false
	}

	var u auth.User
	if err := json.Unmarshal([]byte(rawUser), &u); err != nil {
		s.logger.InfoContext(ctx, "discarding malformed persisted user", "error", err)
		return auth.Session{}, false
	}
	if err := u.Validate(); err != nil {
		s.logger.InfoContext(ctx, "discarding invalid persisted user", "error", err)
		return auth.Session{}, false
	}
	return auth.Session{User: &u, Token: token}, true
}

// Login authenticates and replaces the session. On failure the session is
// left unchanged and the error is returned as is.
func (s *Store) Login(ctx context.Context, email, password string) (auth.Session, error) {
	sess, err := s.api.Login(ctx, auth.Credentials{Email: strings.TrimSpace(email), Password: password})
	if err != nil {
		s.notify(EventLogin, err)
		return auth.Session{}, err
	}
	err = s.establish(ctx, sess)
	s.notify(EventLogin, err)
	return sess, err
}

// Register creates an account and replaces the session, with the same
// contract as Login.
func (s *Store) Register(ctx context.Context, reg auth.Registration) (auth.Session, error) {
	reg.Email = strings.TrimSpace(reg.Email)
	sess, err := s.api.Register(ctx, reg)
	if err != nil {
		s.notify(EventRegister, err)
		return auth.Session{}, err
	}
	err = s.establish(ctx, sess)
	s.notify(EventRegister, err)
	return sess, err
}

// establish installs a fresh session: memory, then storage, then header.
// A persistence failure is returned but the in-memory session stands.
func (s *Store) establish(ctx context.Context, sess auth.Session) error {
	if !sess.Valid() {
		return apperrors.Malformed("Unexpected response from server.", nil)
	}
	u := *sess.User
	sess.User = &u

	s.mu.Lock()
	s.current = sess
	s.mu.Unlock()

	persistErr := s.persist(ctx, sess)

	if s.bearer != nil {
		s.bearer.SetBearer(sess.Token)
	}

	if persistErr != nil {
		s.logger.ErrorContext(ctx, "persist session", "error", persistErr)
		return apperrors.Wrap(persistErr, apperrors.ErrCodeInternal, "Signed in, but the session could not be saved.")
	}
	return nil
}

func (s *Store) persist(ctx context.Context, sess auth.Session) error {
	if s.storage == nil {
		return nil
	}
	b, err := json.Marshal(sess.User)
	if err != nil {
		return err
	}
	if err := s.storage.Set(ctx, TokenKey, sess.Token); err != nil {
		return err
	}
	return s.storage.Set(ctx, UserKey, string(b))
}

// Logout clears memory, removes both persisted keys and drops the header.
// Calling it while logged out is a no-op with the same end state.
func (s *Store) Logout(ctx context.Context) {
	s.clear(ctx)
	s.notify(EventLogout, nil)
}

func (s *Store) clear(ctx context.Context) {
	s.mu.Lock()
	s.current = auth.Session{}
	s.mu.Unlock()

	if s.storage != nil {
		for _, key := range []string{TokenKey, UserKey} {
			if err := s.storage.Remove(ctx, key); err != nil {
				s.logger.WarnContext(ctx, "remove persisted session key", "key", key, "error", err)
			}
		}
	}

	if s.bearer != nil {
		s.bearer.ClearBearer()
	}
}

// HandleUnauthorized is the reaction to a 401 from the backend: a full logout
// followed by navigation to the login page.
func (s *Store) HandleUnauthorized(ctx context.Context) {
	s.logger.InfoContext(ctx, "backend rejected session, signing out")
	s.clear(ctx)
	s.notify(EventUnauthorized, nil)
	if s.nav != nil {
		s.nav.Navigate(ctx, LoginPath)
	}
}

// Current returns a copy of the session.
func (s *Store) Current() auth.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := s.current
	if out.User != nil {
		u := *out.User
		out.User = &u
	}
	return out
}

// User returns the signed-in user or nil.
func (s *Store) User() *auth.User {
	return s.Current().User
}

// Token returns the bearer token or "".
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Token
}

// IsAuthenticated reports whether a user is signed in.
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Valid()
}

func (s *Store) notify(event string, err error) {
	if s.observer != nil {
		s.observer.SessionEvent(event, err)
	}
}
