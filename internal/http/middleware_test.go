package httpx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/learnsphere/learnsphere-ui/internal/domain/auth"
	"github.com/learnsphere/learnsphere-ui/internal/mocks"
	"github.com/learnsphere/learnsphere-ui/internal/session"
)

func TestSafeRedirectPath(t *testing.T) {
	tests := map[string]string{
		"":                     "/",
		"/student/dashboard":   "/student/dashboard",
		"/?q=go":               "/?q=go",
		"//evil.example":       "/",
		`/\evil.example`:       "/",
		"https://evil.example": "/",
		"student/dashboard":    "/",
	}
	for in, want := range tests {
		assert.Equal(t, want, safeRedirectPath(in), "safeRedirectPath(%q)", in)
	}
}

func TestPostLoginTarget(t *testing.T) {
	s := sessionFor(student(), "tok")
	assert.Equal(t, "/student/dashboard", postLoginTarget(s, ""))
	assert.Equal(t, "/?q=go", postLoginTarget(s, "/?q=go"))
	assert.Equal(t, "/student/dashboard", postLoginTarget(s, "/login"))
	assert.Equal(t, "/student/dashboard", postLoginTarget(s, "/instructor/dashboard"))
	assert.Equal(t, "/student/dashboard", postLoginTarget(s, "https://evil.example/"))

	i := sessionFor(instructor(), "tok")
	assert.Equal(t, "/instructor/dashboard", postLoginTarget(i, "/student/dashboard"))
}

func TestAcceptsGzip(t *testing.T) {
	assert.True(t, acceptsGzip("gzip"))
	assert.True(t, acceptsGzip("br, gzip;q=0.8"))
	assert.False(t, acceptsGzip("gzip;q=0"))
	assert.False(t, acceptsGzip("br, deflate"))
	assert.False(t, acceptsGzip(""))
}

func TestLimiterSet_RefillsAndSweeps(t *testing.T) {
	now := testNow
	set := newLimiterSet(RateLimitConfig{PerMinute: 60, Burst: 1, IdleTTL: time.Minute, now: func() time.Time { return now }})

	assert.True(t, set.allow("10.0.0.1"))
	assert.False(t, set.allow("10.0.0.1"))
	assert.True(t, set.allow("10.0.0.2"), "buckets are per address")

	now = now.Add(time.Second)
	assert.True(t, set.allow("10.0.0.1"), "one token per second at 60/min")

	now = now.Add(2 * time.Minute)
	set.allow("10.0.0.3")
	set.mu.Lock()
	_, stale := set.limiters["10.0.0.2"]
	set.mu.Unlock()
	assert.False(t, stale, "idle limiters are dropped")
}

func TestRedirectNavigator_FirstTargetWins(t *testing.T) {
	var n redirectNavigator
	assert.Empty(t, n.Target())
	n.Navigate(context.Background(), "/login")
	n.Navigate(context.Background(), "/elsewhere")
	assert.Equal(t, "/login", n.Target())
}

func TestGuardMiddleware_AllowsPublicAndUnknownPaths(t *testing.T) {
	called := 0
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		called++
		w.WriteHeader(http.StatusNoContent)
	})
	mw := Guard(nil)(next)

	for _, path := range []string{"/", "/login", "/unauthorized", "/nowhere"} {
		w := httptest.NewRecorder()
		mw.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusNoContent, w.Code, path)
	}
	assert.Equal(t, 4, called)
}

func TestRecover_Returns500(t *testing.T) {
	h := Recover(discardLogger())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestSessionFromContext_OutsideMiddleware(t *testing.T) {
	assert.Equal(t, auth.Session{}, SessionFromContext(context.Background()))
	assert.Empty(t, ClientIDFromContext(context.Background()))
}

func TestWithSession_UsesClientCookieNamespace(t *testing.T) {
	ctrl := gomock.NewController(t)
	provider := mocks.NewMockStorageProvider(ctrl)
	storage := mocks.NewMockStorage(ctrl)
	bearer := mocks.NewMockBearerHolder(ctrl)

	clientID := uuid.NewString()
	provider.EXPECT().Namespace(clientID).Return(storage)
	storage.EXPECT().Get(gomock.Any(), session.TokenKey).Return("t1", true, nil)
	storage.EXPECT().Get(gomock.Any(), session.UserKey).
		Return(`{"id":1,"email":"s@x.io","role":"STUDENT","firstName":"Sam"}`, true, nil)
	bearer.EXPECT().SetBearer("t1")

	var seen auth.Session
	mw := WithSession(SessionConfig{
		Storage:  provider,
		Backends: func() Backend { return Backend{Bearer: bearer} },
		Logger:   discardLogger(),
	})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = SessionFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: ClientCookieName, Value: clientID})
	w := httptest.NewRecorder()
	mw.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Result().Cookies(), "a valid client cookie is not reissued")
	require.True(t, seen.Valid())
	assert.Equal(t, auth.RoleStudent, seen.User.Role)
}

func TestWithSession_IssuesCookieForUnknownClient(t *testing.T) {
	ctrl := gomock.NewController(t)
	provider := mocks.NewMockStorageProvider(ctrl)
	storage := mocks.NewMockStorage(ctrl)

	var namespace string
	provider.EXPECT().Namespace(gomock.Any()).DoAndReturn(func(id string) *mocks.MockStorage {
		namespace = id
		return storage
	})
	storage.EXPECT().Get(gomock.Any(), gomock.Any()).Return("", false, nil).Times(2)

	mw := WithSession(SessionConfig{
		Storage:      provider,
		Backends:     func() Backend { return Backend{} },
		CookieMaxAge: time.Hour,
		Logger:       discardLogger(),
	})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.False(t, SessionFromContext(r.Context()).Valid())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: ClientCookieName, Value: "not-a-uuid"})
	w := httptest.NewRecorder()
	mw.ServeHTTP(w, req)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, ClientCookieName, cookies[0].Name)
	assert.Equal(t, namespace, cookies[0].Value)
	assert.Equal(t, 3600, cookies[0].MaxAge)
	assert.True(t, cookies[0].HttpOnly)
}
