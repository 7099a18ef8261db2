package httpx

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"
)

const (
	// DefaultCSRFCookieName is the cookie and form field carrying the token.
	DefaultCSRFCookieName = "csrf_token"
	// DefaultCSRFHeaderName is accepted for script-driven posts.
	DefaultCSRFHeaderName = "X-Csrf-Token"
	csrfTokenBytes        = 32
)

// CSRFConfig holds configuration for CSRF protection middleware.
type CSRFConfig struct {
	CookieName   string
	HeaderName   string
	CookieDomain string
}

// CSRFProtection implements the double-submit cookie pattern. Every request
// gets a token in its context; unsafe methods must echo the cookie value in
// the form field or header.
func CSRFProtection(cfg CSRFConfig) func(http.Handler) http.Handler {
	if cfg.CookieName == "" {
		cfg.CookieName = DefaultCSRFCookieName
	}
	if cfg.HeaderName == "" {
		cfg.HeaderName = DefaultCSRFHeaderName
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := ""
			if c, err := r.Cookie(cfg.CookieName); err == nil {
				token = c.Value
			}
			if token == "" {
				var err error
				if token, err = generateCSRFToken(); err != nil {
					http.Error(w, "unable to generate CSRF token", http.StatusInternalServerError)
					return
				}
				http.SetCookie(w, &http.Cookie{
					Name:     cfg.CookieName,
					Value:    token,
					Path:     "/",
					Domain:   cfg.CookieDomain,
					Secure:   isSecureRequest(r),
					HttpOnly: true,
					SameSite: http.SameSiteStrictMode,
					MaxAge:   12 * 3600,
				})
			}

			r = r.WithContext(setCSRFTokenInContext(r.Context(), token))
			if requiresCSRFValidation(r.Method) && !validCSRFToken(r, token, cfg) {
				http.Error(w, "CSRF token validation failed", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func requiresCSRFValidation(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
		return false
	default:
		return true
	}
}

func generateCSRFToken() (string, error) {
	b := make([]byte, csrfTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("csrf token generation failed: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// validCSRFToken compares in constant time. A freshly minted token can never
// validate, since the client has not seen it yet.
func validCSRFToken(r *http.Request, cookieToken string, cfg CSRFConfig) bool {
	if _, err := r.Cookie(cfg.CookieName); err != nil {
		return false
	}
	submitted := r.Header.Get(cfg.HeaderName)
	if submitted == "" {
		ct := r.Header.Get("Content-Type")
		if strings.HasPrefix(ct, "application/x-www-form-urlencoded") || strings.HasPrefix(ct, "multipart/form-data") {
			if err := r.ParseForm(); err != nil {
				return false
			}
			submitted = r.PostFormValue(cfg.CookieName)
		}
	}
	return submitted != "" && subtle.ConstantTimeCompare([]byte(submitted), []byte(cookieToken)) == 1
}
