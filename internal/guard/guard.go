// Package guard decides whether a session may view a page.
package guard

import (
	"strings"

	"github.com/learnsphere/learnsphere-ui/internal/domain/auth"
)

// Decision is the outcome of evaluating a route against a session.
type Decision int

const (
	Allow Decision = iota
	RedirectLogin
	RedirectUnauthorized
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case RedirectLogin:
		return "redirect_login"
	case RedirectUnauthorized:
		return "redirect_unauthorized"
	default:
		return "unknown"
	}
}

// Redirect target for the decision, or "" for Allow.
func (d Decision) Redirect() string {
	switch d {
	case RedirectLogin:
		return LoginPath
	case RedirectUnauthorized:
		return UnauthorizedPath
	default:
		return ""
	}
}

const (
	LoginPath        = "/login"
	UnauthorizedPath = "/unauthorized"
)

// Decide evaluates a guarded page. An empty required role only demands an
// authenticated user.
func Decide(s auth.Session, required auth.Role) Decision {
	if s.User == nil {
		return RedirectLogin
	}
	if required != "" && s.User.Role != required {
		return RedirectUnauthorized
	}
	return Allow
}

// Route describes a navigable page.
type Route struct {
	Path      string
	Protected bool
	Role      auth.Role
}

// Routes is the navigation surface of the application.
var Routes = []Route{
	{Path: "/"},
	{Path: "/login"},
	{Path: "/register"},
	{Path: "/unauthorized"},
	{Path: "/student/dashboard", Protected: true, Role: auth.RoleStudent},
	{Path: "/student/enroll", Protected: true, Role: auth.RoleStudent},
	{Path: "/instructor/dashboard", Protected: true, Role: auth.RoleInstructor},
}

// Lookup finds the route for path. Trailing slashes are ignored except on "/".
func Lookup(path string) (Route, bool) {
	if path != "/" {
		path = strings.TrimRight(path, "/")
	}
	for _, r := range Routes {
		if r.Path == path {
			return r, true
		}
	}
	return Route{}, false
}

// Evaluate resolves path and applies Decide for protected routes. Unknown
// paths are allowed so the caller can render its not-found page.
func Evaluate(s auth.Session, path string) (Route, Decision) {
	r, ok := Lookup(path)
	if !ok || !r.Protected {
		return r, Allow
	}
	return r, Decide(s, r.Role)
}
