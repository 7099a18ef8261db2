package auth

// Package auth contains domain-level types for authentication and sessions.
// It is pure and free of framework/adapter concerns.

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Role represents an application's authorization role.
// Keep string form for easy persistence and cookies.
type Role string

const (
	RoleStudent    Role = "STUDENT"
	RoleInstructor Role = "INSTRUCTOR"
)

// ParseRole normalizes s and reports whether it names a known role.
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	return r, r.Valid()
}

// Valid reports whether r is one of the defined roles.
func (r Role) Valid() bool {
	return r == RoleStudent || r == RoleInstructor
}

// DashboardPath returns the landing page for the role.
func (r Role) DashboardPath() string {
	switch r {
	case RoleStudent:
		return "/student/dashboard"
	case RoleInstructor:
		return "/instructor/dashboard"
	default:
		return "/"
	}
}

// Label is the human form of the role used in page copy.
func (r Role) Label() string {
	switch r {
	case RoleStudent:
		return "Student"
	case RoleInstructor:
		return "Instructor"
	default:
		return string(r)
	}
}

// UserID accepts either a JSON string or a JSON number. Backends differ on
// which one they send.
type UserID string

// UnmarshalJSON implements json.Unmarshaler.
func (id *UserID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = UserID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("user id: %w", err)
	}
	if _, err := strconv.ParseFloat(n.String(), 64); err != nil {
		return fmt.Errorf("user id: %w", err)
	}
	*id = UserID(n.String())
	return nil
}

// User is the authenticated principal as returned by the backend.
// Immutable from the client's point of view.
type User struct {
	ID              UserID  `json:"id"`
	Email           string  `json:"email"`
	Role            Role    `json:"role"`
	FirstName       string  `json:"firstName,omitempty"`
	LastName        string  `json:"lastName,omitempty"`
	ProfileImageURL *string `json:"profileImageUrl,omitempty"`
}

// ErrInvalidUser is returned by Validate for users that cannot back a session.
var ErrInvalidUser = errors.New("invalid user")

// Validate checks the fields a session depends on.
func (u User) Validate() error {
	if strings.TrimSpace(u.Email) == "" {
		return fmt.Errorf("%w: missing email", ErrInvalidUser)
	}
	if !u.Role.Valid() {
		return fmt.Errorf("%w: unknown role %q", ErrInvalidUser, u.Role)
	}
	return nil
}

// DisplayName prefers "First Last" and falls back to the email address.
func (u User) DisplayName() string {
	name := strings.TrimSpace(strings.TrimSpace(u.FirstName) + " " + strings.TrimSpace(u.LastName))
	if name != "" {
		return name
	}
	return u.Email
}

// Session pairs the authenticated user with the bearer token.
// A session with only one of the two populated is not valid and is never stored.
type Session struct {
	User  *User
	Token string
}

// Valid reports whether both halves of the session are present.
func (s Session) Valid() bool {
	return s.User != nil && s.Token != ""
}

// HasRole reports whether the session belongs to a user with role r.
func (s Session) HasRole(r Role) bool {
	return s.Valid() && s.User.Role == r
}

// Credentials is the login request body.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration is the registration request body.
type Registration struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	Role      Role   `json:"role"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// AuthResult is the decoded body of a successful login or registration.
type AuthResult struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// Session converts the result into a session after checking it is complete.
func (r AuthResult) Session() (Session, error) {
	if strings.TrimSpace(r.Token) == "" {
		return Session{}, errors.New("auth response missing token")
	}
	if r.User == nil {
		return Session{}, errors.New("auth response missing user")
	}
	if err := r.User.Validate(); err != nil {
		return Session{}, err
	}
	u := *r.User
	return Session{User: &u, Token: r.Token}, nil
}
