package auth

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestSession_Valid(t *testing.T) {
	u := &User{ID: "1", Email: "a@b.c", Role: RoleStudent}
	if !(Session{User: u, Token: "t"}).Valid() {
		t.Fatalf("expected valid session")
	}
	if (Session{User: u}).Valid() {
		t.Fatalf("user without token must not be valid")
	}
	if (Session{Token: "t"}).Valid() {
		t.Fatalf("token without user must not be valid")
	}
	if (Session{}).Valid() {
		t.Fatalf("empty session must not be valid")
	}
}

func TestSession_HasRole(t *testing.T) {
	s := Session{User: &User{Email: "a@b.c", Role: RoleInstructor}, Token: "t"}
	if !s.HasRole(RoleInstructor) {
		t.Fatalf("expected instructor")
	}
	if s.HasRole(RoleStudent) {
		t.Fatalf("did not expect student")
	}
}

func TestParseRole(t *testing.T) {
	tests := []struct {
		in   string
		want Role
		ok   bool
	}{
		{"STUDENT", RoleStudent, true},
		{" instructor ", RoleInstructor, true},
		{"admin", Role("ADMIN"), false},
		{"", Role(""), false},
	}
	for _, tt := range tests {
		got, ok := ParseRole(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseRole(%q) = %q,%v want %q,%v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestRole_DashboardPath(t *testing.T) {
	if RoleStudent.DashboardPath() != "/student/dashboard" {
		t.Fatalf("unexpected student path")
	}
	if RoleInstructor.DashboardPath() != "/instructor/dashboard" {
		t.Fatalf("unexpected instructor path")
	}
	if Role("X").DashboardPath() != "/" {
		t.Fatalf("unknown role should land on home")
	}
}

func TestUser_UnmarshalID(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want UserID
	}{
		{"string id", `{"id":"abc","email":"e","role":"STUDENT"}`, "abc"},
		{"numeric id", `{"id":42,"email":"e","role":"STUDENT"}`, "42"},
		{"null id", `{"id":null,"email":"e","role":"STUDENT"}`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var u User
			if err := json.Unmarshal([]byte(tt.raw), &u); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if u.ID != tt.want {
				t.Fatalf("id = %q, want %q", u.ID, tt.want)
			}
		})
	}

	var u User
	if err := json.Unmarshal([]byte(`{"id":{"x":1}}`), &u); err == nil {
		t.Fatalf("expected error for object id")
	}
}

func TestUser_Validate(t *testing.T) {
	if err := (User{Email: "a@b.c", Role: RoleStudent}).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err := (User{Email: "a@b.c", Role: "ADMIN"}).Validate()
	if !errors.Is(err, ErrInvalidUser) {
		t.Fatalf("expected ErrInvalidUser, got %v", err)
	}
	err = (User{Role: RoleStudent}).Validate()
	if !errors.Is(err, ErrInvalidUser) {
		t.Fatalf("expected ErrInvalidUser for missing email, got %v", err)
	}
}

func TestUser_DisplayName(t *testing.T) {
	if got := (User{FirstName: "Ada", LastName: "Lovelace", Email: "ada@x"}).DisplayName(); got != "Ada Lovelace" {
		t.Fatalf("got %q", got)
	}
	if got := (User{Email: "ada@x"}).DisplayName(); got != "ada@x" {
		t.Fatalf("got %q", got)
	}
}

func TestAuthResult_Session(t *testing.T) {
	res := AuthResult{Token: "tok", User: &User{ID: "1", Email: "a@b.c", Role: RoleStudent}}
	s, err := res.Session()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !s.Valid() || s.Token != "tok" {
		t.Fatalf("unexpected session: %+v", s)
	}
	// Session must not alias the decoded user.
	res.User.Email = "changed"
	if s.User.Email != "a@b.c" {
		t.Fatalf("session aliases response user")
	}

	if _, err := (AuthResult{User: res.User}).Session(); err == nil {
		t.Fatalf("expected error for missing token")
	}
	if _, err := (AuthResult{Token: "t"}).Session(); err == nil {
		t.Fatalf("expected error for missing user")
	}
	if _, err := (AuthResult{Token: "t", User: &User{Email: "x", Role: "GUEST"}}).Session(); err == nil {
		t.Fatalf("expected error for unknown role")
	}
}

func TestRegistration_JSONFields(t *testing.T) {
	b, err := json.Marshal(Registration{Email: "e", Password: "p", Role: RoleInstructor, FirstName: "F", LastName: "L"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, k := range []string{"email", "password", "role", "firstName", "lastName"} {
		if _, ok := m[k]; !ok {
			t.Errorf("missing field %q in %s", k, b)
		}
	}
	if len(m) != 5 {
		t.Errorf("unexpected extra fields in %s", b)
	}
}
