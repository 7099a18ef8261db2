package httpx

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/learnsphere/learnsphere-ui/internal/domain/auth"
	apperrors "github.com/learnsphere/learnsphere-ui/internal/errors"
	"github.com/learnsphere/learnsphere-ui/internal/guard"
)

const (
	msgMissingCredentials = "Please enter your email and password."
	msgInvalidCredentials = "Invalid email or password."
)

type loginContent struct {
	Email       string
	RedirectURI string
}

type roleOption struct {
	Value    auth.Role
	Label    string
	Selected bool
}

type registerContent struct {
	Email             string
	FirstName         string
	LastName          string
	MinPasswordLength int
	Roles             []roleOption
	// InvalidField names the input that failed validation, if any.
	InvalidField string
}

func (h *Handlers) registerContent(email, first, last string, role auth.Role) registerContent {
	if !role.Valid() {
		role = auth.RoleStudent
	}
	return registerContent{
		Email:             email,
		FirstName:         first,
		LastName:          last,
		MinPasswordLength: h.minPasswordLength(),
		Roles: []roleOption{
			{Value: auth.RoleStudent, Label: "Learn as a student", Selected: role == auth.RoleStudent},
			{Value: auth.RoleInstructor, Label: "Teach as an instructor", Selected: role == auth.RoleInstructor},
		},
	}
}

func (h *Handlers) minPasswordLength() int {
	if h.MinPasswordLength < 1 {
		return 1
	}
	return h.MinPasswordLength
}

// LoginPage renders the sign-in form. Signed-in users go to their dashboard.
// GET /login?redirect_uri=<optional>.
func (h *Handlers) LoginPage(w http.ResponseWriter, r *http.Request) {
	if sess := SessionFromContext(r.Context()); sess.Valid() {
		http.Redirect(w, r, sess.User.Role.DashboardPath(), http.StatusSeeOther)
		return
	}
	h.render(w, r, renderParams{
		Page:    "login",
		Title:   "Sign In",
		Content: loginContent{RedirectURI: r.URL.Query().Get("redirect_uri")},
	})
}

// Login submits the sign-in form.
// POST /login.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	st, ok := h.requestStateOr500(w, r)
	if !ok {
		return
	}
	email := strings.TrimSpace(r.PostFormValue("email"))
	password := r.PostFormValue("password")
	content := loginContent{Email: email, RedirectURI: r.PostFormValue("redirect_uri")}

	if email == "" || password == "" {
		h.render(w, r, renderParams{
			Status: http.StatusBadRequest, Page: "login", Title: "Sign In",
			Content: content, Error: msgMissingCredentials,
		})
		return
	}

	sess, err := st.store.Login(r.Context(), email, password)
	if err != nil {
		// A 401 here means bad credentials. The store has already reset the
		// session; the pending navigation to /login is this very page.
		msg := apperrors.UserMessage(err)
		if apperrors.IsUnauthorized(err) {
			msg = msgInvalidCredentials
		}
		h.logger().InfoContext(r.Context(), "login failed", "code", apperrors.GetCode(err))
		h.render(w, r, renderParams{
			Status: statusFor(err), Page: "login", Title: "Sign In",
			Content: content, Error: msg,
		})
		return
	}

	http.Redirect(w, r, postLoginTarget(sess, content.RedirectURI), http.StatusSeeOther)
}

// postLoginTarget honors redirect_uri when the new session may view it and
// falls back to the role's dashboard.
func postLoginTarget(sess auth.Session, redirectURI string) string {
	fallback := sess.User.Role.DashboardPath()
	candidate := safeRedirectPath(redirectURI)
	if candidate == "/" {
		return fallback
	}
	u, err := url.Parse(candidate)
	if err != nil {
		return fallback
	}
	if u.Path == guard.LoginPath || u.Path == "/register" {
		return fallback
	}
	if _, decision := guard.Evaluate(sess, u.Path); decision != guard.Allow {
		return fallback
	}
	return candidate
}

// RegisterPage renders the sign-up form.
// GET /register.
func (h *Handlers) RegisterPage(w http.ResponseWriter, r *http.Request) {
	if sess := SessionFromContext(r.Context()); sess.Valid() {
		http.Redirect(w, r, sess.User.Role.DashboardPath(), http.StatusSeeOther)
		return
	}
	role, _ := auth.ParseRole(r.URL.Query().Get("role"))
	h.render(w, r, renderParams{
		Page:    "register",
		Title:   "Create Account",
		Content: h.registerContent("", "", "", role),
	})
}

// Register submits the sign-up form.
// POST /register.
func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	st, ok := h.requestStateOr500(w, r)
	if !ok {
		return
	}
	role, roleOK := auth.ParseRole(r.PostFormValue("role"))
	reg := auth.Registration{
		Email:     strings.TrimSpace(r.PostFormValue("email")),
		Password:  r.PostFormValue("password"),
		Role:      role,
		FirstName: strings.TrimSpace(r.PostFormValue("firstName")),
		LastName:  strings.TrimSpace(r.PostFormValue("lastName")),
	}
	content := h.registerContent(reg.Email, reg.FirstName, reg.LastName, role)

	if err := h.validateRegistration(reg, roleOK); err != nil {
		content.InvalidField = apperrors.GetField(err)
		h.render(w, r, renderParams{
			Status: statusFor(err), Page: "register", Title: "Create Account",
			Content: content, Error: apperrors.UserMessage(err),
		})
		return
	}

	sess, err := st.store.Register(r.Context(), reg)
	if err != nil {
		h.logger().InfoContext(r.Context(), "registration failed", "code", apperrors.GetCode(err))
		h.render(w, r, renderParams{
			Status: statusFor(err), Page: "register", Title: "Create Account",
			Content: content, Error: apperrors.UserMessage(err),
		})
		return
	}

	http.Redirect(w, r, sess.User.Role.DashboardPath(), http.StatusSeeOther)
}

func (h *Handlers) validateRegistration(reg auth.Registration, roleOK bool) error {
	switch {
	case reg.Email == "":
		return apperrors.ValidationField("email", "Email is required.")
	case !strings.Contains(reg.Email, "@"):
		return apperrors.ValidationField("email", "Please enter a valid email address.")
	case len([]rune(reg.Password)) < h.minPasswordLength():
		return apperrors.ValidationField("password",
			"Password must be at least "+strconv.Itoa(h.minPasswordLength())+" characters.")
	case !roleOK:
		return apperrors.ValidationField("role", "Please choose whether you want to learn or teach.")
	}
	return nil
}

// Logout signs the client out and sends it to the sign-in page.
// POST /logout.
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	st, ok := h.requestStateOr500(w, r)
	if !ok {
		return
	}
	st.store.Logout(r.Context())
	http.Redirect(w, r, guard.LoginPath, http.StatusSeeOther)
}
