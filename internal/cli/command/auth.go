package command

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/learnsphere/learnsphere-ui/internal/domain/auth"
	apperrors "github.com/learnsphere/learnsphere-ui/internal/errors"
)

const minPasswordLength = 6

// LoginCommand signs in and stores the session.
func LoginCommand() *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "Sign in with email and password",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "email", Aliases: []string{"e"}, Usage: "Account email", Required: true},
			&cli.StringFlag{
				Name:    "password",
				Aliases: []string{"p"},
				Usage:   "Account password (read from stdin when omitted)",
				EnvVars: []string{"LEARNSPHERE_PASSWORD"},
			},
		},
		Action: login,
	}
}

func login(c *cli.Context) error {
	env, err := sessionFrom(c)
	if err != nil {
		return err
	}
	password, err := passwordFrom(c)
	if err != nil {
		return err
	}

	env.nav.muted = true
	sess, err := env.store.Login(c.Context, c.String("email"), password)
	if err != nil {
		if apperrors.IsUnauthorized(err) {
			return cli.Exit("Invalid email or password.", 1)
		}
		return cli.Exit(userMessage(err), 1)
	}
	fmt.Fprintf(stdout(c), "Signed in as %s (%s).\n", sess.User.DisplayName(), sess.User.Role.Label())
	return nil
}

// RegisterCommand creates an account and stores the session.
func RegisterCommand() *cli.Command {
	return &cli.Command{
		Name:  "register",
		Usage: "Create an account",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "email", Aliases: []string{"e"}, Usage: "Account email", Required: true},
			&cli.StringFlag{
				Name:    "password",
				Aliases: []string{"p"},
				Usage:   "Account password (read from stdin when omitted)",
				EnvVars: []string{"LEARNSPHERE_PASSWORD"},
			},
			&cli.StringFlag{Name: "first-name", Usage: "First name"},
			&cli.StringFlag{Name: "last-name", Usage: "Last name"},
			&cli.StringFlag{Name: "role", Usage: "student or instructor", Value: "student"},
		},
		Action: register,
	}
}

func register(c *cli.Context) error {
	env, err := sessionFrom(c)
	if err != nil {
		return err
	}
	role, ok := auth.ParseRole(c.String("role"))
	if !ok {
		return cli.Exit("role must be student or instructor", 2)
	}
	password, err := passwordFrom(c)
	if err != nil {
		return err
	}
	if len([]rune(password)) < minPasswordLength {
		return cli.Exit(fmt.Sprintf("Password must be at least %d characters.", minPasswordLength), 2)
	}

	env.nav.muted = true
	sess, err := env.store.Register(c.Context, auth.Registration{
		Email:     c.String("email"),
		Password:  password,
		Role:      role,
		FirstName: strings.TrimSpace(c.String("first-name")),
		LastName:  strings.TrimSpace(c.String("last-name")),
	})
	if err != nil {
		return cli.Exit(userMessage(err), 1)
	}
	fmt.Fprintf(stdout(c), "Welcome, %s! Your %s account is ready.\n",
		sess.User.DisplayName(), strings.ToLower(sess.User.Role.Label()))
	return nil
}

// LogoutCommand clears the stored session.
func LogoutCommand() *cli.Command {
	return &cli.Command{
		Name:  "logout",
		Usage: "Sign out and forget the stored session",
		Action: func(c *cli.Context) error {
			env, err := sessionFrom(c)
			if err != nil {
				return err
			}
			env.store.Logout(c.Context)
			fmt.Fprintln(stdout(c), "Signed out.")
			return nil
		},
	}
}

type whoami struct {
	Authenticated bool       `json:"authenticated"`
	User          *auth.User `json:"user,omitempty"`
	SessionFile   string     `json:"sessionFile"`
}

// WhoamiCommand prints the stored user.
func WhoamiCommand() *cli.Command {
	return &cli.Command{
		Name:  "whoami",
		Usage: "Show the signed-in user",
		Action: func(c *cli.Context) error {
			env, err := sessionFrom(c)
			if err != nil {
				return err
			}
			out := whoami{
				Authenticated: env.store.IsAuthenticated(),
				User:          env.store.User(),
				SessionFile:   env.file.Path(),
			}
			if env.output == outputJSON {
				return writeJSON(stdout(c), out)
			}
			if out.User == nil {
				fmt.Fprintln(stdout(c), "Not signed in.")
				return nil
			}
			tw := newTable(stdout(c))
			fmt.Fprintf(tw, "Name:\t%s\n", out.User.DisplayName())
			fmt.Fprintf(tw, "Email:\t%s\n", out.User.Email)
			fmt.Fprintf(tw, "Role:\t%s\n", out.User.Role.Label())
			fmt.Fprintf(tw, "Dashboard:\t%s\n", out.User.Role.DashboardPath())
			return tw.Flush()
		},
	}
}

// passwordFrom prefers the flag and falls back to the first line of stdin.
func passwordFrom(c *cli.Context) (string, error) {
	if p := c.String("password"); p != "" {
		return p, nil
	}
	if c.App.Reader == nil {
		return "", cli.Exit("password is required", 2)
	}
	fmt.Fprint(stderr(c), "Password: ")
	line, _ := bufio.NewReader(c.App.Reader).ReadString('\n')
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return "", cli.Exit("password is required", 2)
	}
	return line, nil
}

// userMessage is the message an AppError carries for people, or the error
// text for anything else. Failures that usually mean a wrong --api get a hint.
func userMessage(err error) string {
	msg := err.Error()
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		msg = appErr.Message
	}
	switch {
	case apperrors.IsTransport(err), apperrors.IsTimeout(err):
		return msg + " Check --api or API_BASE_URL."
	case apperrors.IsMalformed(err):
		return msg + " Is --api pointing at the LearnSphere API?"
	case apperrors.IsUpstream(err) && appErr != nil && appErr.Status > 0:
		return fmt.Sprintf("%s (HTTP %d)", msg, appErr.Status)
	}
	return msg
}
