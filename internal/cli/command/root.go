// Package command defines the learnsphere-cli commands.
//
// The CLI is a single client of the session core: one Session Store backed
// by a file, restored before every command.
package command

import (
	"fmt"
	"io"
	"time"

	"github.com/urfave/cli/v2"
)

// Build information, set via ldflags.
var (
	Version = "dev"
	Commit  = "unknown"
)

const sessionKey = "session"

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:    "learnsphere-cli",
		Usage:   "Sign in to LearnSphere and browse courses from the terminal",
		Version: fmt.Sprintf("%s (commit: %s)", Version, Commit),
		Flags:   globalFlags(),
		Commands: []*cli.Command{
			LoginCommand(),
			RegisterCommand(),
			LogoutCommand(),
			WhoamiCommand(),
			CoursesCommand(),
			EnrolledCommand(),
			EnrollCommand(),
			TeachingCommand(),
			CanAccessCommand(),
		},
		Before: func(c *cli.Context) error {
			env, err := openSession(c)
			if err != nil {
				return err
			}
			c.App.Metadata[sessionKey] = env
			return nil
		},
		Metadata: map[string]any{},
	}
}

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "api",
			Aliases: []string{"a"},
			Usage:   "LearnSphere backend base URL",
			EnvVars: []string{"API_BASE_URL"},
			Value:   "http://localhost:8080",
		},
		&cli.StringFlag{
			Name:    "auth-prefix",
			Usage:   "Path prefix of the login and register endpoints",
			EnvVars: []string{"API_AUTH_PREFIX"},
			Value:   "/api/auth",
		},
		&cli.DurationFlag{
			Name:    "timeout",
			Usage:   "Backend request timeout",
			EnvVars: []string{"API_TIMEOUT"},
			Value:   15 * time.Second,
		},
		&cli.StringFlag{
			Name:    "session-file",
			Usage:   "Where the session is kept (default: user config dir)",
			EnvVars: []string{"LEARNSPHERE_SESSION_FILE"},
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output format: table, json",
			Value:   outputTable,
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"V"},
			Usage:   "Log backend calls to stderr",
		},
	}
}

// sessionFrom returns the environment installed by Before.
func sessionFrom(c *cli.Context) (*clientEnv, error) {
	env, ok := c.App.Metadata[sessionKey].(*clientEnv)
	if !ok || env == nil {
		return nil, cli.Exit("session not initialised", 1)
	}
	return env, nil
}

func stdout(c *cli.Context) io.Writer {
	if c.App.Writer != nil {
		return c.App.Writer
	}
	return io.Discard
}

func stderr(c *cli.Context) io.Writer {
	if c.App.ErrWriter != nil {
		return c.App.ErrWriter
	}
	return io.Discard
}
