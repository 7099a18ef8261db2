package command

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http/cookiejar"

	"github.com/urfave/cli/v2"
	"golang.org/x/net/publicsuffix"

	"github.com/learnsphere/learnsphere-ui/config"
	"github.com/learnsphere/learnsphere-ui/internal/adapters/filestore"
	"github.com/learnsphere/learnsphere-ui/internal/apiclient"
	"github.com/learnsphere/learnsphere-ui/internal/session"
)

// clientEnv is everything a command needs: the restored store and the client
// whose bearer header it drives.
type clientEnv struct {
	store  *session.Store
	api    *apiclient.Client
	file   *filestore.Store
	nav    *terminalNavigator
	output string
}

// terminalNavigator turns a forced navigation into a hint on stderr.
// While muted, as during login, the navigation is recorded but not printed.
type terminalNavigator struct {
	w      io.Writer
	target string
	muted  bool
}

func (n *terminalNavigator) Navigate(_ context.Context, path string) {
	if n.target != "" {
		return
	}
	n.target = path
	if n.muted {
		return
	}
	if path == session.LoginPath {
		fmt.Fprintln(n.w, "Your session has expired. Run `learnsphere-cli login` to sign in again.")
		return
	}
	fmt.Fprintf(n.w, "redirected to %s\n", path)
}

func openSession(c *cli.Context) (*clientEnv, error) {
	path := c.String("session-file")
	if path == "" {
		p, err := filestore.DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	apiCfg := config.APIConfig{
		BaseURL:    c.String("api"),
		AuthPrefix: c.String("auth-prefix"),
		Timeout:    c.Duration("timeout"),
	}
	apiCfg.Sanitize()
	opts := apiclient.OptionsFromConfig(apiCfg)
	opts.UserAgent = "learnsphere-cli/" + Version
	if err := opts.Validate(); err != nil {
		return nil, cli.Exit(err.Error(), 2)
	}

	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("cookie jar: %w", err)
	}
	opts.Jar = jar

	level := slog.LevelWarn
	if c.Bool("verbose") {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr(c), &slog.HandlerOptions{Level: level}))
	opts.Logger = logger

	file := filestore.New(path)
	creds := apiclient.NewCredentials()
	api := apiclient.New(opts, creds)
	nav := &terminalNavigator{w: stderr(c)}

	store := session.New(session.Options{
		Storage:   file,
		API:       api,
		Bearer:    creds,
		Navigator: nav,
		Logger:    logger,
	})
	api.OnUnauthorized(store.HandleUnauthorized)
	store.Restore(c.Context)

	return &clientEnv{
		store:  store,
		api:    api,
		file:   file,
		nav:    nav,
		output: c.String("output"),
	}, nil
}
