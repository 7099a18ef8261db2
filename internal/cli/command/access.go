package command

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/learnsphere/learnsphere-ui/internal/guard"
)

// CanAccessCommand evaluates the route guard for the stored session.
// Exit status is 0 when access is allowed and 1 otherwise.
func CanAccessCommand() *cli.Command {
	return &cli.Command{
		Name:      "can-access",
		Usage:     "Check whether the stored session may open a page",
		ArgsUsage: "PATH",
		Action: func(c *cli.Context) error {
			env, err := sessionFrom(c)
			if err != nil {
				return err
			}
			path := c.Args().First()
			if path == "" {
				return cli.Exit("usage: learnsphere-cli can-access PATH", 2)
			}

			route, decision := guard.Evaluate(env.store.Current(), path)
			if env.output == outputJSON {
				if err := writeJSON(stdout(c), map[string]any{
					"path":      path,
					"protected": route.Protected,
					"role":      route.Role,
					"decision":  decision.String(),
					"redirect":  decision.Redirect(),
				}); err != nil {
					return err
				}
			} else if decision == guard.Allow {
				fmt.Fprintf(stdout(c), "allow %s\n", path)
			} else {
				fmt.Fprintf(stdout(c), "deny %s: redirect to %s\n", path, decision.Redirect())
			}

			if decision != guard.Allow {
				return cli.Exit("", 1)
			}
			return nil
		},
	}
}
