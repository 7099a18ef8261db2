// Command learnsphere-cli signs in to LearnSphere and browses courses from
// the terminal. The session is kept in a file between invocations.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/learnsphere/learnsphere-ui/internal/cli/command"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	app := command.App()
	app.Reader = os.Stdin
	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr

	err := app.RunContext(ctx, os.Args)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1) //nolint:forbidigo // CLI must propagate command failure to the shell.
	}
}
