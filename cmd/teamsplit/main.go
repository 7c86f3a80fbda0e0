// Command teamsplit splits class rosters into balanced project groups.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/arloliu/teamsplit/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cli.Execute(ctx, os.Args[1:])
	stop()

	os.Exit(code)
}
