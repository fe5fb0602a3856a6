// Command pgpick runs PostgreSQL queries through psql and browses the
// results in the terminal.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/pgpick/pgpick/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.Execute(ctx); err != nil {
		os.Exit(1)
	}
}
