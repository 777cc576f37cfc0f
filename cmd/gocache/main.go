package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"gocache/internal/cli"
)

func main() {
	// SIGINT/SIGTERM cancels the context; long-running commands stop at the
	// next cancellation check and the metrics server shuts down.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli.Execute(ctx)
}
