package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Belphemur/tlsubs/internal/cli"
)

func main() {
	// Cancelling the context aborts the current browser step and still
	// closes the browser on the way out.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cli.Execute(ctx, os.Args[1:], cli.Deps{})
	stop()
	os.Exit(code)
}
