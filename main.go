package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/serkey/cli"
)

func main() {
	// SIGHUP covers the controlling terminal going away.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)

	cmd, err := cli.NewRootCmd().ExecuteContextC(ctx)
	stop()

	os.Exit(cli.Report(cmd, err))
}
