package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/mcncl/gotoon/internal/cli"
)

func main() {
	// Interrupts stop watch mode cleanly
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cli.Execute(cli.NewApp(ctx), os.Args[1:])
	stop()
	os.Exit(code)
}
