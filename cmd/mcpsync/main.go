// Package main is the entry point for the mcpsync CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/thoreinstein/mcpsync/cmd/mcpsync/commands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := commands.HandleError(os.Stderr, commands.Execute(ctx))
	stop()
	os.Exit(code)
}
