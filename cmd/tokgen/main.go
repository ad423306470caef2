// Command tokgen generates, compares and inspects secure random tokens.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/yndnr/securetoken-go/internal/cli/command"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := command.App().RunContext(ctx, os.Args); err != nil {
		command.PrintError("%v", err)
		stop()
		os.Exit(1)
	}
}
