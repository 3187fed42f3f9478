package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/fang"

	"github.com/five82/multiterm/internal/cli"
)

// version is set at build time.
var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	err := fang.Execute(ctx, cli.NewRootCmd(),
		fang.WithVersion(version),
		fang.WithErrorHandler(cli.ErrorHandler),
	)
	if err != nil {
		return 1
	}
	return 0
}
