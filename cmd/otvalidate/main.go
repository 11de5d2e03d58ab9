// Package main is the entry point for the otvalidate CLI.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/shiv248/ot-validate/internal/cli"
	"github.com/shiv248/ot-validate/internal/logging"
)

// Build-time variables set via ldflags.
//
//nolint:gochecknoglobals // Version variables must be package-level for ldflags injection
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	info := cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}

	rootCmd := cli.NewRootCommand(info)

	err := rootCmd.ExecuteContext(ctx)
	// A failed check has already been reported on stdout.
	if err != nil && !errors.Is(err, cli.ErrCheckFailed) {
		logging.Default().Error("command failed", logging.FieldError, err)
	}

	return cli.ExitCode(err)
}
