// Package cli provides the Cobra command structure for otvalidate.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/shiv248/ot-validate/internal/logging"
	"github.com/shiv248/ot-validate/internal/ui/pretty"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

type rootFlags struct {
	debug bool
	color string
}

// NewRootCommand creates the root otvalidate command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:   "otvalidate",
		Short: "Check operational-transformation edits against document snapshots",
		Long: `otvalidate replays a transformation (an ordered list of skip, delete and
insert operations anchored at a cursor) against the document it claims to start
from, and checks that it produces exactly the document it claims to end at.

Operations are written in compact JSON form: a non-negative integer n skips n
bytes, a negative integer -n deletes n bytes, and a string is inserted.
For example [40, -47] skips 40 bytes and deletes the next 47.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if flags.debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	})

	rootCmd.PersistentFlags().BoolVar(&flags.debug, "debug", false, "enable debug logging (traces every replay step)")
	rootCmd.PersistentFlags().StringVar(&flags.color, "color", "auto",
		"colorize output: auto, always, never")

	rootCmd.AddCommand(newCheckCommand(flags))
	rootCmd.AddCommand(newValidateCommand(flags))
	rootCmd.AddCommand(newReplayCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	return rootCmd
}

// commandContext returns the command's context and the logger it carries,
// falling back to the default logger.
func commandContext(cmd *cobra.Command) (context.Context, *log.Logger) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return ctx, logging.FromContext(ctx)
}

func newStyles(flags *rootFlags, w io.Writer) *pretty.Styles {
	return pretty.NewStyles(pretty.ShouldColorize(flags.color, w))
}

// noArgs is cobra.NoArgs reported as a usage error.
func noArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.NoArgs(cmd, args); err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}
	return nil
}
