package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	ot "github.com/shiv248/ot-validate"
	"github.com/shiv248/ot-validate/internal/logging"
)

type replayFlags struct {
	text   string
	cursor int
	ops    string
}

func newReplayCommand() *cobra.Command {
	flags := &replayFlags{}

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Apply a transformation to a document and print the result",
		Long: `Apply a transformation to a document and print the resulting document as JSON.

Example:
  otvalidate replay --text "hello world" --ops '[6, -5, "there"]'`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runReplay(cmd, flags)
		},
	}

	cmd.Flags().StringVar(&flags.text, "text", "", "text of the starting document")
	cmd.Flags().IntVar(&flags.cursor, "cursor", 0, "cursor of the starting document")
	cmd.Flags().StringVar(&flags.ops, "ops", "[]", "operations in compact JSON form")

	return cmd
}

func runReplay(cmd *cobra.Command, flags *replayFlags) error {
	_, logger := commandContext(cmd)

	tr, err := ot.ParseTransformation(flags.ops)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}

	doc, err := ot.ReplayFunc(ot.NewDocument(flags.text, flags.cursor), tr, func(s ot.Step) {
		logger.Debug("step",
			logging.FieldStep, s.Index,
			logging.FieldOp, s.Op.String(),
			logging.FieldCursor, s.Doc.Cursor,
		)
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCheckFailed, err)
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	return nil
}
