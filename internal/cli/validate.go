package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	ot "github.com/shiv248/ot-validate"
	"github.com/shiv248/ot-validate/internal/casefile"
	"github.com/shiv248/ot-validate/internal/logging"
)

type validateFlags struct {
	beforeText   string
	beforeCursor int
	afterText    string
	afterCursor  int
	ops          string
}

func newValidateCommand(root *rootFlags) *cobra.Command {
	flags := &validateFlags{}

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate one transformation against a before and after document",
		Long: `Validate one transformation against a before and after document.

Examples:
  otvalidate validate --before-text "" --after-text Howdy --after-cursor 5 --ops '["Howdy"]'
  otvalidate validate --before-text abc --after-text ab --after-cursor 2 --ops '[2, -1]'`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runValidate(cmd, root, flags)
		},
	}

	cmd.Flags().StringVar(&flags.beforeText, "before-text", "", "text of the starting document")
	cmd.Flags().IntVar(&flags.beforeCursor, "before-cursor", 0, "cursor of the starting document")
	cmd.Flags().StringVar(&flags.afterText, "after-text", "", "text of the expected document")
	cmd.Flags().IntVar(&flags.afterCursor, "after-cursor", 0, "cursor of the expected document")
	cmd.Flags().StringVar(&flags.ops, "ops", "[]", "operations in compact JSON form")

	return cmd
}

func runValidate(cmd *cobra.Command, root *rootFlags, flags *validateFlags) error {
	ctx, logger := commandContext(cmd)

	tr, err := ot.ParseTransformation(flags.ops)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}

	res := casefile.Evaluate(ctx, casefile.Case{
		Name:   "validate",
		Before: ot.NewDocument(flags.beforeText, flags.beforeCursor),
		After:  ot.NewDocument(flags.afterText, flags.afterCursor),
		Ops:    tr,
	})

	logger.Debug("validated", logging.FieldOps, tr.Len(), logging.FieldValid, res.Valid)

	out := cmd.OutOrStdout()
	styles := newStyles(root, out)
	if res.Valid {
		fmt.Fprintln(out, styles.Pass.Render("valid"))
		return nil
	}

	fmt.Fprintf(out, "%s %s\n", styles.Fail.Render("invalid"), styles.Reason.Render(res.Err.Error()))
	return fmt.Errorf("%w: %w", ErrCheckFailed, res.Err)
}
