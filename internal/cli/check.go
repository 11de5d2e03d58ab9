package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/shiv248/ot-validate/internal/casefile"
	"github.com/shiv248/ot-validate/internal/logging"
	"github.com/shiv248/ot-validate/internal/ui/pretty"
)

func newCheckCommand(root *rootFlags) *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "check FILE...",
		Short: "Run validation cases from YAML or JSON case files",
		Long:  checkLongDescription,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) == 0 {
				return fmt.Errorf("%w: at least one case file is required", ErrUsage)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, root, verbose)
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "list passing cases too")

	return cmd
}

const checkLongDescription = `Run validation cases from YAML or JSON case files.

Each case names a before document, an after document, the operations to
replay, and whether the transformation is expected to be valid:

  cases:
    - name: trim tail
      before: {text: "Repl.it uses operational transformations to ...", cursor: 0}
      after: {text: "Repl.it uses operational transformations.", cursor: 40}
      ops: [40, -47]
      expect: true

The command fails when any case's outcome differs from its expectation.`

func runCheck(cmd *cobra.Command, paths []string, root *rootFlags, verbose bool) error {
	ctx, logger := commandContext(cmd)
	out := cmd.OutOrStdout()
	renderer := pretty.NewResultRenderer(out, newStyles(root, out), verbose)

	// Load everything first so a broken file is reported before any output.
	files := make([]*casefile.File, 0, len(paths))
	for _, path := range paths {
		f, err := casefile.Load(path)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrCaseFile, err)
		}
		logger.Debug("loaded case file", logging.FieldPath, path, logging.FieldCases, len(f.Cases))
		files = append(files, f)
	}

	start := time.Now()
	var summary casefile.Summary

	for _, f := range files {
		renderer.File(f.Path)
		for _, res := range casefile.EvaluateFile(ctx, f) {
			summary.Add(res)
			renderer.Result(res)
		}
	}
	summary.Duration = time.Since(start)

	renderer.Summary(summary)

	logger.Debug("check finished",
		logging.FieldFiles, len(files),
		logging.FieldCases, summary.Total,
		logging.FieldPassed, summary.Passed,
		logging.FieldFailed, summary.Failed,
		logging.FieldDuration, summary.Duration,
	)

	if err := ctx.Err(); err != nil {
		return err
	}
	if !summary.OK() {
		return fmt.Errorf("%w: %d of %d cases", ErrCheckFailed, summary.Failed, summary.Total)
	}
	return nil
}
