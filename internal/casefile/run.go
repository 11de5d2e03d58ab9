package casefile

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"
	"github.com/sanity-io/litter"

	ot "github.com/shiv248/ot-validate"
	"github.com/shiv248/ot-validate/internal/logging"
)

// Result is the outcome of evaluating one case.
type Result struct {
	Case  Case
	Valid bool  // whether the transformation validated
	Err   error // why it did not, nil when Valid
}

// Pass reports whether the validation outcome matches the case's expectation.
func (r Result) Pass() bool {
	return r.Valid == r.Case.Expected()
}

// Summary aggregates results across one or more files.
type Summary struct {
	Total    int
	Passed   int
	Failed   int
	Duration time.Duration
}

// OK reports whether every case passed.
func (s Summary) OK() bool {
	return s.Failed == 0
}

// Add records r in the summary.
func (s *Summary) Add(r Result) {
	s.Total++
	if r.Pass() {
		s.Passed++
	} else {
		s.Failed++
	}
}

//nolint:gochecknoglobals // dump options are read-only
var dumpOptions = litter.Options{
	Compact:           true,
	HidePrivateFields: false,
	StripPackageNames: true,
}

// Evaluate validates a single case. With debug logging enabled on the
// context's logger, every replay step is logged.
func Evaluate(ctx context.Context, c Case) Result {
	logger := logging.FromContext(ctx).With(logging.FieldCase, c.Name)

	var trace func(ot.Step)
	if logger.GetLevel() <= log.DebugLevel {
		trace = func(s ot.Step) {
			logger.Debug("step",
				logging.FieldStep, s.Index,
				logging.FieldOp, s.Op.String(),
				logging.FieldCursor, s.Doc.Cursor,
				logging.FieldText, s.Doc.Text,
			)
		}
	}

	got, err := ot.ReplayFunc(c.Before, c.Ops, trace)
	if err == nil && !got.Equal(c.After) {
		err = &ot.MismatchError{Got: got, Want: c.After}
	}

	var oob *ot.OutOfBoundsError
	if trace != nil && errors.As(err, &oob) {
		logger.Debug("out of bounds", logging.FieldError, dumpOptions.Sdump(oob))
	}
	if trace != nil {
		logger.Debug("evaluated", logging.FieldExpect, c.Expected(), logging.FieldValid, err == nil)
	}

	return Result{Case: c, Valid: err == nil, Err: err}
}

// EvaluateFile validates every case in f, in order.
func EvaluateFile(ctx context.Context, f *File) []Result {
	results := make([]Result, 0, len(f.Cases))
	for _, c := range f.Cases {
		if ctx.Err() != nil {
			break
		}
		results = append(results, Evaluate(ctx, c))
	}
	return results
}
