package casefile_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ot "github.com/shiv248/ot-validate"
	"github.com/shiv248/ot-validate/internal/casefile"
	"github.com/shiv248/ot-validate/internal/logging"
)

const testdataDir = "../../testdata"

func TestLoadYAML(t *testing.T) {
	t.Parallel()

	f, err := casefile.Load(filepath.Join(testdataDir, "scenarios.yaml"))
	require.NoError(t, err)
	require.Len(t, f.Cases, 5)

	assert.Equal(t, "skip then delete tail", f.Cases[0].Name)
	assert.Equal(t, []ot.Operation{ot.Skip{N: 40}, ot.Delete{N: 47}}, f.Cases[0].Ops.Ops)
	assert.True(t, f.Cases[0].Expected())
	assert.False(t, f.Cases[1].Expected())
	assert.Equal(t, []ot.Operation{ot.Skip{N: 40}, ot.Delete{N: 47}, ot.Skip{N: 2}}, f.Cases[2].Ops.Ops)
	assert.Equal(t, ot.NewDocument("Howdy", 5), f.Cases[3].After)
}

func TestLoadJSON(t *testing.T) {
	t.Parallel()

	f, err := casefile.Load(filepath.Join(testdataDir, "scenarios.json"))
	require.NoError(t, err)
	require.Len(t, f.Cases, 2)

	assert.Equal(t, []ot.Operation{ot.Insert{Text: "Howdy"}}, f.Cases[0].Ops.Ops)
	assert.Equal(t, "case-2", f.Cases[1].Name)
	assert.Empty(t, f.Cases[1].Ops.Ops)
}

func TestLoadErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
		return path
	}

	t.Run("unsupported extension", func(t *testing.T) {
		_, err := casefile.Load(write("cases.toml", "cases = []"))
		assert.ErrorIs(t, err, casefile.ErrUnsupportedFormat)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := casefile.Load(filepath.Join(dir, "missing.yaml"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("empty file", func(t *testing.T) {
		_, err := casefile.Load(write("empty.yaml", ""))
		assert.ErrorIs(t, err, casefile.ErrNoCases)
	})

	t.Run("duplicate names", func(t *testing.T) {
		_, err := casefile.Load(write("dup.yml", `
cases:
  - name: a
    before: {text: "", cursor: 0}
    after: {text: "", cursor: 0}
    ops: []
  - name: a
    before: {text: "", cursor: 0}
    after: {text: "", cursor: 0}
    ops: []
`))
		assert.ErrorIs(t, err, casefile.ErrDuplicateCase)
	})

	t.Run("unknown field", func(t *testing.T) {
		_, err := casefile.Load(write("unknown.yaml", `
cases:
  - name: a
    befor: {text: "", cursor: 0}
`))
		assert.Error(t, err)
	})

	t.Run("bad ops", func(t *testing.T) {
		_, err := casefile.Load(write("bad.json", `{"cases":[{"ops":[1.5]}]}`))
		assert.ErrorIs(t, err, ot.ErrInvalidEncoding)
	})
}

func TestEvaluate(t *testing.T) {
	t.Parallel()

	f, err := casefile.Load(filepath.Join(testdataDir, "scenarios.yaml"))
	require.NoError(t, err)

	results := casefile.EvaluateFile(context.Background(), f)
	require.Len(t, results, len(f.Cases))

	var summary casefile.Summary
	for _, r := range results {
		assert.True(t, r.Pass(), "case %q: valid=%v err=%v", r.Case.Name, r.Valid, r.Err)
		summary.Add(r)
	}
	assert.True(t, summary.OK())
	assert.Equal(t, 5, summary.Passed)

	assert.ErrorIs(t, results[1].Err, ot.ErrOutOfBounds)
	assert.ErrorIs(t, results[2].Err, ot.ErrOutOfBounds)
	assert.NoError(t, results[4].Err)
}

func TestEvaluateMismatch(t *testing.T) {
	t.Parallel()

	f, err := casefile.Load(filepath.Join(testdataDir, "failing.yaml"))
	require.NoError(t, err)

	r := casefile.Evaluate(context.Background(), f.Cases[0])
	assert.True(t, r.Valid)
	assert.False(t, r.Pass())

	r = casefile.Evaluate(context.Background(), casefile.Case{
		Name:   "cursor off by one",
		Before: ot.NewDocument("abc", 0),
		After:  ot.NewDocument("abc", 2),
		Ops:    ot.NewTransformation(ot.Skip{N: 3}),
	})
	assert.False(t, r.Valid)
	assert.ErrorIs(t, r.Err, ot.ErrStateMismatch)
}

func TestEvaluateTracesSteps(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	ctx := logging.WithLogger(context.Background(), logging.NewWithWriter(&buf, "debug"))

	r := casefile.Evaluate(ctx, casefile.Case{
		Name:   "overrun",
		Before: ot.NewDocument("ab", 0),
		After:  ot.NewDocument("ab", 2),
		Ops:    ot.NewTransformation(ot.Skip{N: 1}, ot.Skip{N: 2}),
	})
	require.False(t, r.Valid)

	out := buf.String()
	assert.Contains(t, out, "step")
	assert.Contains(t, out, "Skip(1)")
	assert.Contains(t, out, "out of bounds")
	assert.Contains(t, out, "case=overrun")
	assert.Contains(t, out, "expect=true")
	assert.Contains(t, out, "valid=false")
}

func TestEvaluateFileStopsOnCancel(t *testing.T) {
	t.Parallel()

	f, err := casefile.Load(filepath.Join(testdataDir, "scenarios.yaml"))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Empty(t, casefile.EvaluateFile(ctx, f))
}
