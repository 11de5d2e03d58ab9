package pretty

import (
	"fmt"
	"io"
	"strings"

	"github.com/shiv248/ot-validate/internal/casefile"
)

// ResultRenderer writes case results and summaries.
type ResultRenderer struct {
	w       io.Writer
	styles  *Styles
	verbose bool
}

// NewResultRenderer creates a renderer writing to w. When verbose is set,
// passing cases are listed too; otherwise only failures are.
func NewResultRenderer(w io.Writer, styles *Styles, verbose bool) *ResultRenderer {
	return &ResultRenderer{w: w, styles: styles, verbose: verbose}
}

// File writes the header line for a case file.
func (r *ResultRenderer) File(path string) {
	fmt.Fprintln(r.w, r.styles.FilePath.Render(path))
}

// Result writes one line for a case result, plus the reason it was rejected.
func (r *ResultRenderer) Result(res casefile.Result) {
	if res.Pass() && !r.verbose {
		return
	}

	var b strings.Builder
	b.WriteString("  ")
	if res.Pass() {
		b.WriteString(r.styles.Pass.Render("PASS"))
	} else {
		b.WriteString(r.styles.Fail.Render("FAIL"))
	}
	b.WriteString(" ")
	b.WriteString(r.styles.CaseName.Render(res.Case.Name))

	verdict := "valid"
	if !res.Valid {
		verdict = "invalid"
	}
	b.WriteString(r.styles.Dim.Render(fmt.Sprintf(" (%s, expected %s)", verdict, expectation(res.Case.Expected()))))

	if res.Err != nil {
		b.WriteString("\n      ")
		b.WriteString(r.styles.Reason.Render(res.Err.Error()))
	}

	fmt.Fprintln(r.w, b.String())
}

// Summary writes the totals line.
func (r *ResultRenderer) Summary(s casefile.Summary) {
	status := r.styles.Pass.Render("ok")
	if !s.OK() {
		status = r.styles.Fail.Render("FAILED")
	}

	fmt.Fprintf(r.w, "\n%s %s  %s %s  %s %s  %s\n",
		r.styles.SummaryTitle.Render("cases:"), r.styles.SummaryValue.Render(fmt.Sprint(s.Total)),
		r.styles.SummaryTitle.Render("passed:"), r.styles.SummaryValue.Render(fmt.Sprint(s.Passed)),
		r.styles.SummaryTitle.Render("failed:"), r.styles.SummaryValue.Render(fmt.Sprint(s.Failed)),
		status,
	)
}

func expectation(valid bool) string {
	if valid {
		return "valid"
	}
	return "invalid"
}
