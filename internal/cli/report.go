package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/patternhq/patlas/pkg/docs"
	"github.com/patternhq/patlas/pkg/pipeline"
)

// report is the machine-readable run summary printed by --json.
// It goes to stdout only; emitted files never contain the run ID.
type report struct {
	RunID       string            `json:"run_id"`
	Articles    int               `json:"articles"`
	Edges       int               `json:"edges"`
	Errors      int               `json:"errors"`
	Warnings    int               `json:"warnings"`
	Infos       int               `json:"infos"`
	Diagnostics []docs.Diagnostic `json:"diagnostics,omitempty"`
	ExitCode    int               `json:"exit_code"`
}

// printJSON writes the JSON run report to w.
func printJSON(w io.Writer, result *pipeline.Result, strict, quiet bool) error {
	diags := result.Diagnostics
	if quiet {
		diags = diags.WithoutInfo()
	}
	counts := result.Diagnostics.Counts()
	rep := report{
		RunID:       result.RunID,
		Articles:    result.Stats.ArticleCount,
		Edges:       result.Stats.EdgeCount,
		Errors:      counts[docs.SeverityError],
		Warnings:    counts[docs.SeverityWarning],
		Infos:       counts[docs.SeverityInfo],
		Diagnostics: diags,
		ExitCode:    pipeline.ExitCode(result, strict),
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}

// printSummary writes the human-readable diagnostics summary: findings
// grouped by severity (errors first, then warnings, then info), each group
// already ordered by article ID, followed by a one-line totals footer.
func printSummary(w io.Writer, result *pipeline.Result, quiet bool) {
	diags := result.Diagnostics
	if quiet {
		diags = diags.WithoutInfo()
	}

	var current docs.Severity
	for _, d := range diags {
		if d.Severity != current {
			current = d.Severity
			fmt.Fprintf(w, "%s\n", severityStyle(current).Render(string(current)+":"))
		}
		fmt.Fprintf(w, "  %s\n", summaryLine(d))
	}
	if len(diags) > 0 {
		fmt.Fprintln(w)
	}

	counts := result.Diagnostics.Counts()
	totals := fmt.Sprintf("%d article(s), %d edge(s) · %d error(s), %d warning(s), %d info",
		result.Stats.ArticleCount, result.Stats.EdgeCount,
		counts[docs.SeverityError], counts[docs.SeverityWarning], counts[docs.SeverityInfo])
	if counts[docs.SeverityError] == 0 {
		fmt.Fprintln(w, styleSuccess.Render(totals))
	} else {
		fmt.Fprintln(w, styleError.Render(totals))
	}
}

// summaryLine formats one diagnostic without repeating its severity.
func summaryLine(d docs.Diagnostic) string {
	switch {
	case d.ArticleID == "":
		return styleValue.Render(d.Message)
	case d.Location == "":
		return fmt.Sprintf("%s %s", styleTitle.Render(d.ArticleID+":"), styleValue.Render(d.Message))
	default:
		return fmt.Sprintf("%s %s %s", styleTitle.Render(d.ArticleID+":"),
			styleDim.Render("("+d.Location+")"), styleValue.Render(d.Message))
	}
}
