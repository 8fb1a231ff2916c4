package docs

import (
	"fmt"
	"sort"
)

// Severity grades a diagnostic finding.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// severityRank orders severities for sorting and summary output.
var severityRank = map[Severity]int{
	SeverityError:   0,
	SeverityWarning: 1,
	SeverityInfo:    2,
}

// Diagnostic is a structured finding from any pipeline stage. Diagnostics
// are values, not errors: stages collect them and the pipeline merges and
// reports them at the end of the run.
type Diagnostic struct {
	Severity  Severity `json:"severity"`
	ArticleID string   `json:"article_id,omitempty"` // empty for corpus-level findings
	Location  string   `json:"location,omitempty"`   // hint such as "line 12" or a section heading
	Message   string   `json:"message"`
}

func (d Diagnostic) String() string {
	switch {
	case d.ArticleID == "":
		return fmt.Sprintf("%s: %s", d.Severity, d.Message)
	case d.Location == "":
		return fmt.Sprintf("%s: %s: %s", d.Severity, d.ArticleID, d.Message)
	default:
		return fmt.Sprintf("%s: %s (%s): %s", d.Severity, d.ArticleID, d.Location, d.Message)
	}
}

// Errorf builds an error diagnostic.
func Errorf(articleID, location, format string, args ...any) Diagnostic {
	return Diagnostic{Severity: SeverityError, ArticleID: articleID, Location: location, Message: fmt.Sprintf(format, args...)}
}

// Warnf builds a warning diagnostic.
func Warnf(articleID, location, format string, args ...any) Diagnostic {
	return Diagnostic{Severity: SeverityWarning, ArticleID: articleID, Location: location, Message: fmt.Sprintf(format, args...)}
}

// Infof builds an info diagnostic.
func Infof(articleID, location, format string, args ...any) Diagnostic {
	return Diagnostic{Severity: SeverityInfo, ArticleID: articleID, Location: location, Message: fmt.Sprintf(format, args...)}
}

// Diagnostics is a sortable collection of findings.
type Diagnostics []Diagnostic

// Sort orders diagnostics by severity (errors first), then article ID,
// then location, then message. The ordering is total, so sorted output
// is deterministic for a given input set.
func (ds Diagnostics) Sort() {
	sort.SliceStable(ds, func(i, j int) bool {
		a, b := ds[i], ds[j]
		if severityRank[a.Severity] != severityRank[b.Severity] {
			return severityRank[a.Severity] < severityRank[b.Severity]
		}
		if a.ArticleID != b.ArticleID {
			return a.ArticleID < b.ArticleID
		}
		if a.Location != b.Location {
			return a.Location < b.Location
		}
		return a.Message < b.Message
	})
}

// Counts returns the number of diagnostics per severity.
func (ds Diagnostics) Counts() map[Severity]int {
	counts := make(map[Severity]int, 3)
	for _, d := range ds {
		counts[d.Severity]++
	}
	return counts
}

// HasErrors reports whether at least one error-severity diagnostic exists.
// With strict set, warnings count as errors (exit-code promotion only; the
// stored severities are never rewritten).
func (ds Diagnostics) HasErrors(strict bool) bool {
	for _, d := range ds {
		if d.Severity == SeverityError {
			return true
		}
		if strict && d.Severity == SeverityWarning {
			return true
		}
	}
	return false
}

// ForArticle returns the diagnostics scoped to one article ID.
func (ds Diagnostics) ForArticle(id string) Diagnostics {
	var out Diagnostics
	for _, d := range ds {
		if d.ArticleID == id {
			out = append(out, d)
		}
	}
	return out
}

// WithoutInfo filters out info-severity diagnostics (the --quiet view).
func (ds Diagnostics) WithoutInfo() Diagnostics {
	out := make(Diagnostics, 0, len(ds))
	for _, d := range ds {
		if d.Severity != SeverityInfo {
			out = append(out, d)
		}
	}
	return out
}
