// Package validate applies corpus-level invariants to a finalized catalog.
//
// The validator runs after catalog resolution and only reports findings the
// earlier stages do not already own: the scanner reports unreadable files,
// the parser reports format drift, the catalog reports duplicate IDs and
// unresolved references. Everything is returned as diagnostics; the
// validator itself never fails.
package validate

import (
	"fmt"
	"strings"

	"github.com/patternhq/patlas/pkg/catalog"
	"github.com/patternhq/patlas/pkg/docs"
	"github.com/patternhq/patlas/pkg/errors"
)

// DefaultMaxRelatedChain bounds the length of related-pattern chains
// examined during cycle detection.
const DefaultMaxRelatedChain = 16

// Options configures a validation run.
type Options struct {
	// MaxRelatedChain caps cycle detection depth in the related graph.
	// Zero means DefaultMaxRelatedChain.
	MaxRelatedChain int
}

// Run checks every article in the catalog and the related graph:
//
//   - non-empty display title (warning)
//   - at least one section beyond the title (warning)
//   - recognized language tag on every code block (info)
//   - syntactically well-formed citation URLs (info)
//   - cycles in the related graph (info; cycles are permitted)
//
// Articles are visited in catalog order, so the output is deterministic.
func Run(c *catalog.Catalog, opts Options) docs.Diagnostics {
	maxChain := opts.MaxRelatedChain
	if maxChain <= 0 {
		maxChain = DefaultMaxRelatedChain
	}

	var diags docs.Diagnostics

	for _, a := range c.Articles() {
		diags = append(diags, checkArticle(a)...)
	}

	for _, cycle := range c.Graph().RelatedCycles(maxChain) {
		diags = append(diags, docs.Infof(cycle[0], "", "related-pattern cycle: %s", strings.Join(cycle, " -> ")))
	}

	return diags
}

func checkArticle(a *docs.Article) docs.Diagnostics {
	var diags docs.Diagnostics

	if strings.TrimSpace(a.Title) == "" {
		diags = append(diags, docs.Warnf(a.ID, "", "empty display title"))
	}

	if !hasContentSection(a) {
		diags = append(diags, docs.Warnf(a.ID, "", "no content sections beyond the title"))
	}

	for i, cb := range a.Code {
		if cb.Language == docs.LangUnknown {
			diags = append(diags, docs.Infof(a.ID, fmt.Sprintf("code block %d", i+1), "unknown code language %q", cb.Tag))
		}
	}

	for _, cit := range a.Citations {
		if err := errors.ValidateCitationURL(cit.URL); err != nil {
			diags = append(diags, docs.Infof(a.ID, "", "malformed citation URL %q", cit.URL))
		}
	}

	return diags
}

// hasContentSection reports whether the article has a section other than
// its title section. The title section is the first level-1 section with a
// non-empty heading; a heading-less preamble section does not count as
// content on its own unless another section follows.
func hasContentSection(a *docs.Article) bool {
	titleSeen := false
	for _, s := range a.Sections {
		if !titleSeen && s.Level == 1 && s.Heading != "" {
			titleSeen = true
			continue
		}
		if s.Heading != "" {
			return true
		}
	}
	return false
}
