package emit

import (
	"bytes"
	"fmt"
	"path"
	"regexp"
	"sort"
	"strings"

	"github.com/patternhq/patlas/pkg/catalog"
	"github.com/patternhq/patlas/pkg/docs"
)

var anchorUnsafeRe = regexp.MustCompile(`[^a-z0-9 -]`)

// RenderArticle produces the rendered document for one article:
// category breadcrumb, display title, table of contents (level 2-3
// headings), the body sections in original order, a Related Patterns
// trailer linking the resolved related articles, and a diagnostics
// footer scoped to this article.
//
// The output is plain Markdown. Rendering identical input yields
// byte-identical output.
func RenderArticle(c *catalog.Catalog, a *docs.Article, diags docs.Diagnostics) []byte {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "%s › %s\n\n", a.Category, a.Title)

	// A synthetic title heading is only needed when the source had none;
	// otherwise the title section renders it in place.
	if a.TitleFromFilename || firstHeadingLevel(a) != 1 {
		fmt.Fprintf(&buf, "# %s\n\n", a.Title)
	}

	writeTOC(&buf, a)

	for _, sec := range a.Sections {
		if sec.Heading != "" {
			fmt.Fprintf(&buf, "%s %s\n\n", strings.Repeat("#", sec.Level), sec.Heading)
		}
		if body := strings.TrimRight(sec.Body, "\n"); body != "" {
			buf.WriteString(body)
			buf.WriteString("\n\n")
		}
	}

	writeRelatedTrailer(&buf, c, a)
	writeDiagnosticsFooter(&buf, diags)

	return buf.Bytes()
}

// writeTOC emits a table of contents built from level-2 and level-3
// headings. Articles without such headings get no TOC block.
func writeTOC(buf *bytes.Buffer, a *docs.Article) {
	var entries []docs.Section
	for _, sec := range a.Sections {
		if sec.Heading != "" && (sec.Level == 2 || sec.Level == 3) {
			entries = append(entries, sec)
		}
	}
	if len(entries) == 0 {
		return
	}

	buf.WriteString("**Contents**\n\n")
	for _, sec := range entries {
		indent := strings.Repeat("  ", sec.Level-2)
		fmt.Fprintf(buf, "%s- [%s](#%s)\n", indent, sec.Heading, headingAnchor(sec.Heading))
	}
	buf.WriteString("\n")
}

// writeRelatedTrailer lists the resolved related articles as links to
// their rendered documents, sorted by target title. Unresolved citations
// are omitted here; they surface through diagnostics instead.
func writeRelatedTrailer(buf *bytes.Buffer, c *catalog.Catalog, a *docs.Article) {
	var targets []string
	seen := make(map[string]bool)
	for _, ref := range a.Refs {
		if ref.Kind != docs.RefRelated || ref.ResolvedID == "" || ref.ResolvedID == a.ID {
			continue
		}
		if !seen[ref.ResolvedID] {
			seen[ref.ResolvedID] = true
			targets = append(targets, ref.ResolvedID)
		}
	}
	if len(targets) == 0 {
		return
	}

	type entry struct{ title, href string }
	entries := make([]entry, 0, len(targets))
	for _, id := range targets {
		target, ok := c.Article(id)
		if !ok {
			continue
		}
		entries = append(entries, entry{title: target.Title, href: relativeHref(a.ID, id)})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].title != entries[j].title {
			return entries[i].title < entries[j].title
		}
		return entries[i].href < entries[j].href
	})

	buf.WriteString("---\n\n**Related Patterns**\n\n")
	for _, e := range entries {
		fmt.Fprintf(buf, "- [%s](%s)\n", e.title, e.href)
	}
	buf.WriteString("\n")
}

// writeDiagnosticsFooter emits the per-article severity counts. Clean
// articles get a "no findings" badge so the footer is always present.
func writeDiagnosticsFooter(buf *bytes.Buffer, diags docs.Diagnostics) {
	counts := diags.Counts()
	if len(diags) == 0 {
		buf.WriteString("---\n\n_Diagnostics: none_\n")
		return
	}
	fmt.Fprintf(buf, "---\n\n_Diagnostics: %d error(s), %d warning(s), %d info_\n",
		counts[docs.SeverityError], counts[docs.SeverityWarning], counts[docs.SeverityInfo])
}

// relativeHref computes the link from one rendered article to another.
// Rendered articles live at articles/<id>.md, so the path is relative to
// the source article's directory within that tree.
func relativeHref(fromID, toID string) string {
	fromDir := path.Dir(fromID)
	up := ""
	if fromDir != "." {
		up = strings.Repeat("../", strings.Count(fromDir, "/")+1)
	}
	return up + toID + ".md"
}

// headingAnchor derives a GitHub-style anchor from a heading: lowercased,
// punctuation removed, spaces replaced with dashes.
func headingAnchor(heading string) string {
	h := strings.ToLower(strings.TrimSpace(heading))
	h = anchorUnsafeRe.ReplaceAllString(h, "")
	return strings.ReplaceAll(h, " ", "-")
}

// firstHeadingLevel returns the level of the first section with a heading,
// or 0 when the article has none.
func firstHeadingLevel(a *docs.Article) int {
	for _, s := range a.Sections {
		if s.Heading != "" {
			return s.Level
		}
	}
	return 0
}
