package markdown

import (
	"regexp"
	"strings"

	"github.com/patternhq/patlas/pkg/docs"
)

var (
	linkRe     = regexp.MustCompile(`\[([^\]]*)\]\(\s*([^)\s]+)(?:\s+"[^"]*")?\s*\)`)
	schemeRe   = regexp.MustCompile(`(?i)^[a-z][a-z0-9+.-]*:`)
	listItemRe = regexp.MustCompile(`^\s*[-*+]\s+(.*?)\s*$`)
	fenceRe    = regexp.MustCompile("(?ms)^\\s{0,3}```.*?^\\s{0,3}```\\s*$")
)

// relatedHeadings are the section headings treated as related-pattern
// citations, compared after lowercasing and trimming.
var relatedHeadings = map[string]bool{
	"related patterns": true,
	"related":          true,
	"see also":         true,
}

// citationHeadings are the section headings whose external links become
// source citations.
var citationHeadings = map[string]bool{
	"sources":         true,
	"references":      true,
	"further reading": true,
}

// ExtractRefs enumerates the outgoing references and source citations of a
// parsed article. It is a pure function over the article's sections and
// produces a stable ordering: sections in document order, links in order of
// appearance, related names after the links of their section.
//
// Classification of link targets:
//   - any target with a URI scheme (https://..., mailto:...) → external
//     (and a citation when the link sits in a Sources/References section)
//   - leading '#' → anchor
//   - anything else → article
//
// Fenced code inside section bodies is masked before scanning, so snippets
// containing bracket syntax never produce references.
func ExtractRefs(a *docs.Article) ([]docs.OutgoingRef, []docs.SourceCitation) {
	var refs []docs.OutgoingRef
	var citations []docs.SourceCitation

	for _, sec := range a.Sections {
		body := maskFences(sec.Body)
		heading := strings.ToLower(strings.TrimSpace(sec.Heading))
		isCitation := citationHeadings[heading]

		for _, m := range linkRe.FindAllStringSubmatch(body, -1) {
			label, target := m[1], m[2]
			switch {
			case schemeRe.MatchString(target):
				refs = append(refs, docs.OutgoingRef{Kind: docs.RefExternal, Target: target})
				if isCitation {
					citations = append(citations, docs.SourceCitation{Label: label, URL: target})
				}
			case strings.HasPrefix(target, "#"):
				refs = append(refs, docs.OutgoingRef{Kind: docs.RefAnchor, Target: target})
			default:
				refs = append(refs, docs.OutgoingRef{Kind: docs.RefArticle, Target: target})
			}
		}

		if relatedHeadings[heading] {
			for _, name := range relatedNames(body) {
				refs = append(refs, docs.OutgoingRef{Kind: docs.RefRelated, Target: name})
			}
		}
	}

	return refs, citations
}

// relatedNames extracts pattern names from a related-patterns section body.
// List items take precedence; a list-free body falls back to comma-separated
// names on plain lines. A linked item contributes its link text.
func relatedNames(body string) []string {
	var names []string
	sawList := false

	for _, line := range strings.Split(body, "\n") {
		m := listItemRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		sawList = true
		if name := itemName(m[1]); name != "" {
			names = append(names, name)
		}
	}
	if sawList {
		return names
	}

	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		for _, part := range strings.Split(line, ",") {
			if name := itemName(part); name != "" {
				names = append(names, name)
			}
		}
	}
	return names
}

// itemName reduces a list item to a pattern name: the link text when the
// item is a link, the raw text otherwise. Trailing prose after a dash or
// colon ("State — compare the two") is dropped.
func itemName(item string) string {
	if m := linkRe.FindStringSubmatch(item); m != nil {
		return strings.TrimSpace(m[1])
	}
	for _, sep := range []string{" — ", " – ", " - ", ":"} {
		if idx := strings.Index(item, sep); idx >= 0 {
			item = item[:idx]
		}
	}
	return strings.TrimSpace(strings.Trim(item, ".,;"))
}

// maskFences blanks out fenced code regions so the link scanner never
// matches snippet content. Line structure is preserved for list scanning.
func maskFences(body string) string {
	return fenceRe.ReplaceAllStringFunc(body, func(s string) string {
		lines := strings.Split(s, "\n")
		for i := range lines {
			lines[i] = ""
		}
		return strings.Join(lines, "\n")
	})
}
