// Package markdown parses documentation source files into articles.
//
// The parser handles the conventional subset of Markdown the corpus uses:
// ATX headings, fenced code blocks, pipe tables, inline links, and an
// optional YAML front-matter block. It is deliberately permissive:
// malformed constructs degrade to plain text with a diagnostic and never
// abort a run. Section bodies retain the original Markdown untouched;
// code blocks and tables are additionally lifted into structured form.
package markdown

import (
	"fmt"
	"path"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/patternhq/patlas/pkg/docs"
)

var (
	headingRe   = regexp.MustCompile(`^(#{1,6})\s+(.*?)\s*$`)
	fenceOpenRe = regexp.MustCompile("^\\s{0,3}```([^`]*)$")
	fenceEndRe  = regexp.MustCompile("^\\s{0,3}```\\s*$")
	separatorRe = regexp.MustCompile(`^:?-+:?$`)
)

// frontMatter is the subset of YAML front matter the parser understands.
// Unknown keys are ignored.
type frontMatter struct {
	Title   string   `yaml:"title"`
	Aliases []string `yaml:"aliases"`
}

// Parse converts one source file into an article. Findings (fallback title,
// unknown fence language, unclosed fence, malformed table or front matter)
// are returned as diagnostics; Parse itself never fails.
//
// Reference extraction is a separate pass, see [ExtractRefs]. Parse leaves
// Refs and Citations empty.
func Parse(sf docs.SourceFile) (*docs.Article, docs.Diagnostics) {
	art := &docs.Article{
		ID:       sf.ID(),
		Category: sf.Category,
		Source:   sf.Rel,
	}
	var diags docs.Diagnostics

	body := string(sf.Content)
	fm, rest, err := splitFrontMatter(body)
	if err != nil {
		diags = append(diags, docs.Infof(art.ID, "line 1", "malformed front matter kept as text: %v", err))
	} else {
		body = rest
	}

	sections, blocks, tables, scanDiags := scanBody(art.ID, body)
	art.Sections = sections
	art.Code = blocks
	art.Tables = tables
	diags = append(diags, scanDiags...)

	art.Aliases = fm.Aliases
	art.Title = fm.Title
	if art.Title == "" {
		art.Title = firstTitle(sections)
	}
	if art.Title == "" {
		art.Title = stem(sf.Rel)
		art.TitleFromFilename = true
		diags = append(diags, docs.Warnf(art.ID, "", "no top-level heading; title falls back to %q", art.Title))
	}

	if len(sections) == 0 {
		diags = append(diags, docs.Errorf(art.ID, "", "file yields no sections"))
	}

	return art, diags
}

// splitFrontMatter separates a leading YAML block delimited by --- lines.
// Files without the opening delimiter pass through unchanged. A block whose
// YAML fails to parse is reported via the error; callers keep the full
// content as body in that case.
func splitFrontMatter(content string) (frontMatter, string, error) {
	var fm frontMatter
	const delim = "---"

	if !strings.HasPrefix(content, delim+"\n") && !strings.HasPrefix(content, delim+"\r\n") {
		return fm, content, nil
	}

	rest := content[len(delim):]
	rest = strings.TrimLeft(rest, "\r\n")
	idx := strings.Index(rest, "\n"+delim)
	if idx < 0 {
		return fm, content, fmt.Errorf("no closing front-matter delimiter")
	}

	block := rest[:idx]
	after := rest[idx+1+len(delim):]
	after = strings.TrimLeft(after, "\r\n")

	if err := yaml.Unmarshal([]byte(block), &fm); err != nil {
		return frontMatter{}, content, fmt.Errorf("parse front matter: %w", err)
	}
	return fm, after, nil
}

// scanBody walks the body line by line, splitting it into sections at each
// heading and lifting fenced code blocks and pipe tables into structured
// form. Section bodies keep every original line, fences and tables included.
func scanBody(articleID, body string) ([]docs.Section, []docs.CodeBlock, []docs.TableBlock, docs.Diagnostics) {
	var (
		sections []docs.Section
		blocks   []docs.CodeBlock
		tables   []docs.TableBlock
		diags    docs.Diagnostics
	)

	lines := strings.Split(body, "\n")

	curLevel := 0
	curHeading := ""
	var curBody []string

	flush := func() {
		text := strings.TrimRight(strings.Join(curBody, "\n"), "\n")
		curBody = nil
		if curLevel == 0 && curHeading == "" && strings.TrimSpace(text) == "" {
			return // empty preamble
		}
		level := curLevel
		if level == 0 {
			level = 1
		}
		sections = append(sections, docs.Section{Level: level, Heading: curHeading, Body: text})
	}

	inFence := false
	fenceTag := ""
	fenceLine := 0
	var fenceBody []string

	for i := 0; i < len(lines); i++ {
		line := lines[i]

		if inFence {
			curBody = append(curBody, line)
			if fenceEndRe.MatchString(line) {
				// Unknown tags normalize to LangUnknown here; the
				// validator reports them.
				lang, _ := docs.NormalizeLanguage(fenceTag)
				blocks = append(blocks, docs.CodeBlock{
					Language: lang,
					Tag:      fenceTag,
					Content:  strings.Join(fenceBody, "\n"),
				})
				inFence = false
				fenceBody = nil
			} else {
				fenceBody = append(fenceBody, line)
			}
			continue
		}

		if m := fenceOpenRe.FindStringSubmatch(line); m != nil {
			curBody = append(curBody, line)
			inFence = true
			fenceLine = i + 1
			// CommonMark allows a multi-token info string; only the
			// first token names the language.
			fenceTag = ""
			if fields := strings.Fields(m[1]); len(fields) > 0 {
				fenceTag = fields[0]
				if len(fields) > 1 {
					diags = append(diags, docs.Infof(articleID, fmt.Sprintf("line %d", fenceLine), "code fence info string %q truncated to %q", strings.TrimSpace(m[1]), fenceTag))
				}
			}
			continue
		}

		if m := headingRe.FindStringSubmatch(line); m != nil {
			flush()
			curLevel = len(m[1])
			curHeading = m[2]
			continue
		}

		if header, ok := tableRow(line); ok && i+1 < len(lines) {
			if sep, ok2 := tableRow(lines[i+1]); ok2 {
				if isSeparator(sep) {
					tbl := docs.TableBlock{Header: header}
					curBody = append(curBody, line, lines[i+1])
					j := i + 2
					for ; j < len(lines); j++ {
						row, rok := tableRow(lines[j])
						if !rok {
							break
						}
						tbl.Rows = append(tbl.Rows, row)
						curBody = append(curBody, lines[j])
					}
					tables = append(tables, tbl)
					i = j - 1
					continue
				}
				// a run of pipe rows without a separator is not a table
				diags = append(diags, docs.Infof(articleID, fmt.Sprintf("line %d", i+1), "table without separator row kept as text"))
				for ; i < len(lines); i++ {
					if _, rok := tableRow(lines[i]); !rok {
						break
					}
					curBody = append(curBody, lines[i])
				}
				i--
				continue
			}
		}

		curBody = append(curBody, line)
	}

	if inFence {
		diags = append(diags, docs.Infof(articleID, fmt.Sprintf("line %d", fenceLine), "unclosed code fence; remainder kept as text"))
	}
	flush()

	return sections, blocks, tables, diags
}

// tableRow splits a pipe-delimited row into trimmed cells. The line must
// start with a pipe (after at most 3 spaces of indentation); boundary pipes
// are dropped.
func tableRow(line string) ([]string, bool) {
	trimmed := strings.TrimLeft(line, " ")
	if len(line)-len(trimmed) > 3 || !strings.HasPrefix(trimmed, "|") {
		return nil, false
	}
	trimmed = strings.TrimSuffix(strings.TrimPrefix(trimmed, "|"), "|")
	parts := strings.Split(trimmed, "|")
	cells := make([]string, len(parts))
	for i, p := range parts {
		cells[i] = strings.TrimSpace(p)
	}
	return cells, true
}

// isSeparator reports whether every cell is a dash run (with optional
// alignment colons), i.e. the row below a table header.
func isSeparator(cells []string) bool {
	if len(cells) == 0 {
		return false
	}
	for _, c := range cells {
		if !separatorRe.MatchString(c) {
			return false
		}
	}
	return true
}

// firstTitle returns the heading of the first level-1 section, if any.
func firstTitle(sections []docs.Section) string {
	for _, s := range sections {
		if s.Level == 1 && s.Heading != "" {
			return s.Heading
		}
	}
	return ""
}

// stem returns the file-name stem of a relative path ("behavioral/observer.md"
// → "observer").
func stem(rel string) string {
	base := path.Base(rel)
	return strings.TrimSuffix(base, path.Ext(base))
}
