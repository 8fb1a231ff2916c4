// Package docs defines the core data model for the patlas documentation
// pipeline: source files, parsed articles with their sections, code blocks,
// tables and references, and the diagnostics that every stage reports.
//
// All types here are plain values. Stages communicate by exchanging these
// values together with a list of [Diagnostic]; nothing in this package
// performs I/O.
package docs

import (
	"path"
	"strings"
	"time"
)

// Category is the top-level grouping tag of an article, derived from the
// first path segment under the source root.
type Category string

// Known categories in their fixed emission order. CategoryOther collects
// every article whose path does not start with a recognized segment.
const (
	CategoryBehavioral  Category = "behavioral"
	CategoryStructural  Category = "structural"
	CategoryCreational  Category = "creational"
	CategoryFunctional  Category = "functional"
	CategoryConcurrency Category = "concurrency"
	CategoryPerformance Category = "performance"
	CategoryTesting     Category = "testing"
	CategoryOther       Category = "other"
)

// CategoryOrder is the fixed ordering used by the catalog index. Categories
// without any articles are skipped at emission time.
var CategoryOrder = []Category{
	CategoryBehavioral,
	CategoryStructural,
	CategoryCreational,
	CategoryFunctional,
	CategoryConcurrency,
	CategoryPerformance,
	CategoryTesting,
	CategoryOther,
}

// categoryAliases maps directory names to categories. Lookup happens on the
// lowercased first path segment.
var categoryAliases = map[string]Category{
	"behavioral":  CategoryBehavioral,
	"behavioural": CategoryBehavioral,
	"structural":  CategoryStructural,
	"creational":  CategoryCreational,
	"functional":  CategoryFunctional,
	"fp":          CategoryFunctional,
	"concurrency": CategoryConcurrency,
	"performance": CategoryPerformance,
	"perf":        CategoryPerformance,
	"testing":     CategoryTesting,
	"tests":       CategoryTesting,
}

// normalizeSlashes rewrites backslash separators to forward slashes.
// filepath.ToSlash is a no-op outside Windows, and relative paths can
// arrive with either separator (config globs, test fixtures), so the
// rewrite is unconditional.
func normalizeSlashes(rel string) string {
	return strings.ReplaceAll(rel, `\`, "/")
}

// CategoryFromPath infers the category from a slash-separated path relative
// to the source root. The first segment decides; unmatched segments (and
// files directly under the root) map to CategoryOther.
func CategoryFromPath(rel string) Category {
	rel = normalizeSlashes(rel)
	seg, rest, found := strings.Cut(rel, "/")
	if !found || rest == "" {
		return CategoryOther
	}
	if c, ok := categoryAliases[strings.ToLower(seg)]; ok {
		return c
	}
	return CategoryOther
}

// IDFromPath derives the stable article ID from a path relative to the
// source root: lowercased, extension stripped, slashes normalized.
func IDFromPath(rel string) string {
	rel = normalizeSlashes(rel)
	rel = strings.TrimSuffix(rel, path.Ext(rel))
	return strings.ToLower(rel)
}

// SourceFile describes one candidate file discovered by the scanner.
// It is immutable after the scan; the parser works from Content alone.
type SourceFile struct {
	Path     string    // absolute path on disk
	Rel      string    // slash-separated path relative to the source root
	Category Category  // inferred from the first segment of Rel
	Content  []byte    // raw file bytes
	ModTime  time.Time // filesystem modification time (not emitted)
}

// ID returns the article ID this file will produce.
func (s SourceFile) ID() string { return IDFromPath(s.Rel) }

// SourceFiles implements sort.Interface ordering by relative path. The
// scanner sorts its results so that every downstream stage observes the
// same lexicographic order regardless of filesystem iteration order.
type SourceFiles []SourceFile

func (s SourceFiles) Len() int           { return len(s) }
func (s SourceFiles) Swap(i, j int)      { s[i], s[j] = s[j], s[i] }
func (s SourceFiles) Less(i, j int) bool { return s[i].Rel < s[j].Rel }

// Section is one heading plus the body text collected until the next
// heading. Body keeps the original Markdown untouched.
type Section struct {
	Level   int    // heading level 1-6
	Heading string // heading text without the leading hashes
	Body    string // raw Markdown between this heading and the next
}

// CodeBlock is a fenced code block. Content is the verbatim fence body;
// no syntactic validation is performed on it.
type CodeBlock struct {
	Language Language // normalized language tag
	Tag      string   // raw token following the opening fence
	Content  string
}

// TableBlock is a pipe-delimited Markdown table. Header holds the cells of
// the row above the dash separator; Rows hold the remaining lines.
type TableBlock struct {
	Header []string
	Rows   [][]string
}

// RefKind classifies the target of an outgoing reference.
type RefKind string

const (
	// RefArticle points at another Markdown file under the source root.
	RefArticle RefKind = "article"
	// RefAnchor points at a heading within the same article.
	RefAnchor RefKind = "anchor"
	// RefExternal points at an absolute URL outside the corpus.
	RefExternal RefKind = "external"
	// RefRelated is a pattern-name citation from a "Related Patterns"
	// section, resolved late through the catalog's name index.
	RefRelated RefKind = "related"
)

// OutgoingRef is a link or citation leaving an article. ResolvedID is set
// by the catalog builder; it stays empty for external targets and for
// references that do not resolve.
type OutgoingRef struct {
	Kind       RefKind
	Target     string // raw target text as written in the source
	ResolvedID string // article ID, or "" if unresolved or external
}

// SourceCitation is an external source attribution: a label and a URL.
type SourceCitation struct {
	Label string
	URL   string
}

// Article is the structured representation of one Markdown source file.
// The catalog owns articles; articles own everything below them.
type Article struct {
	ID        string
	Title     string
	Category  Category
	Source    string // slash-separated path relative to the source root
	Aliases   []string
	Sections  []Section
	Code      []CodeBlock
	Tables    []TableBlock
	Refs      []OutgoingRef
	Citations []SourceCitation

	// TitleFromFilename records that no top-level heading was found and
	// the title fell back to the file-name stem.
	TitleFromFilename bool
}

// Languages returns the distinct normalized languages appearing in the
// article's code blocks, in first-seen order.
func (a *Article) Languages() []Language {
	seen := make(map[Language]bool, len(a.Code))
	var out []Language
	for _, cb := range a.Code {
		if !seen[cb.Language] {
			seen[cb.Language] = true
			out = append(out, cb.Language)
		}
	}
	return out
}

// RelatedTargets returns the raw targets of all related-kind references.
func (a *Article) RelatedTargets() []string {
	var out []string
	for _, r := range a.Refs {
		if r.Kind == RefRelated {
			out = append(out, r.Target)
		}
	}
	return out
}
