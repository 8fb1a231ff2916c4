// Package emit writes the browsable output of a pipeline run: three
// machine-readable indexes, one rendered document per article, and an
// optional DOT/SVG export of the pattern graph.
//
// Everything emitted here is deterministic: slices are pre-sorted, no maps
// reach the encoder, and no timestamps or any other wall-clock data appear
// in the output. Two runs over identical input produce byte-identical trees.
package emit

import (
	"bytes"
	"encoding/json"
	"sort"

	"github.com/patternhq/patlas/pkg/catalog"
	"github.com/patternhq/patlas/pkg/docs"
)

// CatalogIndex lists every category in fixed order with its articles
// sorted by display title.
type CatalogIndex struct {
	Categories []CategoryEntry `json:"categories"`
}

// CategoryEntry is one category block of the catalog index.
type CategoryEntry struct {
	Category string         `json:"category"`
	Articles []ArticleEntry `json:"articles"`
}

// ArticleEntry identifies one article in an index.
type ArticleEntry struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// BuildCatalogIndex materializes the catalog index. Categories without
// articles are omitted.
func BuildCatalogIndex(c *catalog.Catalog) CatalogIndex {
	var idx CatalogIndex
	for _, cat := range docs.CategoryOrder {
		ids := c.Category(cat)
		if len(ids) == 0 {
			continue
		}
		entry := CategoryEntry{Category: string(cat)}
		for _, id := range ids {
			a, _ := c.Article(id)
			entry.Articles = append(entry.Articles, ArticleEntry{ID: id, Title: a.Title})
		}
		idx.Categories = append(idx.Categories, entry)
	}
	return idx
}

// GraphIndex lists the incoming and outgoing edges of every article.
type GraphIndex struct {
	Articles []GraphEntry `json:"articles"`
}

// GraphEntry is the edge view of one article.
type GraphEntry struct {
	ID       string      `json:"id"`
	Outgoing []GraphEdge `json:"outgoing,omitempty"`
	Incoming []GraphEdge `json:"incoming,omitempty"`
}

// GraphEdge is one directed edge, labeled with its kind (link or related).
type GraphEdge struct {
	ID   string `json:"id"`
	Kind string `json:"kind"`
}

// BuildGraphIndex materializes the pattern-graph index. Articles appear in
// ID order; edges are sorted by target, then kind.
func BuildGraphIndex(c *catalog.Catalog) GraphIndex {
	g := c.Graph()
	ids := c.IDs()
	sort.Strings(ids)

	var idx GraphIndex
	for _, id := range ids {
		entry := GraphEntry{ID: id}
		for _, e := range g.Outgoing(id) {
			entry.Outgoing = append(entry.Outgoing, GraphEdge{ID: e.To, Kind: string(e.Kind)})
		}
		for _, e := range g.Incoming(id) {
			entry.Incoming = append(entry.Incoming, GraphEdge{ID: e.From, Kind: string(e.Kind)})
		}
		idx.Articles = append(idx.Articles, entry)
	}
	return idx
}

// LanguageIndex is the language facet: for each normalized code language,
// the articles containing at least one block in that language.
type LanguageIndex struct {
	Languages []LanguageEntry `json:"languages"`
}

// LanguageEntry is one language facet bucket.
type LanguageEntry struct {
	Language string   `json:"language"`
	Articles []string `json:"articles"`
}

// BuildLanguageIndex materializes the language facet index. Languages and
// article IDs are both sorted lexicographically.
func BuildLanguageIndex(c *catalog.Catalog) LanguageIndex {
	facet := make(map[docs.Language][]string)
	for _, a := range c.Articles() {
		for _, lang := range a.Languages() {
			facet[lang] = append(facet[lang], a.ID)
		}
	}

	var langs []string
	for lang := range facet {
		langs = append(langs, string(lang))
	}
	sort.Strings(langs)

	var idx LanguageIndex
	for _, lang := range langs {
		ids := facet[docs.Language(lang)]
		sort.Strings(ids)
		idx.Languages = append(idx.Languages, LanguageEntry{Language: lang, Articles: ids})
	}
	return idx
}

// encodeJSON renders v with two-space indentation and a trailing newline.
// Struct field order is fixed at compile time, so the bytes are stable.
func encodeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
