// Package catalog accumulates parsed articles into a resolved catalog.
//
// The builder accepts articles incrementally (in source-path order), then
// Finalize resolves every cross-reference: article links against the set of
// known IDs, related-pattern names against a normalized name index. The
// result is an immutable [Catalog] plus the diagnostics produced during
// resolution. Finalize is idempotent; repeated calls return the same
// catalog and the same diagnostics.
package catalog

import (
	"path"
	"sort"
	"strings"

	"github.com/patternhq/patlas/pkg/docs"
)

// NormalizeName canonicalizes a pattern name for the related-name index:
// lowercased, trimmed, internal whitespace collapsed, and a trailing
// "pattern" word stripped. "The  Observer Pattern " and "the observer"
// therefore collide on purpose.
func NormalizeName(name string) string {
	fields := strings.Fields(strings.ToLower(name))
	if n := len(fields); n > 1 && fields[n-1] == "pattern" {
		fields = fields[:n-1]
	}
	return strings.Join(fields, " ")
}

// Builder collects articles and resolves them into a Catalog.
// Not safe for concurrent use.
type Builder struct {
	articles []*docs.Article
	final    *Catalog
	diags    docs.Diagnostics
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Add registers an article. Articles must be added in source-path order;
// the pipeline sorts parser output before feeding the builder, which keeps
// the later-read-wins duplicate policy deterministic. Add panics after
// Finalize has been called.
func (b *Builder) Add(a *docs.Article) {
	if b.final != nil {
		panic("catalog: Add after Finalize")
	}
	b.articles = append(b.articles, a)
}

// Finalize resolves all references and returns the catalog together with
// the resolution diagnostics. Subsequent calls return the identical catalog
// and diagnostics without re-resolving.
func (b *Builder) Finalize() (*Catalog, docs.Diagnostics) {
	if b.final != nil {
		return b.final, b.diags
	}

	c := &Catalog{
		articles:   make(map[string]*docs.Article, len(b.articles)),
		byCategory: make(map[docs.Category][]string),
		names:      make(map[string]string),
	}
	var diags docs.Diagnostics

	// Deduplicate IDs; the later-read article wins.
	for _, a := range b.articles {
		if prev, dup := c.articles[a.ID]; dup {
			diags = append(diags, docs.Errorf(a.ID, "", "duplicate article ID: %s shadows %s", a.Source, prev.Source))
		} else {
			c.order = append(c.order, a.ID)
		}
		c.articles[a.ID] = a
	}

	// Name index from titles and aliases. First registration wins, which
	// is deterministic because articles arrive in path order.
	for _, id := range c.order {
		a := c.articles[id]
		registerName(c.names, a.Title, id)
		for _, alias := range a.Aliases {
			registerName(c.names, alias, id)
		}
	}

	graph := newGraph()
	for _, id := range c.order {
		a := c.articles[id]
		for i := range a.Refs {
			ref := &a.Refs[i]
			switch ref.Kind {
			case docs.RefArticle:
				target, ok := c.resolveArticleRef(a, ref.Target)
				if !ok {
					diags = append(diags, docs.Warnf(a.ID, "", "unresolved article reference: %s", ref.Target))
					continue
				}
				ref.ResolvedID = target
				graph.add(Edge{From: a.ID, To: target, Kind: EdgeLink})
			case docs.RefRelated:
				target, ok := c.names[NormalizeName(ref.Target)]
				if !ok {
					diags = append(diags, docs.Warnf(a.ID, "", "unresolved related pattern: %q", ref.Target))
					continue
				}
				ref.ResolvedID = target
				if target != a.ID {
					graph.add(Edge{From: a.ID, To: target, Kind: EdgeRelated})
				}
			}
		}
		c.byCategory[a.Category] = append(c.byCategory[a.Category], a.ID)
	}
	c.graph = graph

	b.final = c
	b.diags = diags
	return c, diags
}

// registerName adds a normalized name to the index unless it is empty or
// already taken.
func registerName(names map[string]string, name, id string) {
	n := NormalizeName(name)
	if n == "" {
		return
	}
	if _, taken := names[n]; !taken {
		names[n] = id
	}
}

// resolveArticleRef maps a link target to an article ID. The target is
// tried relative to the referring article's directory first, then relative
// to the source root. Fragments and leading ./ or / are stripped before
// lookup.
func (c *Catalog) resolveArticleRef(a *docs.Article, target string) (string, bool) {
	target, _, _ = strings.Cut(target, "#")
	target = strings.TrimPrefix(target, "./")
	if target == "" {
		return "", false
	}

	candidates := []string{
		path.Join(path.Dir(a.Source), target),
		strings.TrimPrefix(path.Clean(target), "/"),
	}
	for _, cand := range candidates {
		id := docs.IDFromPath(cand)
		if _, ok := c.articles[id]; ok {
			return id, true
		}
	}
	return "", false
}

// Catalog is the resolved, immutable collection of articles.
type Catalog struct {
	articles   map[string]*docs.Article
	order      []string // IDs in source-path order
	byCategory map[docs.Category][]string
	names      map[string]string
	graph      *Graph
}

// Len returns the number of articles.
func (c *Catalog) Len() int { return len(c.order) }

// Article returns the article with the given ID.
func (c *Catalog) Article(id string) (*docs.Article, bool) {
	a, ok := c.articles[id]
	return a, ok
}

// Articles returns all articles in source-path order.
func (c *Catalog) Articles() []*docs.Article {
	out := make([]*docs.Article, len(c.order))
	for i, id := range c.order {
		out[i] = c.articles[id]
	}
	return out
}

// IDs returns all article IDs in source-path order.
func (c *Catalog) IDs() []string {
	return append([]string(nil), c.order...)
}

// Category returns the IDs of the articles in one category, sorted by
// display title (ties broken by ID).
func (c *Catalog) Category(cat docs.Category) []string {
	ids := append([]string(nil), c.byCategory[cat]...)
	sort.Slice(ids, func(i, j int) bool {
		ti, tj := c.articles[ids[i]].Title, c.articles[ids[j]].Title
		if ti != tj {
			return ti < tj
		}
		return ids[i] < ids[j]
	})
	return ids
}

// ResolveName looks up an article by pattern name through the normalized
// name index.
func (c *Catalog) ResolveName(name string) (string, bool) {
	id, ok := c.names[NormalizeName(name)]
	return id, ok
}

// Graph returns the pattern graph materialized during finalization.
func (c *Catalog) Graph() *Graph { return c.graph }
