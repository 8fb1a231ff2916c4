package emit

import (
	"context"
	"os"
	"path/filepath"

	"github.com/patternhq/patlas/pkg/catalog"
	"github.com/patternhq/patlas/pkg/docs"
	"github.com/patternhq/patlas/pkg/errors"
)

// Emitted file names under the output root.
const (
	FileCatalogIndex  = "index.json"
	FileGraphIndex    = "graph.json"
	FileLanguageIndex = "languages.json"
	FileGraphDOT      = "graph.dot"
	FileGraphSVG      = "graph.svg"
	DirArticles       = "articles"
)

// Options configures an emission run.
type Options struct {
	// GraphDOT additionally writes the pattern graph as graph.dot.
	GraphDOT bool
	// GraphSVG additionally renders the pattern graph as graph.svg
	// through Graphviz. Implies the DOT conversion.
	GraphSVG bool
}

// Emitter writes the output tree for one pipeline run. Failures are fatal
// and abort the run; a partial output directory is left in place.
type Emitter struct {
	Root string
	Opts Options
}

// New creates an emitter targeting the given output root.
func New(root string, opts Options) *Emitter {
	return &Emitter{Root: root, Opts: opts}
}

// Emit writes the three indexes, every rendered article, and the optional
// graph exports. Write failures return ErrCodeOutputCreate or
// ErrCodeOutputWrite errors; article render failures name the article ID.
func (e *Emitter) Emit(ctx context.Context, c *catalog.Catalog, diags docs.Diagnostics) error {
	if err := os.MkdirAll(e.Root, 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeOutputCreate, err, "create output root %s", e.Root)
	}

	if err := e.writeIndexes(c); err != nil {
		return err
	}
	if err := e.writeArticles(ctx, c, diags); err != nil {
		return err
	}
	return e.writeGraphExports(ctx, c)
}

func (e *Emitter) writeIndexes(c *catalog.Catalog) error {
	indexes := []struct {
		name string
		data any
	}{
		{FileCatalogIndex, BuildCatalogIndex(c)},
		{FileGraphIndex, BuildGraphIndex(c)},
		{FileLanguageIndex, BuildLanguageIndex(c)},
	}
	for _, idx := range indexes {
		data, err := encodeJSON(idx.data)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "encode %s", idx.name)
		}
		if err := e.writeFile(idx.name, data); err != nil {
			return err
		}
	}
	return nil
}

func (e *Emitter) writeArticles(ctx context.Context, c *catalog.Catalog, diags docs.Diagnostics) error {
	for _, a := range c.Articles() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := errors.ValidateArticleID(a.ID); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidID, err, "render article %s", a.ID)
		}
		doc := RenderArticle(c, a, diags.ForArticle(a.ID))
		rel := filepath.Join(DirArticles, filepath.FromSlash(a.ID)+".md")
		if err := e.writeFile(rel, doc); err != nil {
			return errors.Wrap(errors.ErrCodeOutputWrite, err, "render article %s", a.ID)
		}
	}
	return nil
}

func (e *Emitter) writeGraphExports(ctx context.Context, c *catalog.Catalog) error {
	if !e.Opts.GraphDOT && !e.Opts.GraphSVG {
		return nil
	}
	dot := ToDOT(c)
	if e.Opts.GraphDOT {
		if err := e.writeFile(FileGraphDOT, []byte(dot)); err != nil {
			return err
		}
	}
	if e.Opts.GraphSVG {
		svg, err := RenderSVG(ctx, dot)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "render %s", FileGraphSVG)
		}
		if err := e.writeFile(FileGraphSVG, svg); err != nil {
			return err
		}
	}
	return nil
}

// writeFile writes one output file, creating parent directories as needed.
func (e *Emitter) writeFile(rel string, data []byte) error {
	path := filepath.Join(e.Root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeOutputCreate, err, "create %s", filepath.Dir(path))
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeOutputWrite, err, "write %s", rel)
	}
	return nil
}
