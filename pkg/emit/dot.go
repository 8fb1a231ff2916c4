package emit

import (
	"bytes"
	"context"
	"fmt"
	"sort"

	"github.com/goccy/go-graphviz"

	"github.com/patternhq/patlas/pkg/catalog"
)

// ToDOT converts the pattern graph to Graphviz DOT format. Related edges
// render dashed, link edges solid. Nodes and edges are written in sorted
// order, so the DOT text is stable across runs.
func ToDOT(c *catalog.Catalog) string {
	var buf bytes.Buffer
	buf.WriteString("digraph patterns {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=12];\n")
	buf.WriteString("\n")

	ids := c.IDs()
	sort.Strings(ids)
	for _, id := range ids {
		a, _ := c.Article(id)
		fmt.Fprintf(&buf, "  %q [label=%q];\n", id, a.Title)
	}

	buf.WriteString("\n")
	for _, e := range c.Graph().Edges() {
		if e.Kind == catalog.EdgeRelated {
			fmt.Fprintf(&buf, "  %q -> %q [style=dashed];\n", e.From, e.To)
		} else {
			fmt.Fprintf(&buf, "  %q -> %q;\n", e.From, e.To)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG renders a DOT graph to SVG using Graphviz. SVG output is a
// convenience view and is not covered by the byte-determinism guarantee of
// the JSON and Markdown artifacts.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
