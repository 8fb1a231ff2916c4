package catalog

import (
	"sort"
	"strings"
)

// EdgeKind distinguishes resolved link references from related-pattern
// citations.
type EdgeKind string

const (
	// EdgeLink is a resolved Markdown link from one article to another.
	EdgeLink EdgeKind = "link"
	// EdgeRelated is a resolved "Related Patterns" citation.
	EdgeRelated EdgeKind = "related"
)

// Edge is a directed connection between two articles. The graph holds only
// article IDs; articles themselves stay owned by the catalog.
type Edge struct {
	From string
	To   string
	Kind EdgeKind
}

// Graph is the pattern graph: the set of directed edges between articles.
// It is built once during catalog finalization and read-only afterwards.
type Graph struct {
	edges    []Edge
	outgoing map[string][]Edge
	incoming map[string][]Edge
	seen     map[Edge]bool
}

func newGraph() *Graph {
	return &Graph{
		outgoing: make(map[string][]Edge),
		incoming: make(map[string][]Edge),
		seen:     make(map[Edge]bool),
	}
}

// add inserts an edge, ignoring exact duplicates. An article citing the
// same pattern twice produces one edge.
func (g *Graph) add(e Edge) {
	if g.seen[e] {
		return
	}
	g.seen[e] = true
	g.edges = append(g.edges, e)
	g.outgoing[e.From] = append(g.outgoing[e.From], e)
	g.incoming[e.To] = append(g.incoming[e.To], e)
}

// EdgeCount returns the number of distinct edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Edges returns all edges sorted by (From, To, Kind).
func (g *Graph) Edges() []Edge {
	out := append([]Edge(nil), g.edges...)
	sortEdges(out)
	return out
}

// Outgoing returns the edges leaving an article, sorted.
func (g *Graph) Outgoing(id string) []Edge {
	out := append([]Edge(nil), g.outgoing[id]...)
	sortEdges(out)
	return out
}

// Incoming returns the edges arriving at an article, sorted.
func (g *Graph) Incoming(id string) []Edge {
	out := append([]Edge(nil), g.incoming[id]...)
	sortEdges(out)
	return out
}

func sortEdges(edges []Edge) {
	sort.Slice(edges, func(i, j int) bool {
		a, b := edges[i], edges[j]
		if a.From != b.From {
			return a.From < b.From
		}
		if a.To != b.To {
			return a.To < b.To
		}
		return a.Kind < b.Kind
	})
}

// RelatedCycles finds cycles in the related-edge subgraph with chain length
// up to maxLen. Each cycle is reported once, rotated so its lexicographically
// smallest ID comes first. Cycles are not an error in a pattern corpus
// (Observer and Mediator legitimately cite each other); the validator
// surfaces them as info.
func (g *Graph) RelatedCycles(maxLen int) [][]string {
	related := make(map[string][]string)
	var nodes []string
	for _, e := range g.edges {
		if e.Kind != EdgeRelated {
			continue
		}
		if _, ok := related[e.From]; !ok {
			nodes = append(nodes, e.From)
		}
		related[e.From] = append(related[e.From], e.To)
	}
	sort.Strings(nodes)
	for _, targets := range related {
		sort.Strings(targets)
	}

	seen := make(map[string]bool)
	var cycles [][]string

	var stack []string
	onStack := make(map[string]int)

	var dfs func(id string)
	dfs = func(id string) {
		if len(stack) >= maxLen {
			return
		}
		stack = append(stack, id)
		onStack[id] = len(stack) - 1
		for _, next := range related[id] {
			if pos, ok := onStack[next]; ok {
				cycle := canonicalCycle(stack[pos:])
				key := joinChain(cycle)
				if !seen[key] {
					seen[key] = true
					cycles = append(cycles, cycle)
				}
				continue
			}
			dfs(next)
		}
		delete(onStack, id)
		stack = stack[:len(stack)-1]
	}

	for _, n := range nodes {
		dfs(n)
	}

	sort.Slice(cycles, func(i, j int) bool {
		return joinChain(cycles[i]) < joinChain(cycles[j])
	})
	return cycles
}

// canonicalCycle rotates a cycle so the smallest ID comes first.
func canonicalCycle(chain []string) []string {
	min := 0
	for i := range chain {
		if chain[i] < chain[min] {
			min = i
		}
	}
	out := make([]string, 0, len(chain))
	out = append(out, chain[min:]...)
	out = append(out, chain[:min]...)
	return out
}

// joinChain formats a cycle as "a -> b -> c" for dedup keys and messages.
func joinChain(ids []string) string {
	return strings.Join(ids, " -> ")
}
