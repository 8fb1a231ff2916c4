// Package pkg provides the core libraries for patlas documentation indexing.
//
// # Overview
//
// patlas ingests a tree of Markdown pattern articles and turns it into a
// browsable, deterministic index: a category catalog, a pattern-to-pattern
// graph, a code-language facet, and one rendered document per article. The
// pkg directory is organized by pipeline stage:
//
//  1. [docs] - Data model (articles, sections, references, diagnostics)
//  2. [scan] - Source tree walking and file discovery
//  3. [markdown] - Article parsing and reference extraction
//  4. [catalog] - Catalog accumulation and reference resolution
//  5. [validate] - Corpus-level invariants
//  6. [emit] - Index and article emission
//  7. [pipeline] - Orchestration (scan → parse → resolve → validate → emit)
//
// # Architecture
//
// The typical data flow through patlas:
//
//	Markdown source tree
//	         ↓
//	    [scan] package (discover candidate files)
//	         ↓
//	    [markdown] package (parse articles, extract references)
//	         ↓
//	    [catalog] package (resolve references, build the pattern graph)
//	         ↓
//	    [validate] package (apply invariants, collect diagnostics)
//	         ↓
//	    [emit] package (indexes, rendered articles, DOT/SVG)
//
// # Quick Start
//
// Run the full pipeline against a corpus:
//
//	import (
//	    "context"
//	    "github.com/patternhq/patlas/pkg/pipeline"
//	)
//
//	runner := pipeline.NewRunner(nil)
//	result, err := runner.Execute(context.Background(), pipeline.Options{
//	    SourceRoot: "docs",
//	    OutputRoot: "site",
//	})
//	if err != nil {
//	    // fatal: missing root, unwritable output
//	}
//	for _, d := range result.Diagnostics {
//	    fmt.Println(d)
//	}
//
// Supporting packages: [config] loads the optional patlas.toml, [errors]
// defines the structured error codes fatal paths use, and [buildinfo]
// carries ldflags version data.
package pkg
