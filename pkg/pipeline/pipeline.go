// Package pipeline provides the core indexing pipeline for patlas.
//
// This package implements the complete scan → parse → resolve → validate →
// emit pipeline used by every CLI command. Centralizing it here keeps the
// build, validate and list commands behaviorally identical in the stages
// they share.
//
// # Architecture
//
// The pipeline consists of five stages:
//
//  1. Scan: walk the source root and collect candidate Markdown files
//  2. Parse: turn each file into an article (optionally fanned out)
//  3. Resolve: accumulate articles into a catalog and bind references
//  4. Validate: apply corpus-level invariants
//  5. Emit: write the indexes and rendered articles
//
// Emission is skipped for validate-only runs. All diagnostics from all
// stages are merged and sorted before they reach the caller, so reports
// are deterministic regardless of worker count.
//
// # Usage
//
//	runner := pipeline.NewRunner(logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    SourceRoot: "docs",
//	    OutputRoot: "site",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Catalog.Len(), "articles")
package pipeline

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/patternhq/patlas/pkg/catalog"
	"github.com/patternhq/patlas/pkg/docs"
	"github.com/patternhq/patlas/pkg/errors"
	"github.com/patternhq/patlas/pkg/validate"
)

// Default values shared by every entry point.
const (
	// DefaultWorkers is the parser fan-out width. Parsing is CPU-cheap,
	// so the default stays serial; output is identical either way.
	DefaultWorkers = 1

	// MaxWorkers caps the parser fan-out.
	MaxWorkers = 64
)

// Options contains all configuration for one pipeline run.
type Options struct {
	// SourceRoot is the documentation tree to index. Required.
	SourceRoot string
	// OutputRoot is the emission target. Required unless ValidateOnly.
	OutputRoot string

	// Extensions and Ignore are passed through to the scanner.
	Extensions []string
	Ignore     []string

	// Workers is the parser fan-out width (1 = serial).
	Workers int

	// MaxRelatedChain caps related-cycle detection depth.
	MaxRelatedChain int

	// ValidateOnly stops the pipeline after validation.
	ValidateOnly bool

	// GraphDOT and GraphSVG enable the optional graph exports.
	GraphDOT bool
	GraphSVG bool

	// Logger receives stage progress. Defaults to the runner's logger.
	Logger *log.Logger
}

// ValidateAndSetDefaults checks required fields and applies defaults.
func (o *Options) ValidateAndSetDefaults() error {
	if o.SourceRoot == "" {
		return errors.New(errors.ErrCodeInvalidInput, "source root is required")
	}
	if o.OutputRoot == "" && !o.ValidateOnly {
		return errors.New(errors.ErrCodeInvalidInput, "output root is required")
	}
	if o.Workers <= 0 {
		o.Workers = DefaultWorkers
	}
	if o.Workers > MaxWorkers {
		o.Workers = MaxWorkers
	}
	if o.MaxRelatedChain <= 0 {
		o.MaxRelatedChain = validate.DefaultMaxRelatedChain
	}
	return nil
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID uniquely identifies this run in logs and stdout reports.
	// It never appears in emitted files, which stay byte-deterministic.
	RunID string

	// Catalog is the resolved article catalog.
	Catalog *catalog.Catalog

	// Diagnostics holds the merged, sorted findings of every stage.
	Diagnostics docs.Diagnostics

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	FileCount    int
	ArticleCount int
	EdgeCount    int
	ScanTime     time.Duration
	ParseTime    time.Duration
	ResolveTime  time.Duration
	ValidateTime time.Duration
	EmitTime     time.Duration
}
