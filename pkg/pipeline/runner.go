package pipeline

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/patternhq/patlas/pkg/catalog"
	"github.com/patternhq/patlas/pkg/docs"
	"github.com/patternhq/patlas/pkg/emit"
	"github.com/patternhq/patlas/pkg/markdown"
	"github.com/patternhq/patlas/pkg/scan"
	"github.com/patternhq/patlas/pkg/validate"
)

// Runner executes the pipeline. It is stateless apart from its logger;
// a single Runner can serve multiple runs with different options.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. A nil logger discards all output.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Runner{Logger: logger}
}

// Execute runs the complete pipeline. Fatal conditions (missing root,
// unwritable output) return an error; everything else surfaces through
// Result.Diagnostics. The run aborts between stages when ctx is cancelled.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = r.Logger
	}

	result := &Result{RunID: uuid.NewString()}
	logger.Debug("run started", "run_id", result.RunID, "source", opts.SourceRoot)

	// Stage 1: Scan
	scanStart := time.Now()
	files, diags, err := scan.Scan(ctx, opts.SourceRoot, scan.Options{
		Extensions: opts.Extensions,
		Ignore:     opts.Ignore,
	})
	if err != nil {
		return nil, err
	}
	result.Stats.ScanTime = time.Since(scanStart)
	result.Stats.FileCount = len(files)
	logger.Info("scanned sources", "files", len(files), "duration", result.Stats.ScanTime)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 2: Parse
	parseStart := time.Now()
	articles, parseDiags := parseAll(ctx, files, opts.Workers)
	diags = append(diags, parseDiags...)
	result.Stats.ParseTime = time.Since(parseStart)
	logger.Info("parsed articles", "articles", len(articles), "workers", opts.Workers, "duration", result.Stats.ParseTime)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 3: Resolve
	resolveStart := time.Now()
	builder := catalog.NewBuilder()
	for _, a := range articles {
		builder.Add(a)
	}
	cat, resolveDiags := builder.Finalize()
	diags = append(diags, resolveDiags...)
	result.Catalog = cat
	result.Stats.ResolveTime = time.Since(resolveStart)
	result.Stats.ArticleCount = cat.Len()
	result.Stats.EdgeCount = cat.Graph().EdgeCount()
	logger.Info("resolved catalog",
		"articles", cat.Len(),
		"edges", cat.Graph().EdgeCount(),
		"duration", result.Stats.ResolveTime)

	// Stage 4: Validate
	validateStart := time.Now()
	diags = append(diags, validate.Run(cat, validate.Options{MaxRelatedChain: opts.MaxRelatedChain})...)
	result.Stats.ValidateTime = time.Since(validateStart)

	diags.Sort()
	result.Diagnostics = diags

	if opts.ValidateOnly {
		return result, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 5: Emit
	emitStart := time.Now()
	emitter := emit.New(opts.OutputRoot, emit.Options{
		GraphDOT: opts.GraphDOT || opts.GraphSVG,
		GraphSVG: opts.GraphSVG,
	})
	if err := emitter.Emit(ctx, cat, diags); err != nil {
		return nil, err
	}
	result.Stats.EmitTime = time.Since(emitStart)
	logger.Info("emitted output", "target", opts.OutputRoot, "duration", result.Stats.EmitTime)

	return result, nil
}

// Validate runs the pipeline without emission.
func (r *Runner) Validate(ctx context.Context, opts Options) (*Result, error) {
	opts.ValidateOnly = true
	return r.Execute(ctx, opts)
}

// parseAll parses every source file, fanning out across workers when
// workers > 1. Results are collected positionally, so the article order is
// the scanner's path order regardless of goroutine scheduling, and the
// merged diagnostics are identical to a serial run after sorting.
func parseAll(ctx context.Context, files []docs.SourceFile, workers int) ([]*docs.Article, docs.Diagnostics) {
	articles := make([]*docs.Article, len(files))
	perFile := make([]docs.Diagnostics, len(files))

	if workers <= 1 {
		for i, sf := range files {
			articles[i], perFile[i] = parseOne(sf)
		}
	} else {
		g, _ := errgroup.WithContext(ctx)
		g.SetLimit(workers)
		for i, sf := range files {
			g.Go(func() error {
				articles[i], perFile[i] = parseOne(sf)
				return nil
			})
		}
		_ = g.Wait() // parseOne never fails
	}

	var diags docs.Diagnostics
	for _, d := range perFile {
		diags = append(diags, d...)
	}
	return articles, diags
}

// parseOne parses a single file and extracts its references.
func parseOne(sf docs.SourceFile) (*docs.Article, docs.Diagnostics) {
	a, diags := markdown.Parse(sf)
	a.Refs, a.Citations = markdown.ExtractRefs(a)
	return a, diags
}

// ExitCode maps a finished run to the process exit code: 0 for success,
// 2 when at least one error-severity diagnostic exists (warnings count
// with strict set). Fatal failures never reach this function; commands
// map them to exit code 1.
func ExitCode(result *Result, strict bool) int {
	if result.Diagnostics.HasErrors(strict) {
		return 2
	}
	return 0
}
