package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/patternhq/patlas/pkg/config"
	"github.com/patternhq/patlas/pkg/pipeline"
)

// runOpts holds the command-line flags shared by build and validate.
type runOpts struct {
	quiet    bool     // suppress info diagnostics in reports
	strict   bool     // promote warnings to errors for the exit code
	jsonOut  bool     // print the machine-readable report instead of text
	ignore   []string // additional ignore globs
	workers  int      // parser fan-out width
	graphDOT bool     // also emit graph.dot
	graphSVG bool     // also emit graph.svg (build only)
}

// register adds the shared flags to a command.
func (o *runOpts) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&o.quiet, "quiet", false, "suppress info diagnostics")
	cmd.Flags().BoolVar(&o.strict, "strict", false, "treat warnings as errors for the exit code")
	cmd.Flags().BoolVar(&o.jsonOut, "json", false, "print a machine-readable JSON report")
	cmd.Flags().StringArrayVar(&o.ignore, "ignore", nil, "ignore glob, repeatable (doublestar syntax)")
	cmd.Flags().IntVar(&o.workers, "workers", pipeline.DefaultWorkers, "parser worker count")
}

// newBuildCmd creates the build command: the full pipeline run.
func newBuildCmd() *cobra.Command {
	var opts runOpts

	cmd := &cobra.Command{
		Use:   "build <source-root> <output-root>",
		Short: "Index a documentation tree and emit the browsable output",
		Long: `Build runs the complete pipeline: scan the source tree, parse every
article, resolve the cross-reference graph, validate the corpus, and emit
the indexes plus one rendered document per article.

Exit codes: 0 on success (warnings and info do not matter), 1 on fatal
failure, 2 when at least one error-severity diagnostic was found.`,
		Args: cobra.ExactArgs(2),
		RunE: func(c *cobra.Command, args []string) error {
			return runPipeline(c.Context(), args[0], args[1], opts, false)
		},
	}

	opts.register(cmd)
	cmd.Flags().BoolVar(&opts.graphDOT, "graph-dot", false, "also emit the pattern graph as graph.dot")
	cmd.Flags().BoolVar(&opts.graphSVG, "graph-svg", false, "also render the pattern graph as graph.svg")

	return cmd
}

// newValidateCmd creates the validate command: the pipeline without emission.
func newValidateCmd() *cobra.Command {
	var opts runOpts

	cmd := &cobra.Command{
		Use:   "validate <source-root>",
		Short: "Validate a documentation tree without emitting output",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runPipeline(c.Context(), args[0], "", opts, true)
		},
	}

	opts.register(cmd)

	return cmd
}

// runPipeline merges file configuration with flags, executes the pipeline,
// prints the report, and maps error diagnostics to exit code 2.
func runPipeline(ctx context.Context, src, out string, opts runOpts, validateOnly bool) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	cfg, err := config.Load(src)
	if err != nil {
		return err
	}
	quiet := opts.quiet || cfg.Quiet
	strict := opts.strict || cfg.Strict

	runner := pipeline.NewRunner(logger)
	result, err := runner.Execute(ctx, pipeline.Options{
		SourceRoot:      src,
		OutputRoot:      out,
		Extensions:      cfg.Extensions,
		Ignore:          append(append([]string(nil), cfg.Ignore...), opts.ignore...),
		Workers:         opts.workers,
		MaxRelatedChain: cfg.MaxRelatedChain,
		ValidateOnly:    validateOnly,
		GraphDOT:        opts.graphDOT,
		GraphSVG:        opts.graphSVG,
		Logger:          logger,
	})
	if err != nil {
		return err
	}

	if opts.jsonOut {
		if err := printJSON(os.Stdout, result, strict, quiet); err != nil {
			return err
		}
	} else {
		printSummary(os.Stdout, result, quiet)
	}

	if validateOnly {
		prog.done(fmt.Sprintf("Validated %d article(s)", result.Stats.ArticleCount))
	} else {
		prog.done(fmt.Sprintf("Indexed %d article(s)", result.Stats.ArticleCount))
	}

	if code := pipeline.ExitCode(result, strict); code != 0 {
		return &ExitError{Code: code}
	}
	return nil
}
