// Package runner executes case files against the built-in grammars.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/jacoelho/combine/internal/clock"
	"github.com/jacoelho/combine/internal/config"
	"github.com/jacoelho/combine/internal/exit"
	"github.com/jacoelho/combine/internal/formatter"
	"github.com/jacoelho/combine/internal/formatter/stdout"
	"github.com/jacoelho/combine/internal/ratelimit"
	"github.com/jacoelho/combine/internal/results"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrCaseFailed marks a case whose outcome did not match its expectation.
var ErrCaseFailed = errors.New("case failed")

// Runner executes case files.
type Runner struct {
	config      *config.Config
	logger      *zap.Logger
	rateLimiter *ratelimit.Limiter
	formatter   formatter.Formatter
	output      io.Writer // interruption and formatting errors
}

// Option customises a Runner.
type Option func(*Runner)

// WithLogger replaces the logger derived from the configuration.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// WithFormatter replaces the stdout formatter.
func WithFormatter(f formatter.Formatter) Option {
	return func(r *Runner) {
		r.formatter = f
	}
}

// WithOutput sets where interruption notices are written.
func WithOutput(w io.Writer) Option {
	return func(r *Runner) {
		r.output = w
	}
}

// New creates a new Runner with the provided configuration.
// If creation fails, returns nil runner and exit result.
func New(cfg *config.Config, opts ...Option) (*Runner, *exit.Result) {
	format, err := cfg.OutputFormat()
	if err != nil {
		return nil, exit.Usage("Error: %v", err)
	}

	r := &Runner{
		config:      cfg,
		rateLimiter: ratelimit.New(cfg.RateLimit),
		formatter:   stdout.New(format),
		output:      os.Stderr,
	}
	for _, opt := range opts {
		opt(r)
	}

	if r.logger == nil {
		r.logger = zap.NewNop()
		if cfg.Debug {
			logger, err := zap.NewDevelopment()
			if err != nil {
				return nil, exit.Errorf("Error creating logger: %v", err)
			}
			r.logger = logger
		}
	}

	return r, nil
}

// Run executes the case files according to the configuration and returns
// the process exit code.
func (r *Runner) Run(ctx context.Context) int {
	defer func() { _ = r.logger.Sync() }()

	if r.config.Repeat < 0 {
		return r.runInfiniteLoop(ctx)
	}
	return r.runFiniteLoop(ctx)
}

// runInfiniteLoop reports each iteration as it completes until ctx is done.
func (r *Runner) runInfiniteLoop(ctx context.Context) int {
	for iteration := 1; ; iteration++ {
		r.logger.Debug("iteration started", zap.Int("iteration", iteration))

		summary, err := r.ExecuteFiles(ctx, r.config.CaseFiles)
		if err != nil {
			fmt.Fprintf(r.output, "\nInterrupted after %d iterations\n", iteration-1)
			return exit.CodeFailure
		}

		if err := r.formatter.Format(summary); err != nil {
			fmt.Fprintf(r.output, "Error formatting results: %v\n", err)
		}
	}
}

// runFiniteLoop runs Repeat+1 iterations and reports them together.
func (r *Runner) runFiniteLoop(ctx context.Context) int {
	totalIterations := r.config.Repeat + 1
	allResults := make([]*results.Summary, 0, totalIterations)

	for i := 1; i <= totalIterations; i++ {
		r.logger.Debug("iteration started", zap.Int("iteration", i), zap.Int("of", totalIterations))

		summary, err := r.ExecuteFiles(ctx, r.config.CaseFiles)
		if err != nil {
			fmt.Fprintf(r.output, "\nInterrupted after %d of %d iterations\n", i-1, totalIterations)
			return exit.CodeFailure
		}
		allResults = append(allResults, summary)
	}

	if err := r.formatter.Format(allResults...); err != nil {
		fmt.Fprintf(r.output, "Error formatting results: %v\n", err)
		return exit.CodeFailure
	}

	for _, s := range allResults {
		if s.Failed() {
			return exit.CodeFailure
		}
	}
	return exit.CodeSuccess
}

// ExecuteFiles runs files concurrently, at most Jobs at a time, and returns
// their results in the order given. Case failures are recorded in the
// summary; the error is non-nil only when ctx ends the run early.
func (r *Runner) ExecuteFiles(ctx context.Context, files []string) (*results.Summary, error) {
	runID := uuid.NewString()
	s := results.NewSummary(runID, len(files))
	logger := r.logger.With(zap.String("run", runID))
	logger.Debug("run started",
		zap.Int("files", len(files)),
		zap.Int("jobs", r.config.Jobs),
		zap.Float64("rate_limit", r.rateLimiter.Limit()),
	)

	overallStart := clock.Now()
	builders := make([]*results.FileResultBuilder, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(r.config.Jobs, 1))

	for i, filename := range files {
		g.Go(func() error {
			builders[i] = r.executeFile(gctx, logger, filename)
			return gctx.Err()
		})
	}

	err := g.Wait()

	for _, b := range builders {
		if b != nil {
			s.Add(b)
		}
	}
	s.SetTotalDuration(clock.Since(overallStart))

	if err == nil {
		err = ctx.Err()
	}
	return s, err
}
