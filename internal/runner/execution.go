package runner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/jacoelho/combine/internal/cases"
	"github.com/jacoelho/combine/internal/clock"
	"github.com/jacoelho/combine/internal/grammar"
	"github.com/jacoelho/combine/internal/results"
	"github.com/jacoelho/combine/parse"
	"github.com/jacoelho/combine/position"
	"go.uber.org/zap"
)

// executeFile loads and runs every case in filename. Cases run in order.
func (r *Runner) executeFile(ctx context.Context, logger *zap.Logger, filename string) *results.FileResultBuilder {
	start := clock.Now()
	b := results.NewFileResultBuilder(filename)
	logger = logger.With(zap.String("file", filename))

	f, err := cases.Load(filename)
	if err != nil {
		logger.Debug("case file rejected", zap.Error(err))
		return b.WithError(err).WithDuration(clock.Since(start))
	}

	failed := 0
	for _, c := range f.Cases {
		if err := r.rateLimiter.Wait(ctx); err != nil {
			b.WithError(fmt.Errorf("rate limiting interrupted: %w", err))
			break
		}

		result := r.executeCase(c)
		debugCase(logger, result)

		b.AddCase(result)
		if !result.Passed() {
			failed++
		}
	}

	if failed > 0 {
		b.WithError(fmt.Errorf("%w: %d of %d case(s) failed", ErrCaseFailed, failed, len(f.Cases)))
	}
	return b.WithDuration(clock.Since(start))
}

// executeCase parses the case input and checks the outcome.
func (r *Runner) executeCase(c cases.Case) results.CaseResult {
	start := clock.Now()
	result := results.CaseResult{Name: c.Name, Grammar: c.Grammar}

	g, err := grammar.Lookup(c.Grammar)
	if err != nil {
		result.Error = err
		result.Duration = clock.Since(start)
		return result
	}

	output, size, err := r.parseInput(g, c)
	result.Bytes = size
	result.Error = checkOutcome(c, output, err)
	result.Duration = clock.Since(start)

	return result
}

// parseInput runs the grammar over the inline input, or streams the input
// file through a bounded backtracking window.
func (r *Runner) parseInput(g grammar.Grammar, c cases.Case) (any, int64, error) {
	if c.Input != nil {
		output, err := g.ParseString(*c.Input)
		return output, int64(len(*c.Input)), err
	}

	f, err := os.Open(c.InputFile)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	var size int64
	if info, err := f.Stat(); err == nil {
		size = info.Size()
	}

	lookahead := r.config.Lookahead
	if lookahead < 1 {
		lookahead = grammar.DefaultLookahead
	}

	output, err := g.ParseReader(f, lookahead)
	return output, size, err
}

// checkOutcome compares a parse outcome with the case expectation.
func checkOutcome(c cases.Case, output any, parseErr error) error {
	if c.Expect.Success() {
		if parseErr != nil {
			return fmt.Errorf("%w: expected success: %w", ErrCaseFailed, parseErr)
		}
		return executeAssertions(c.Asserts, output)
	}

	if parseErr == nil {
		return fmt.Errorf("%w: expected failure, parsed %v", ErrCaseFailed, output)
	}

	if c.Expect.Error != "" && !strings.Contains(parseErr.Error(), c.Expect.Error) {
		return fmt.Errorf("%w: error %q does not contain %q", ErrCaseFailed, parseErr.Error(), c.Expect.Error)
	}

	if c.Expect.Line == 0 && c.Expect.Column == 0 {
		return nil
	}

	var perr *parse.ParseError
	if !errors.As(parseErr, &perr) {
		return fmt.Errorf("%w: error has no position: %v", ErrCaseFailed, parseErr)
	}
	pos, ok := perr.Position.(position.SourcePosition)
	if !ok {
		return fmt.Errorf("%w: error position %v is not a line and column", ErrCaseFailed, perr.Position)
	}
	if c.Expect.Line != 0 && pos.Line != c.Expect.Line {
		return fmt.Errorf("%w: error at line %d, want %d", ErrCaseFailed, pos.Line, c.Expect.Line)
	}
	if c.Expect.Column != 0 && pos.Column != c.Expect.Column {
		return fmt.Errorf("%w: error at column %d, want %d", ErrCaseFailed, pos.Column, c.Expect.Column)
	}

	return nil
}
