// Package config holds the command line configuration of combine.
package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/jacoelho/combine/internal/grammar"
	"github.com/jacoelho/combine/internal/results"
	"github.com/spf13/pflag"
)

var (
	ErrNoCaseFiles      = errors.New("no case files specified")
	ErrInvalidJobs      = errors.New("jobs must be at least 1")
	ErrInvalidLookahead = errors.New("lookahead must be at least 1")
	ErrInvalidFormat    = errors.New("invalid output format")
	ErrTooManyInputs    = errors.New("parse accepts a single input")
)

// Config configures the test command.
type Config struct {
	CaseFiles []string
	Jobs      int     // case files run concurrently
	Repeat    int     // additional iterations after the first run (negative = infinite)
	RateLimit float64 // cases per second (0 = unlimited)
	Format    string  // text or json
	Lookahead int     // buffered window for input_file cases
	Debug     bool
}

// Default returns the configuration used when no flags are given.
func Default() *Config {
	return &Config{
		Jobs:      runtime.NumCPU(),
		Format:    results.FormatText.String(),
		Lookahead: grammar.DefaultLookahead,
	}
}

// RegisterFlags binds the configuration to fs.
func (c *Config) RegisterFlags(fs *pflag.FlagSet) {
	fs.IntVarP(&c.Jobs, "jobs", "j", c.Jobs, "Number of case files to run concurrently")
	fs.IntVar(&c.Repeat, "repeat", c.Repeat, "Number of additional times to repeat after the first run (negative for infinite)")
	fs.Float64Var(&c.RateLimit, "rate-limit", c.RateLimit, "Rate limit in cases per second (0 for unlimited)")
	fs.StringVarP(&c.Format, "format", "f", c.Format, "Report format: text or json")
	fs.IntVar(&c.Lookahead, "lookahead", c.Lookahead, "Backtracking window in runes for input files")
	fs.BoolVar(&c.Debug, "debug", c.Debug, "Log every case as it runs")
}

// OutputFormat returns the parsed report format.
func (c *Config) OutputFormat() (results.OutputFormat, error) {
	f, err := results.ParseFormat(c.Format)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	return f, nil
}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	if len(c.CaseFiles) == 0 {
		return ErrNoCaseFiles
	}

	for _, file := range c.CaseFiles {
		if _, err := os.Stat(file); err != nil {
			return fmt.Errorf("case file %s not found: %w", file, err)
		}
	}

	if c.Jobs < 1 {
		return fmt.Errorf("%w, got: %d", ErrInvalidJobs, c.Jobs)
	}
	if c.Lookahead < 1 {
		return fmt.Errorf("%w, got: %d", ErrInvalidLookahead, c.Lookahead)
	}
	if _, err := c.OutputFormat(); err != nil {
		return err
	}

	return nil
}

// ParseConfig configures the parse command.
type ParseConfig struct {
	Grammar   string
	Format    string // json or yaml
	Lookahead int
	Input     string // file name, or "-" for stdin
}

// DefaultParse returns the parse command defaults.
func DefaultParse() *ParseConfig {
	return &ParseConfig{
		Format:    "json",
		Lookahead: grammar.DefaultLookahead,
		Input:     "-",
	}
}

// RegisterFlags binds the configuration to fs.
func (p *ParseConfig) RegisterFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&p.Grammar, "grammar", "g", p.Grammar, "Grammar to parse with (see 'combine grammars')")
	fs.StringVarP(&p.Format, "format", "f", p.Format, "Output format: json or yaml")
	fs.IntVar(&p.Lookahead, "lookahead", p.Lookahead, "Backtracking window in runes")
}

// SetArgs takes the optional positional input argument.
func (p *ParseConfig) SetArgs(args []string) error {
	switch len(args) {
	case 0:
	case 1:
		p.Input = args[0]
	default:
		return fmt.Errorf("%w, got: %s", ErrTooManyInputs, strings.Join(args, " "))
	}
	return nil
}

// Validate validates the configuration and returns an error if invalid.
func (p *ParseConfig) Validate() error {
	if _, err := grammar.Lookup(p.Grammar); err != nil {
		return err
	}

	switch p.Format {
	case "json", "yaml":
	default:
		return fmt.Errorf("%w %q: use json or yaml", ErrInvalidFormat, p.Format)
	}

	if p.Lookahead < 1 {
		return fmt.Errorf("%w, got: %d", ErrInvalidLookahead, p.Lookahead)
	}

	if p.Input != "-" {
		if _, err := os.Stat(p.Input); err != nil {
			return fmt.Errorf("input file %s not found: %w", p.Input, err)
		}
	}

	return nil
}
