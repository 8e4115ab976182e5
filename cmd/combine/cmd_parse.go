package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/jacoelho/combine/internal/config"
	"github.com/jacoelho/combine/internal/exit"
	"github.com/jacoelho/combine/internal/grammar"
	"github.com/spf13/cobra"
)

func newParseCmd() *cobra.Command {
	cfg := config.DefaultParse()

	cmd := &cobra.Command{
		Use:   "parse [file|-]",
		Short: "Parse a file or stdin with a grammar and print the result",
		Long: `Parse a file with a built-in grammar and print the value it produces.

Without a file, or with -, reads from stdin. Input is streamed through a
buffer that keeps --lookahead runes for backtracking.`,
		Example: `  combine parse --grammar json data.json
  echo '1 + 2 * 3' | combine parse -g arith
  combine parse -g csv -f yaml rows.csv`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.SetArgs(args); err != nil {
				return exit.Usage("Error: %v", err)
			}
			if err := cfg.Validate(); err != nil {
				return exit.Usage("Error: %v", err)
			}

			g, err := grammar.Lookup(cfg.Grammar)
			if err != nil {
				return exit.Usage("Error: %v", err)
			}

			in := cmd.InOrStdin()
			name := "stdin"
			if cfg.Input != "-" {
				f, err := os.Open(cfg.Input)
				if err != nil {
					return exit.Errorf("Error: %v", err)
				}
				defer f.Close()
				in, name = f, cfg.Input
			}

			output, err := g.ParseReader(in, cfg.Lookahead)
			if err != nil {
				return exit.Errorf("%s: %v", name, err)
			}

			if err := writeOutput(cmd.OutOrStdout(), cfg.Format, output); err != nil {
				return exit.Errorf("Error: %v", err)
			}
			return nil
		},
	}

	cfg.RegisterFlags(cmd.Flags())

	return cmd
}

func writeOutput(w io.Writer, format string, v any) error {
	switch format {
	case "yaml":
		data, err := yaml.Marshal(v)
		if err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		_, err = w.Write(data)
		return err
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
}
