package main

import (
	"github.com/jacoelho/combine/internal/config"
	"github.com/jacoelho/combine/internal/exit"
	"github.com/jacoelho/combine/internal/formatter/stdout"
	"github.com/jacoelho/combine/internal/runner"
	"github.com/spf13/cobra"
)

func newTestCmd() *cobra.Command {
	cfg := config.Default()

	cmd := &cobra.Command{
		Use:   "test file...",
		Short: "Run YAML case files against the grammars",
		Long: `Run every case in the given files and report a summary.

Each case names a grammar, an inline input or input_file, the expected
outcome, and optional JSONPath asserts over the parsed value.`,
		Example: `  combine test cases.yaml
  combine test --jobs 4 --format json testdata/*.yaml
  combine test --repeat -1 --rate-limit 5 cases.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.CaseFiles = args
			if err := cfg.Validate(); err != nil {
				return exit.Usage("Error: %v\n\n%s", err, cmd.UsageString())
			}

			format, err := cfg.OutputFormat()
			if err != nil {
				return exit.Usage("Error: %v", err)
			}

			r, res := runner.New(cfg,
				runner.WithFormatter(stdout.NewWithWriter(cmd.OutOrStdout(), format)),
				runner.WithOutput(cmd.ErrOrStderr()),
			)
			if res != nil {
				return res
			}

			if code := r.Run(cmd.Context()); code != exit.CodeSuccess {
				return &exit.Result{ExitCode: code}
			}
			return nil
		},
	}

	cfg.RegisterFlags(cmd.Flags())

	return cmd
}
