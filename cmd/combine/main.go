package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/jacoelho/combine/internal/exit"
	"github.com/spf13/cobra"
)

func main() {
	exitCode := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	os.Exit(exitCode)
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	root := newRootCmd(stdin, stdout, stderr)
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return exit.CodeSuccess
	}

	var res *exit.Result
	if errors.As(err, &res) {
		res.Output = stderr
		res.Print()
		return res.ExitCode
	}

	fmt.Fprintf(stderr, "Error: %v\n", err)
	return exit.CodeUsage
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:   "combine",
		Short: "Parse text with parser-combinator grammars and test them with case files",
		Long: `combine runs the built-in grammars over input text.

Use 'combine parse' to print what a grammar produces for a file or stdin,
and 'combine test' to check YAML case files of inputs and expectations.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return exit.Usage("Error: %v\n\n%s", err, c.UsageString())
	})

	root.AddCommand(newParseCmd())
	root.AddCommand(newTestCmd())
	root.AddCommand(newGrammarsCmd())

	return root
}
