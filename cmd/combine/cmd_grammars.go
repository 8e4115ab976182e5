package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/jacoelho/combine/internal/grammar"
	"github.com/spf13/cobra"
)

func newGrammarsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "grammars",
		Short: "List the built-in grammars",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, g := range grammar.All() {
				fmt.Fprintf(tw, "%s\t%s\n", g.Name, g.Description)
			}
			return tw.Flush()
		},
	}
}
