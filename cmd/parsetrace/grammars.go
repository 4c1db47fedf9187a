package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"parsetrace/internal/grammar"
)

func newGrammarsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "grammars",
		Short: "List the demo grammars",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tTAG\tSAMPLE\tDESCRIPTION")
			for _, name := range grammar.Names() {
				g, _ := grammar.Lookup(name)
				fmt.Fprintf(w, "%s\t%s\t%q\t%s\n", g.Name, g.Tag, g.Input, g.Description)
			}
			return w.Flush()
		},
	}
}
