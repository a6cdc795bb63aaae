package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"rootfind/internal/rootfind"
)

func newMethodsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "methods",
		Short: "Список методов и столбцов их журналов",
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			for _, m := range rootfind.Methods() {
				fmt.Fprintf(tw, "%s\t%s\t%d столбцов\n", m, m.Title(), len(rootfind.Columns(m)))
			}
			return tw.Flush()
		},
	}
}
