package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"cmr-ca/internal/presets"
)

func (c *cli) presetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List the bundled automata",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tSIZE\tSTATES\tRULES")
			for _, name := range presets.Names() {
				t, _ := presets.Lookup(name)
				fmt.Fprintf(tw, "%s\t%dx%d\t%d\t%d\n", name, t.Rows, t.Cols, t.States, len(t.Rules))
			}
			return tw.Flush()
		},
	}
}
