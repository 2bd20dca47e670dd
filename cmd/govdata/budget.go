package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

const barWidth = 40

func newBudgetCmd(load loader) *cobra.Command {
	return &cobra.Command{
		Use:   "budget",
		Short: "Show the annual budget allocation by department",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := load(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			for _, a := range catalog.Budget {
				bar := strings.Repeat("#", a.Percentage*barWidth/100)
				fmt.Fprintf(tw, "%s\t%3d%%\t%s\n", a.Department, a.Percentage, bar)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			if top, ok := catalog.Largest(); ok {
				fmt.Fprintf(out, "\n%s receives the largest share.\n", top.Department)
			}
			return nil
		},
	}
}
