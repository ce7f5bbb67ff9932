package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/haowjy/meridian-playbook/techniques"
)

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the prompting techniques",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(a.stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tPATTERN")
			for _, e := range techniques.All() {
				fmt.Fprintf(w, "%d\t%s\t%s\n", e.ID, e.Name, e.Pattern)
			}
			return w.Flush()
		},
	}
}
