package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/aretw0/stepwise/internal/presentation/tui"
	"github.com/aretw0/stepwise/pkg/catalogue"
	"github.com/aretw0/stepwise/pkg/domain"
)

var algorithmsCmd = &cobra.Command{
	Use:     "algorithms [algorithm]",
	Aliases: []string{"ls"},
	Short:   "List the algorithms, or show the pseudocode of one",
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat := catalogue.Default()
		out := cmd.OutOrStdout()

		if len(args) == 1 {
			id, err := domain.ParseAlgorithm(args[0])
			if err != nil {
				return err
			}
			e, err := cat.Lookup(id)
			if err != nil {
				return err
			}
			md := fmt.Sprintf("# %s\n\n%s", e.Name, tui.Pseudocode(e.Lines, -1))
			rendered, err := tui.NewRenderer(80)(md)
			if err != nil {
				rendered = md
			}
			fmt.Fprint(out, rendered)
			return nil
		}

		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tKIND\tLINES")
		for _, e := range cat.List() {
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", e.ID, e.Name, e.Kind, len(e.Lines))
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(algorithmsCmd)
}
