package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kilianp07/perfmap/app"
)

func newDescribeCmd(opts *rootOptions) *cobra.Command {
	var (
		rsID   string
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "describe FILE...",
		Short: "Load documents and describe their performance maps",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := newService(cmd, opts)
			if err != nil {
				return err
			}
			var out []app.Description
			for _, path := range args {
				l, err := svc.Load(path, rsID)
				if err != nil {
					return err
				}
				out = append(out, app.Describe(l))
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			}
			return writeDescriptions(cmd.OutOrStdout(), out)
		},
	}
	cmd.Flags().StringVar(&rsID, "rs", "", "representation specification (default: metadata.schema)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func writeDescriptions(w io.Writer, ds []app.Description) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, d := range ds {
		fmt.Fprintf(tw, "%s\t%s %s\n", d.Path, d.RSID, d.SchemaVersion)
		for _, m := range d.Maps {
			fmt.Fprintf(tw, "  %s\t%s\n", m.Name, m.State)
			for _, a := range m.Axes {
				fmt.Fprintf(tw, "    axis %s\t%d points\t[%g, %g]\t%s\n", a.Name, a.Points, a.Min, a.Max, a.Extrapolation)
			}
			for _, t := range m.Tables {
				fmt.Fprintf(tw, "    table %s\t\t\t\n", t)
			}
		}
	}
	return tw.Flush()
}
