package cmd

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kilianp07/perfmap/core/grid"
)

func newQueryCmd(opts *rootOptions) *cobra.Command {
	var (
		rsID    string
		mapName string
		target  []float64
		methods []string
		asJSON  bool
	)
	cmd := &cobra.Command{
		Use:   "query FILE",
		Short: "Interpolate every lookup variable of a performance map at one point",
		Example: "  perfmap query fan.yaml --target 1.5,40\n" +
			"  perfmap query chiller.json --map performance_map_standby --target 293.15 --method cubic",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ms := make([]grid.InterpolationMethod, len(methods))
			for i, s := range methods {
				m, err := grid.ParseInterpolationMethod(s)
				if err != nil {
					return err
				}
				ms[i] = m
			}
			svc, _, err := newService(cmd, opts)
			if err != nil {
				return err
			}
			l, err := svc.Load(args[0], rsID)
			if err != nil {
				return err
			}
			res, err := svc.Query(l.ID, mapName, target, ms...)
			if err != nil {
				return err
			}
			if asJSON {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(res)
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, v := range res.Values {
				fmt.Fprintf(tw, "%s\t%g\n", v.Name, v.Value)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&rsID, "rs", "", "representation specification (default: metadata.schema)")
	cmd.Flags().StringVar(&mapName, "map", "", "performance map name (optional when the document has one map)")
	cmd.Flags().Float64SliceVar(&target, "target", nil, "grid coordinates, one per axis")
	cmd.Flags().StringSliceVar(&methods, "method", nil, "interpolation method, once or per axis (linear, cubic)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	_ = cmd.MarkFlagRequired("target")
	return cmd
}
