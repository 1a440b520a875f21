package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newListCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the registered representation specifications",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := newService(cmd, opts)
			if err != nil {
				return err
			}
			for _, id := range svc.Registry().IDs() {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), id); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
