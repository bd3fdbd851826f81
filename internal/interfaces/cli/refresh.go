package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRefreshVenuesCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "refresh-venues",
		Short: "Look up venue ids for restaurants missing them and write them back to the sheet",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			if err := a.agent.RefreshVenues(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "venue refresh complete")
			return nil
		},
	}
}
