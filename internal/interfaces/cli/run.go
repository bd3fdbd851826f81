package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/resy-agent/internal/domain/reservation"
)

func newRunCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run one booking pass: free windows, ranked restaurants, book, notify",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			out := a.agent.Run(cmd.Context())
			fmt.Fprintln(cmd.OutOrStdout(), out.String())
			if out.Kind == reservation.OutcomeFailed {
				return out.Err
			}
			return nil
		},
	}
}
