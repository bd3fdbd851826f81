package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newReservationsCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "reservations",
		Short: "List upcoming reservations held on the platform",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			return printReservations(cmd, a)
		},
	}
}

func printReservations(cmd *cobra.Command, a *app) error {
	upcoming, err := a.provider.Upcoming(cmd.Context())
	if err != nil {
		return err
	}
	if len(upcoming) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no upcoming reservations")
		return nil
	}
	for _, r := range upcoming {
		fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  party of %d\n",
			r.Day.In(a.cfg.Location).Format("Mon Jan 2 15:04"), r.VenueName, r.PartySize)
	}
	return nil
}
