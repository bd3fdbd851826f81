package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/resy-agent/internal/domain/reservation"
)

func newMenuCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Interactive menu for the agent's operations",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			return runMenu(cmd, a)
		},
	}
}

func runMenu(cmd *cobra.Command, a *app) error {
	out := cmd.OutOrStdout()
	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		fmt.Fprint(out, "\n"+
			"1) run booking agent\n"+
			"2) show upcoming reservations\n"+
			"3) show free windows\n"+
			"4) refresh venue ids\n"+
			"5) exit\n"+
			"> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		choice := strings.TrimSpace(scanner.Text())

		var err error
		switch choice {
		case "1":
			outcome := a.agent.Run(cmd.Context())
			fmt.Fprintln(out, outcome.String())
			if outcome.Kind == reservation.OutcomeFailed {
				err = outcome.Err
			}
		case "2":
			err = printReservations(cmd, a)
		case "3":
			err = printWindows(cmd, a)
		case "4":
			err = a.agent.RefreshVenues(cmd.Context())
		case "5", "q", "quit", "exit":
			return nil
		default:
			fmt.Fprintf(out, "unknown choice %q\n", choice)
			continue
		}
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), "error:", err)
		}
	}
}
