package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newWindowsCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "windows",
		Short: "Print the free evening windows over the lookahead horizon",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			return printWindows(cmd, a)
		},
	}
}

func printWindows(cmd *cobra.Command, a *app) error {
	windows, err := a.agent.FreeWindows(cmd.Context())
	if err != nil {
		return err
	}
	if len(windows) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no free windows in the lookahead horizon")
		return nil
	}
	loc := a.cfg.Location
	for _, w := range windows {
		fmt.Fprintf(cmd.OutOrStdout(), "%s  %s - %s\n",
			w.Start.In(loc).Format("Mon Jan 2"),
			w.Start.In(loc).Format("15:04"),
			w.End.In(loc).Format("15:04"))
	}
	return nil
}
