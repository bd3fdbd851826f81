package cli

import (
	"github.com/spf13/cobra"
)

var (
	Version   = "dev"
	CommitSHA = "none"
	BuildDate = "unknown"
)

func NewRoot() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "resyagent",
		Short: "Personal reservation agent: matches free evenings against a ranked restaurant list and books on Resy",
	}
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file (default: .resyagent.toml, then ~/.config/resyagent/config.toml)")

	cmd.AddCommand(newRunCmd(&configPath))
	cmd.AddCommand(newMenuCmd(&configPath))
	cmd.AddCommand(newWindowsCmd(&configPath))
	cmd.AddCommand(newReservationsCmd(&configPath))
	cmd.AddCommand(newRefreshVenuesCmd(&configPath))
	cmd.AddCommand(newPingCmd(&configPath))
	cmd.AddCommand(newAuthCmd(&configPath))
	cmd.AddCommand(newVersionCmd())
	return cmd
}
