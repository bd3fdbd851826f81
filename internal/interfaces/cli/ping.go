package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/resy-agent/internal/application/usecases"
)

func newPingCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check platform credentials by calling an authenticated endpoint",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()
			uc := usecases.PingProvider{Provider: a.provider}
			if err := uc.Execute(ctx); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", a.provider.Name())
			return nil
		},
	}
}
