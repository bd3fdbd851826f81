package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/example/resy-agent/internal/infrastructure/googleauth"
)

func newAuthCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "auth",
		Short: "Authorize Google Calendar, Sheets and Gmail access and save the token",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Only the OAuth client is needed here; the full config may not
			// validate yet on first setup.
			_ = godotenv.Load()
			clientID := strings.TrimSpace(os.Getenv("GOOGLE_CLIENT_ID"))
			clientSecret := strings.TrimSpace(os.Getenv("GOOGLE_CLIENT_SECRET"))
			if clientID == "" || clientSecret == "" {
				return fmt.Errorf("GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET must be set")
			}
			tokenFile := strings.TrimSpace(os.Getenv("TOKEN_FILE"))
			if tokenFile == "" {
				tokenFile = "token.json"
			}
			if err := googleauth.Authorize(cmd.Context(), clientID, clientSecret, tokenFile); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "token saved to %s\n", tokenFile)
			return nil
		},
	}
}
