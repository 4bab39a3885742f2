package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/tickdup/internal/adapters/ticktick"
	"github.com/example/tickdup/internal/wire"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Obtain a TickTick access token via OAuth",
	Long: `Walk through the TickTick OAuth flow.

Without --code, prints the authorization URL to visit. With --code,
exchanges the authorization code for an access token.

Requires TICKTICK_CLIENT_ID and TICKTICK_CLIENT_SECRET.

Examples:
  tickdup auth                       # print the authorization URL
  tickdup auth --code abc123         # exchange a code for a token`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := wire.Config()
		if cfg.ClientID == "" || cfg.ClientSecret == "" {
			return fmt.Errorf("TICKTICK_CLIENT_ID and TICKTICK_CLIENT_SECRET are required for the OAuth flow")
		}

		redirectURI, _ := cmd.Flags().GetString("redirect-uri")
		code, _ := cmd.Flags().GetString("code")

		if code == "" {
			fmt.Println("Visit the following URL, grant access, and re-run with --code:")
			fmt.Println()
			fmt.Println("  " + ticktick.AuthorizeURL(cfg.ClientID, redirectURI))
			return nil
		}

		token, err := ticktick.ExchangeCode(context.Background(), cfg.ClientID, cfg.ClientSecret, code, redirectURI)
		if err != nil {
			return fmt.Errorf("token exchange failed: %w", err)
		}

		fmt.Println("✓ Access token obtained")
		fmt.Printf("  Set %s to:\n\n  %s\n", "TICKTICK_ACCESS_TOKEN", token.AccessToken)
		if token.ExpiresIn > 0 {
			fmt.Printf("\n  Expires in %d seconds.\n", token.ExpiresIn)
		}
		return nil
	},
}

func init() {
	authCmd.Flags().String("code", "", "Authorization code from the OAuth redirect")
	authCmd.Flags().String("redirect-uri", "http://localhost", "Redirect URI registered with the OAuth app")
}

// AuthCmd returns the auth command.
func AuthCmd() *cobra.Command {
	return authCmd
}
