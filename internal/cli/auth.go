package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/meera-nair/mailrules/internal/email/gmail"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authenticate with Gmail",
	Long: `Auth runs the Google OAuth flow and saves the resulting token.

On first run it opens a browser; subsequent commands reuse the saved
token and refresh it automatically.`,
	RunE: runAuth,
}

func init() {
	rootCmd.AddCommand(authCmd)
}

func runAuth(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}

	if err := cfg.EnsureDirectories(); err != nil {
		return err
	}

	provider := gmail.New(cfg.Gmail.CredentialsPath, cfg.Gmail.TokenPath, log)

	if err := provider.Authenticate(ctx); err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}

	user, _ := provider.UserEmail()
	fmt.Printf("Authenticated as: %s\n", user)
	return nil
}
