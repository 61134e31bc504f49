package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/meera-nair/mailrules/internal/database"
	"github.com/meera-nair/mailrules/internal/email/gmail"
)

var fetchMax int

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch recent emails into the local database",
	Long: `Fetch downloads recent messages from Gmail and stores them in the
local SQLite database. Messages already stored are skipped.

Examples:
  mailrules fetch            # fetch with the configured max_results
  mailrules fetch --max 20   # fetch at most 20 messages`,
	RunE: runFetch,
}

func init() {
	rootCmd.AddCommand(fetchCmd)
	fetchCmd.Flags().IntVar(&fetchMax, "max", 0, "Maximum messages to fetch (default: gmail.max_results)")
}

func runFetch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}

	if err := cfg.EnsureDirectories(); err != nil {
		return err
	}

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	provider := gmail.New(cfg.Gmail.CredentialsPath, cfg.Gmail.TokenPath, log)
	if err := provider.Authenticate(ctx); err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}

	limit := cfg.Gmail.MaxResults
	if fetchMax > 0 {
		limit = fetchMax
	}

	msgs, err := provider.Fetch(ctx, limit)
	if err != nil {
		return fmt.Errorf("fetch failed: %w", err)
	}

	inserted, err := db.InsertEmails(ctx, msgs)
	if err != nil {
		return fmt.Errorf("failed to store emails: %w", err)
	}

	fmt.Println("Fetch complete:")
	fmt.Printf("  Messages fetched: %d\n", len(msgs))
	fmt.Printf("  Newly stored:     %d\n", inserted)
	fmt.Printf("  Already known:    %d\n", len(msgs)-inserted)

	return nil
}
