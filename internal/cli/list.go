package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/meera-nair/mailrules/internal/database"
	"github.com/meera-nair/mailrules/internal/output"
)

var (
	listRead   bool
	listUnread bool
	listLimit  int
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List locally stored emails",
	Long: `List shows the emails stored by 'fetch', newest first.

Examples:
  mailrules list             # all stored emails
  mailrules list --unread    # only unread
  mailrules list --read      # only read
  mailrules list -o json     # JSON output`,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listRead, "read", false, "Show only read emails")
	listCmd.Flags().BoolVar(&listUnread, "unread", false, "Show only unread emails")
	listCmd.Flags().IntVar(&listLimit, "limit", 0, "Maximum rows to show")
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if listRead && listUnread {
		return fmt.Errorf("--read and --unread are mutually exclusive")
	}

	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	opts := database.ListOptions{Limit: listLimit}
	if listRead {
		read := true
		opts.ReadStatus = &read
	}
	if listUnread {
		unread := false
		opts.ReadStatus = &unread
	}

	emails, err := db.ListEmails(ctx, opts)
	if err != nil {
		return fmt.Errorf("failed to list emails: %w", err)
	}

	return output.Output(outputFmt, emails)
}
