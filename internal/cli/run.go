package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/meera-nair/mailrules/internal/database"
	"github.com/meera-nair/mailrules/internal/email"
	"github.com/meera-nair/mailrules/internal/email/gmail"
	"github.com/meera-nair/mailrules/internal/rules"
)

var (
	runMax    int
	runDryRun bool
	runLocal  bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the rule engine against your inbox",
	Long: `Run fetches messages, evaluates every rule against every message,
and applies the actions of each matching rule. All rules are checked:
a message can match and trigger actions for several rules.

Examples:
  mailrules run              # process recent messages from Gmail
  mailrules run --max 50     # bound the batch size
  mailrules run --dry-run    # log what would happen, mutate nothing
  mailrules run --local      # process unread messages from the local database`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().IntVar(&runMax, "max", 0, "Maximum messages to process (default: gmail.max_results)")
	runCmd.Flags().BoolVar(&runDryRun, "dry-run", false, "Evaluate rules but perform no mailbox mutations")
	runCmd.Flags().BoolVar(&runLocal, "local", false, "Use unread messages from the local database as the source")
}

func runRun(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}

	if err := cfg.EnsureDirectories(); err != nil {
		return err
	}

	loaded := rules.Load(cfg.Rules.Path, log)
	if cfg.Rules.Strict {
		if err := rules.Validate(loaded); err != nil {
			return fmt.Errorf("rule file failed strict validation: %w", err)
		}
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

	mutator, err := provider.Mutator()
	if err != nil {
		return err
	}

	var source email.Source = provider
	if runLocal {
		source = db
	}

	limit := cfg.Gmail.MaxResults
	if runMax > 0 {
		limit = runMax
	}

	msgs, err := source.Fetch(ctx, limit)
	if err != nil {
		return fmt.Errorf("failed to fetch messages: %w", err)
	}

	session := rules.NewSession(ctx, mutator, log, runDryRun)
	result := session.Process(ctx, msgs, loaded)

	// Mirror mark-as-read actions into the local copy
	if !runDryRun && len(result.MarkedRead) > 0 {
		if err := db.MarkRead(ctx, result.MarkedRead); err != nil {
			log.WithError(err).Warn("failed to update local read status")
		}
	}

	run := &database.Run{
		Processed: result.Processed,
		Matched:   result.Matched,
		DryRun:    runDryRun,
	}
	if err := db.RecordRun(ctx, run); err != nil {
		log.WithError(err).Warn("failed to record run")
	}

	fmt.Println()
	if runDryRun {
		fmt.Println("Dry run complete (no mailbox changes):")
	} else {
		fmt.Println("Run complete:")
	}
	fmt.Printf("  Messages processed: %d\n", result.Processed)
	fmt.Printf("  Rule matches:       %d\n", result.Matched)

	return nil
}
