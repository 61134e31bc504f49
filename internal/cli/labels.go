package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/meera-nair/mailrules/internal/email/gmail"
	"github.com/meera-nair/mailrules/internal/output"
)

var labelsCmd = &cobra.Command{
	Use:   "labels",
	Short: "List the mailbox's labels",
	Long: `Labels shows every label in the mailbox with its provider id.
These are the names MoveTo and CreateLabel actions resolve against.`,
	RunE: runLabels,
}

func init() {
	rootCmd.AddCommand(labelsCmd)
}

func runLabels(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}

	provider := gmail.New(cfg.Gmail.CredentialsPath, cfg.Gmail.TokenPath, log)
	if err := provider.Authenticate(ctx); err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}

	mutator, err := provider.Mutator()
	if err != nil {
		return err
	}

	labels, err := mutator.ListLabels(ctx)
	if err != nil {
		return err
	}

	return output.Output(outputFmt, labels)
}
