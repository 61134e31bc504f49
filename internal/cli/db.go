package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/meera-nair/mailrules/internal/database"
)

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Manage the local database",
}

var dbResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete and recreate the local database",
	RunE:  runDBReset,
}

func init() {
	rootCmd.AddCommand(dbCmd)
	dbCmd.AddCommand(dbResetCmd)
}

func runDBReset(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := database.Reset(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to reset database: %w", err)
	}
	defer db.Close()

	fmt.Printf("Recreated database at %s\n", cfg.Database.Path)
	return nil
}
