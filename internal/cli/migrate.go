package cli

import (
	"fmt"

	"catalog/internal/database"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the catalog tables",
	Long:  "Applies the catalog schema to the configured SQL database",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := setup()
		if err != nil {
			return err
		}
		if cfg.DatabaseDriver == "memory" {
			return fmt.Errorf("nothing to migrate for the memory driver")
		}
		db, err := database.Open(database.Config{
			Driver:      cfg.DatabaseDriver,
			DSN:         cfg.DatabaseDSN,
			AutoMigrate: true,
			Logger:      log,
		})
		if err != nil {
			return err
		}
		if sqlDB, err := db.DB(); err == nil {
			defer sqlDB.Close()
		}
		log.Info().Str("driver", cfg.DatabaseDriver).Msg("schema is up to date")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
