package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/storeadmin/internal/database"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the database schema",
	Long: `Creates the catalog tables and indexes if they do not exist.
Runs in a single transaction, so a failure leaves the database unchanged.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := setup()
		if err != nil {
			return err
		}

		pool, err := connect(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer pool.Close()

		if err := database.Migrate(cmd.Context(), pool); err != nil {
			return err
		}
		slog.Info("schema applied", "tables", database.Tables())
		return nil
	},
}
