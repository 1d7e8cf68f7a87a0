package cmd

import (
	"decide-backend/internal/database"
	"decide-backend/pkg/logger"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := bootstrap(); err != nil {
			return err
		}
		defer logger.Sync()

		if err := database.Migrate(database.DB); err != nil {
			return errors.Wrap(err, "failed to migrate database")
		}
		logger.Log.Info("Database migrated")
		return nil
	},
}
