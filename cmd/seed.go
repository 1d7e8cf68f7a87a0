package cmd

import (
	"decide-backend/internal/database"
	"decide-backend/internal/services"
	"decide-backend/pkg/logger"
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
)

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load reference data",
}

var seedPromptsCmd = &cobra.Command{
	Use:   "prompts",
	Short: "Upsert the prompt catalog",
	Long: `Upsert the prompt catalog by slug.

Without --file the built-in catalog (is_urgent, is_important) is used.

Examples:
  decide-backend seed prompts
  decide-backend seed prompts --file catalog.yaml`,
	RunE: runSeedPrompts,
}

func init() {
	seedPromptsCmd.Flags().StringVarP(&seedFile, "file", "f", "", "YAML catalog file")
	seedCmd.AddCommand(seedPromptsCmd)
}

func runSeedPrompts(cmd *cobra.Command, args []string) error {
	if _, err := bootstrap(); err != nil {
		return err
	}
	defer logger.Sync()

	if err := database.Migrate(database.DB); err != nil {
		return errors.Wrap(err, "failed to migrate database")
	}

	entries, err := services.DefaultCatalog()
	if seedFile != "" {
		entries, err = services.LoadCatalogFile(seedFile)
	}
	if err != nil {
		return err
	}

	created, updated, err := services.SeedCatalog(cmd.Context(), entries)
	if err != nil {
		return errors.Wrap(err, "failed to seed prompts")
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Prompts seeded: %d created, %d updated\n", created, updated)
	return nil
}
