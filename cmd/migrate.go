package cmd

import (
	"pilgrimage-booking/internal/data/schema"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func MigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			dryRun, _ := cmd.Flags().GetBool("dry-run")

			config, logger, err := setup()
			if err != nil {
				return err
			}
			defer logger.Sync()

			if dryRun {
				for _, model := range schema.Models {
					logger.Info("Would migrate", zap.String("model", schema.ModelName(model)))
				}
				return nil
			}

			db, err := schema.Open(config.Database.DSN())
			if err != nil {
				logger.Error("Failed to open schema connection", zap.Error(err))
				return err
			}
			sqlDB, err := db.DB()
			if err == nil {
				defer sqlDB.Close()
			}

			if err := schema.Migrate(db, logger); err != nil {
				return err
			}
			logger.Info("Schema up to date", zap.Int("tables", len(schema.Models)))
			return nil
		},
	}

	cmd.Flags().Bool("dry-run", false, "List the tables without touching the database")
	return cmd
}
