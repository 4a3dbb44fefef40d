package cmd

import (
	"fmt"
	"log"
	"os"

	"pilgrimage-booking/pkg/utils"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "pilgrimage-booking",
		Short:         "Pilgrimage booking ledger and room allocation service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		ServeCmd(),
		MigrateCmd(),
	)
	return rootCmd
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads config and builds the logger shared by every command.
func setup() (*utils.Config, *zap.Logger, error) {
	config, err := utils.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	return config, logger, nil
}
