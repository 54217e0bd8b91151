package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/OpenAutomateOrg/bot-packager/internal/config"
	"github.com/OpenAutomateOrg/bot-packager/internal/logger"
	syncservice "github.com/OpenAutomateOrg/bot-packager/internal/service/sync"
	"github.com/OpenAutomateOrg/bot-packager/internal/version"
)

var (
	// projectRoot is the bot project directory to sync.
	projectRoot string

	// metadataFile is the metadata JSON path.
	metadataFile string

	// botConfigFile is the bot configuration path.
	botConfigFile string

	// logLevel controls logging verbosity.
	logLevel string

	// rootCmd represents the base command for syncing metadata into the bot configuration.
	rootCmd = &cobra.Command{
		Use:   "bot-sync",
		Short: "Sync bot metadata fields into the bot configuration file",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			if level, ok := logger.ParseLogLevel(logLevel); ok {
				logger.SetLevel(level)
			}

			options := &syncservice.Options{
				ProjectRoot:   projectRoot,
				MetadataFile:  metadataFile,
				BotConfigFile: botConfigFile,
			}

			return syncservice.Run(ctx, options)
		},
	}
)

// Execute runs the bot-sync CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup command flags with consistent naming and descriptions.
	rootCmd.Flags().StringVarP(&projectRoot, "project-root", "p", ".", "path to the bot project directory")
	rootCmd.Flags().StringVarP(&metadataFile, "metadata", "m", config.DefaultMetadataFilename, "path to the metadata JSON file")
	rootCmd.Flags().StringVarP(&botConfigFile, "bot-config", "b", config.DefaultBotConfigFilename, "path to the bot configuration file")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "info", "logging level (debug, info, warn, error)")
}
