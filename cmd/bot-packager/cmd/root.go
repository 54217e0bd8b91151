package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/OpenAutomateOrg/bot-packager/internal/config"
	"github.com/OpenAutomateOrg/bot-packager/internal/logger"
	"github.com/OpenAutomateOrg/bot-packager/internal/service/builder"
	"github.com/OpenAutomateOrg/bot-packager/internal/version"
)

var (
	// projectRoot is the bot project directory to build.
	projectRoot string

	// configPath to the packager settings YAML file.
	configPath string

	// metadataFile optionally overrides the metadata JSON path.
	metadataFile string

	// botConfigFile optionally overrides the bot configuration path.
	botConfigFile string

	// logLevel controls logging verbosity.
	logLevel string

	// rootCmd represents the base command for building a release archive.
	rootCmd = &cobra.Command{
		Use:   "bot-packager",
		Short: "Bump the bot version, sync its configuration and package a release archive",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			if level, ok := logger.ParseLogLevel(logLevel); ok {
				logger.SetLevel(level)
			}

			options := &builder.Options{
				ProjectRoot:   projectRoot,
				ConfigPath:    configPath,
				MetadataFile:  metadataFile,
				BotConfigFile: botConfigFile,
			}

			return builder.Run(ctx, options)
		},
	}
)

// Execute runs the bot-packager CLI and exits with non-zero status on error.
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
	rootCmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to packager settings file")
	rootCmd.Flags().StringVarP(&metadataFile, "metadata", "m", "", "override for the metadata JSON path")
	rootCmd.Flags().StringVarP(&botConfigFile, "bot-config", "b", "", "override for the bot configuration path")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "info", "logging level (debug, info, warn, error)")
}
