package sync

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/OpenAutomateOrg/bot-packager/internal/config"
	"github.com/OpenAutomateOrg/bot-packager/internal/logger"
	"github.com/OpenAutomateOrg/bot-packager/internal/repository/botconfig"
	"github.com/OpenAutomateOrg/bot-packager/internal/repository/metadata"
)

// Options contains inputs for the sync entry point.
type Options struct {
	// ProjectRoot is the bot project directory relative paths resolve against.
	ProjectRoot string
	// MetadataFile is the metadata JSON path (defaults to bot.json).
	MetadataFile string
	// BotConfigFile is the bot configuration path (defaults to config/config.ini).
	BotConfigFile string
}

// Run loads the metadata record and writes its fields into the [bot] section
// of the configuration file.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "bot-sync")

	projectRoot := opts.ProjectRoot
	if projectRoot == "" {
		projectRoot = "."
	}

	metadataPath := resolvePath(projectRoot, opts.MetadataFile, config.DefaultMetadataFilename)
	botConfigPath := resolvePath(projectRoot, opts.BotConfigFile, config.DefaultBotConfigFilename)

	meta, err := metadata.NewFileRepository(metadataPath).Load(ctx)
	if err != nil {
		return fmt.Errorf("load metadata: %w", err)
	}

	if err = botconfig.NewFile(botConfigPath).Sync(ctx, meta); err != nil {
		return fmt.Errorf("sync configuration: %w", err)
	}

	logger.InfoKV(ctx, "Configuration synced with metadata",
		"name", meta.Name, "version", meta.Version, "config", botConfigPath)

	return nil
}

// resolvePath joins a possibly relative path with the project root,
// substituting a fallback when the path is empty.
func resolvePath(projectRoot, path, fallback string) string {
	if path == "" {
		path = fallback
	}

	if filepath.IsAbs(path) {
		return path
	}

	return filepath.Join(projectRoot, path)
}
