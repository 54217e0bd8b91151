package builder

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/OpenAutomateOrg/bot-packager/internal/config"
	"github.com/OpenAutomateOrg/bot-packager/internal/domain/release"
	"github.com/OpenAutomateOrg/bot-packager/internal/logger"
	"github.com/OpenAutomateOrg/bot-packager/internal/repository/botconfig"
	"github.com/OpenAutomateOrg/bot-packager/internal/repository/metadata"
	"github.com/OpenAutomateOrg/bot-packager/internal/service/archive"
	"github.com/OpenAutomateOrg/bot-packager/internal/service/staging"
)

// Options contains inputs for the build entry point.
type Options struct {
	// ProjectRoot is the bot project directory. Every path below resolves against it.
	ProjectRoot string
	// ConfigPath is an optional path to the packager settings YAML.
	ConfigPath string
	// MetadataFile overrides the metadata path from the settings when non-empty.
	MetadataFile string
	// BotConfigFile overrides the bot configuration path from the settings when non-empty.
	BotConfigFile string
}

// builder holds the resolved collaborators for one build run.
// It is unexported—callers should use Run, which encapsulates setup and validation.
type builder struct {
	// cfg holds the packager settings, including the staging manifest.
	cfg *config.Config
	// projectRoot is the cleaned bot project directory.
	projectRoot string
	// metadataRepo reads and writes the bot metadata record.
	metadataRepo *metadata.FileRepository
	// botConfig syncs metadata fields into the bot configuration.
	botConfig *botconfig.File
}

// outputDirMode is used when creating a missing output directory.
const outputDirMode os.FileMode = 0o755

// errBuildRunning indicates that another build of this project is in progress.
var errBuildRunning = errors.New("another build is running now")

// Run executes the build workflow.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "bot-packager")

	b, err := newBuilder(ctx, opts)
	if err != nil {
		return fmt.Errorf("initialize builder: %w", err)
	}

	defer removeMarker(b.projectRoot)

	if err = b.Run(ctx); err != nil {
		return fmt.Errorf("build failed: %w", err)
	}

	return nil
}

// newBuilder resolves settings and collaborators and claims the build marker.
func newBuilder(ctx context.Context, opts *Options) (*builder, error) {
	projectRoot := opts.ProjectRoot
	if projectRoot == "" {
		projectRoot = "."
	}

	projectRoot = filepath.Clean(projectRoot)

	cfg, err := config.LoadOrDefault(resolvePath(projectRoot, opts.ConfigPath, config.DefaultConfigFilename))
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	if opts.MetadataFile != "" {
		cfg.MetadataFile = opts.MetadataFile
	}

	if opts.BotConfigFile != "" {
		cfg.BotConfigFile = opts.BotConfigFile
	}

	if IsBuildRunningNow(ctx, projectRoot) {
		return nil, errBuildRunning
	}

	if err = placeMarker(projectRoot); err != nil {
		return nil, fmt.Errorf("place build marker: %w", err)
	}

	return &builder{
		cfg:          cfg,
		projectRoot:  projectRoot,
		metadataRepo: metadata.NewFileRepository(resolvePath(projectRoot, cfg.MetadataFile, "")),
		botConfig:    botconfig.NewFile(resolvePath(projectRoot, cfg.BotConfigFile, "")),
	}, nil
}

// Run drives the pipeline. Staging cleanup is unconditional.
func (b *builder) Run(ctx context.Context) error {
	meta, err := b.metadataRepo.Load(ctx)
	if err != nil {
		return fmt.Errorf("load metadata: %w", err)
	}

	version, err := release.ParseVersion(meta.Version)
	if err != nil {
		return fmt.Errorf("parse version: %w", err)
	}

	meta.Version = version.BumpPatch().String()

	logger.InfoKV(ctx, "Bumping version",
		"previous", version.String(), "next", meta.Version)

	if err = b.metadataRepo.Save(ctx, meta); err != nil {
		return fmt.Errorf("write metadata: %w", err)
	}

	if err = b.botConfig.Sync(ctx, meta); err != nil {
		return fmt.Errorf("sync configuration: %w", err)
	}

	stagingDir := filepath.Join(b.projectRoot, b.cfg.StagingDir)

	// The staging directory never outlives the run, success or failure.
	defer func() {
		_ = os.RemoveAll(stagingDir)
	}()

	collector := staging.NewCollector(b.projectRoot, b.cfg.Staging, b.cfg.MetadataFile)

	staged, err := collector.Collect(ctx, stagingDir)
	if err != nil {
		return fmt.Errorf("stage files: %w", err)
	}

	logger.InfoKV(ctx, "Staged project files", "files", staged)

	outputDir := resolvePath(b.projectRoot, b.cfg.OutputDir, ".")
	if err = os.MkdirAll(outputDir, outputDirMode); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	archivePath := filepath.Join(outputDir, meta.ArchiveName())

	entries, err := archive.Build(ctx, stagingDir, archivePath)
	if err != nil {
		return fmt.Errorf("create archive: %w", err)
	}

	logger.InfoKV(ctx, "Build completed successfully",
		"archive", archivePath, "version", meta.Version, "entries", entries)

	return nil
}

// resolvePath joins a possibly relative path with the project root,
// substituting a fallback when the path is empty.
func resolvePath(projectRoot, path, fallback string) string {
	if path == "" {
		path = fallback
	}

	if path == "" || filepath.IsAbs(path) {
		return path
	}

	return filepath.Join(projectRoot, path)
}
