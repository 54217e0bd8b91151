package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

// Manifest describes which project files are collected into the staging
// directory before archiving. Patterns apply to files directly under the
// project root; directories are copied recursively when present.
type Manifest struct {
	// RootPatterns are glob patterns matched against file names in the project root.
	RootPatterns []string `yaml:"root_patterns"`
	// Directories are project subdirectories staged recursively.
	// A listed directory that does not exist is skipped, not an error.
	Directories []string `yaml:"directories"`
}

// Config holds packager settings shared by the bot-packager binaries.
type Config struct {
	// MetadataFile is the path to the bot metadata JSON, relative to the project root.
	MetadataFile string `yaml:"metadata_file"`
	// BotConfigFile is the path to the bot INI configuration, relative to the project root.
	BotConfigFile string `yaml:"bot_config_file"`
	// StagingDir is the name of the ephemeral staging directory under the project root.
	StagingDir string `yaml:"staging_dir"`
	// OutputDir is where the release archive is written.
	// Empty means the project root.
	OutputDir string `yaml:"output_dir,omitempty"`
	// Staging selects the files to package.
	Staging Manifest `yaml:"staging"`
}

const (
	// DefaultConfigFilename is the default filename for packager settings.
	DefaultConfigFilename = "bot-packager-settings.yaml"

	// DefaultMetadataFilename is the default bot metadata JSON path.
	DefaultMetadataFilename = "bot.json"

	// DefaultBotConfigFilename is the default bot INI configuration path.
	DefaultBotConfigFilename = "config/config.ini"

	// DefaultStagingDirname is the default staging directory name.
	DefaultStagingDirname = "staging"

	// DefaultFilePermissions is the default file permission for settings files.
	DefaultFilePermissions = 0o600
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errMetadataFileRequired is returned when the metadata file path is missing.
	errMetadataFileRequired = errors.New("metadata file path must be provided")
	// errBotConfigFileRequired is returned when the bot configuration path is missing.
	errBotConfigFileRequired = errors.New("bot configuration file path must be provided")
	// errBadStagingDir is returned when the staging directory name escapes the project root.
	errBadStagingDir = errors.New("staging directory must be a plain name under the project root")
)

// Default returns settings with all fields set to their default values.
func Default() *Config {
	return &Config{
		MetadataFile:  DefaultMetadataFilename,
		BotConfigFile: DefaultBotConfigFilename,
		StagingDir:    DefaultStagingDirname,
		Staging: Manifest{
			RootPatterns: []string{"*.py", "*.json", "*.txt", "*.md"},
			Directories:  []string{"config", "framework", "examples", "tasks"},
		},
	}
}

// Load reads configuration from the provided path and validates essential fields.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadOrDefault reads configuration from the provided path,
// falling back to defaults when the file does not exist.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}

	return cfg, err
}

// Save writes settings to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	// Restrict permissions.
	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate checks the provided settings for required fields and fills defaults.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if cfg.MetadataFile == "" {
		return errMetadataFileRequired
	}

	if cfg.BotConfigFile == "" {
		return errBotConfigFileRequired
	}

	// Set default staging directory if not specified
	if cfg.StagingDir == "" {
		cfg.StagingDir = DefaultStagingDirname
	}

	if strings.ContainsAny(cfg.StagingDir, `/\`) || cfg.StagingDir == "." || cfg.StagingDir == ".." {
		return fmt.Errorf("%w: %q", errBadStagingDir, cfg.StagingDir)
	}

	// Set default manifest if not specified
	if len(cfg.Staging.RootPatterns) == 0 && len(cfg.Staging.Directories) == 0 {
		cfg.Staging = Default().Staging
	}

	for _, pattern := range cfg.Staging.RootPatterns {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("invalid staging pattern: %q", pattern)
		}
	}

	return nil
}
