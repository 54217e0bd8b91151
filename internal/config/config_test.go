package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestValidate checks required fields and defaulting for packager settings.
func TestValidate(t *testing.T) {
	t.Parallel()

	// Missing metadata path.
	cfg := new(Config)

	err := Validate(cfg)
	require.Error(t, err)

	// Missing bot config path.
	cfg = &Config{
		MetadataFile: "bot.json",
	}

	err = Validate(cfg)
	require.Error(t, err)

	// Staging directory escaping the project root.
	cfg = &Config{
		MetadataFile:  "bot.json",
		BotConfigFile: "config/config.ini",
		StagingDir:    "../elsewhere",
	}

	err = Validate(cfg)
	require.Error(t, err)

	// Okay; staging defaults filled in.
	cfg = &Config{
		MetadataFile:  "bot.json",
		BotConfigFile: "config/config.ini",
	}

	err = Validate(cfg)
	require.NoError(t, err)
	require.Equal(t, DefaultStagingDirname, cfg.StagingDir)
	require.Contains(t, cfg.Staging.RootPatterns, "*.json")
	require.Contains(t, cfg.Staging.Directories, "config")
}

// TestSaveLoadRoundtrip ensures settings are persisted and loaded back correctly.
func TestSaveLoadRoundtrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")

	cfg := &Config{
		MetadataFile:  "bot.json",
		BotConfigFile: "config/config.ini",
		StagingDir:    "build-staging",
		Staging: Manifest{
			RootPatterns: []string{"*.py"},
			Directories:  []string{"tasks"},
		},
	}

	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, cfg.MetadataFile, loaded.MetadataFile)
	require.Equal(t, cfg.StagingDir, loaded.StagingDir)
	require.Equal(t, cfg.Staging, loaded.Staging)

	// File exists.
	_, err = os.Stat(path)
	require.NoError(t, err)
}

// TestLoadOrDefault falls back to defaults when no settings file exists.
func TestLoadOrDefault(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	cfg, err := LoadOrDefault(filepath.Join(dir, "missing.yaml"))
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}
