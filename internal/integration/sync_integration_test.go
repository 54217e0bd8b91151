package integration

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/ini.v1"

	botconfigrepo "github.com/OpenAutomateOrg/bot-packager/internal/repository/botconfig"
	metadatarepo "github.com/OpenAutomateOrg/bot-packager/internal/repository/metadata"
	syncservice "github.com/OpenAutomateOrg/bot-packager/internal/service/sync"
)

// TestSync_UpdatesConfiguration mirrors metadata into the [bot] section
// without bumping the version.
func TestSync_UpdatesConfiguration(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	root := t.TempDir()
	writeProject(t, root, "Invoice Bot", "2.3.9")

	require.NoError(t, syncservice.Run(ctx, &syncservice.Options{ProjectRoot: root}))

	document, err := ini.Load(filepath.Join(root, "config", "config.ini"))
	require.NoError(t, err)

	section, err := document.GetSection("bot")
	require.NoError(t, err)
	require.Equal(t, "Invoice Bot", section.Key("name").String())
	require.Equal(t, "Test bot", section.Key("description").String())
	require.Equal(t, "2.3.9", section.Key("version").String())

	// The metadata version is untouched by a sync.
	meta, err := metadatarepo.NewFileRepository(filepath.Join(root, "bot.json")).Load(ctx)
	require.NoError(t, err)
	require.Equal(t, "2.3.9", meta.Version)
}

// TestSync_MissingFiles reports which file is absent.
func TestSync_MissingFiles(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	// No metadata file.
	root := t.TempDir()

	err := syncservice.Run(ctx, &syncservice.Options{ProjectRoot: root})
	require.ErrorIs(t, err, metadatarepo.ErrNotFound)
	require.ErrorContains(t, err, "bot.json")

	// Metadata present, configuration absent.
	root = t.TempDir()
	writeProject(t, root, "Bot", "1.0.0")
	require.NoError(t, os.Remove(filepath.Join(root, "config", "config.ini")))

	err = syncservice.Run(ctx, &syncservice.Options{ProjectRoot: root})
	require.ErrorIs(t, err, botconfigrepo.ErrNotFound)
	require.ErrorContains(t, err, "config.ini")
}
