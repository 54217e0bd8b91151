package archive

import (
	"archive/zip"
	"context"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

// writeFile creates a file with parent directories as needed.
func writeFile(t *testing.T, path, contents string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
}

// entryNames lists the entries of a zip archive in sorted order.
func entryNames(t *testing.T, path string) []string {
	t.Helper()

	reader, err := zip.OpenReader(path)
	require.NoError(t, err)

	defer func() {
		require.NoError(t, reader.Close())
	}()

	names := make([]string, 0, len(reader.File))
	for _, file := range reader.File {
		names = append(names, file.Name)
	}

	sort.Strings(names)

	return names
}

// TestBuildRelativeEntries checks entry names carry no staging prefix.
func TestBuildRelativeEntries(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	stagingDir := filepath.Join(dir, "staging")
	writeFile(t, filepath.Join(stagingDir, "bot.json"), "{}")
	writeFile(t, filepath.Join(stagingDir, "config", "config.ini"), "[bot]\n")

	outputPath := filepath.Join(dir, "out.zip")

	entries, err := Build(context.Background(), stagingDir, outputPath)
	require.NoError(t, err)
	require.Equal(t, 2, entries)

	require.Equal(t, []string{"bot.json", "config/config.ini"}, entryNames(t, outputPath))
}

// TestBuildOverwritesExistingArchive replaces an archive of the same name.
func TestBuildOverwritesExistingArchive(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	stagingDir := filepath.Join(dir, "staging")
	writeFile(t, filepath.Join(stagingDir, "only.txt"), "v2")

	outputPath := filepath.Join(dir, "out.zip")
	require.NoError(t, os.WriteFile(outputPath, []byte("not a zip"), 0o600))

	_, err := Build(context.Background(), stagingDir, outputPath)
	require.NoError(t, err)

	require.Equal(t, []string{"only.txt"}, entryNames(t, outputPath))
}

// TestBuildMissingStagingDir fails and leaves no partial archive behind.
func TestBuildMissingStagingDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	outputPath := filepath.Join(dir, "out.zip")

	_, err := Build(context.Background(), filepath.Join(dir, "missing"), outputPath)
	require.Error(t, err)

	_, err = os.Stat(outputPath)
	require.ErrorIs(t, err, os.ErrNotExist)
}
