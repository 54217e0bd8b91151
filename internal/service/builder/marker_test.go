package builder

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestIsBuildRunningNow covers the fresh-marker, no-marker and stale-marker cases.
func TestIsBuildRunningNow(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	root := t.TempDir()

	// No marker.
	require.False(t, IsBuildRunningNow(ctx, root))

	// Fresh marker blocks a second run.
	require.NoError(t, placeMarker(root))
	require.True(t, IsBuildRunningNow(ctx, root))

	// Stale marker is cleaned up and no longer blocks.
	markerPath := filepath.Join(root, MarkerFilename)
	old := time.Now().Add(-2 * markerLifetime)
	require.NoError(t, os.Chtimes(markerPath, old, old))
	require.False(t, IsBuildRunningNow(ctx, root))

	_, err := os.Stat(markerPath)
	require.ErrorIs(t, err, os.ErrNotExist)
}

// TestRemoveMarker tolerates a missing marker.
func TestRemoveMarker(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	removeMarker(root)

	require.NoError(t, placeMarker(root))
	removeMarker(root)

	_, err := os.Stat(filepath.Join(root, MarkerFilename))
	require.ErrorIs(t, err, os.ErrNotExist)
}
