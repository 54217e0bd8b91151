package release

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestParseVersion verifies parsing of well-formed versions and rejection of malformed ones.
func TestParseVersion(t *testing.T) {
	t.Parallel()

	v, err := ParseVersion("1.0.0")
	require.NoError(t, err)
	require.Equal(t, Version{Major: 1, Minor: 0, Patch: 0}, v)

	v, err = ParseVersion("2.3.9")
	require.NoError(t, err)
	require.Equal(t, Version{Major: 2, Minor: 3, Patch: 9}, v)

	for _, bad := range []string{"", "1.0", "1.0.0.0", "1.x.0", "1..0", "1.0.-1", "1.0.+1", "v1.0.0"} {
		_, err = ParseVersion(bad)
		require.ErrorIs(t, err, ErrVersionFormat, "input %q", bad)
	}
}

// TestBumpPatch checks that only the patch component changes and there is no carry.
func TestBumpPatch(t *testing.T) {
	t.Parallel()

	v, err := ParseVersion("1.0.0")
	require.NoError(t, err)
	require.Equal(t, "1.0.1", v.BumpPatch().String())

	v, err = ParseVersion("2.3.9")
	require.NoError(t, err)
	require.Equal(t, "2.3.10", v.BumpPatch().String())

	// Bumping twice adds exactly two; major and minor are untouched.
	bumped := v.BumpPatch().BumpPatch()
	require.Equal(t, v.Major, bumped.Major)
	require.Equal(t, v.Minor, bumped.Minor)
	require.Equal(t, v.Patch+2, bumped.Patch)
}
