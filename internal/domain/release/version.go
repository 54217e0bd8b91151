package release

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// versionParts is the required number of dot-separated version components.
const versionParts = 3

// ErrVersionFormat indicates a version string that is not three dot-separated
// non-negative integers.
var ErrVersionFormat = errors.New("version must be three dot-separated non-negative integers")

// Version is a parsed major.minor.patch version.
type Version struct {
	// Major is the first version component.
	Major int
	// Minor is the second version component.
	Minor int
	// Patch is the third version component, incremented on every build.
	Patch int
}

// ParseVersion splits a version string on "." into exactly three
// non-negative integer components.
func ParseVersion(s string) (Version, error) {
	parts := strings.Split(s, ".")
	if len(parts) != versionParts {
		return Version{}, fmt.Errorf("%w: %q", ErrVersionFormat, s)
	}

	numbers := make([]int, 0, versionParts)

	for _, part := range parts {
		// Atoi alone would admit signed components like "+1".
		if part == "" || strings.Trim(part, "0123456789") != "" {
			return Version{}, fmt.Errorf("%w: %q", ErrVersionFormat, s)
		}

		n, err := strconv.Atoi(part)
		if err != nil {
			return Version{}, fmt.Errorf("%w: %q", ErrVersionFormat, s)
		}

		numbers = append(numbers, n)
	}

	return Version{
		Major: numbers[0],
		Minor: numbers[1],
		Patch: numbers[2],
	}, nil
}

// BumpPatch returns a copy of the version with the patch component
// incremented. Major and minor are never altered.
func (v Version) BumpPatch() Version {
	v.Patch++

	return v
}

// String renders the version as "major.minor.patch".
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}
