// Package release contains core domain types for the packaging business logic.
//
// It defines Version (a three-part semantic version with patch bumping) and
// Metadata (the name/description/version record describing a packaged bot),
// plus the archive naming rules derived from them.
package release
