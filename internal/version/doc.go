// Package version exposes build metadata injected via ldflags and attaches
// a cobra `version` subcommand to the packager binaries.
package version
