// Package staging collects the files selected for packaging into an
// ephemeral staging directory.
//
// Selection is driven by the staging manifest from the packager settings:
// glob patterns for files directly under the project root plus a list of
// subdirectories copied recursively. The staging directory is recreated
// from scratch on every run and removed by the build pipeline afterwards.
package staging
