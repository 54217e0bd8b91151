// Package archive compresses the staging directory into the release zip.
//
// Entry names are relative to the staging root, so unpacking the archive
// reproduces the project layout without a leading staging segment.
package archive
