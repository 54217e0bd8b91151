// Package builder runs the end-to-end release build pipeline:
// load metadata, bump the patch version, write the metadata back, sync the
// bot configuration, stage the manifest-selected files and compress them
// into the release archive.
//
// A marker file guards against two builds of the same project running at
// once; staging cleanup runs on both the success and the failure path so no
// temporary state survives a run.
package builder
