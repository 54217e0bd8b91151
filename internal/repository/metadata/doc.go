// Package metadata persists the bot metadata record as a JSON file.
//
// The record is parsed structurally and written back as a whole, so a
// version literal appearing inside the description can never be clobbered
// by a version bump.
package metadata
