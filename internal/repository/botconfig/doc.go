// Package botconfig syncs the bot metadata record into the bot's INI
// configuration file.
//
// The file is parsed structurally; only the name, description and version
// keys of the [bot] section are mutated, and every other section, key and
// comment survives the round trip.
package botconfig
