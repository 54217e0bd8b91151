// Package sync propagates the bot metadata record into the bot's INI
// configuration without bumping the version or packaging anything.
package sync
