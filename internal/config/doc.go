// Package config defines packager settings used by the binaries and provides
// helpers to load, validate and save them in YAML format.
//
// The Config type holds the metadata and bot configuration file paths plus
// the staging manifest describing which project files get packaged.
package config
