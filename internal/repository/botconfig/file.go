package botconfig

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/ini.v1"

	"github.com/OpenAutomateOrg/bot-packager/internal/domain/release"
)

// SectionName is the configuration section mirroring the metadata record.
// Lookup is case-sensitive.
const SectionName = "bot"

var (
	// ErrNotFound is returned when the configuration file does not exist.
	ErrNotFound = errors.New("bot configuration file not found")
	// ErrMissingSection is returned when the configuration has no [bot] section.
	ErrMissingSection = errors.New("bot configuration has no [bot] section")
)

//nolint:gochecknoinits // Library-level formatting switch, set once.
func init() {
	// Keep written files as plain "key = value" lines: no key padding to
	// align the equals signs, but still a single space around them.
	ini.PrettyFormat = false
	ini.PrettyEqual = true
}

// File syncs metadata fields into an INI configuration file on disk.
type File struct {
	// path is the filesystem location of the INI configuration file.
	path string
}

// NewFile creates a synchronizer for the configuration at the provided path.
func NewFile(path string) *File {
	return &File{
		path: filepath.Clean(path),
	}
}

// Path returns the cleaned location of the configuration file.
func (f *File) Path() string {
	return f.path
}

// Sync writes the metadata record's name, description and version into the
// [bot] section and saves the file. Parsing and mutation happen in memory;
// the file is rewritten in a single final operation.
func (f *File) Sync(_ context.Context, meta *release.Metadata) error {
	if _, err := os.Stat(f.path); errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrNotFound, f.path)
	} else if err != nil {
		return fmt.Errorf("stat configuration file: %w", err)
	}

	document, err := ini.Load(f.path)
	if err != nil {
		return fmt.Errorf("parse configuration file: %w", err)
	}

	section, err := document.GetSection(SectionName)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrMissingSection, f.path)
	}

	section.Key("name").SetValue(meta.Name)
	section.Key("description").SetValue(meta.Description)
	section.Key("version").SetValue(meta.Version)

	if err = document.SaveTo(f.path); err != nil {
		return fmt.Errorf("write configuration file: %w", err)
	}

	return nil
}
