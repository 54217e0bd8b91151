package release

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNameRequired indicates a metadata record without a bot name.
var ErrNameRequired = errors.New("bot name must not be empty")

// Metadata is the record describing a packaged bot.
// It is the single source of truth the bot configuration is synced from.
type Metadata struct {
	// Name is the human-readable bot name.
	Name string `json:"name"`
	// Description is free-text describing what the bot does.
	Description string `json:"description"`
	// Version is the current three-part version string.
	Version string `json:"version"`
}

// Validate checks the record for required fields and version format.
func (m *Metadata) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return ErrNameRequired
	}

	if _, err := ParseVersion(m.Version); err != nil {
		return err
	}

	return nil
}

// ArchiveName computes the release archive filename for the record:
// the sanitized bot name joined with the version, e.g. "My_Bot.1.0.1.zip".
func (m *Metadata) ArchiveName() string {
	return fmt.Sprintf("%s.%s.zip", SanitizeName(m.Name), m.Version)
}

// SanitizeName maps a bot name to a filename-safe base:
// spaces become underscores and the characters ()[] are stripped.
func SanitizeName(name string) string {
	var builder strings.Builder

	builder.Grow(len(name))

	for _, r := range name {
		switch r {
		case ' ':
			builder.WriteRune('_')
		case '(', ')', '[', ']':
		default:
			builder.WriteRune(r)
		}
	}

	return builder.String()
}
