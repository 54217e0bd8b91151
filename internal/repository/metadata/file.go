package metadata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/OpenAutomateOrg/bot-packager/internal/config"
	"github.com/OpenAutomateOrg/bot-packager/internal/domain/release"
)

// Repository defines persistence operations for the bot metadata record.
type Repository interface {
	Load(ctx context.Context) (*release.Metadata, error)
	Save(ctx context.Context, meta *release.Metadata) error
}

// FileRepository persists the metadata record to a JSON file on disk.
type FileRepository struct {
	// path is the filesystem location of the metadata JSON file.
	path string
	// mu protects concurrent access to the metadata file.
	mu sync.Mutex
}

// ErrNotFound is returned when the metadata file does not exist.
var ErrNotFound = errors.New("metadata file not found")

// NewFileRepository creates a repository that reads/writes JSON at the provided path.
func NewFileRepository(path string) *FileRepository {
	return &FileRepository{
		path: filepath.Clean(path),
	}
}

// Path returns the cleaned location of the metadata file.
func (r *FileRepository) Path() string {
	return r.path
}

// Load reads and validates the metadata record from disk.
func (r *FileRepository) Load(_ context.Context) (*release.Metadata, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	contents, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, r.path)
		}

		return nil, fmt.Errorf("read metadata file: %w", err)
	}

	var meta release.Metadata
	if err = json.Unmarshal(contents, &meta); err != nil {
		return nil, fmt.Errorf("decode metadata file: %w", err)
	}

	if err = meta.Validate(); err != nil {
		return nil, fmt.Errorf("invalid metadata: %w", err)
	}

	return &meta, nil
}

// Save writes the metadata record to disk as indented JSON.
func (r *FileRepository) Save(_ context.Context, meta *release.Metadata) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := meta.Validate(); err != nil {
		return fmt.Errorf("invalid metadata: %w", err)
	}

	data, err := json.MarshalIndent(meta, "", "    ")
	if err != nil {
		return fmt.Errorf("encode metadata: %w", err)
	}

	data = append(data, '\n')

	if err = os.WriteFile(r.path, data, config.DefaultFilePermissions); err != nil {
		return fmt.Errorf("write metadata file: %w", err)
	}

	return nil
}
