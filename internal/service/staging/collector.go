package staging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/OpenAutomateOrg/bot-packager/internal/config"
	"github.com/OpenAutomateOrg/bot-packager/internal/logger"
)

// copiedFileMode is used for files written into the staging directory.
const copiedFileMode os.FileMode = 0o644

// copiedDirMode is used for directories created under the staging directory.
const copiedDirMode os.FileMode = 0o755

// ErrRequiredFileMissing is returned when a file the manifest requires is
// absent from the project root.
var ErrRequiredFileMissing = errors.New("required file missing from project root")

// Collector copies manifest-selected project files into a staging directory.
type Collector struct {
	// projectRoot is the directory the manifest selects files from.
	projectRoot string
	// manifest describes which files and directories are staged.
	manifest config.Manifest
	// required are root-relative paths that must exist for staging to succeed.
	required []string
}

// NewCollector creates a collector for the provided project root and manifest.
// Required paths (such as the metadata file) resolve against the root unless
// absolute; a missing required path makes Collect fail.
func NewCollector(projectRoot string, manifest config.Manifest, required ...string) *Collector {
	return &Collector{
		projectRoot: filepath.Clean(projectRoot),
		manifest:    manifest,
		required:    required,
	}
}

// Collect recreates the staging directory from scratch and populates it.
// Any pre-existing staging directory is removed first so no state leaks
// between runs. Returns the number of files staged.
func (c *Collector) Collect(ctx context.Context, stagingDir string) (int, error) {
	for _, name := range c.required {
		path := name
		if !filepath.IsAbs(path) {
			path = filepath.Join(c.projectRoot, path)
		}

		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			return 0, fmt.Errorf("%w: %s", ErrRequiredFileMissing, name)
		} else if err != nil {
			return 0, fmt.Errorf("stat %s: %w", name, err)
		}
	}

	if err := os.RemoveAll(stagingDir); err != nil {
		return 0, fmt.Errorf("remove stale staging directory: %w", err)
	}

	if err := os.MkdirAll(stagingDir, copiedDirMode); err != nil {
		return 0, fmt.Errorf("create staging directory: %w", err)
	}

	staged, err := c.collectRootFiles(ctx, stagingDir)
	if err != nil {
		return 0, err
	}

	for _, dir := range c.manifest.Directories {
		source := filepath.Join(c.projectRoot, dir)

		info, err := os.Stat(source)
		if errors.Is(err, os.ErrNotExist) {
			// Optional directory, not an error.
			logger.DebugKV(ctx, "Skipping absent directory", "directory", dir)
			continue
		} else if err != nil {
			return 0, fmt.Errorf("stat %s: %w", dir, err)
		}

		if !info.IsDir() {
			continue
		}

		copied, err := copyTree(source, filepath.Join(stagingDir, dir))
		if err != nil {
			return 0, fmt.Errorf("stage directory %s: %w", dir, err)
		}

		staged += copied
	}

	return staged, nil
}

// collectRootFiles copies files directly under the project root whose names
// match any manifest pattern. The staging directory itself is never matched.
func (c *Collector) collectRootFiles(ctx context.Context, stagingDir string) (int, error) {
	entries, err := os.ReadDir(c.projectRoot)
	if err != nil {
		return 0, fmt.Errorf("read project root: %w", err)
	}

	staged := 0

	for _, entry := range entries {
		if entry.IsDir() || !c.matchesManifest(entry.Name()) {
			continue
		}

		source := filepath.Join(c.projectRoot, entry.Name())
		if err = copyFile(source, filepath.Join(stagingDir, entry.Name())); err != nil {
			return 0, fmt.Errorf("stage file %s: %w", entry.Name(), err)
		}

		logger.DebugKV(ctx, "Staged file", "name", entry.Name())

		staged++
	}

	return staged, nil
}

// matchesManifest reports whether a root file name matches any include pattern.
func (c *Collector) matchesManifest(name string) bool {
	for _, pattern := range c.manifest.RootPatterns {
		if ok, err := doublestar.Match(pattern, name); err == nil && ok {
			return true
		}
	}

	return false
}

// copyTree copies a directory recursively and returns the number of files copied.
func copyTree(source, target string) (int, error) {
	copied := 0

	err := filepath.WalkDir(source, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		relative, err := filepath.Rel(source, path)
		if err != nil {
			return err
		}

		destination := filepath.Join(target, relative)

		if entry.IsDir() {
			return os.MkdirAll(destination, copiedDirMode)
		}

		if err = copyFile(path, destination); err != nil {
			return err
		}

		copied++

		return nil
	})
	if err != nil {
		return 0, err
	}

	return copied, nil
}

// copyFile copies a single regular file, creating the parent directory if needed.
func copyFile(source, target string) error {
	if err := os.MkdirAll(filepath.Dir(target), copiedDirMode); err != nil {
		return err
	}

	in, err := os.Open(filepath.Clean(source))
	if err != nil {
		return err
	}

	// Best-effort cleanup.
	defer func() {
		_ = in.Close()
	}()

	out, err := os.OpenFile(filepath.Clean(target), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, copiedFileMode)
	if err != nil {
		return err
	}

	if _, err = io.Copy(out, in); err != nil {
		_ = out.Close()

		return err
	}

	return out.Close()
}
