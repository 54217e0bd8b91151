package archive

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/OpenAutomateOrg/bot-packager/internal/logger"
)

// archiveFileMode is used for the produced zip file.
const archiveFileMode os.FileMode = 0o644

// Build compresses every regular file under stagingDir into a zip archive at
// outputPath, overwriting an existing archive. Entry names use forward
// slashes and are relative to stagingDir. Returns the number of entries.
func Build(ctx context.Context, stagingDir, outputPath string) (int, error) {
	out, err := os.OpenFile(filepath.Clean(outputPath), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, archiveFileMode)
	if err != nil {
		return 0, fmt.Errorf("create archive: %w", err)
	}

	writer := zip.NewWriter(out)
	entries := 0

	err = filepath.WalkDir(stagingDir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if entry.IsDir() {
			return nil
		}

		relative, err := filepath.Rel(stagingDir, path)
		if err != nil {
			return err
		}

		name := filepath.ToSlash(relative)

		target, err := writer.Create(name)
		if err != nil {
			return fmt.Errorf("add entry %s: %w", name, err)
		}

		source, err := os.Open(filepath.Clean(path))
		if err != nil {
			return err
		}

		_, err = io.Copy(target, source)
		_ = source.Close()

		if err != nil {
			return fmt.Errorf("compress entry %s: %w", name, err)
		}

		logger.DebugKV(ctx, "Archived entry", "name", name)

		entries++

		return nil
	})
	if err != nil {
		_ = writer.Close()
		_ = out.Close()
		// Do not leave a truncated archive behind.
		_ = os.Remove(outputPath)

		return 0, fmt.Errorf("walk staging directory: %w", err)
	}

	if err = writer.Close(); err != nil {
		_ = out.Close()
		_ = os.Remove(outputPath)

		return 0, fmt.Errorf("finalize archive: %w", err)
	}

	if err = out.Close(); err != nil {
		return 0, fmt.Errorf("close archive: %w", err)
	}

	return entries, nil
}
