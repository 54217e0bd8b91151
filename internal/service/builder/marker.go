package builder

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/mitchellh/go-ps"

	"github.com/OpenAutomateOrg/bot-packager/internal/config"
	"github.com/OpenAutomateOrg/bot-packager/internal/logger"
)

const (
	// MarkerFilename marks that a build is running right now to avoid parallel execution.
	MarkerFilename = "bot-packager-build-marker.bin"

	// basePackagerExecutable is the packager binary name without platform extension.
	basePackagerExecutable = "bot-packager"

	// markerLifetime is the period after which a stale build marker is ignored.
	markerLifetime = 30 * time.Second
)

// IsBuildRunningNow checks presence of a marker file in the project root and
// attempts recovery if it looks stale.
func IsBuildRunningNow(ctx context.Context, projectRoot string) bool {
	logger.Debug(ctx, "Checking for the presence of a build marker")

	markerPath := filepath.Join(projectRoot, MarkerFilename)

	fileInfo, err := os.Stat(markerPath)
	if err == nil {
		if time.Since(fileInfo.ModTime()) <= markerLifetime {
			return true
		}

		logger.Info(ctx, "The build marker is too old, attempting cleanup")

		if err = terminateProcessByName(packagerExecutable()); err != nil {
			return true
		}

		if err = os.Remove(markerPath); err != nil {
			return true
		}

		return false
	}

	if errors.Is(err, os.ErrNotExist) {
		logger.Debug(ctx, "Build marker not found, continuing")
		return false
	}

	logger.Infof(ctx, "Unable to read build marker: %v", err)

	return false
}

// placeMarker creates the build marker for the duration of a run.
func placeMarker(projectRoot string) error {
	return os.WriteFile(filepath.Join(projectRoot, MarkerFilename), nil, config.DefaultFilePermissions)
}

// removeMarker removes the build marker; a missing marker is not an error.
func removeMarker(projectRoot string) {
	_ = os.Remove(filepath.Join(projectRoot, MarkerFilename))
}

// terminateProcessByName tries to kill processes with the provided executable name.
func terminateProcessByName(processName string) error {
	processList, err := ps.Processes()
	if err != nil {
		return err
	}

	thisProcessID := os.Getpid()

	for _, process := range processList {
		if process.Pid() == thisProcessID {
			continue
		}

		if process.Executable() != processName {
			continue
		}

		var runningProcess *os.Process

		runningProcess, err = os.FindProcess(process.Pid())
		if err != nil {
			return err
		}

		if err = runningProcess.Kill(); err != nil {
			return err
		}
	}

	return nil
}

// packagerExecutable returns the platform-specific packager binary name.
func packagerExecutable() string {
	if strings.Contains(strings.ToLower(runtime.GOOS), "windows") {
		return basePackagerExecutable + ".exe"
	}

	return basePackagerExecutable
}
