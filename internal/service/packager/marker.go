package packager

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/mitchellh/go-ps"

	"github.com/oshokin/xcframework-packager/internal/logger"
)

const (
	// markerFilename marks that a packaging run is mutating the checkout right now.
	markerFilename = "xcframework-packager-marker.bin"

	// markerLifetime is the period after which a marker without a live
	// packager process is treated as a leftover from a killed run.
	markerLifetime = 30 * time.Minute

	// packagerExecutable is the process name a live sibling run would carry.
	packagerExecutable = "xcframework-packager"

	// markerFileMode keeps the marker private to the invoking user.
	markerFileMode os.FileMode = 0o600
)

// markerPath places the run marker at the checkout root, next to the
// working tree the run mutates.
func (p *packager) markerPath() string {
	return filepath.Join(p.repoPath, markerFilename)
}

// setMarker records this run's pid in the marker file.
func (p *packager) setMarker() error {
	return os.WriteFile(p.markerPath(), []byte(strconv.Itoa(os.Getpid())), markerFileMode)
}

// clearMarker removes the marker at the end of the run.
func (p *packager) clearMarker(ctx context.Context) {
	if err := os.Remove(p.markerPath()); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.WarnKV(ctx, "Unable to remove run marker", "error", err)
	}
}

// isPackagerRunningNow checks presence of a run marker and attempts recovery
// if it looks stale.
func isPackagerRunningNow(ctx context.Context, markerPath string) bool {
	fileInfo, err := os.Stat(markerPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			logger.Infof(ctx, "Unable to read run marker: %v", err)
		}

		return false
	}

	if time.Since(fileInfo.ModTime()) <= markerLifetime {
		return true
	}

	logger.Info(ctx, "The run marker is stale, checking for a live packager process")

	if hasSiblingPackagerProcess() {
		return true
	}

	if err = os.Remove(markerPath); err != nil {
		return true
	}

	return false
}

// hasSiblingPackagerProcess reports whether another packager process is alive.
func hasSiblingPackagerProcess() bool {
	processList, err := ps.Processes()
	if err != nil {
		return false
	}

	thisProcessID := os.Getpid()

	for _, process := range processList {
		if process.Pid() == thisProcessID {
			continue
		}

		if process.Executable() == packagerExecutable {
			return true
		}
	}

	return false
}
