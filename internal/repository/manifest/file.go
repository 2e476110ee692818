package manifest

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Filename is the manifest filename published next to the archives.
const Filename = "checksums.txt"

// fileMode keeps the manifest readable by downstream release tooling.
const fileMode = 0o644

// Entry is one manifest line: "<archive filename> <checksum>".
type Entry struct {
	// Archive is the published zip filename.
	Archive string
	// Checksum is the recorded checksum value.
	Checksum string
}

// Repository defines persistence operations for the checksum manifest.
type Repository interface {
	Append(ctx context.Context, entry Entry) error
	Load(ctx context.Context) ([]Entry, error)
	Path() string
}

// FileRepository persists the manifest as an append-only flat text file.
type FileRepository struct {
	// path is the filesystem location of the manifest file.
	path string
	// mu protects concurrent access to the manifest file.
	mu sync.Mutex
}

// ErrNotFound is returned when the manifest file does not exist yet.
var ErrNotFound = errors.New("manifest not found")

// NewFileRepository creates a repository that appends/reads lines at the provided path.
func NewFileRepository(path string) *FileRepository {
	return &FileRepository{
		path: filepath.Clean(path),
	}
}

// Path returns the manifest file location.
func (r *FileRepository) Path() string {
	return r.path
}

// Append adds one manifest line to the end of the file, creating it if needed.
func (r *FileRepository) Append(_ context.Context, entry Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, err := os.OpenFile(r.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, fileMode)
	if err != nil {
		return fmt.Errorf("open manifest: %w", err)
	}

	if _, err = fmt.Fprintf(f, "%s %s\n", entry.Archive, entry.Checksum); err != nil {
		_ = f.Close()

		return fmt.Errorf("append manifest line: %w", err)
	}

	return f.Close()
}

// Load reads all manifest entries from disk.
// Lines are split on whitespace only; no further validation is applied.
func (r *FileRepository) Load(_ context.Context) ([]Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	contents, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("read manifest: %w", err)
	}

	lines := strings.Split(string(contents), "\n")
	entries := make([]Entry, 0, len(lines))

	for _, line := range lines {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		entry := Entry{Archive: fields[0]}
		if len(fields) > 1 {
			entry.Checksum = fields[1]
		}

		entries = append(entries, entry)
	}

	return entries, nil
}
