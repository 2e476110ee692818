package manifest

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestAppendLoadRoundtrip ensures entries come back in append order.
func TestAppendLoadRoundtrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewFileRepository(filepath.Join(t.TempDir(), Filename))

	require.NoError(t, repo.Append(ctx, Entry{Archive: "Realm.xcframework@15.4.spm.zip", Checksum: "abc"}))
	require.NoError(t, repo.Append(ctx, Entry{Archive: "RealmSwift.xcframework@15.4.spm.zip", Checksum: "def"}))

	entries, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, "Realm.xcframework@15.4.spm.zip", entries[0].Archive)
	require.Equal(t, "def", entries[1].Checksum)

	// Every line matches the published format.
	contents, err := os.ReadFile(repo.Path())
	require.NoError(t, err)
	require.Regexp(t, regexp.MustCompile(`^\S+\.zip \S+\n\S+\.zip \S+\n$`), string(contents))
}

// TestLoadMissingFile returns ErrNotFound before any append.
func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	repo := NewFileRepository(filepath.Join(t.TempDir(), Filename))

	_, err := repo.Load(context.Background())
	require.ErrorIs(t, err, ErrNotFound)
}

// TestLoadSplitsOnWhitespaceOnly tolerates malformed lines.
func TestLoadSplitsOnWhitespaceOnly(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), Filename)
	require.NoError(t, os.WriteFile(path, []byte("one.zip abc\n\nlonely-token\n"), 0o644))

	entries, err := NewFileRepository(path).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, Entry{Archive: "one.zip", Checksum: "abc"}, entries[0])
	require.Equal(t, Entry{Archive: "lonely-token"}, entries[1])
}
