package release

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestArchiveName verifies the published zip naming scheme.
func TestArchiveName(t *testing.T) {
	t.Parallel()

	require.Equal(t, "Realm.xcframework@15.4.spm.zip", ArchiveName("Realm", "15.4"))
	require.Equal(t, "RealmSwift.xcframework@unknown.spm.zip", ArchiveName("RealmSwift", "unknown"))
}

// TestLogicalName checks name derivation from archive filenames.
func TestLogicalName(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"Realm.xcframework@15.4.spm.zip":         "Realm",
		"RealmSwift.xcframework@unknown.spm.zip": "RealmSwift",
		// No version marker: only the archive suffix is trimmed.
		"Other.spm.zip": "Other",
	}
	for archive, want := range cases {
		require.Equal(t, want, LogicalName(archive))
	}
}

// TestBinaryTargetSnippet checks the rendered Package.swift line.
func TestBinaryTargetSnippet(t *testing.T) {
	t.Parallel()

	got := BinaryTargetSnippet(
		"https://downloads.example.com/spm/",
		"Realm.xcframework@15.4.spm.zip",
		"abc123",
	)
	require.Equal(
		t,
		`.binaryTarget(name: "Realm", url: "https://downloads.example.com/spm/Realm.xcframework@15.4.spm.zip", checksum: "abc123"),`,
		got,
	)
}
