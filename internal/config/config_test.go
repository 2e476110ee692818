package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestValidate checks defaulting and format validations for release settings.
func TestValidate(t *testing.T) {
	t.Parallel()

	// Nil settings.
	err := Validate(nil)
	require.Error(t, err)

	// Empty settings pick up defaults.
	cfg := new(Config)

	err = Validate(cfg)
	require.NoError(t, err)
	require.Equal(t, []string{"Realm", "RealmSwift"}, cfg.Artifacts)
	require.NotEmpty(t, cfg.ReleaseURLBase)

	// Bad URL base.
	cfg = &Config{
		ReleaseURLBase: "::not-a-url",
	}

	err = Validate(cfg)
	require.Error(t, err)
}

// TestLoadMissingFileReturnsDefaults keeps the settings file optional.
func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

// TestSaveLoadRoundtrip ensures settings are persisted and loaded back correctly.
func TestSaveLoadRoundtrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")

	cfg := &Config{
		Artifacts:       []string{"Realm"},
		ReleaseURLBase:  "https://downloads.example.com/spm",
		SigningIdentity: "Developer ID Application: Example Corp",
	}

	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, cfg.Artifacts, loaded.Artifacts)
	require.Equal(t, cfg.ReleaseURLBase, loaded.ReleaseURLBase)
	require.Equal(t, cfg.SigningIdentity, loaded.SigningIdentity)

	// File exists.
	_, err = os.Stat(path)
	require.NoError(t, err)
}
