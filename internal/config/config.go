package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds release settings shared by packaging runs.
type Config struct {
	// Artifacts lists the framework bundle names produced by the build driver.
	Artifacts []string `yaml:"artifacts"`
	// ReleaseURLBase is the URL prefix used when rendering binary target snippets.
	ReleaseURLBase string `yaml:"release_url_base"`
	// SigningIdentity is the default codesign identity. Empty disables signing.
	SigningIdentity string `yaml:"signing_identity"`
}

const (
	// DefaultConfigFilename is the default filename for release settings.
	DefaultConfigFilename = "xcframework-packager.yaml"

	// DefaultTag is the revision packaged when no --tag is supplied.
	DefaultTag = "v10.54.1"

	// DefaultConfiguration is the build configuration used when the
	// CONFIGURATION environment variable is empty.
	DefaultConfiguration = "Release"

	// DownloadDirname is the fixed directory (under the repository root)
	// that receives published archives and the checksum manifest.
	DownloadDirname = "Download"

	// DefaultFilePermissions is the default file permission for config files.
	DefaultFilePermissions = 0o600
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
)

// defaultArtifacts are the two bundles a release run packages.
func defaultArtifacts() []string {
	return []string{"Realm", "RealmSwift"}
}

// Default returns settings with all defaults applied.
func Default() *Config {
	return &Config{
		Artifacts:      defaultArtifacts(),
		ReleaseURLBase: "https://github.com/realm/realm-swift/releases/download",
	}
}

// Load reads configuration from the provided path and validates essential fields.
// A missing file is not an error: defaults are returned so the settings file
// stays optional.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}

		return nil, fmt.Errorf("read settings: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes settings to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	// Restrict permissions.
	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate checks the provided settings and fills in defaults for empty fields.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if len(cfg.Artifacts) == 0 {
		cfg.Artifacts = defaultArtifacts()
	}

	if cfg.ReleaseURLBase == "" {
		cfg.ReleaseURLBase = Default().ReleaseURLBase
	}

	if _, err := url.ParseRequestURI(cfg.ReleaseURLBase); err != nil {
		return fmt.Errorf("invalid release URL base: %w", err)
	}

	return nil
}
