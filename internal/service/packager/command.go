package packager

import (
	"context"
	"errors"
	"fmt"

	"github.com/oshokin/xcframework-packager/internal/config"
	"github.com/oshokin/xcframework-packager/internal/logger"
	"github.com/oshokin/xcframework-packager/internal/toolchain"
)

// Options contains inputs for the packager entry point.
type Options struct {
	// ConfigPath is an optional path to the release settings YAML.
	ConfigPath string
	// RepoPath is the working checkout of the framework sources. Required.
	RepoPath string
	// Tag is the revision to package (defaults to config.DefaultTag).
	Tag string
	// Platforms selects the build mode: empty runs the single-platform build,
	// any non-empty value runs the multi-platform build. The value itself is
	// forwarded to the build driver verbatim and never parsed.
	Platforms string
	// OutputDir receives copied bundles, archives and the manifest.
	// Empty derives a path from the build configuration.
	OutputDir string
	// SigningIdentity enables codesigning when non-empty.
	SigningIdentity string
	// Configuration is the build configuration (CONFIGURATION env var).
	Configuration string
	// Tools overrides the external tool layer. Nil uses the real tools;
	// tests substitute a scripted runner here.
	Tools *toolchain.Tools
}

var (
	// ErrRepositoryRequired indicates the mandatory --repo flag was not supplied.
	ErrRepositoryRequired = errors.New("repository path must be provided")

	// ErrArtifactNotFound indicates an expected bundle is absent from the build output.
	ErrArtifactNotFound = errors.New("artifact not found in build output")

	// errPackagerRunning indicates another packaging run holds the marker.
	errPackagerRunning = errors.New("another packaging run is in progress")
)

// Run executes the packaging pipeline: reset the checkout to the requested
// tag, invoke the build driver, package and checksum each artifact, then
// publish the results. The pipeline is fail-fast; only signing, checksum
// computation and bundle inspection degrade to warnings.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "xcframework-packager")

	settings, err := config.Load(opts.ConfigPath)
	if err != nil {
		return err
	}

	pkg, err := newPackager(ctx, opts, settings)
	if err != nil {
		return fmt.Errorf("initialize packager: %w", err)
	}

	if err = pkg.Run(ctx); err != nil {
		return fmt.Errorf("packaging failed: %w", err)
	}

	logger.Info(ctx, "Packaging completed successfully")

	return nil
}
