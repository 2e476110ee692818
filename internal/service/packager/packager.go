package packager

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/oshokin/xcframework-packager/internal/config"
	"github.com/oshokin/xcframework-packager/internal/gitprep"
	"github.com/oshokin/xcframework-packager/internal/logger"
	"github.com/oshokin/xcframework-packager/internal/repository/manifest"
	"github.com/oshokin/xcframework-packager/internal/toolchain"
)

// defaultDirMode is used when creating output and download directories.
const defaultDirMode os.FileMode = 0o755

// packager drives one release packaging run.
// It is unexported—callers should use Run, which encapsulates setup and validation.
type packager struct {
	// cfg holds the release settings (artifact names, URL base, identity).
	cfg *config.Config
	// tools invokes the external command-line tools.
	tools *toolchain.Tools
	// git resets the checkout to the requested tag.
	git *gitprep.Preparer
	// manifest records "<archive> <checksum>" lines.
	manifest manifest.Repository

	// repoPath is the cleaned working checkout root.
	repoPath string
	// tag is the revision being packaged.
	tag string
	// platforms is the raw --platforms value (emptiness selects the build mode).
	platforms string
	// outputDir receives bundles, archives and the manifest.
	outputDir string
	// identity is the codesign identity; empty disables signing.
	identity string
	// configuration is the active build configuration.
	configuration string

	// toolVersion caches the detected Xcode version for archive naming.
	toolVersion string
}

// newPackager validates inputs and tool availability, then acquires the run marker.
func newPackager(ctx context.Context, opts *Options, settings *config.Config) (*packager, error) {
	if opts.RepoPath == "" {
		return nil, ErrRepositoryRequired
	}

	repoPath := filepath.Clean(opts.RepoPath)
	if _, err := os.Stat(repoPath); err != nil {
		return nil, fmt.Errorf("repository %s: %w", repoPath, err)
	}

	buildScript := filepath.Join(repoPath, toolchain.BuildScriptName)
	if _, err := os.Stat(buildScript); err != nil {
		return nil, fmt.Errorf("build entry point %s: %w", buildScript, err)
	}

	tools := opts.Tools
	if tools == nil {
		tools = toolchain.New()
	}

	if err := tools.CheckRequired(toolchain.ToolGit, toolchain.ToolShell, toolchain.ToolDitto); err != nil {
		return nil, err
	}

	identity := opts.SigningIdentity
	if identity == "" {
		identity = settings.SigningIdentity
	}

	// Missing advisory tools degrade their steps instead of aborting the run.
	advisoryTools := []string{toolchain.ToolSwift, toolchain.ToolXcodebuild}
	if identity != "" {
		advisoryTools = append(advisoryTools, toolchain.ToolCodesign)
	}

	for _, name := range advisoryTools {
		if !tools.Available(name) {
			logger.WarnKV(ctx, "Optional tool not found, dependent steps will degrade", "tool", name)
		}
	}

	configuration := opts.Configuration
	if configuration == "" {
		configuration = config.DefaultConfiguration
	}

	tag := opts.Tag
	if tag == "" {
		tag = config.DefaultTag
	}

	outputDir := opts.OutputDir
	if outputDir == "" {
		outputDir = filepath.Join(repoPath, "build", configuration, "spm")
	}

	pkg := &packager{
		cfg:           settings,
		tools:         tools,
		git:           gitprep.New(repoPath, tools),
		manifest:      manifest.NewFileRepository(filepath.Join(outputDir, manifest.Filename)),
		repoPath:      repoPath,
		tag:           tag,
		platforms:     opts.Platforms,
		outputDir:     outputDir,
		identity:      identity,
		configuration: configuration,
	}

	if isPackagerRunningNow(ctx, pkg.markerPath()) {
		return nil, errPackagerRunning
	}

	if err := pkg.setMarker(); err != nil {
		return nil, fmt.Errorf("set run marker: %w", err)
	}

	return pkg, nil
}

// Run executes the pipeline steps in order, fail-fast.
func (p *packager) Run(ctx context.Context) error {
	defer p.clearMarker(ctx)

	if err := p.prepareSource(ctx); err != nil {
		return err
	}

	if err := p.build(ctx); err != nil {
		return err
	}

	// Start from an empty manifest even when --out points outside the build root.
	if err := os.Remove(p.manifest.Path()); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("reset manifest: %w", err)
	}

	for _, name := range p.cfg.Artifacts {
		artifact, err := p.packageArtifact(ctx, name)
		if err != nil {
			return err
		}

		logger.InfoKV(ctx, "Packaged artifact",
			"artifact", artifact.Name,
			"archive", artifact.ArchivePath,
			"checksum", artifact.Checksum)
	}

	return p.publish(ctx)
}

// buildRoot is the build output directory for the active configuration.
func (p *packager) buildRoot() string {
	return filepath.Join(p.repoPath, "build", p.configuration)
}

// buildOutputDir is where the build driver drops the framework bundles.
// The single-platform mode nests its output one level deeper.
func (p *packager) buildOutputDir() string {
	if p.platforms == "" {
		return filepath.Join(p.buildRoot(), "ios")
	}

	return p.buildRoot()
}

// prepareSource removes prior build output and resets the checkout to the tag.
// The checkout mutation is destructive: local changes in the repository are lost.
func (p *packager) prepareSource(ctx context.Context) error {
	logger.InfoKV(ctx, "Resetting checkout", "repo", p.repoPath, "tag", p.tag)

	if err := os.RemoveAll(p.buildRoot()); err != nil {
		return fmt.Errorf("remove previous build output: %w", err)
	}

	// A stale checkout may still carry the tag, so fetch failures only warn.
	if err := p.git.FetchTags(ctx); err != nil {
		logger.WarnKV(ctx, "Fetching tags failed, continuing with local refs", "error", err)
	}

	hash, err := p.git.ResolveTag(p.tag)
	if err != nil {
		return err
	}

	logger.DebugKV(ctx, "Resolved tag", "tag", p.tag, "hash", hash)

	return p.git.Checkout(ctx, p.tag)
}

// build invokes the build driver. An empty platforms value selects the
// single-platform sub-command; anything else selects the multi-platform one.
func (p *packager) build(ctx context.Context) error {
	if p.platforms == "" {
		logger.Info(ctx, "Building single-platform xcframeworks")

		return p.tools.RunBuildScript(ctx, p.repoPath, "xcframework")
	}

	logger.InfoKV(ctx, "Building multi-platform xcframeworks", "platforms", p.platforms)

	return p.tools.RunBuildScript(ctx, p.repoPath, "xcframework-platforms", p.platforms)
}
