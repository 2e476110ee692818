package packager

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/oshokin/xcframework-packager/internal/domain/release"
	"github.com/oshokin/xcframework-packager/internal/logger"
	"github.com/oshokin/xcframework-packager/internal/repository/manifest"
)

// packageArtifact copies, inspects, signs, archives and checksums one bundle,
// then records its manifest line.
func (p *packager) packageArtifact(ctx context.Context, name string) (*release.Artifact, error) {
	ctx = logger.WithKV(ctx, "artifact", name)

	bundle := release.BundleName(name)
	src := filepath.Join(p.buildOutputDir(), bundle)

	if _, err := os.Stat(src); err != nil {
		return nil, fmt.Errorf("%s in %s (found: %s): %w",
			bundle, p.buildOutputDir(), listDirectory(p.buildOutputDir()), ErrArtifactNotFound)
	}

	if err := os.MkdirAll(p.outputDir, defaultDirMode); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	dst := filepath.Join(p.outputDir, bundle)

	// Drop leftovers from a previous run so ditto does not merge trees.
	if err := os.RemoveAll(dst); err != nil {
		return nil, fmt.Errorf("remove stale bundle copy: %w", err)
	}

	if err := p.tools.CopyPath(ctx, src, dst); err != nil {
		return nil, fmt.Errorf("copy %s: %w", bundle, err)
	}

	p.inspectBundle(ctx, dst)

	if p.identity != "" {
		if err := p.tools.Codesign(ctx, dst, p.identity); err != nil {
			logger.WarnKV(ctx, "Signing failed, the bundle is published unsigned", "error", err)
		}
	}

	archiveName := release.ArchiveName(name, p.buildToolVersion(ctx))
	archivePath := filepath.Join(p.outputDir, archiveName)
	_ = os.Remove(archivePath)

	if err := p.tools.ZipBundle(ctx, dst, archivePath); err != nil {
		return nil, fmt.Errorf("archive %s: %w", bundle, err)
	}

	checksum, err := p.tools.ComputeChecksum(ctx, p.repoPath, archivePath)
	if err != nil {
		logger.WarnKV(ctx, "Checksum computation failed, recording placeholder", "error", err)

		checksum = release.PlaceholderChecksum
	}

	entry := manifest.Entry{Archive: archiveName, Checksum: checksum}
	if err := p.manifest.Append(ctx, entry); err != nil {
		return nil, err
	}

	return &release.Artifact{
		Name:        name,
		SourcePath:  src,
		BundlePath:  dst,
		ArchivePath: archivePath,
		Checksum:    checksum,
	}, nil
}

// buildToolVersion detects the Xcode version once per run.
// Detection failure degrades to the "unknown" literal in archive names.
func (p *packager) buildToolVersion(ctx context.Context) string {
	if p.toolVersion != "" {
		return p.toolVersion
	}

	version, err := p.tools.XcodeVersion(ctx)
	if err != nil {
		logger.WarnKV(ctx, "Unable to detect Xcode version, using fallback", "error", err)

		version = "unknown"
	}

	p.toolVersion = version

	return version
}

// listDirectory renders directory contents for artifact-not-found diagnostics.
func listDirectory(dir string) string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "directory unreadable"
	}

	if len(entries) == 0 {
		return "nothing"
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}

	return strings.Join(names, ", ")
}
