package packager

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/oshokin/xcframework-packager/internal/config"
	"github.com/oshokin/xcframework-packager/internal/domain/release"
	"github.com/oshokin/xcframework-packager/internal/logger"
	"github.com/oshokin/xcframework-packager/internal/repository/manifest"
)

// publish copies every recorded archive plus the manifest into the download
// directory and prints copy-paste Package.swift snippet lines.
func (p *packager) publish(ctx context.Context) error {
	downloadDir := filepath.Join(p.repoPath, config.DownloadDirname)
	if err := os.MkdirAll(downloadDir, defaultDirMode); err != nil {
		return fmt.Errorf("create download directory: %w", err)
	}

	entries, err := p.manifest.Load(ctx)
	if err != nil {
		return fmt.Errorf("load manifest: %w", err)
	}

	for _, entry := range entries {
		src := filepath.Join(p.outputDir, entry.Archive)
		if err = p.tools.CopyPath(ctx, src, filepath.Join(downloadDir, entry.Archive)); err != nil {
			return fmt.Errorf("publish %s: %w", entry.Archive, err)
		}
	}

	if err = p.tools.CopyPath(ctx, p.manifest.Path(), filepath.Join(downloadDir, manifest.Filename)); err != nil {
		return fmt.Errorf("publish manifest: %w", err)
	}

	logger.InfoKV(ctx, "Published release files", "download_dir", downloadDir, "archives", len(entries))

	p.printNextSteps(ctx, entries)

	return nil
}

// snippetLines renders one binary target line per manifest entry.
func (p *packager) snippetLines(entries []manifest.Entry) []string {
	base := strings.TrimSuffix(p.cfg.ReleaseURLBase, "/") + "/" + p.tag

	lines := make([]string, 0, len(entries))
	for _, entry := range entries {
		lines = append(lines, release.BinaryTargetSnippet(base, entry.Archive, entry.Checksum))
	}

	return lines
}

// printNextSteps logs human-readable guidance for consuming the release.
func (p *packager) printNextSteps(ctx context.Context, entries []manifest.Entry) {
	var builder strings.Builder

	builder.WriteString("Add the following binary targets to Package.swift:\n")

	for _, line := range p.snippetLines(entries) {
		builder.WriteString(line)
		builder.WriteString("\n")
	}

	logger.Info(ctx, builder.String())
}
