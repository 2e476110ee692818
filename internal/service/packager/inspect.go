package packager

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/oshokin/xcframework-packager/internal/logger"
)

const (
	// privacyManifestName is the privacy manifest Apple expects inside shipped bundles.
	privacyManifestName = "PrivacyInfo.xcprivacy"

	// sliceMarker appears once per declared library slice in a bundle Info.plist.
	sliceMarker = "LibraryIdentifier"
)

// inspectBundle checks two advisory properties of a copied bundle:
// declared platform slices and the presence of a privacy manifest.
// Findings are warnings only and never abort the pipeline.
func (p *packager) inspectBundle(ctx context.Context, bundlePath string) {
	contents, err := os.ReadFile(filepath.Join(bundlePath, "Info.plist"))

	switch {
	case err != nil:
		logger.WarnKV(ctx, "Bundle has no readable Info.plist", "error", err)
	case strings.Count(string(contents), sliceMarker) == 0:
		logger.Warn(ctx, "Bundle declares no library slices")
	default:
		logger.DebugKV(ctx, "Bundle declares library slices",
			"count", strings.Count(string(contents), sliceMarker))
	}

	if !hasPrivacyManifest(bundlePath) {
		logger.Warn(ctx, "Bundle is missing a privacy manifest")
	}
}

// hasPrivacyManifest reports whether a privacy manifest exists anywhere in the bundle.
func hasPrivacyManifest(bundlePath string) bool {
	found := false

	_ = filepath.WalkDir(bundlePath, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil //nolint:nilerr // Unreadable entries are skipped, inspection is advisory.
		}

		if d.Name() == privacyManifestName {
			found = true

			return fs.SkipAll
		}

		return nil
	})

	return found
}
