package release

import (
	"fmt"
	"strings"
)

const (
	// BundleExtension is the extension of the framework bundles the build driver produces.
	BundleExtension = ".xcframework"

	// ArchiveSuffix terminates every published archive name.
	ArchiveSuffix = ".spm.zip"

	// PlaceholderChecksum is recorded in the manifest when the checksum tool fails.
	PlaceholderChecksum = "checksum-unavailable"
)

// Artifact tracks one framework bundle through a packaging run.
// Records live only for the duration of the packaging loop; the manifest line
// is the only part that survives the run.
type Artifact struct {
	// Name is the logical bundle name, e.g. "RealmSwift".
	Name string
	// SourcePath is the bundle directory inside the build output.
	SourcePath string
	// BundlePath is the copied bundle in the output directory.
	BundlePath string
	// ArchivePath is the produced zip in the output directory.
	ArchivePath string
	// Checksum is the manifest checksum value (possibly PlaceholderChecksum).
	Checksum string
}

// BundleName returns the on-disk directory name for a logical artifact name.
func BundleName(name string) string {
	return name + BundleExtension
}

// ArchiveName returns the published zip name for an artifact,
// embedding the detected build tool version.
func ArchiveName(name, toolVersion string) string {
	return fmt.Sprintf("%s%s@%s%s", name, BundleExtension, toolVersion, ArchiveSuffix)
}

// LogicalName derives the artifact name from an archive filename by stripping
// everything from the bundle extension marker onward. Filenames without the
// marker are returned with the archive suffix trimmed.
func LogicalName(archive string) string {
	if name, _, ok := strings.Cut(archive, BundleExtension+"@"); ok {
		return name
	}

	return strings.TrimSuffix(archive, ArchiveSuffix)
}

// BinaryTargetSnippet renders a single copy-paste Package.swift line for an
// archive published under the given URL base.
func BinaryTargetSnippet(urlBase, archive, checksum string) string {
	return fmt.Sprintf(
		".binaryTarget(name: %q, url: %q, checksum: %q),",
		LogicalName(archive),
		strings.TrimSuffix(urlBase, "/")+"/"+archive,
		checksum,
	)
}
