package toolchain

import (
	"context"
	"errors"
	"strings"
)

// External tool names resolved on PATH.
const (
	ToolGit        = "git"
	ToolShell      = "sh"
	ToolDitto      = "ditto"
	ToolCodesign   = "codesign"
	ToolSwift      = "swift"
	ToolXcodebuild = "xcodebuild"

	// BuildScriptName is the build driver entry point inside the repository.
	BuildScriptName = "build.sh"
)

// errVersionUnrecognized is returned when xcodebuild output cannot be parsed.
var errVersionUnrecognized = errors.New("unrecognized xcodebuild version output")

// Git runs a git command inside dir and returns trimmed output.
func (t *Tools) Git(ctx context.Context, dir string, args ...string) (string, error) {
	return t.run(ctx, dir, ToolGit, args...)
}

// RunBuildScript invokes the repository build driver with the given arguments.
// The driver's non-zero exit is returned as-is so callers stay fail-fast.
func (t *Tools) RunBuildScript(ctx context.Context, repoDir string, args ...string) error {
	scriptArgs := append([]string{BuildScriptName}, args...)

	_, err := t.run(ctx, repoDir, ToolShell, scriptArgs...)

	return err
}

// CopyPath copies src to dst recursively with ditto,
// preserving resource forks and extended attributes.
func (t *Tools) CopyPath(ctx context.Context, src, dst string) error {
	_, err := t.run(ctx, "", ToolDitto, src, dst)

	return err
}

// ZipBundle archives the directory at src into a zip at dst,
// keeping the parent directory inside the archive.
func (t *Tools) ZipBundle(ctx context.Context, src, dst string) error {
	_, err := t.run(ctx, "", ToolDitto, "-c", "-k", "--sequesterRsrc", "--keepParent", src, dst)

	return err
}

// Codesign signs the bundle at path in place with the given identity.
func (t *Tools) Codesign(ctx context.Context, path, identity string) error {
	_, err := t.run(ctx, "", ToolCodesign, "--timestamp", "--force", "--deep", "--sign", identity, path)

	return err
}

// ComputeChecksum returns the Swift Package Manager checksum of an archive.
// The command runs inside the repository so SPM can locate its package context.
func (t *Tools) ComputeChecksum(ctx context.Context, repoDir, archive string) (string, error) {
	return t.run(ctx, repoDir, ToolSwift, "package", "compute-checksum", archive)
}

// XcodeVersion returns the short Xcode version, e.g. "15.4".
func (t *Tools) XcodeVersion(ctx context.Context) (string, error) {
	output, err := t.run(ctx, "", ToolXcodebuild, "-version")
	if err != nil {
		return "", err
	}

	// First line looks like "Xcode 15.4".
	line, _, _ := strings.Cut(output, "\n")
	if version, ok := strings.CutPrefix(line, "Xcode "); ok && version != "" {
		return strings.TrimSpace(version), nil
	}

	return "", errVersionUnrecognized
}
