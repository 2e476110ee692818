package integration

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"

	"github.com/oshokin/xcframework-packager/internal/config"
	"github.com/oshokin/xcframework-packager/internal/repository/manifest"
	"github.com/oshokin/xcframework-packager/internal/service/packager"
	"github.com/oshokin/xcframework-packager/internal/toolchain"
)

// fakeToolRunner emulates the full external toolchain for an end-to-end run:
// the build driver drops two framework bundles, ditto copies and zips for
// real on the local filesystem, swift returns a stable checksum.
type fakeToolRunner struct {
	repoDir string
}

func (r *fakeToolRunner) Run(cmd *exec.Cmd) error {
	switch cmd.Args[0] {
	case "git":
		return nil
	case "sh":
		// The single-platform driver populates build/Release/ios.
		outputDir := filepath.Join(r.repoDir, "build", "Release", "ios")
		for _, name := range []string{"Realm", "RealmSwift"} {
			bundle := filepath.Join(outputDir, name+".xcframework")
			if err := os.MkdirAll(bundle, 0o755); err != nil {
				return err
			}

			plist := "<dict><key>LibraryIdentifier</key><string>ios-arm64</string></dict>"
			if err := os.WriteFile(filepath.Join(bundle, "Info.plist"), []byte(plist), 0o644); err != nil {
				return err
			}

			privacy := filepath.Join(bundle, "PrivacyInfo.xcprivacy")
			if err := os.WriteFile(privacy, []byte("<plist/>"), 0o644); err != nil {
				return err
			}
		}

		return nil
	case "ditto":
		if cmd.Args[1] == "-c" {
			return os.WriteFile(cmd.Args[len(cmd.Args)-1], []byte("zip-bytes"), 0o644)
		}

		src, dst := cmd.Args[1], cmd.Args[2]

		info, err := os.Stat(src)
		if err != nil {
			return err
		}

		if !info.IsDir() {
			contents, err := os.ReadFile(src)
			if err != nil {
				return err
			}

			return os.WriteFile(dst, contents, 0o644)
		}

		if err = os.MkdirAll(dst, 0o755); err != nil {
			return err
		}

		return os.CopyFS(dst, os.DirFS(src))
	case "swift":
		_, _ = cmd.Stdout.Write([]byte("cafef00d\n"))

		return nil
	case "xcodebuild":
		_, _ = cmd.Stdout.Write([]byte("Xcode 15.4\nBuild version 15F31d\n"))

		return nil
	default:
		return errors.New("unexpected tool " + cmd.Args[0])
	}
}

// TestPackager_EndToEnd runs the whole pipeline against a fake toolchain and
// verifies the published download directory.
func TestPackager_EndToEnd(t *testing.T) {
	t.Parallel()

	repoDir := t.TempDir()

	// Real repository with the default tag so source preparation passes.
	repo, err := gogit.PlainInit(repoDir, false)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(repoDir, "build.sh"), []byte("#!/bin/sh\n"), 0o755))

	wt, err := repo.Worktree()
	require.NoError(t, err)

	_, err = wt.Add("build.sh")
	require.NoError(t, err)

	hash, err := wt.Commit("initial", &gogit.CommitOptions{
		Author: &object.Signature{
			Name:  "release-bot",
			Email: "release-bot@example.com",
			When:  time.Now(),
		},
	})
	require.NoError(t, err)

	_, err = repo.CreateTag(config.DefaultTag, hash, nil)
	require.NoError(t, err)

	tools := toolchain.New(
		toolchain.WithRunner(&fakeToolRunner{repoDir: repoDir}),
		toolchain.WithLookPath(func(string) (string, error) { return "", nil }),
	)

	// Run packager with timeout context.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	err = packager.Run(ctx, &packager.Options{
		RepoPath: repoDir,
		Tools:    tools,
	})
	require.NoError(t, err)

	// Published archives carry the detected Xcode version.
	downloadDir := filepath.Join(repoDir, config.DownloadDirname)

	for _, name := range []string{"Realm", "RealmSwift"} {
		_, err = os.Stat(filepath.Join(downloadDir, name+".xcframework@15.4.spm.zip"))
		require.NoError(t, err)
	}

	// Manifest holds exactly one line per artifact.
	contents, err := os.ReadFile(filepath.Join(downloadDir, manifest.Filename))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(string(contents), "\n"), "\n")
	require.Len(t, lines, 2)
	require.Equal(t, "Realm.xcframework@15.4.spm.zip cafef00d", lines[0])
	require.Equal(t, "RealmSwift.xcframework@15.4.spm.zip cafef00d", lines[1])

	// The run marker is gone after a completed run.
	matches, err := filepath.Glob(filepath.Join(repoDir, "*marker*"))
	require.NoError(t, err)
	require.Empty(t, matches)
}
