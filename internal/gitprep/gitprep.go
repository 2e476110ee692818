package gitprep

import (
	"context"
	"errors"
	"fmt"

	gogit "github.com/go-git/go-git/v5"

	"github.com/oshokin/xcframework-packager/internal/toolchain"
)

// ErrVersionNotFound is returned when the requested tag does not exist
// in the checkout.
var ErrVersionNotFound = errors.New("tagged revision not found")

// Preparer resets an external working checkout to a tagged revision.
//
// Checkout and FetchTags mutate the external repository's working tree.
// The mutation is destructive and not reversible: local changes in the
// checkout are discarded.
type Preparer struct {
	// repoPath is the root of the working checkout.
	repoPath string
	// tools runs the git binary for mutating operations.
	tools *toolchain.Tools
}

// New creates a Preparer for the checkout at repoPath.
func New(repoPath string, tools *toolchain.Tools) *Preparer {
	return &Preparer{
		repoPath: repoPath,
		tools:    tools,
	}
}

// ResolveTag verifies the tag exists and returns its hash.
// Read-side access goes through go-git so diagnostics do not depend on
// parsing git binary output.
func (p *Preparer) ResolveTag(tag string) (string, error) {
	repo, err := gogit.PlainOpen(p.repoPath)
	if err != nil {
		return "", fmt.Errorf("open repository %s: %w", p.repoPath, err)
	}

	ref, err := repo.Tag(tag)
	if err != nil {
		return "", fmt.Errorf("%s: %w", tag, ErrVersionNotFound)
	}

	return ref.Hash().String(), nil
}

// FetchTags fetches remote tags into the checkout.
// Callers treat a failure here as advisory: a stale checkout may still
// carry the requested tag.
func (p *Preparer) FetchTags(ctx context.Context) error {
	_, err := p.tools.Git(ctx, p.repoPath, "fetch", "--tags")

	return err
}

// Checkout forcibly resets the working tree to the tagged revision.
func (p *Preparer) Checkout(ctx context.Context, tag string) error {
	if _, err := p.tools.Git(ctx, p.repoPath, "checkout", "--force", tag); err != nil {
		return fmt.Errorf("checkout %s: %w", tag, err)
	}

	return nil
}
