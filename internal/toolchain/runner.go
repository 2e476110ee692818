package toolchain

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Runner is a small interface that wraps the actual execution of the process.
// This allows tests to swap the implementation for a scripted stub.
type Runner interface {
	Run(cmd *exec.Cmd) error
}

// defaultRunner executes commands for real.
type defaultRunner struct{}

func (defaultRunner) Run(cmd *exec.Cmd) error {
	return cmd.Run()
}

// ErrToolMissing is returned when a required external tool is not on PATH.
var ErrToolMissing = errors.New("required tool not found on PATH")

// Tools invokes the external command-line tools the pipeline depends on.
// Every invocation blocks until the tool returns; cancellation comes only
// from the provided context.
type Tools struct {
	runner   Runner
	lookPath func(name string) (string, error)
}

// Option customizes Tools construction.
type Option func(*Tools)

// WithRunner substitutes the process runner.
func WithRunner(r Runner) Option {
	return func(t *Tools) {
		t.runner = r
	}
}

// WithLookPath substitutes PATH resolution.
func WithLookPath(fn func(name string) (string, error)) Option {
	return func(t *Tools) {
		t.lookPath = fn
	}
}

// New returns Tools executing commands directly.
func New(opts ...Option) *Tools {
	t := &Tools{
		runner:   defaultRunner{},
		lookPath: exec.LookPath,
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// CheckRequired verifies every named tool resolves on PATH.
func (t *Tools) CheckRequired(names ...string) error {
	for _, name := range names {
		if _, err := t.lookPath(name); err != nil {
			return fmt.Errorf("%s: %w", name, ErrToolMissing)
		}
	}

	return nil
}

// Available reports whether a tool resolves on PATH.
func (t *Tools) Available(name string) bool {
	_, err := t.lookPath(name)

	return err == nil
}

// run executes a tool in dir and returns trimmed stdout.
// On failure the error carries the tool name and trimmed stderr (or stdout).
func (t *Tools) run(ctx context.Context, dir, name string, args ...string) (string, error) {
	var (
		stdout bytes.Buffer
		stderr bytes.Buffer
	)

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := t.runner.Run(cmd); err != nil {
		output := strings.TrimSpace(stderr.String())
		if output == "" {
			output = strings.TrimSpace(stdout.String())
		}

		if output != "" {
			return "", fmt.Errorf("%s: %s: %w", name, output, err)
		}

		return "", fmt.Errorf("%s: %w", name, err)
	}

	return strings.TrimSpace(stdout.String()), nil
}
