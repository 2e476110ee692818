// Package toolchain wraps the external command-line tools the packaging
// pipeline orchestrates: git, the repository build script, ditto, codesign,
// swift and xcodebuild.
//
// Execution goes through the Runner interface so tests can substitute a
// scripted stub and record the exact argv each step produced.
package toolchain
