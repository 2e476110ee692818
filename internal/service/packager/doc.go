// Package packager implements the release packaging pipeline.
//
// One run resets the source checkout to a tagged revision, invokes the
// repository build driver, then for each framework bundle: copies it to the
// output directory, inspects it (advisory), signs it when an identity is
// configured (best-effort), archives it with ditto, computes its Swift
// Package Manager checksum (best-effort) and appends a manifest line.
// Finally it publishes the archives and the manifest into the download
// directory and prints Package.swift binary target snippets.
//
// The pipeline is strictly sequential and fail-fast. External tool calls
// block without timeouts; an interrupted run may leave partial output behind.
package packager
