// Package release contains core domain types for the packaging business logic.
//
// It defines the Artifact record tracked through a packaging run and the
// naming rules for bundles, published archives and Package.swift binary
// target snippets.
package release
