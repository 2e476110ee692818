// Package config defines release settings used by the packager and provides
// helpers to load, validate and save them in YAML format.
//
// The Config type holds the artifact names, the release URL base for
// Package.swift snippets, and an optional default signing identity.
package config
