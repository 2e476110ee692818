// Package manifest implements persistence for the checksum manifest.
//
// The FileRepository appends and loads "<archive> <checksum>" lines in
// checksums.txt and exposes a Repository interface the packager service
// depends on.
package manifest
