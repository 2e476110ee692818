// Package gitprep prepares the external source checkout for a packaging run.
//
// Tag lookups use go-git directly; operations that mutate the working tree
// (fetching tags, forced checkout) shell out to the git binary, matching what
// release operators run by hand.
package gitprep
