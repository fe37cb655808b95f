// Package naming cleans release-style media filenames.
//
// Release names carry noise that is useless for humans and harmful for
// subtitle matching: group tags, resolution and codec markers, source
// labels. This package produces two normalized forms: a display name for
// output files and metadata, and a matching key for pairing subtitle files
// with videos. It also extracts season/episode numbers for tagging.
package naming
