// Package ffprobe wraps the ffprobe binary to inspect media containers.
//
// Inspect shells out once per file and decodes the JSON payload; Snapshot
// converts the raw result into the typed media.Info consumed by the
// pipeline. The rest of the program never re-probes.
package ffprobe
