// Package encoder turns an encode plan into ffmpeg invocations: per-segment
// stream-copy extraction, concat-demuxer assembly, and the final encode
// with the plan's codec parameters. Argument construction is separated from
// process execution so it stays testable.
package encoder
