// Package media defines the typed, read-only snapshot of a media container
// that the condensation pipeline consumes: tracks, chapters, and duration.
package media

import "strings"

// TrackKind identifies the stream type of a Track.
type TrackKind string

const (
	TrackVideo    TrackKind = "video"
	TrackAudio    TrackKind = "audio"
	TrackSubtitle TrackKind = "subtitle"
)

// Track is a read-only descriptor of a single container stream. The
// pipeline never mutates a Track; it only selects by ID.
type Track struct {
	ID       int // stream index within the container
	Kind     TrackKind
	Codec    string
	Language string
	Title    string
	Default  bool
	Forced   bool
}

// Chapter is a named time span within the container, in seconds.
type Chapter struct {
	Title string
	Start float64
	End   float64
}

// Info is the immutable probe snapshot for one input file.
type Info struct {
	Path     string
	Duration float64 // seconds
	Tracks   []Track
	Chapters []Chapter
}

// TracksOfKind returns the tracks of the given kind in container order.
func (i Info) TracksOfKind(kind TrackKind) []Track {
	var out []Track
	for _, t := range i.Tracks {
		if t.Kind == kind {
			out = append(out, t)
		}
	}
	return out
}

// TrackByID returns the track with the given stream index, if present.
func (i Info) TrackByID(id int) (Track, bool) {
	for _, t := range i.Tracks {
		if t.ID == id {
			return t, true
		}
	}
	return Track{}, false
}

// textSubtitleCodecs maps subtitle codec names that carry timed text (as
// opposed to bitmap images) to the extension ffmpeg writes them with.
var textSubtitleCodecs = map[string]string{
	"subrip":   "srt",
	"srt":      "srt",
	"ass":      "ass",
	"ssa":      "ssa",
	"webvtt":   "vtt",
	"mov_text": "srt",
}

// IsTextSubtitleCodec reports whether a subtitle codec can be converted to
// timed text events. Bitmap formats (PGS, DVD subs) cannot.
func IsTextSubtitleCodec(codec string) bool {
	_, ok := textSubtitleCodecs[strings.ToLower(strings.TrimSpace(codec))]
	return ok
}

// SubtitleExtension returns the file extension used when extracting a
// subtitle stream of the given codec, defaulting to "srt".
func SubtitleExtension(codec string) string {
	if ext, ok := textSubtitleCodecs[strings.ToLower(strings.TrimSpace(codec))]; ok {
		return ext
	}
	return "srt"
}
