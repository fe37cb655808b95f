package subtitles

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Extensions lists the subtitle file extensions shuku can parse, in the
// order external search tries them.
var Extensions = []string{".srt", ".vtt", ".ass", ".ssa"}

// IsSubtitlePath reports whether path has a parseable subtitle extension.
func IsSubtitlePath(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, known := range Extensions {
		if ext == known {
			return true
		}
	}
	return false
}

// Load parses the subtitle file at path, choosing the parser from the
// extension, and returns its events sorted by start time.
func Load(path string) ([]Event, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open subtitles: %w", err)
	}
	defer f.Close()

	var events []Event
	switch strings.ToLower(filepath.Ext(path)) {
	case ".srt":
		events, err = ParseSRT(f)
	case ".vtt":
		events, err = ParseVTT(f)
	case ".ass", ".ssa":
		events, err = ParseASS(f)
	default:
		return nil, fmt.Errorf("unsupported subtitle format %q", filepath.Ext(path))
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Start < events[j].Start
	})
	return events, nil
}
