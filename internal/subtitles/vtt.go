package subtitles

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// ParseVTT reads WebVTT cues from r. NOTE/STYLE/REGION blocks and cue
// identifiers are skipped; cue settings after the end timestamp are ignored.
func ParseVTT(r io.Reader) ([]Event, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var events []Event
	var current *Event
	var textLines []string
	inSkipBlock := false

	flush := func() {
		if current != nil {
			current.Text = strings.Join(textLines, "\n")
			events = append(events, *current)
			current = nil
		}
		textLines = nil
	}

	first := true
	for scanner.Scan() {
		line := scanner.Text()
		if first {
			line = strings.TrimPrefix(line, "\uFEFF")
			first = false
			if strings.HasPrefix(strings.TrimSpace(line), "WEBVTT") {
				continue
			}
		}
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			flush()
			inSkipBlock = false
		case inSkipBlock:
			// Inside NOTE/STYLE/REGION, wait for the blank separator.
		case strings.HasPrefix(trimmed, "NOTE"), trimmed == "STYLE", trimmed == "REGION":
			inSkipBlock = true
		case strings.Contains(trimmed, "-->"):
			flush()
			start, end, err := parseTimingLine(trimmed)
			if err != nil {
				return nil, fmt.Errorf("vtt timing: %w", err)
			}
			current = &Event{Start: start, End: end}
		default:
			if current == nil {
				// Cue identifier line.
				continue
			}
			textLines = append(textLines, line)
		}
	}
	flush()
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read vtt: %w", err)
	}
	return events, nil
}
