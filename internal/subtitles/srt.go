package subtitles

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ParseSRT reads SubRip cues from r. Cue indices are ignored (renumbered
// files are common); blocks without a valid timing line are skipped.
func ParseSRT(r io.Reader) ([]Event, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var events []Event
	var current *Event
	var textLines []string

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
		}
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.Contains(trimmed, "-->"):
			flush()
			start, end, err := parseTimingLine(trimmed)
			if err != nil {
				return nil, fmt.Errorf("srt timing: %w", err)
			}
			current = &Event{Start: start, End: end}
		case trimmed == "":
			flush()
		default:
			if current == nil {
				// Index line or stray text before the first timing line.
				continue
			}
			textLines = append(textLines, line)
		}
	}
	flush()
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read srt: %w", err)
	}
	return events, nil
}

func parseTimingLine(line string) (float64, float64, error) {
	parts := strings.SplitN(line, "-->", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid timing line %q", line)
	}
	start, err := parseTimestamp(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, err
	}
	// VTT cue settings may trail the end timestamp.
	endText := strings.Fields(strings.TrimSpace(parts[1]))
	if len(endText) == 0 {
		return 0, 0, fmt.Errorf("invalid timing line %q", line)
	}
	end, err := parseTimestamp(endText[0])
	if err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

// parseTimestamp accepts both SRT ("00:01:02,345") and VTT ("00:01:02.345",
// "01:02.345") timestamps and returns seconds.
func parseTimestamp(value string) (float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("empty timestamp")
	}
	value = strings.ReplaceAll(value, ",", ".")
	clock := strings.Split(value, ":")
	if len(clock) < 2 || len(clock) > 3 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	seconds, err := strconv.ParseFloat(clock[len(clock)-1], 64)
	if err != nil {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	minutes, err := strconv.Atoi(clock[len(clock)-2])
	if err != nil {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hours := 0
	if len(clock) == 3 {
		hours, err = strconv.Atoi(clock[0])
		if err != nil {
			return 0, fmt.Errorf("invalid timestamp %q", value)
		}
	}
	return float64(hours*3600+minutes*60) + seconds, nil
}

// WriteSRT writes events as a SubRip file with 1-based indices.
func WriteSRT(w io.Writer, events []Event) error {
	for i, e := range events {
		if _, err := fmt.Fprintf(w, "%d\n%s --> %s\n%s\n\n",
			i+1, formatSRTTimestamp(e.Start), formatSRTTimestamp(e.End), e.Text); err != nil {
			return err
		}
	}
	return nil
}

func formatSRTTimestamp(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	millis := int64(seconds*1000 + 0.5)
	h := millis / 3600000
	millis %= 3600000
	m := millis / 60000
	millis %= 60000
	s := millis / 1000
	ms := millis % 1000
	return fmt.Sprintf("%02d:%02d:%02d,%03d", h, m, s, ms)
}
