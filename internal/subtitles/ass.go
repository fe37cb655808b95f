package subtitles

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ParseASS reads Dialogue events from an ASS/SSA script. The [Events]
// Format line determines field order; Comment lines are skipped. Text keeps
// override tags so styling survives re-writing; use PlainText to strip.
func ParseASS(r io.Reader) ([]Event, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var events []Event
	inEvents := false
	startField, endField, textField := -1, -1, -1
	fieldCount := 0

	first := true
	for scanner.Scan() {
		line := scanner.Text()
		if first {
			line = strings.TrimPrefix(line, "\uFEFF")
			first = false
		}
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "["):
			inEvents = strings.EqualFold(trimmed, "[Events]")
		case !inEvents || trimmed == "":
			continue
		case strings.HasPrefix(trimmed, "Format:"):
			fields := strings.Split(strings.TrimPrefix(trimmed, "Format:"), ",")
			fieldCount = len(fields)
			for i, f := range fields {
				switch strings.ToLower(strings.TrimSpace(f)) {
				case "start":
					startField = i
				case "end":
					endField = i
				case "text":
					textField = i
				}
			}
		case strings.HasPrefix(trimmed, "Dialogue:"):
			if startField < 0 || endField < 0 || textField < 0 {
				return nil, fmt.Errorf("ass: Dialogue before Format line")
			}
			body := strings.TrimSpace(strings.TrimPrefix(trimmed, "Dialogue:"))
			// Text is the last field and may itself contain commas.
			parts := strings.SplitN(body, ",", fieldCount)
			if len(parts) < fieldCount {
				continue
			}
			start, err := parseASSTimestamp(parts[startField])
			if err != nil {
				return nil, fmt.Errorf("ass timing: %w", err)
			}
			end, err := parseASSTimestamp(parts[endField])
			if err != nil {
				return nil, fmt.Errorf("ass timing: %w", err)
			}
			events = append(events, Event{Start: start, End: end, Text: parts[textField]})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read ass: %w", err)
	}
	return events, nil
}

// WriteASS writes events as a minimal ASS script with a single Default
// style. Event text is emitted as-is, so override tags survive a
// parse/write round trip.
func WriteASS(w io.Writer, events []Event) error {
	const header = `[Script Info]
ScriptType: v4.00+
WrapStyle: 0
ScaledBorderAndShadow: yes

[V4+ Styles]
Format: Name, Fontname, Fontsize, PrimaryColour, SecondaryColour, OutlineColour, BackColour, Bold, Italic, Underline, StrikeOut, ScaleX, ScaleY, Spacing, Angle, BorderStyle, Outline, Shadow, Alignment, MarginL, MarginR, MarginV, Encoding
Style: Default,Arial,48,&H00FFFFFF,&H000000FF,&H00000000,&H00000000,0,0,0,0,100,100,0,0,1,2,2,2,10,10,10,1

[Events]
Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text
`
	if _, err := io.WriteString(w, header); err != nil {
		return err
	}
	for _, e := range events {
		text := strings.ReplaceAll(e.Text, "\n", `\N`)
		if _, err := fmt.Fprintf(w, "Dialogue: 0,%s,%s,Default,,0,0,0,,%s\n",
			formatASSTimestamp(e.Start), formatASSTimestamp(e.End), text); err != nil {
			return err
		}
	}
	return nil
}

func formatASSTimestamp(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	centis := int64(seconds*100 + 0.5)
	h := centis / 360000
	centis %= 360000
	m := centis / 6000
	centis %= 6000
	s := centis / 100
	cs := centis % 100
	return fmt.Sprintf("%d:%02d:%02d.%02d", h, m, s, cs)
}

// parseASSTimestamp parses "H:MM:SS.CC" (centiseconds) to seconds.
func parseASSTimestamp(value string) (float64, error) {
	value = strings.TrimSpace(value)
	clock := strings.Split(value, ":")
	if len(clock) != 3 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hours, errH := strconv.Atoi(clock[0])
	minutes, errM := strconv.Atoi(clock[1])
	seconds, errS := strconv.ParseFloat(clock[2], 64)
	if errH != nil || errM != nil || errS != nil {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	return float64(hours*3600+minutes*60) + seconds, nil
}
