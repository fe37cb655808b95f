package subtitles

// Event is a single subtitle cue. Times are in seconds from the start of
// the media. Text keeps the original markup; use PlainText for filtering.
type Event struct {
	Start float64
	End   float64
	Text  string
}

// Duration returns the cue length in seconds.
func (e Event) Duration() float64 {
	return e.End - e.Start
}

// Shift returns a copy of events with every cue moved by delay seconds.
// Cues shifted before zero are clamped at zero on both ends.
func Shift(events []Event, delay float64) []Event {
	if delay == 0 || len(events) == 0 {
		return events
	}
	shifted := make([]Event, 0, len(events))
	for _, e := range events {
		start := e.Start + delay
		end := e.End + delay
		if end <= 0 {
			continue
		}
		if start < 0 {
			start = 0
		}
		shifted = append(shifted, Event{Start: start, End: end, Text: e.Text})
	}
	return shifted
}
