package subtitles

import (
	"fmt"
	"io"
)

// LRCMeta carries the header tags written at the top of an LRC file.
type LRCMeta struct {
	Title   string
	Tool    string
	Version string
	By      string
}

// WriteLRC writes events as synchronized lyrics. Markup is stripped and
// each cue becomes one timestamped line. The LRC format has no hour field,
// so minutes keep counting past 59.
func WriteLRC(w io.Writer, events []Event, meta LRCMeta) error {
	header := []struct{ tag, value string }{
		{"ti", meta.Title},
		{"tool", meta.Tool},
		{"ve", meta.Version},
		{"by", meta.By},
	}
	for _, h := range header {
		if h.value == "" {
			continue
		}
		if _, err := fmt.Fprintf(w, "[%s:%s]\n", h.tag, h.value); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	for _, e := range events {
		start := e.Start
		if start < 0 {
			start = 0
		}
		minutes := int(start) / 60
		seconds := start - float64(minutes*60)
		if _, err := fmt.Fprintf(w, "[%02d:%05.2f]%s\n", minutes, seconds, PlainText(e.Text)); err != nil {
			return err
		}
	}
	return nil
}
