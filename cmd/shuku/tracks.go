package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"

	"github.com/welpo/shuku/internal/language"
	"github.com/welpo/shuku/internal/media"
)

// chooseTrack shows the candidate tracks and asks which stream to use.
// Outside a terminal it declines, keeping the automatic choice.
func chooseTrack(kind media.TrackKind, candidates []media.Track) (media.Track, bool) {
	if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		return media.Track{}, false
	}

	fmt.Fprintf(os.Stderr, "Multiple %s tracks found:\n%s\n", kind, renderTrackTable(candidates))
	fmt.Fprintf(os.Stderr, "Stream index to use (default %d): ", candidates[0].ID)

	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return media.Track{}, false
	}
	answer := strings.TrimSpace(line)
	if answer == "" {
		return media.Track{}, false
	}
	id, err := strconv.Atoi(answer)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Not a stream index: %q\n", answer)
		return media.Track{}, false
	}
	for _, t := range candidates {
		if t.ID == id {
			return t, true
		}
	}
	fmt.Fprintf(os.Stderr, "No candidate with stream index %d\n", id)
	return media.Track{}, false
}

func renderTrackTable(tracks []media.Track) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"ID", "Language", "Codec", "Title", "Flags"})

	for _, t := range tracks {
		lang := language.DisplayName(t.Language)
		var flags []string
		if t.Default {
			flags = append(flags, "default")
		}
		if t.Forced {
			flags = append(flags, "forced")
		}
		tw.AppendRow(table.Row{t.ID, lang, t.Codec, t.Title, strings.Join(flags, ", ")})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}
