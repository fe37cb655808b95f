package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/welpo/shuku/internal/condense"
	"github.com/welpo/shuku/internal/fileutil"
	"github.com/welpo/shuku/internal/naming"
	"github.com/welpo/shuku/internal/subtitles"
)

// RebaseEvents maps subtitle events onto the condensed timeline. Only
// events starting inside a kept segment survive; an event running past
// its segment's end is clipped to the segment boundary.
func RebaseEvents(events []subtitles.Event, segments []condense.Segment) []subtitles.Event {
	sorted := append([]subtitles.Event(nil), events...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	var out []subtitles.Event
	var elapsed float64
	for _, seg := range segments {
		for _, e := range sorted {
			if e.Start < seg.Start {
				continue
			}
			if e.Start >= seg.End {
				break
			}
			start := e.Start - seg.Start + elapsed
			end := e.End - seg.Start + elapsed
			if limit := seg.Duration() + elapsed; end > limit {
				end = limit
			}
			out = append(out, subtitles.Event{Start: start, End: end, Text: e.Text})
		}
		elapsed += seg.Duration()
	}
	return out
}

// MetadataEntries builds the key=value container tags for an output file.
func MetadataEntries(cleanName, basename, season, episode, version string) []string {
	entries := []string{
		"title=" + cleanName,
		"artist=shuku",
		"genre=Condensed Media",
	}
	if episode != "" {
		entries = append(entries, "track="+episode)
	}
	if season != "" {
		entries = append(entries, "disc="+season)
	}
	entries = append(entries,
		"album=Condensed with shuku",
		fmt.Sprintf("date=%d", time.Now().UTC().Year()),
		fmt.Sprintf("encoded_by=shuku v%s", version),
		fmt.Sprintf("comment=%s condensed with shuku", basename),
	)
	return entries
}

// OutputPath derives the destination filename for an output artifact.
func (p *Pipeline) OutputPath(inputPath, ext string) string {
	stem := naming.Stem(inputPath)
	filename := stem
	if p.cfg.CleanOutputFilename {
		filename = naming.ForDisplay(stem)
	}
	filename = filename + p.cfg.OutputSuffix + "." + ext

	dir := p.opts.OutputDirectory
	if dir == "" {
		dir = p.cfg.OutputDirectory
	}
	if dir == "" {
		dir = filepath.Dir(inputPath)
	}
	return filepath.Join(dir, filename)
}

// deliver moves a finished temp file to its final destination, honouring
// the if_file_exists policy. An empty return means the file was skipped.
func (p *Pipeline) deliver(tempPath, inputPath, ext string) (string, error) {
	destination := p.OutputPath(inputPath, ext)
	if err := fileutil.EnsureDir(filepath.Dir(destination)); err != nil {
		return "", err
	}
	resolved := p.resolveDestination(destination)
	if resolved == "" {
		p.log.Info("skipping existing file", "output", destination)
		return "", nil
	}
	if err := fileutil.MoveFile(tempPath, resolved); err != nil {
		return "", fmt.Errorf("move output: %w", err)
	}
	return resolved, nil
}

func (p *Pipeline) resolveDestination(path string) string {
	if !fileutil.Exists(path) {
		return path
	}
	policy := p.cfg.IfFileExists
	if policy == "ask" {
		if p.opts.Ask == nil {
			policy = "rename"
		} else {
			policy = p.opts.Ask(
				fmt.Sprintf("File already exists: %q", path),
				[]string{"overwrite", "rename", "skip"},
				"rename",
			)
		}
	}
	switch policy {
	case "skip":
		return ""
	case "overwrite":
		p.log.Info("overwriting existing file", "output", path)
		return path
	default: // rename
		renamed := fileutil.TimestampedPath(path, time.Now())
		p.log.Info("renaming output", "output", renamed)
		return renamed
	}
}

// writeCondensedSubtitles produces the condensed subtitle artifact.
func (p *Pipeline) writeCondensedSubtitles(inputPath string, events []subtitles.Event, segments []condense.Segment, inputFormat string) (string, error) {
	rebased := RebaseEvents(events, segments)
	ext := p.subtitleOutputFormat(inputFormat)

	temp, err := os.CreateTemp("", "shuku-subs-*."+ext)
	if err != nil {
		return "", fmt.Errorf("create temp subtitles: %w", err)
	}
	defer os.Remove(temp.Name())

	switch ext {
	case "lrc":
		meta := subtitles.LRCMeta{
			Title:   naming.ForDisplay(naming.Stem(inputPath)),
			Tool:    "shuku",
			Version: p.opts.Version,
		}
		err = subtitles.WriteLRC(temp, rebased, meta)
	case "ass", "ssa":
		err = subtitles.WriteASS(temp, rebased)
	default:
		ext = "srt"
		err = subtitles.WriteSRT(temp, rebased)
	}
	if closeErr := temp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return "", fmt.Errorf("write condensed subtitles: %w", err)
	}

	out, err := p.deliver(temp.Name(), inputPath, ext)
	if err != nil {
		return "", err
	}
	if out != "" {
		p.log.Info("condensed subtitles created", "output", out)
	}
	return out, nil
}

// subtitleOutputFormat resolves the configured subtitle format, "auto"
// following the input subtitle's own format.
func (p *Pipeline) subtitleOutputFormat(inputFormat string) string {
	format := p.cfg.CondensedSubtitles.Format
	if format != "auto" {
		return format
	}
	switch inputFormat {
	case "srt", "ass", "ssa", "vtt":
		if inputFormat == "vtt" {
			return "srt"
		}
		return inputFormat
	default:
		return "srt"
	}
}
