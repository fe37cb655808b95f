package ffprobe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/welpo/shuku/internal/media"
)

// Result represents the parsed output from an ffprobe inspection.
type Result struct {
	Streams  []Stream  `json:"streams"`
	Chapters []Chapter `json:"chapters"`
	Format   Format    `json:"format"`
}

// Stream describes a single stream in the media container.
type Stream struct {
	Index       int         `json:"index"`
	CodecName   string      `json:"codec_name"`
	CodecType   string      `json:"codec_type"`
	Tags        Tags        `json:"tags"`
	Disposition Disposition `json:"disposition"`
}

// Tags holds the stream metadata tags shuku cares about.
type Tags struct {
	Language string `json:"language"`
	Title    string `json:"title"`
}

// Disposition carries the default/forced stream flags.
type Disposition struct {
	Default int `json:"default"`
	Forced  int `json:"forced"`
}

// Chapter is a raw chapter atom; times arrive as decimal strings.
type Chapter struct {
	Tags      Tags   `json:"tags"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// Format captures container-level metadata extracted by ffprobe.
type Format struct {
	Filename string `json:"filename"`
	Duration string `json:"duration"`
}

// Inspect executes ffprobe against the provided path and decodes the JSON response.
func Inspect(ctx context.Context, binary string, path string) (Result, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffprobe"
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return Result{}, errors.New("ffprobe inspect: empty path")
	}

	cmd := exec.CommandContext(ctx, binary,
		"-v", "error", "-hide_banner",
		"-show_streams", "-show_chapters", "-show_format",
		"-of", "json", "--", path)
	output, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return Result{}, fmt.Errorf("ffprobe inspect: %w: %s", err, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return Result{}, fmt.Errorf("ffprobe inspect: %w", err)
	}

	var result Result
	if err := json.Unmarshal(output, &result); err != nil {
		return Result{}, fmt.Errorf("ffprobe parse: %w", err)
	}
	return result, nil
}

// Snapshot converts the raw probe result into the typed media.Info the
// pipeline consumes. Streams with unknown codec types are skipped.
func (r Result) Snapshot(path string) media.Info {
	info := media.Info{
		Path:     path,
		Duration: parseSeconds(r.Format.Duration),
	}
	for _, s := range r.Streams {
		var kind media.TrackKind
		switch strings.ToLower(s.CodecType) {
		case "video":
			kind = media.TrackVideo
		case "audio":
			kind = media.TrackAudio
		case "subtitle":
			kind = media.TrackSubtitle
		default:
			continue
		}
		info.Tracks = append(info.Tracks, media.Track{
			ID:       s.Index,
			Kind:     kind,
			Codec:    s.CodecName,
			Language: s.Tags.Language,
			Title:    s.Tags.Title,
			Default:  s.Disposition.Default == 1,
			Forced:   s.Disposition.Forced == 1,
		})
	}
	for _, c := range r.Chapters {
		info.Chapters = append(info.Chapters, media.Chapter{
			Title: c.Tags.Title,
			Start: parseSeconds(c.StartTime),
			End:   parseSeconds(c.EndTime),
		})
	}
	return info
}

func parseSeconds(value string) float64 {
	cleaned := strings.TrimSpace(value)
	if cleaned == "" {
		return 0
	}
	parsed, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || parsed < 0 {
		return 0
	}
	return parsed
}
