package encoder

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/welpo/shuku/internal/condense"
)

// Encoder runs ffmpeg for plan execution. The zero value uses the ffmpeg
// binary from PATH and discards logs.
type Encoder struct {
	Binary string
	Logger *slog.Logger
}

func (e *Encoder) binary() string {
	if b := strings.TrimSpace(e.Binary); b != "" {
		return b
	}
	return "ffmpeg"
}

func (e *Encoder) logger() *slog.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Available reports whether the ffmpeg binary can be found.
func (e *Encoder) Available() error {
	if _, err := exec.LookPath(e.binary()); err != nil {
		return fmt.Errorf("ffmpeg not found: %w", err)
	}
	return nil
}

func (e *Encoder) run(ctx context.Context, args []string) error {
	e.logger().Debug("running ffmpeg", "args", strings.Join(args, " "))
	cmd := exec.CommandContext(ctx, e.binary(), args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		detail := strings.TrimSpace(string(output))
		if detail != "" {
			return fmt.Errorf("ffmpeg: %w: %s", err, detail)
		}
		return fmt.Errorf("ffmpeg: %w", err)
	}
	return nil
}

// ExtractSegments stream-copies every plan segment into tempDir and
// returns the segment file paths in timeline order. videoTrackID < 0
// extracts audio only.
func (e *Encoder) ExtractSegments(ctx context.Context, plan condense.EncodePlan, videoTrackID int, tempDir string) ([]string, error) {
	if !plan.HasAudio() {
		return nil, errors.New("extract segments: plan has no audio track")
	}
	e.logger().Info("extracting segments", "count", len(plan.Segments))
	paths := make([]string, 0, len(plan.Segments))
	for i, segment := range plan.Segments {
		output := filepath.Join(tempDir, fmt.Sprintf("segment_%d.mkv", i))
		args := SegmentArgs(plan.Source, output, segment, plan.AudioTrackID, videoTrackID)
		if err := e.run(ctx, args); err != nil {
			return nil, fmt.Errorf("extract segment %d: %w", i, err)
		}
		paths = append(paths, output)
	}
	return paths, nil
}

// WriteConcatFile writes the concat demuxer listing for the segment files.
func WriteConcatFile(tempDir string, segmentPaths []string) (string, error) {
	path := filepath.Join(tempDir, "concat.txt")
	if err := os.WriteFile(path, []byte(ConcatFileContent(segmentPaths)), 0o644); err != nil {
		return "", fmt.Errorf("write concat file: %w", err)
	}
	return path, nil
}

// EncodeAudio produces the condensed audio file from the concatenated
// segments.
func (e *Encoder) EncodeAudio(ctx context.Context, concatFile, output string, params condense.AudioParams, metadata []string) error {
	e.logger().Info("creating condensed audio", "codec", params.Codec)
	return e.run(ctx, AudioEncodeArgs(concatFile, output, params, metadata))
}

// EncodeVideo produces the condensed video file from the concatenated
// segments.
func (e *Encoder) EncodeVideo(ctx context.Context, concatFile, output string, video condense.VideoParams, audio condense.AudioParams, metadata []string) error {
	e.logger().Info("creating condensed video", "codec", video.Codec)
	return e.run(ctx, VideoEncodeArgs(concatFile, output, video, audio, metadata))
}

// ExtractSubtitleTrack pulls an embedded text subtitle track into tempDir
// and returns its path.
func (e *Encoder) ExtractSubtitleTrack(ctx context.Context, source string, trackID int, codec, tempDir string) (string, error) {
	output := filepath.Join(tempDir, fmt.Sprintf("subtitles_%d.%s", trackID, SubtitleExtension(codec)))
	e.logger().Info("extracting embedded subtitles", "track", trackID, "codec", codec)
	if err := e.run(ctx, SubtitleExtractArgs(source, output, trackID)); err != nil {
		return "", fmt.Errorf("extract subtitle track %d: %w", trackID, err)
	}
	return output, nil
}
