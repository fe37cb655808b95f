package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/welpo/shuku/internal/condense"
	"github.com/welpo/shuku/internal/config"
	"github.com/welpo/shuku/internal/encoder"
	"github.com/welpo/shuku/internal/media"
	"github.com/welpo/shuku/internal/media/ffprobe"
	"github.com/welpo/shuku/internal/naming"
	"github.com/welpo/shuku/internal/subtitles"
)

// NoTrack mirrors condense.NoTrack for callers configuring overrides.
const NoTrack = condense.NoTrack

// Probe inspects a media file and returns its snapshot.
type Probe func(ctx context.Context, path string) (media.Info, error)

// AskFunc resolves an interactive choice. It receives a prompt, the
// choices in display order, and the default; it returns the chosen entry.
type AskFunc func(prompt string, choices []string, def string) string

// ChooseTrackFunc lets the caller pick among candidate tracks when
// automatic selection has no language preference to go on. Returning
// ok=false keeps the automatic choice.
type ChooseTrackFunc func(kind media.TrackKind, candidates []media.Track) (media.Track, bool)

// Options configures a Pipeline.
type Options struct {
	Config  *config.Config
	Logger  *slog.Logger
	Encoder *encoder.Encoder
	Probe   Probe

	// Command-line overrides.
	OutputDirectory string
	SubtitlesPath   string  // explicit subtitle file or directory
	AudioTrackID    int     // NoTrack selects automatically
	SubtitleTrackID int     // NoTrack selects automatically
	SubtitleDelay   float64 // seconds, applied to subtitle events

	Ask         AskFunc
	ChooseTrack ChooseTrackFunc

	// Version is recorded in output metadata.
	Version string
}

// Pipeline executes condensation runs.
type Pipeline struct {
	opts  Options
	cfg   *config.Config
	log   *slog.Logger
	enc   *encoder.Encoder
	probe Probe
}

// New builds a Pipeline from options, filling in defaults for the probe
// and encoder.
func New(opts Options) (*Pipeline, error) {
	if opts.Config == nil {
		return nil, errors.New("pipeline: nil config")
	}
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	enc := opts.Encoder
	if enc == nil {
		enc = &encoder.Encoder{Binary: opts.Config.FFmpegBinary(), Logger: log}
	}
	probe := opts.Probe
	if probe == nil {
		binary := opts.Config.FFprobeBinary()
		probe = func(ctx context.Context, path string) (media.Info, error) {
			result, err := ffprobe.Inspect(ctx, binary, path)
			if err != nil {
				return media.Info{}, err
			}
			return result.Snapshot(path), nil
		}
	}
	return &Pipeline{opts: opts, cfg: opts.Config, log: log, enc: enc, probe: probe}, nil
}

// Preflight verifies the external tools a run will need. ffprobe is
// always required; ffmpeg only when something must be encoded or
// extracted.
func (p *Pipeline) Preflight() error {
	if _, err := exec.LookPath(p.cfg.FFprobeBinary()); err != nil {
		return fmt.Errorf("ffprobe not found: %w", err)
	}
	if p.cfg.CondensedAudio.Enabled || p.cfg.CondensedVideo.Enabled || p.cfg.CondensedSubtitles.Enabled {
		if err := p.enc.Available(); err != nil {
			return err
		}
	}
	return nil
}

// Result reports what a single file's run produced.
type Result struct {
	Input   string
	Outputs []string
	Summary condense.Summary
}

// Process condenses one input file.
func (p *Pipeline) Process(ctx context.Context, path string) (Result, error) {
	result := Result{Input: path}
	p.log.Info("processing file", "input", path)

	if _, err := os.Stat(path); err != nil {
		return result, fmt.Errorf("input: %w", err)
	}

	info, err := p.probe(ctx, path)
	if err != nil {
		return result, fmt.Errorf("probe %s: %w", path, err)
	}

	tempDir, err := os.MkdirTemp("", "shuku-*")
	if err != nil {
		return result, fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(tempDir)

	needsAudio := p.cfg.CondensedAudio.Enabled || p.cfg.CondensedVideo.Enabled
	audioTrackID := NoTrack
	audioCodec := ""
	if needsAudio {
		track, ok := p.selectAudio(info)
		if !ok {
			return result, fmt.Errorf("no audio track in %s", path)
		}
		audioTrackID = track.ID
		audioCodec = track.Codec
		p.log.Debug("selected audio track", "id", track.ID, "language", track.Language)
	}

	source, err := p.acquireSubtitles(ctx, info, tempDir)
	if err != nil {
		return result, err
	}
	if p.opts.SubtitleDelay != 0 {
		source.events = subtitles.Shift(source.events, p.opts.SubtitleDelay)
	}

	plan, err := p.buildPlan(info, source, audioTrackID)
	if err != nil {
		return result, err
	}
	result.Summary = plan.Summary()
	p.log.Info("built plan",
		"segments", len(plan.Segments),
		"condensed", plan.CondensedDuration,
		"ratio", fmt.Sprintf("%.2f", result.Summary.Ratio()))

	metadata := p.buildMetadata(path)

	if p.cfg.CondensedSubtitles.Enabled {
		out, err := p.writeCondensedSubtitles(path, source.events, plan.Segments, source.format)
		if err != nil {
			return result, err
		}
		if out != "" {
			result.Outputs = append(result.Outputs, out)
		}
	}

	if needsAudio {
		outs, err := p.encodeOutputs(ctx, plan, info, audioCodec, tempDir, metadata)
		if err != nil {
			return result, err
		}
		result.Outputs = append(result.Outputs, outs...)
	}
	return result, nil
}

func (p *Pipeline) selectAudio(info media.Info) (media.Track, bool) {
	if p.opts.AudioTrackID != NoTrack {
		if track, ok := info.TrackByID(p.opts.AudioTrackID); ok && track.Kind == media.TrackAudio {
			return track, true
		}
		p.log.Warn("requested audio track not found, selecting automatically", "id", p.opts.AudioTrackID)
	}
	track, ok := condense.SelectAudioTrack(info.Tracks, p.cfg.AudioLanguages)
	if !ok {
		return media.Track{}, false
	}
	// With several candidates and no preference hit, let the caller pick.
	if p.opts.ChooseTrack != nil && !condense.MatchesPreferredLanguage(track, p.cfg.AudioLanguages) {
		audio := info.TracksOfKind(media.TrackAudio)
		if len(audio) > 1 {
			if chosen, picked := p.opts.ChooseTrack(media.TrackAudio, audio); picked {
				return chosen, true
			}
		}
	}
	return track, true
}

func (p *Pipeline) buildPlan(info media.Info, source subtitleSource, audioTrackID int) (condense.EncodePlan, error) {
	patterns, err := condense.CompileSkipPatterns(p.cfg.LineSkipPatterns)
	if err != nil {
		return condense.EncodePlan{}, fmt.Errorf("line_skip_patterns: %w", err)
	}
	intervals, err := condense.NormalizeEvents(source.events, patterns)
	if err != nil {
		return condense.EncodePlan{}, err
	}
	skipped, kept := condense.PartitionChapters(info.Chapters, p.cfg.SkipChapters)
	if len(skipped) > 0 {
		p.log.Debug("skipping chapters", "count", len(skipped))
	}
	intervals = condense.FilterChapterIntervals(intervals, skipped)
	segments, err := condense.BuildSegments(intervals, p.cfg.Padding, info.Duration)
	if err != nil {
		return condense.EncodePlan{}, err
	}
	return condense.BuildPlan(condense.PlanInput{
		Source:               info.Path,
		Segments:             segments,
		TotalDuration:        info.Duration,
		AudioTrackID:         audioTrackID,
		SubtitleTrackID:      source.trackID,
		ExternalSubtitlePath: source.path,
		ChaptersKept:         kept,
		ChaptersRemoved:      skipped,
		Codec:                p.cfg.EncodeParams(),
	})
}

func (p *Pipeline) encodeOutputs(ctx context.Context, plan condense.EncodePlan, info media.Info, sourceAudioCodec, tempDir string, metadata []string) ([]string, error) {
	videoTrackID := NoTrack
	if p.cfg.CondensedVideo.Enabled {
		videoTracks := info.TracksOfKind(media.TrackVideo)
		if len(videoTracks) == 0 {
			return nil, fmt.Errorf("no video stream in %s", info.Path)
		}
		videoTrackID = videoTracks[0].ID
	}

	segmentFiles, err := p.enc.ExtractSegments(ctx, plan, videoTrackID, tempDir)
	if err != nil {
		return nil, err
	}
	concatFile, err := encoder.WriteConcatFile(tempDir, segmentFiles)
	if err != nil {
		return nil, err
	}

	var outputs []string
	if p.cfg.CondensedAudio.Enabled {
		ext := encoder.AudioExtension(p.cfg.CondensedAudio.AudioCodec, sourceAudioCodec)
		temp := filepath.Join(tempDir, "condensed."+ext)
		if err := p.enc.EncodeAudio(ctx, concatFile, temp, plan.Codec.Audio, metadata); err != nil {
			return nil, err
		}
		out, err := p.deliver(temp, info.Path, ext)
		if err != nil {
			return nil, err
		}
		if out != "" {
			p.log.Info("condensed audio created", "output", out)
			outputs = append(outputs, out)
		}
	}
	if p.cfg.CondensedVideo.Enabled {
		sourceExt := ""
		if ext := filepath.Ext(info.Path); len(ext) > 1 {
			sourceExt = ext[1:]
		}
		ext := encoder.VideoExtension(p.cfg.CondensedVideo.VideoCodec, sourceExt)
		temp := filepath.Join(tempDir, "condensed_video."+ext)
		if err := p.enc.EncodeVideo(ctx, concatFile, temp, plan.Codec.Video, p.cfg.VideoAudioParams(), metadata); err != nil {
			return nil, err
		}
		out, err := p.deliver(temp, info.Path, ext)
		if err != nil {
			return nil, err
		}
		if out != "" {
			p.log.Info("condensed video created", "output", out)
			outputs = append(outputs, out)
		}
	}
	return outputs, nil
}

// buildMetadata assembles the container tags stamped onto every encoded
// output.
func (p *Pipeline) buildMetadata(path string) []string {
	stem := naming.Stem(path)
	cleanName := naming.ForDisplay(stem)
	season, episode := naming.SeasonEpisode(filepath.Base(path), filepath.Base(filepath.Dir(path)))
	version := p.opts.Version
	if version == "" {
		version = "dev"
	}
	return MetadataEntries(cleanName, filepath.Base(path), season, episode, version)
}
