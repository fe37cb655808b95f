package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/welpo/shuku/internal/condense"
	"github.com/welpo/shuku/internal/media"
	"github.com/welpo/shuku/internal/naming"
	"github.com/welpo/shuku/internal/subtitles"
)

// subtitleSource is the resolved dialogue source for one input file.
type subtitleSource struct {
	events  []subtitles.Event
	format  string // "srt", "ass", ...
	trackID int    // embedded stream index, NoTrack for external files
	path    string // external subtitle file, "" when embedded
}

// acquireSubtitles locates the dialogue source for the input: an explicit
// file, an external match near the video, or a text subtitle track
// extracted from the container.
func (p *Pipeline) acquireSubtitles(ctx context.Context, info media.Info, tempDir string) (subtitleSource, error) {
	if p.opts.SubtitleTrackID != NoTrack {
		return p.extractEmbedded(ctx, info, p.opts.SubtitleTrackID, tempDir)
	}

	explicitDir := ""
	if p.opts.SubtitlesPath != "" {
		fi, err := os.Stat(p.opts.SubtitlesPath)
		if err != nil {
			return subtitleSource{}, fmt.Errorf("subtitles path: %w", err)
		}
		if !fi.IsDir() {
			return loadSubtitleFile(p.opts.SubtitlesPath)
		}
		explicitDir = p.opts.SubtitlesPath
	}

	if path := p.searchExternal(info.Path, explicitDir); path != "" {
		p.log.Info("using external subtitles", "subtitles", path)
		return loadSubtitleFile(path)
	}

	track, ok := p.selectSubtitleTrack(info)
	if !ok {
		return subtitleSource{}, fmt.Errorf("no subtitles found for %s", info.Path)
	}
	return p.extractEmbedded(ctx, info, track.ID, tempDir)
}

// searchExternal looks for a subtitle file matching the video name. The
// explicit directory and the configured subtitle_directory are always
// searched; the video's own directory joins them unless external search
// is disabled. Returns "" when nothing qualifies.
func (p *Pipeline) searchExternal(videoPath, explicitDir string) string {
	var dirs []string
	if explicitDir != "" {
		dirs = append(dirs, explicitDir)
	}
	if p.cfg.SubtitleDirectory != "" {
		dirs = append(dirs, p.cfg.SubtitleDirectory)
	}
	if p.cfg.ExternalSubtitleSearch != "disabled" {
		dirs = append(dirs, filepath.Dir(videoPath))
	}

	stem := naming.Stem(videoPath)
	for _, dir := range dirs {
		// A file named exactly after the video wins without scoring.
		for _, ext := range subtitles.Extensions {
			candidate := filepath.Join(dir, stem+ext)
			if fi, err := os.Stat(candidate); err == nil && !fi.IsDir() {
				return candidate
			}
		}
		if path := p.matchInDirectory(dir, stem); path != "" {
			return path
		}
	}
	return ""
}

func (p *Pipeline) matchInDirectory(dir, stem string) string {
	var mode condense.MatchMode
	switch p.cfg.ExternalSubtitleSearch {
	case "exact":
		mode = condense.MatchExact
	case "fuzzy":
		mode = condense.MatchFuzzy
	default:
		return ""
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		p.log.Warn("cannot read subtitle directory", "directory", dir, "error", err)
		return ""
	}
	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !subtitles.IsSubtitlePath(entry.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	if len(paths) == 0 {
		return ""
	}

	match, err := condense.FindSubtitle(stem, condense.NewCandidates(paths),
		mode, p.cfg.SubtitleMatchThreshold, p.cfg.SubtitleLanguages)
	if err != nil {
		return ""
	}
	p.log.Debug("matched subtitle file",
		"subtitles", match.Candidate.Path,
		"score", fmt.Sprintf("%.2f", match.Score))
	return match.Candidate.Path
}

func (p *Pipeline) selectSubtitleTrack(info media.Info) (media.Track, bool) {
	track, ok := condense.SelectSubtitleTrack(info.Tracks, p.cfg.SubtitleLanguages)
	if !ok {
		return media.Track{}, false
	}
	if p.opts.ChooseTrack != nil && !condense.MatchesPreferredLanguage(track, p.cfg.SubtitleLanguages) {
		candidates := condense.RankSubtitleTracks(info.Tracks, p.cfg.SubtitleLanguages)
		if len(candidates) > 1 {
			if chosen, picked := p.opts.ChooseTrack(media.TrackSubtitle, candidates); picked {
				return chosen, true
			}
		}
	}
	return track, true
}

func (p *Pipeline) extractEmbedded(ctx context.Context, info media.Info, trackID int, tempDir string) (subtitleSource, error) {
	track, ok := info.TrackByID(trackID)
	if !ok || track.Kind != media.TrackSubtitle {
		return subtitleSource{}, fmt.Errorf("no subtitle track %d in %s", trackID, info.Path)
	}
	if !media.IsTextSubtitleCodec(track.Codec) {
		return subtitleSource{}, fmt.Errorf("subtitle track %d is not text-based (%s)", trackID, track.Codec)
	}
	p.log.Debug("extracting embedded subtitles", "id", track.ID, "codec", track.Codec)
	path, err := p.enc.ExtractSubtitleTrack(ctx, info.Path, track.ID, track.Codec, tempDir)
	if err != nil {
		return subtitleSource{}, err
	}
	events, err := subtitles.Load(path)
	if err != nil {
		return subtitleSource{}, err
	}
	return subtitleSource{
		events:  events,
		format:  media.SubtitleExtension(track.Codec),
		trackID: track.ID,
	}, nil
}

func loadSubtitleFile(path string) (subtitleSource, error) {
	events, err := subtitles.Load(path)
	if err != nil {
		return subtitleSource{}, err
	}
	return subtitleSource{
		events:  events,
		format:  strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), "."),
		trackID: NoTrack,
		path:    path,
	}, nil
}
