package pipeline

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/welpo/shuku/internal/condense"
	"github.com/welpo/shuku/internal/config"
	"github.com/welpo/shuku/internal/media"
	"github.com/welpo/shuku/internal/subtitles"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, _, _, err := config.Load("none")
	if err != nil {
		t.Fatalf("Load(none): %v", err)
	}
	return cfg
}

func testPipeline(t *testing.T, cfg *config.Config, mutate func(*Options)) *Pipeline {
	t.Helper()
	opts := Options{
		Config:          cfg,
		AudioTrackID:    NoTrack,
		SubtitleTrackID: NoTrack,
		Probe: func(_ context.Context, path string) (media.Info, error) {
			return media.Info{Path: path, Duration: 60}, nil
		},
	}
	if mutate != nil {
		mutate(&opts)
	}
	p, err := New(opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return p
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

const sampleSRT = `1
00:00:05,000 --> 00:00:07,000
Hello there.

2
00:00:20,000 --> 00:00:22,000
Still here.
`

func TestRebaseEvents(t *testing.T) {
	segments := []condense.Segment{
		{Start: 10, End: 20},
		{Start: 30, End: 40},
	}
	events := []subtitles.Event{
		{Start: 31, End: 33, Text: "c"},
		{Start: 12, End: 15, Text: "a"},
		{Start: 18, End: 25, Text: "b"},
		{Start: 25, End: 26, Text: "gap"},
	}
	got := RebaseEvents(events, segments)
	want := []subtitles.Event{
		{Start: 2, End: 5, Text: "a"},
		{Start: 8, End: 10, Text: "b"}, // clipped to the segment end
		{Start: 11, End: 13, Text: "c"},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d events, want %d: %+v", len(got), len(want), got)
	}
	for i := range want {
		if got[i].Text != want[i].Text ||
			math.Abs(got[i].Start-want[i].Start) > 1e-9 ||
			math.Abs(got[i].End-want[i].End) > 1e-9 {
			t.Errorf("event %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestRebaseEventsEmpty(t *testing.T) {
	if got := RebaseEvents(nil, []condense.Segment{{Start: 0, End: 10}}); len(got) != 0 {
		t.Errorf("expected no events, got %+v", got)
	}
}

func TestMetadataEntries(t *testing.T) {
	entries := MetadataEntries("Show S01E01", "Show.S01E01.mkv", "1", "1", "1.0.0")
	want := []string{
		"title=Show S01E01",
		"artist=shuku",
		"genre=Condensed Media",
		"track=1",
		"disc=1",
		"album=Condensed with shuku",
		fmt.Sprintf("date=%d", time.Now().UTC().Year()),
		"encoded_by=shuku v1.0.0",
		"comment=Show.S01E01.mkv condensed with shuku",
	}
	if len(entries) != len(want) {
		t.Fatalf("got %d entries, want %d: %v", len(entries), len(want), entries)
	}
	for i := range want {
		if entries[i] != want[i] {
			t.Errorf("entry %d: got %q, want %q", i, entries[i], want[i])
		}
	}
}

func TestMetadataEntriesOmitsUnknownNumbering(t *testing.T) {
	entries := MetadataEntries("Movie", "Movie.mkv", "", "", "dev")
	for _, e := range entries {
		if strings.HasPrefix(e, "track=") || strings.HasPrefix(e, "disc=") {
			t.Errorf("unexpected entry %q", e)
		}
	}
}

func TestOutputPath(t *testing.T) {
	cfg := testConfig(t)
	cfg.OutputSuffix = " (condensed)"

	t.Run("clean name in explicit directory", func(t *testing.T) {
		p := testPipeline(t, cfg, func(o *Options) { o.OutputDirectory = "/out" })
		got := p.OutputPath("/media/Show S01E01 [Group].mkv", "mp3")
		want := filepath.Join("/out", "Show S01E01 (condensed).mp3")
		if got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("raw stem next to input", func(t *testing.T) {
		raw := testConfig(t)
		raw.CleanOutputFilename = false
		raw.OutputSuffix = " (condensed)"
		p := testPipeline(t, raw, nil)
		got := p.OutputPath("/media/Show S01E01 [Group].mkv", "srt")
		want := filepath.Join("/media", "Show S01E01 [Group] (condensed).srt")
		if got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("config directory when no override", func(t *testing.T) {
		dirCfg := testConfig(t)
		dirCfg.OutputDirectory = "/configured"
		p := testPipeline(t, dirCfg, nil)
		got := p.OutputPath("/media/Show.mkv", "ogg")
		if filepath.Dir(got) != "/configured" {
			t.Errorf("got directory %q, want /configured", filepath.Dir(got))
		}
	})
}

func TestResolveDestination(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "out.srt")
	writeFile(t, existing, "x")

	t.Run("missing file is used as-is", func(t *testing.T) {
		p := testPipeline(t, testConfig(t), nil)
		fresh := filepath.Join(dir, "fresh.srt")
		if got := p.resolveDestination(fresh); got != fresh {
			t.Errorf("got %q, want %q", got, fresh)
		}
	})

	t.Run("skip", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.IfFileExists = "skip"
		p := testPipeline(t, cfg, nil)
		if got := p.resolveDestination(existing); got != "" {
			t.Errorf("got %q, want empty", got)
		}
	})

	t.Run("overwrite", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.IfFileExists = "overwrite"
		p := testPipeline(t, cfg, nil)
		if got := p.resolveDestination(existing); got != existing {
			t.Errorf("got %q, want %q", got, existing)
		}
	})

	t.Run("rename inserts timestamp", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.IfFileExists = "rename"
		p := testPipeline(t, cfg, nil)
		got := p.resolveDestination(existing)
		if !strings.HasPrefix(got, filepath.Join(dir, "out_")) || !strings.HasSuffix(got, ".srt") {
			t.Errorf("unexpected renamed path %q", got)
		}
	})

	t.Run("ask consults callback", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.IfFileExists = "ask"
		var prompted string
		p := testPipeline(t, cfg, func(o *Options) {
			o.Ask = func(prompt string, choices []string, def string) string {
				prompted = prompt
				if def != "rename" {
					t.Errorf("default = %q, want rename", def)
				}
				return "skip"
			}
		})
		if got := p.resolveDestination(existing); got != "" {
			t.Errorf("got %q, want empty", got)
		}
		if !strings.Contains(prompted, "out.srt") {
			t.Errorf("prompt %q does not name the file", prompted)
		}
	})

	t.Run("ask without callback falls back to rename", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.IfFileExists = "ask"
		p := testPipeline(t, cfg, nil)
		if got := p.resolveDestination(existing); got == "" || got == existing {
			t.Errorf("got %q, want renamed path", got)
		}
	})
}

func TestSubtitleOutputFormat(t *testing.T) {
	tests := []struct {
		configured string
		input      string
		want       string
	}{
		{"auto", "srt", "srt"},
		{"auto", "ass", "ass"},
		{"auto", "ssa", "ssa"},
		{"auto", "vtt", "srt"},
		{"auto", "", "srt"},
		{"srt", "ass", "srt"},
		{"lrc", "srt", "lrc"},
		{"ass", "srt", "ass"},
	}
	for _, tt := range tests {
		cfg := testConfig(t)
		cfg.CondensedSubtitles.Format = tt.configured
		p := testPipeline(t, cfg, nil)
		if got := p.subtitleOutputFormat(tt.input); got != tt.want {
			t.Errorf("format %q with input %q: got %q, want %q", tt.configured, tt.input, got, tt.want)
		}
	}
}

func TestSearchExternalExactFilename(t *testing.T) {
	dir := t.TempDir()
	video := filepath.Join(dir, "Show S01E01.mkv")
	writeFile(t, video, "")
	sub := filepath.Join(dir, "Show S01E01.srt")
	writeFile(t, sub, sampleSRT)

	p := testPipeline(t, testConfig(t), nil)
	if got := p.searchExternal(video, ""); got != sub {
		t.Errorf("got %q, want %q", got, sub)
	}
}

func TestSearchExternalFuzzy(t *testing.T) {
	dir := t.TempDir()
	video := filepath.Join(dir, "Show S01E01.mkv")
	writeFile(t, video, "")
	sub := filepath.Join(dir, "Show S01E01 [Group].srt")
	writeFile(t, sub, sampleSRT)

	p := testPipeline(t, testConfig(t), nil)
	if got := p.searchExternal(video, ""); got != sub {
		t.Errorf("got %q, want %q", got, sub)
	}
}

func TestSearchExternalDisabledSkipsVideoDirectory(t *testing.T) {
	dir := t.TempDir()
	video := filepath.Join(dir, "Show S01E01.mkv")
	writeFile(t, video, "")
	writeFile(t, filepath.Join(dir, "Show S01E01.srt"), sampleSRT)

	cfg := testConfig(t)
	cfg.ExternalSubtitleSearch = "disabled"
	p := testPipeline(t, cfg, nil)
	if got := p.searchExternal(video, ""); got != "" {
		t.Errorf("got %q, want no match", got)
	}
}

func TestSearchExternalSubtitleDirectoryWins(t *testing.T) {
	videoDir := t.TempDir()
	subDir := t.TempDir()
	video := filepath.Join(videoDir, "Show S01E01.mkv")
	writeFile(t, video, "")
	writeFile(t, filepath.Join(videoDir, "Show S01E01.srt"), sampleSRT)
	preferred := filepath.Join(subDir, "Show S01E01.srt")
	writeFile(t, preferred, sampleSRT)

	cfg := testConfig(t)
	cfg.SubtitleDirectory = subDir
	p := testPipeline(t, cfg, nil)
	if got := p.searchExternal(video, ""); got != preferred {
		t.Errorf("got %q, want %q", got, preferred)
	}
}

func TestAcquireSubtitlesExplicitFile(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "custom.srt")
	writeFile(t, sub, sampleSRT)

	p := testPipeline(t, testConfig(t), func(o *Options) { o.SubtitlesPath = sub })
	source, err := p.acquireSubtitles(context.Background(), media.Info{Path: "/nowhere/video.mkv"}, dir)
	if err != nil {
		t.Fatalf("acquireSubtitles: %v", err)
	}
	if len(source.events) != 2 {
		t.Fatalf("got %d events, want 2", len(source.events))
	}
	if source.format != "srt" {
		t.Errorf("format = %q, want srt", source.format)
	}
	if source.trackID != NoTrack {
		t.Errorf("trackID = %d, want NoTrack", source.trackID)
	}
	if source.path != sub {
		t.Errorf("path = %q, want %q", source.path, sub)
	}
}

func TestAcquireSubtitlesNoSource(t *testing.T) {
	dir := t.TempDir()
	video := filepath.Join(dir, "video.mkv")
	writeFile(t, video, "")

	p := testPipeline(t, testConfig(t), nil)
	_, err := p.acquireSubtitles(context.Background(), media.Info{Path: video}, dir)
	if err == nil {
		t.Fatal("expected error when no subtitles exist anywhere")
	}
}

func TestDiscover(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "season1")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	hidden := filepath.Join(root, ".cache")
	if err := os.MkdirAll(hidden, 0o755); err != nil {
		t.Fatal(err)
	}
	a := filepath.Join(root, "a.mkv")
	b := filepath.Join(nested, "b.mkv")
	writeFile(t, a, "")
	writeFile(t, b, "")
	writeFile(t, filepath.Join(root, "a.srt"), "")
	writeFile(t, filepath.Join(hidden, "c.mkv"), "")

	single := filepath.Join(t.TempDir(), "single.mp4")
	writeFile(t, single, "")

	got := Discover([]string{single, root, filepath.Join(root, "missing.mkv")}, nil)
	want := []string{single, a, b}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("input %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestBatchExitCode(t *testing.T) {
	tests := []struct {
		succeeded, failed, want int
	}{
		{3, 0, 0},
		{0, 3, 2},
		{2, 1, 1},
		{0, 0, 0},
	}
	for _, tt := range tests {
		s := BatchSummary{Succeeded: tt.succeeded, Failed: tt.failed}
		if got := s.ExitCode(); got != tt.want {
			t.Errorf("%d ok / %d failed: exit %d, want %d", tt.succeeded, tt.failed, got, tt.want)
		}
	}
}

func TestProcessSubtitlesOnly(t *testing.T) {
	inDir := t.TempDir()
	outDir := t.TempDir()
	video := filepath.Join(inDir, "Show S01E01.mkv")
	writeFile(t, video, "")
	writeFile(t, filepath.Join(inDir, "Show S01E01.srt"), sampleSRT)

	cfg := testConfig(t)
	cfg.CondensedAudio.Enabled = false
	cfg.CondensedVideo.Enabled = false
	cfg.CondensedSubtitles.Enabled = true

	p := testPipeline(t, cfg, func(o *Options) { o.OutputDirectory = outDir })
	result, err := p.Process(context.Background(), video)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if len(result.Outputs) != 1 {
		t.Fatalf("got outputs %v, want one subtitle file", result.Outputs)
	}
	out := result.Outputs[0]
	if filepath.Dir(out) != outDir || filepath.Ext(out) != ".srt" {
		t.Errorf("unexpected output path %q", out)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	// Padding 0.5 puts the first kept segment at 4.5s, so the first cue
	// lands at 0.5s on the condensed timeline.
	if !strings.Contains(string(data), "00:00:00,500") {
		t.Errorf("output not rebased:\n%s", data)
	}
	if result.Summary.SegmentCount == 0 {
		t.Error("summary has no segments")
	}
}

func TestBatchMixedOutcome(t *testing.T) {
	inDir := t.TempDir()
	outDir := t.TempDir()
	video := filepath.Join(inDir, "Show S01E01.mkv")
	writeFile(t, video, "")
	writeFile(t, filepath.Join(inDir, "Show S01E01.srt"), sampleSRT)

	cfg := testConfig(t)
	cfg.CondensedAudio.Enabled = false
	cfg.CondensedVideo.Enabled = false
	cfg.CondensedSubtitles.Enabled = true

	p := testPipeline(t, cfg, func(o *Options) { o.OutputDirectory = outDir })
	summary := p.Batch(context.Background(), []string{video, filepath.Join(inDir, "missing.mkv")}, 2)
	if summary.Succeeded != 1 || summary.Failed != 1 {
		t.Fatalf("got %d ok / %d failed, want 1 / 1", summary.Succeeded, summary.Failed)
	}
	if got := summary.ExitCode(); got != 1 {
		t.Errorf("exit code = %d, want 1", got)
	}
}
