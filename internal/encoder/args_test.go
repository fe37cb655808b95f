package encoder

import (
	"strings"
	"testing"

	"github.com/welpo/shuku/internal/condense"
	"github.com/welpo/shuku/internal/subtitles"
)

func TestSegmentArgsAudioOnly(t *testing.T) {
	args := SegmentArgs("in.mkv", "seg.mkv", condense.Segment{Start: 1.5, End: 4}, 2, -1)
	joined := strings.Join(args, " ")
	for _, want := range []string{
		"-ss 1.500", "-to 4.000", "-i in.mkv", "-map 0:2", "-c:a copy",
		"-avoid_negative_ts make_zero",
	} {
		if !strings.Contains(joined, want) {
			t.Errorf("args missing %q: %s", want, joined)
		}
	}
	if strings.Contains(joined, "-c:v") {
		t.Errorf("video options present in audio-only extraction: %s", joined)
	}
	if args[len(args)-1] != "seg.mkv" {
		t.Errorf("output not last: %v", args)
	}
}

func TestSegmentArgsWithVideo(t *testing.T) {
	args := SegmentArgs("in.mkv", "seg.mkv", condense.Segment{Start: 0, End: 2}, 1, 0)
	joined := strings.Join(args, " ")
	if !strings.Contains(joined, "-map 0:0 -c:v copy") {
		t.Errorf("video mapping missing: %s", joined)
	}
}

func TestConcatFileContent(t *testing.T) {
	got := ConcatFileContent([]string{"/tmp/segment_0.mkv", "/tmp/it's.mkv"})
	want := "file '/tmp/segment_0.mkv'\nfile '/tmp/it'\\''s.mkv'\n"
	if got != want {
		t.Errorf("content = %q, want %q", got, want)
	}
}

func TestAudioEncodeArgs(t *testing.T) {
	tests := []struct {
		name      string
		params    condense.AudioParams
		wantParts []string
		banned    []string
	}{
		{
			"copy",
			condense.AudioParams{Codec: "copy"},
			[]string{"-c:a copy"},
			[]string{"-ac", "-b:a"},
		},
		{
			"opus bitrate",
			condense.AudioParams{Codec: "libopus", Quality: condense.Quality{Kind: condense.QualityBitrate, Value: "48k"}},
			[]string{"-c:a libopus", "-ac 2", "-b:a 48k", "-application voip"},
			nil,
		},
		{
			"mp3 vbr",
			condense.AudioParams{Codec: "libmp3lame", Quality: condense.Quality{Kind: condense.QualityVBRLevel, Value: "2"}},
			[]string{"-c:a libmp3lame", "-q:a 2"},
			[]string{"-b:a"},
		},
		{
			"flac compression",
			condense.AudioParams{Codec: "flac", Quality: condense.Quality{Kind: condense.QualityVBRLevel, Value: "8"}},
			[]string{"-compression_level 8"},
			nil,
		},
		{
			"pcm wav container",
			condense.AudioParams{Codec: "pcm_s16le"},
			[]string{"-c:a pcm_s16le", "-f wav"},
			nil,
		},
		{
			"aac scale",
			condense.AudioParams{Codec: "aac", Quality: condense.Quality{Kind: condense.QualityVBRLevel, Value: "2"}},
			[]string{"-q:a 2"},
			nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := AudioEncodeArgs("concat.txt", "out.ogg", tt.params, nil)
			joined := strings.Join(args, " ")
			if !strings.Contains(joined, "-f concat -safe 0 -i concat.txt -map 0:a") {
				t.Errorf("concat input missing: %s", joined)
			}
			for _, want := range tt.wantParts {
				if !strings.Contains(joined, want) {
					t.Errorf("args missing %q: %s", want, joined)
				}
			}
			for _, banned := range tt.banned {
				if strings.Contains(joined, banned) {
					t.Errorf("args should not contain %q: %s", banned, joined)
				}
			}
		})
	}
}

func TestAudioEncodeArgsMetadataAndExtras(t *testing.T) {
	params := condense.AudioParams{
		Codec:     "libopus",
		Quality:   condense.Quality{Kind: condense.QualityBitrate, Value: "48k"},
		ExtraArgs: map[string]string{"af": "loudnorm"},
	}
	args := AudioEncodeArgs("concat.txt", "out.ogg", params, []string{"title=Show", "track=3"})
	joined := strings.Join(args, " ")
	if !strings.Contains(joined, "-af loudnorm") {
		t.Errorf("custom args missing: %s", joined)
	}
	if !strings.Contains(joined, "-metadata:g:0 title=Show") || !strings.Contains(joined, "-metadata:g:1 track=3") {
		t.Errorf("metadata missing or unindexed: %s", joined)
	}
}

func TestVideoEncodeArgs(t *testing.T) {
	video := condense.VideoParams{Codec: "libx264", Quality: condense.Quality{Kind: condense.QualityCRF, Value: "23"}}
	audio := condense.AudioParams{Codec: "copy"}
	args := VideoEncodeArgs("concat.txt", "out.mp4", video, audio, nil)
	joined := strings.Join(args, " ")
	for _, want := range []string{"-map 0:v -map 0:a", "-c:v libx264", "-crf 23", "-c:a copy"} {
		if !strings.Contains(joined, want) {
			t.Errorf("args missing %q: %s", want, joined)
		}
	}
}

func TestVideoEncodeArgsCopySkipsQuality(t *testing.T) {
	video := condense.VideoParams{Codec: "copy", Quality: condense.Quality{Kind: condense.QualityIgnored}}
	args := VideoEncodeArgs("concat.txt", "out.mkv", video, condense.AudioParams{Codec: "copy"}, nil)
	joined := strings.Join(args, " ")
	if strings.Contains(joined, "-crf") || strings.Contains(joined, "-b:v") {
		t.Errorf("quality options present for stream copy: %s", joined)
	}
}

func TestExtensionMaps(t *testing.T) {
	tests := []struct {
		codec, source, want string
	}{
		{"libopus", "", "ogg"},
		{"libmp3lame", "", "mp3"},
		{"pcm_s16le", "", "wav"},
		{"copy", "aac", "m4a"},
		{"copy", "dts", "mka"},
	}
	for _, tt := range tests {
		if got := AudioExtension(tt.codec, tt.source); got != tt.want {
			t.Errorf("AudioExtension(%q, %q) = %q, want %q", tt.codec, tt.source, got, tt.want)
		}
	}
	if got := VideoExtension("libx264", ""); got != "mp4" {
		t.Errorf("VideoExtension(libx264) = %q", got)
	}
	if got := VideoExtension("copy", "mkv"); got != "mkv" {
		t.Errorf("VideoExtension(copy) = %q", got)
	}
	if got := SubtitleExtension("subrip"); got != "srt" {
		t.Errorf("SubtitleExtension(subrip) = %q", got)
	}
}

// Extraction writes the track to a file the subtitle loader must then
// parse, so every text codec has to land on a loadable extension.
func TestSubtitleExtensionIsLoadable(t *testing.T) {
	for _, codec := range []string{"subrip", "srt", "ass", "ssa", "webvtt", "mov_text"} {
		ext := SubtitleExtension(codec)
		if codec == "mov_text" && ext != "srt" {
			t.Errorf("SubtitleExtension(mov_text) = %q, want srt", ext)
		}
		if !subtitles.IsSubtitlePath("subtitles_2." + ext) {
			t.Errorf("codec %s extracts to unparseable extension %q", codec, ext)
		}
	}
}
