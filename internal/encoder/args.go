package encoder

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/welpo/shuku/internal/condense"
	"github.com/welpo/shuku/internal/media"
)

// audioCodecExtensions maps encoder names to container extensions.
var audioCodecExtensions = map[string]string{
	"aac":        "m4a",
	"alac":       "m4a",
	"flac":       "flac",
	"libmp3lame": "mp3",
	"libopus":    "ogg",
	"pcm_s16le":  "wav",
}

// videoCodecExtensions maps video encoder names to container extensions.
var videoCodecExtensions = map[string]string{
	"libx264":    "mp4",
	"h264":       "mp4",
	"libx265":    "mp4",
	"hevc":       "mp4",
	"libvpx":     "webm",
	"vp8":        "webm",
	"libvpx-vp9": "webm",
	"vp9":        "webm",
	"libaom-av1": "mp4",
	"av1":        "mp4",
	"mpeg4":      "mp4",
	"libxvid":    "avi",
	"msmpeg4":    "avi",
	"flv":        "flv",
	"wmv2":       "wmv",
	"mjpeg":      "avi",
}

// AudioExtension returns the output extension for the configured audio
// codec. For stream copy the source codec decides; unknown codecs land in
// a Matroska container.
func AudioExtension(codec, sourceCodec string) string {
	if codec == "copy" {
		codec = sourceCodec
	}
	if ext, ok := audioCodecExtensions[strings.ToLower(codec)]; ok {
		return ext
	}
	return "mka"
}

// VideoExtension returns the output extension for the configured video
// codec; sourceExt (without dot) is used for stream copy.
func VideoExtension(codec, sourceExt string) string {
	if codec == "copy" && sourceExt != "" {
		return sourceExt
	}
	if ext, ok := videoCodecExtensions[strings.ToLower(codec)]; ok {
		return ext
	}
	return "mkv"
}

// SubtitleExtension returns the extraction extension for an embedded
// subtitle codec. The extension must name a format both ffmpeg can mux
// and the subtitle loader can parse, so mov_text extracts as srt.
func SubtitleExtension(codec string) string {
	return media.SubtitleExtension(codec)
}

// SegmentArgs builds the ffmpeg arguments for one stream-copied segment
// extraction. videoTrackID < 0 extracts audio only.
func SegmentArgs(source, output string, segment condense.Segment, audioTrackID, videoTrackID int) []string {
	args := []string{
		"-y", "-v", "error", "-hide_banner",
		"-ss", formatSeconds(segment.Start),
		"-to", formatSeconds(segment.End),
		"-i", source,
		"-map", "0:" + strconv.Itoa(audioTrackID),
		"-c:a", "copy",
	}
	if videoTrackID >= 0 {
		args = append(args, "-map", "0:"+strconv.Itoa(videoTrackID), "-c:v", "copy")
	}
	args = append(args, "-avoid_negative_ts", "make_zero", output)
	return args
}

// ConcatFileContent renders the concat demuxer file listing the segment
// files in order. Single quotes in paths are escaped the ffmpeg way.
func ConcatFileContent(paths []string) string {
	var b strings.Builder
	for _, p := range paths {
		b.WriteString("file '")
		b.WriteString(strings.ReplaceAll(p, "'", `'\''`))
		b.WriteString("'\n")
	}
	return b.String()
}

// AudioEncodeArgs builds the final condensed-audio encode from the concat
// file: all audio streams mapped, codec options per the resolved quality,
// then metadata.
func AudioEncodeArgs(concatFile, output string, params condense.AudioParams, metadata []string) []string {
	args := []string{
		"-y", "-v", "error", "-hide_banner",
		"-f", "concat", "-safe", "0",
		"-i", concatFile,
		"-map", "0:a",
	}
	args = append(args, audioOptionArgs(params)...)
	args = append(args, extraArgs(params.ExtraArgs)...)
	args = append(args, metadataArgs(metadata)...)
	return append(args, output)
}

// VideoEncodeArgs builds the final condensed-video encode from the concat
// file, mapping both video and audio.
func VideoEncodeArgs(concatFile, output string, video condense.VideoParams, audio condense.AudioParams, metadata []string) []string {
	args := []string{
		"-y", "-v", "error", "-hide_banner",
		"-f", "concat", "-safe", "0",
		"-i", concatFile,
		"-map", "0:v", "-map", "0:a",
	}
	args = append(args, videoOptionArgs(video)...)
	args = append(args, audioOptionArgs(audio)...)
	args = append(args, extraArgs(video.ExtraArgs)...)
	args = append(args, metadataArgs(metadata)...)
	return append(args, output)
}

// SubtitleExtractArgs builds the arguments to pull one embedded subtitle
// track out of the container.
func SubtitleExtractArgs(source, output string, trackID int) []string {
	return []string{
		"-y", "-v", "error", "-hide_banner",
		"-i", source,
		"-map", "0:" + strconv.Itoa(trackID),
		output,
	}
}

func audioOptionArgs(params condense.AudioParams) []string {
	if params.Copy() {
		return []string{"-c:a", "copy"}
	}
	// Force stereo: condensed output is for listening, not mastering.
	args := []string{"-c:a", params.Codec, "-ac", "2"}
	if params.Codec == "pcm_s16le" {
		args = append(args, "-f", "wav")
	}
	quality := params.Quality
	if quality.Kind == condense.QualityIgnored || quality.Value == "" {
		if params.Codec == "libopus" {
			args = append(args, "-application", "voip")
		}
		return args
	}
	switch params.Codec {
	case "flac":
		args = append(args, "-compression_level", quality.Value)
	case "libopus":
		args = append(args, "-b:a", quality.Value, "-application", "voip")
	default:
		if quality.Kind == condense.QualityVBRLevel {
			args = append(args, "-q:a", quality.Value)
		} else {
			args = append(args, "-b:a", quality.Value)
		}
	}
	return args
}

func videoOptionArgs(params condense.VideoParams) []string {
	args := []string{"-c:v", params.Codec}
	if params.Copy() {
		return args
	}
	switch params.Quality.Kind {
	case condense.QualityCRF:
		args = append(args, "-crf", params.Quality.Value)
	case condense.QualityBitrate:
		args = append(args, "-b:v", params.Quality.Value)
	}
	return args
}

func extraArgs(extra map[string]string) []string {
	if len(extra) == 0 {
		return nil
	}
	keys := make([]string, 0, len(extra))
	for k := range extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	args := make([]string, 0, len(keys)*2)
	for _, k := range keys {
		args = append(args, "-"+k, extra[k])
	}
	return args
}

// metadataArgs indexes each metadata entry so repeated keys survive.
func metadataArgs(entries []string) []string {
	args := make([]string, 0, len(entries)*2)
	for i, entry := range entries {
		args = append(args, fmt.Sprintf("-metadata:g:%d", i), entry)
	}
	return args
}

func formatSeconds(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}
