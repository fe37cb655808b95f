package config

import (
	"strconv"
	"strings"

	"github.com/welpo/shuku/internal/condense"
)

// crfVideoCodecs interpret the quality value as a constant rate factor.
var crfVideoCodecs = map[string]bool{
	"libx264":    true,
	"libx265":    true,
	"libvpx-vp9": true,
	"vp9":        true,
}

// EncodeParams resolves the codec and quality configuration into the
// tagged form carried by an encode plan. Quality interpretation depends on
// the codec family and is fixed here, at load time.
func (c *Config) EncodeParams() condense.CodecParams {
	return condense.CodecParams{
		Audio: condense.AudioParams{
			Codec:     c.CondensedAudio.AudioCodec,
			Quality:   resolveAudioQuality(c.CondensedAudio.AudioCodec, qualityString(c.CondensedAudio.AudioQuality)),
			ExtraArgs: copyArgs(c.CondensedAudio.CustomFFmpegArgs),
		},
		Video: condense.VideoParams{
			Enabled:   c.CondensedVideo.Enabled,
			Codec:     c.CondensedVideo.VideoCodec,
			Quality:   resolveVideoQuality(c.CondensedVideo.VideoCodec, qualityString(c.CondensedVideo.VideoQuality)),
			ExtraArgs: copyArgs(c.CondensedVideo.CustomFFmpegArgs),
		},
	}
}

// VideoAudioParams resolves the audio settings of the condensed video
// output, which are configured separately from condensed audio.
func (c *Config) VideoAudioParams() condense.AudioParams {
	return condense.AudioParams{
		Codec:     c.CondensedVideo.AudioCodec,
		Quality:   resolveAudioQuality(c.CondensedVideo.AudioCodec, qualityString(c.CondensedVideo.AudioQuality)),
		ExtraArgs: copyArgs(c.CondensedVideo.CustomFFmpegArgs),
	}
}

func resolveAudioQuality(codec, quality string) condense.Quality {
	switch codec {
	case "copy", "pcm_s16le":
		return condense.Quality{Kind: condense.QualityIgnored}
	}
	if quality == "" {
		return condense.Quality{Kind: condense.QualityIgnored}
	}
	switch codec {
	case "flac":
		return condense.Quality{Kind: condense.QualityVBRLevel, Value: quality}
	case "aac":
		if isDigits(quality) {
			return condense.Quality{Kind: condense.QualityVBRLevel, Value: quality}
		}
		return condense.Quality{Kind: condense.QualityBitrate, Value: quality}
	case "libopus":
		return condense.Quality{Kind: condense.QualityBitrate, Value: quality}
	case "libmp3lame":
		if strings.HasPrefix(quality, "v") {
			quality = quality[1:]
		}
		if level, err := strconv.Atoi(quality); err == nil && level >= 0 && level <= 9 {
			return condense.Quality{Kind: condense.QualityVBRLevel, Value: quality}
		}
		if strings.HasSuffix(quality, "k") {
			return condense.Quality{Kind: condense.QualityBitrate, Value: quality}
		}
		return condense.Quality{Kind: condense.QualityVBRLevel, Value: defaultMP3VBRQuality}
	default:
		return condense.Quality{Kind: condense.QualityBitrate, Value: quality}
	}
}

func resolveVideoQuality(codec, quality string) condense.Quality {
	if codec == "copy" || quality == "" {
		return condense.Quality{Kind: condense.QualityIgnored}
	}
	if crfVideoCodecs[codec] {
		return condense.Quality{Kind: condense.QualityCRF, Value: quality}
	}
	return condense.Quality{Kind: condense.QualityBitrate, Value: quality}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func copyArgs(args map[string]string) map[string]string {
	if len(args) == 0 {
		return nil
	}
	out := make(map[string]string, len(args))
	for k, v := range args {
		out[k] = v
	}
	return out
}
