package config

import (
	"fmt"
	"strconv"
	"strings"
)

// audioCodecAliases maps the friendly names users write to the encoder
// names ffmpeg expects.
var audioCodecAliases = map[string]string{
	"mp3":  "libmp3lame",
	"wav":  "pcm_s16le",
	"opus": "libopus",
	"ogg":  "libopus",
}

func (c *Config) normalize() error {
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	if c.LogLevel == "" {
		c.LogLevel = defaultLogLevel
	}
	c.IfFileExists = strings.ToLower(strings.TrimSpace(c.IfFileExists))
	if c.IfFileExists == "" {
		c.IfFileExists = defaultIfFileExists
	}
	c.ExternalSubtitleSearch = strings.ToLower(strings.TrimSpace(c.ExternalSubtitleSearch))
	if c.ExternalSubtitleSearch == "" {
		c.ExternalSubtitleSearch = defaultSubtitleSearch
	}
	c.CondensedSubtitles.Format = strings.ToLower(strings.TrimSpace(c.CondensedSubtitles.Format))
	if c.CondensedSubtitles.Format == "" {
		c.CondensedSubtitles.Format = defaultSubtitleFormat
	}

	var err error
	if c.OutputDirectory != "" {
		if c.OutputDirectory, err = expandPath(c.OutputDirectory); err != nil {
			return fmt.Errorf("output_directory: %w", err)
		}
	}
	if c.SubtitleDirectory != "" {
		if c.SubtitleDirectory, err = expandPath(c.SubtitleDirectory); err != nil {
			return fmt.Errorf("subtitle_directory: %w", err)
		}
	}

	c.AudioLanguages = normalizeLanguageList(c.AudioLanguages)
	c.SubtitleLanguages = normalizeLanguageList(c.SubtitleLanguages)

	c.CondensedAudio.AudioCodec = resolveAudioCodec(c.CondensedAudio.AudioCodec)
	c.CondensedVideo.AudioCodec = resolveAudioCodec(c.CondensedVideo.AudioCodec)
	c.CondensedVideo.VideoCodec = strings.ToLower(strings.TrimSpace(c.CondensedVideo.VideoCodec))

	if c.CondensedAudio.AudioQuality, err = normalizeQuality(c.CondensedAudio.AudioQuality); err != nil {
		return fmt.Errorf("condensed_audio.audio_quality: %w", err)
	}
	if c.CondensedVideo.AudioQuality, err = normalizeQuality(c.CondensedVideo.AudioQuality); err != nil {
		return fmt.Errorf("condensed_video.audio_quality: %w", err)
	}
	if c.CondensedVideo.VideoQuality, err = normalizeQuality(c.CondensedVideo.VideoQuality); err != nil {
		return fmt.Errorf("condensed_video.video_quality: %w", err)
	}
	return nil
}

func resolveAudioCodec(codec string) string {
	codec = strings.ToLower(strings.TrimSpace(codec))
	if resolved, ok := audioCodecAliases[codec]; ok {
		return resolved
	}
	return codec
}

func normalizeLanguageList(langs []string) []string {
	if len(langs) == 0 {
		return nil
	}
	out := make([]string, 0, len(langs))
	seen := make(map[string]struct{}, len(langs))
	for _, lang := range langs {
		normalized := strings.ToLower(strings.TrimSpace(lang))
		if normalized == "" {
			continue
		}
		if _, dup := seen[normalized]; dup {
			continue
		}
		seen[normalized] = struct{}{}
		out = append(out, normalized)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// normalizeQuality collapses the TOML value (string or number) into a
// canonical string, or nil when unset.
func normalizeQuality(value any) (any, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case string:
		trimmed := strings.ToLower(strings.TrimSpace(v))
		if trimmed == "" {
			return nil, nil
		}
		return trimmed, nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case int:
		return strconv.Itoa(v), nil
	case float64:
		if v == float64(int64(v)) {
			return strconv.FormatInt(int64(v), 10), nil
		}
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	default:
		return nil, fmt.Errorf("unsupported quality type %T", value)
	}
}

// qualityString returns the canonical quality string after normalization,
// empty when unset.
func qualityString(value any) string {
	s, _ := value.(string)
	return s
}
