package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/welpo/shuku/internal/condense"
)

var (
	logLevelChoices       = []string{"debug", "info", "warning", "error"}
	fileExistsChoices     = []string{"ask", "overwrite", "rename", "skip"}
	subtitleSearchChoices = []string{"disabled", "exact", "fuzzy"}
	subtitleFormatChoices = []string{"auto", "srt", "ass", "lrc"}
	audioCodecChoices     = []string{"libmp3lame", "aac", "libopus", "flac", "pcm_s16le", "copy"}
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if !c.CondensedAudio.Enabled && !c.CondensedVideo.Enabled && !c.CondensedSubtitles.Enabled {
		return errors.New("all condensing options are disabled, nothing to do")
	}
	if err := ensureChoice("loglevel", c.LogLevel, logLevelChoices); err != nil {
		return err
	}
	if err := ensureChoice("if_file_exists", c.IfFileExists, fileExistsChoices); err != nil {
		return err
	}
	if err := ensureChoice("external_subtitle_search", c.ExternalSubtitleSearch, subtitleSearchChoices); err != nil {
		return err
	}
	if err := ensureChoice("condensed_subtitles.format", c.CondensedSubtitles.Format, subtitleFormatChoices); err != nil {
		return err
	}
	if c.Padding < 0 {
		return errors.New("padding must be >= 0 seconds")
	}
	if c.SubtitleMatchThreshold < 0 || c.SubtitleMatchThreshold > 1 {
		return errors.New("subtitle_match_threshold must be between 0 and 1")
	}
	if _, err := condense.CompileSkipPatterns(c.LineSkipPatterns); err != nil {
		return fmt.Errorf("line_skip_patterns: %w", err)
	}
	if err := validateAudio("condensed_audio", c.CondensedAudio.AudioCodec, qualityString(c.CondensedAudio.AudioQuality)); err != nil {
		return err
	}
	if err := validateAudio("condensed_video", c.CondensedVideo.AudioCodec, qualityString(c.CondensedVideo.AudioQuality)); err != nil {
		return err
	}
	return nil
}

func ensureChoice(key, value string, choices []string) error {
	for _, choice := range choices {
		if value == choice {
			return nil
		}
	}
	return fmt.Errorf("invalid value for %s: %q (must be one of: %s)", key, value, strings.Join(choices, ", "))
}

func validateAudio(section, codec, quality string) error {
	if err := ensureChoice(section+".audio_codec", codec, audioCodecChoices); err != nil {
		return err
	}
	if codec == "copy" || codec == "pcm_s16le" || quality == "" {
		return nil
	}
	if codec == "flac" {
		level, err := strconv.Atoi(quality)
		if err != nil || level < 0 || level > 12 {
			return fmt.Errorf("invalid flac compression level %q: must be an integer between 0 and 12", quality)
		}
		return nil
	}
	return validateBitrateOrScale(section, codec, quality)
}

func validateBitrateOrScale(section, codec, quality string) error {
	if strings.HasSuffix(quality, "k") {
		if _, err := strconv.ParseFloat(strings.TrimSuffix(quality, "k"), 64); err != nil {
			return fmt.Errorf("%s: invalid bitrate %q for codec %q", section, quality, codec)
		}
		return nil
	}
	if strings.HasPrefix(quality, "v") {
		level, err := strconv.Atoi(quality[1:])
		if err != nil || level < 0 {
			return fmt.Errorf("%s: invalid VBR quality %q for codec %q", section, quality, codec)
		}
		if codec != "libmp3lame" {
			return fmt.Errorf("%s: VBR quality %q not supported by codec %q", section, quality, codec)
		}
		return nil
	}
	value, err := strconv.ParseFloat(quality, 64)
	if err != nil {
		return fmt.Errorf("%s: invalid quality format %q for codec %q", section, quality, codec)
	}
	if value < 0 {
		return fmt.Errorf("%s: negative quality %q not allowed for codec %q", section, quality, codec)
	}
	return nil
}
