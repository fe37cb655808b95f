package config

const (
	defaultLogLevel         = "info"
	defaultOutputSuffix     = " (condensed)"
	defaultIfFileExists     = "ask"
	defaultPadding          = 0.5
	defaultSubtitleSearch   = "fuzzy"
	defaultMatchThreshold   = 0.65
	defaultAudioCodec       = "libopus"
	defaultAudioQuality     = "48k"
	defaultSubtitleFormat   = "auto"
	defaultVideoCodec       = "copy"
	defaultVideoAudioCodec  = "copy"
	defaultMP3VBRQuality    = "3"
	defaultMaxVBRQuality    = 10
	defaultMP3MaxVBRQuality = 9
)

// defaultSkipChapters lists chapter titles, compared case-insensitively,
// that almost always hold openings, endings, credits, or previews.
func defaultSkipChapters() []string {
	return []string{
		"avant",
		"avante",
		"closing credits",
		"credits",
		"ed",
		"end credit",
		"end credits",
		"ending",
		"logos/opening credits",
		"next episode",
		"op",
		"1. opening credits",
		"opening titles",
		"opening",
		"preview",
		"start credit",
		"trailer",
	}
}

// defaultLineSkipPatterns drops music lines and lines entirely enclosed in
// brackets (sound effects, speaker labels). Patterns match whole lines.
func defaultLineSkipPatterns() []string {
	return []string{
		"(～|〜)?♪.*",
		"♬(～|〜)",
		"♪?(～|〜)♪?",
		"・(～|〜)",
		`\([^)]*\)`,
		"（[^）]*）",
		`\[.*\]`,
		`\{[^\}]*\}`,
		"<[^>]*>",
	}
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		LogLevel:               defaultLogLevel,
		CleanOutputFilename:    true,
		OutputSuffix:           defaultOutputSuffix,
		IfFileExists:           defaultIfFileExists,
		Padding:                defaultPadding,
		ExternalSubtitleSearch: defaultSubtitleSearch,
		SubtitleMatchThreshold: defaultMatchThreshold,
		SkipChapters:           defaultSkipChapters(),
		LineSkipPatterns:       defaultLineSkipPatterns(),
		CondensedAudio: CondensedAudio{
			Enabled:      true,
			AudioCodec:   defaultAudioCodec,
			AudioQuality: defaultAudioQuality,
		},
		CondensedVideo: CondensedVideo{
			AudioCodec: defaultVideoAudioCodec,
			VideoCodec: defaultVideoCodec,
		},
		CondensedSubtitles: CondensedSubtitles{
			Format: defaultSubtitleFormat,
		},
	}
}
