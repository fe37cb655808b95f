package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// CondensedAudio contains configuration for the condensed audio output.
type CondensedAudio struct {
	Enabled          bool              `toml:"enabled"`
	AudioCodec       string            `toml:"audio_codec"`
	AudioQuality     any               `toml:"audio_quality"`
	CustomFFmpegArgs map[string]string `toml:"custom_ffmpeg_args"`
}

// CondensedVideo contains configuration for the condensed video output.
type CondensedVideo struct {
	Enabled          bool              `toml:"enabled"`
	AudioCodec       string            `toml:"audio_codec"`
	AudioQuality     any               `toml:"audio_quality"`
	VideoCodec       string            `toml:"video_codec"`
	VideoQuality     any               `toml:"video_quality"`
	CustomFFmpegArgs map[string]string `toml:"custom_ffmpeg_args"`
}

// CondensedSubtitles contains configuration for the condensed subtitle
// output. Format "auto" keeps the input subtitle format.
type CondensedSubtitles struct {
	Enabled bool   `toml:"enabled"`
	Format  string `toml:"format"`
}

// Config encapsulates all configuration values for shuku.
//
// Top-level keys control the condensation pipeline itself (padding, line
// and chapter filtering, track and subtitle selection); the three
// condensed_* sections each describe one output artifact.
type Config struct {
	LogLevel               string   `toml:"loglevel"`
	CleanOutputFilename    bool     `toml:"clean_output_filename"`
	OutputDirectory        string   `toml:"output_directory"`
	OutputSuffix           string   `toml:"output_suffix"`
	IfFileExists           string   `toml:"if_file_exists"`
	Padding                float64  `toml:"padding"`
	SubtitleDirectory      string   `toml:"subtitle_directory"`
	AudioLanguages         []string `toml:"audio_languages"`
	SubtitleLanguages      []string `toml:"subtitle_languages"`
	ExternalSubtitleSearch string   `toml:"external_subtitle_search"`
	SubtitleMatchThreshold float64  `toml:"subtitle_match_threshold"`
	SkipChapters           []string `toml:"skip_chapters"`
	LineSkipPatterns       []string `toml:"line_skip_patterns"`

	CondensedAudio     CondensedAudio     `toml:"condensed_audio"`
	CondensedVideo     CondensedVideo     `toml:"condensed_video"`
	CondensedSubtitles CondensedSubtitles `toml:"condensed_subtitles"`
}

// DefaultConfigPath returns the absolute path to the default configuration
// file location, honouring XDG_CONFIG_HOME.
func DefaultConfigPath() (string, error) {
	if base, ok := os.LookupEnv("XDG_CONFIG_HOME"); ok && strings.TrimSpace(base) != "" {
		return filepath.Join(base, "shuku", "shuku.toml"), nil
	}
	return expandPath("~/.config/shuku/shuku.toml")
}

// Load locates, parses, and validates a configuration file. A path of
// "none" skips file loading entirely and yields the defaults. The returned
// config has aliases resolved and all path fields expanded.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	if strings.EqualFold(strings.TrimSpace(path), "none") {
		if err := cfg.normalize(); err != nil {
			return nil, "", false, err
		}
		if err := cfg.Validate(); err != nil {
			return nil, "", false, err
		}
		return &cfg, "", false, nil
	}

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}
	if path != "" && !exists {
		return nil, "", false, fmt.Errorf("config file not found: %s", resolvedPath)
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			var strict *toml.StrictMissingError
			if errors.As(err, &strict) {
				return nil, "", false, fmt.Errorf("unknown configuration keys:\n%s", strict.String())
			}
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}
	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}
	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	return defaultPath, false, nil
}

// FFmpegBinary returns the ffmpeg executable name.
func (c *Config) FFmpegBinary() string {
	return "ffmpeg"
}

// FFprobeBinary returns the ffprobe executable name used for media probing.
func (c *Config) FFprobeBinary() string {
	return "ffprobe"
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
