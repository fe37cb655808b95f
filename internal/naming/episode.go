package naming

import (
	"path/filepath"
	"regexp"
	"strings"
)

var seasonPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bS(\d+)E\d+\b`), // SxxExx
	regexp.MustCompile(`(?i)\bS(\d+)\b`),     // Sxx
	regexp.MustCompile(`(?i)Season\s*(\d+)`), // "Season x"
	regexp.MustCompile(`(?i)_S(\d+)_`),       // _Sxx_
	regexp.MustCompile(`第(\d+)季`),            // Chinese/Japanese season
}

var episodePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bE(\d+)\b`),                       // E01
	regexp.MustCompile(`(?i)Ep?\.?\s*(\d+)\b`),                 // Ep01, Ep.01, E.01
	regexp.MustCompile(`[_\s]-\s*(\d+)(?:v\d+)?`),              // " - 01", "_- 01v2"
	regexp.MustCompile(`[_\s](\d+)(?:v\d+)?(?:[_\s]|$|\(|\[)`), // standalone number
	regexp.MustCompile(`\[(\d+)(?:v\d+)?\]`),                   // [01], [01v2]
	regexp.MustCompile(`第(\d+)[話话]`),                           // Japanese episode
	regexp.MustCompile(`#(\d+)`),                               // #01
}

// SeasonEpisode extracts zero-padded season and episode numbers from a
// filename, falling back to the containing directory name and then to "01".
func SeasonEpisode(filename, directoryName string) (season, episode string) {
	season = firstMatch(seasonPatterns, filename)
	if season == "" {
		season = firstMatch(seasonPatterns, directoryName)
	}
	if season == "" {
		season = "01"
	}
	episode = firstMatch(episodePatterns, filename)
	if episode == "" {
		episode = firstMatch(episodePatterns, directoryName)
	}
	if episode == "" {
		episode = "01"
	}
	return season, episode
}

func firstMatch(patterns []*regexp.Regexp, text string) string {
	for _, pattern := range patterns {
		if m := pattern.FindStringSubmatch(text); m != nil {
			value := m[1]
			if len(value) < 2 {
				value = "0" + value
			}
			return value
		}
	}
	return ""
}

// Stem returns the filename without directory or extension.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
