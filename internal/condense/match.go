package condense

import (
	"path/filepath"
	"strings"

	"github.com/welpo/shuku/internal/language"
	"github.com/welpo/shuku/internal/naming"
	"github.com/welpo/shuku/internal/textutil"
)

// MatchMode selects how external subtitle candidates are compared with the
// video name.
type MatchMode string

const (
	MatchExact MatchMode = "exact"
	MatchFuzzy MatchMode = "fuzzy"
)

// SubtitleCandidate is one subtitle file under consideration, with its
// matching keys computed once. Stem is the file stem with the subtitle
// extension and any trailing language token removed; NormalizedStem is the
// fuzzy-matching key derived from it.
type SubtitleCandidate struct {
	Path           string
	Stem           string
	NormalizedStem string
}

// MatchResult pairs the winning candidate with its similarity score.
// Exact matches score 1.
type MatchResult struct {
	Candidate SubtitleCandidate
	Score     float64
}

// NewCandidates derives matching keys for the given subtitle paths,
// preserving directory order.
func NewCandidates(paths []string) []SubtitleCandidate {
	candidates := make([]SubtitleCandidate, 0, len(paths))
	for _, p := range paths {
		stem := subtitleStem(p)
		candidates = append(candidates, SubtitleCandidate{
			Path:           p,
			Stem:           stem,
			NormalizedStem: naming.ForMatching(stem),
		})
	}
	return candidates
}

// FindSubtitle picks the best external subtitle for the video stem.
// In exact mode only candidates whose raw stem equals the video stem
// qualify (only the language token is overlooked, so "Show.ja.srt" still
// pairs with "Show.mkv"); in fuzzy mode candidates scoring at least
// threshold against the normalized video stem qualify and the highest
// score wins. Ties prefer a language-preference match, then the shortest
// filename, then directory order. No qualifier yields ErrNoMatch.
func FindSubtitle(videoStem string, candidates []SubtitleCandidate, mode MatchMode, threshold float64, preferences []string) (MatchResult, error) {
	key := naming.ForMatching(videoStem)
	best := MatchResult{Score: -1}
	bestIdx := -1
	for i, cand := range candidates {
		var score float64
		switch mode {
		case MatchExact:
			if cand.Stem != videoStem {
				continue
			}
			score = 1
		case MatchFuzzy:
			score = textutil.Similarity(key, cand.NormalizedStem)
			if score < threshold {
				continue
			}
		default:
			continue
		}
		if bestIdx < 0 || beats(cand, score, best, preferences) {
			best = MatchResult{Candidate: cand, Score: score}
			bestIdx = i
		}
	}
	if bestIdx < 0 {
		return MatchResult{}, Wrap(ErrNoMatch, "match", "no candidate at or above threshold", nil)
	}
	return best, nil
}

// beats reports whether the challenger should replace the incumbent.
// Directory order is the final tie-break, so equality keeps the incumbent.
func beats(cand SubtitleCandidate, score float64, incumbent MatchResult, preferences []string) bool {
	if score != incumbent.Score {
		return score > incumbent.Score
	}
	candLang := languagePreferenceRank(cand.Path, preferences)
	bestLang := languagePreferenceRank(incumbent.Candidate.Path, preferences)
	if candLang != bestLang {
		return candLang < bestLang
	}
	candName := len(filepath.Base(cand.Path))
	bestName := len(filepath.Base(incumbent.Candidate.Path))
	return candName < bestName
}

// languagePreferenceRank inspects the candidate's language suffix token
// ("Show.ja.srt" → "ja") and returns its position in the preference list,
// or len(preferences) when absent or unmatched.
func languagePreferenceRank(path string, preferences []string) int {
	lang := subtitleLanguageToken(path)
	if lang == "" {
		return len(preferences)
	}
	for i, pref := range preferences {
		if language.Equivalent(lang, pref) {
			return i
		}
	}
	return len(preferences)
}

// subtitleStem strips the subtitle extension and any language suffix token
// so "Show S01E01.ja.srt" matches "Show S01E01.mkv".
func subtitleStem(path string) string {
	stem := naming.Stem(path)
	if token := languageSuffix(stem); token != "" {
		stem = strings.TrimSuffix(stem, "."+token)
	}
	return stem
}

func subtitleLanguageToken(path string) string {
	return languageSuffix(naming.Stem(path))
}

// languageSuffix returns the trailing dot-separated token of stem when it
// is a recognizable language code, e.g. "ja" in "Show S01E01.ja".
func languageSuffix(stem string) string {
	idx := strings.LastIndexByte(stem, '.')
	if idx < 0 {
		return ""
	}
	token := stem[idx+1:]
	if len(token) < 2 || len(token) > 3 {
		return ""
	}
	if !language.Known(token) {
		return ""
	}
	return token
}
