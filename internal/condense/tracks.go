package condense

import (
	"sort"
	"strings"

	"github.com/welpo/shuku/internal/language"
	"github.com/welpo/shuku/internal/media"
)

// penalizedSubtitleKeywords mark subtitle tracks that rarely carry full
// dialogue (signs-and-songs tracks, SDH, commentary).
var penalizedSubtitleKeywords = []string{
	"sign",
	"song",
	"comment",
	"description",
	"sdh",
	"cc",
	"forced",
}

// SelectAudioTrack picks the audio track for the given ordered language
// preferences: the first track matching the first preference that matches
// anything, language codes compared under the alias table. With no
// preference hit the first audio track wins; with no audio tracks at all
// the second return is false (absence is not an error).
func SelectAudioTrack(tracks []media.Track, preferences []string) (media.Track, bool) {
	audio := filterKind(tracks, media.TrackAudio)
	if len(audio) == 0 {
		return media.Track{}, false
	}
	for _, pref := range preferences {
		for _, t := range audio {
			if language.Equivalent(t.Language, pref) {
				return t, true
			}
		}
	}
	return audio[0], true
}

// RankSubtitleTracks orders text-based subtitle tracks from most to least
// suitable: preferred language first, then non-forced over forced, default
// disposition over not, fewer penalized title keywords, and finally title
// for a stable order. Bitmap tracks (PGS, DVD subs) are excluded.
func RankSubtitleTracks(tracks []media.Track, preferences []string) []media.Track {
	var subs []media.Track
	for _, t := range filterKind(tracks, media.TrackSubtitle) {
		if media.IsTextSubtitleCodec(t.Codec) {
			subs = append(subs, t)
		}
	}
	sort.SliceStable(subs, func(i, j int) bool {
		return subtitleSortKey(subs[i], preferences).less(subtitleSortKey(subs[j], preferences))
	})
	return subs
}

// SelectSubtitleTrack returns the best-ranked text subtitle track, if any.
func SelectSubtitleTrack(tracks []media.Track, preferences []string) (media.Track, bool) {
	ranked := RankSubtitleTracks(tracks, preferences)
	if len(ranked) == 0 {
		return media.Track{}, false
	}
	return ranked[0], true
}

type trackKey struct {
	langPriority int
	forced       int
	nonDefault   int
	titlePenalty int
	title        string
}

func (k trackKey) less(other trackKey) bool {
	if k.langPriority != other.langPriority {
		return k.langPriority < other.langPriority
	}
	if k.forced != other.forced {
		return k.forced < other.forced
	}
	if k.nonDefault != other.nonDefault {
		return k.nonDefault < other.nonDefault
	}
	if k.titlePenalty != other.titlePenalty {
		return k.titlePenalty < other.titlePenalty
	}
	return k.title < other.title
}

func subtitleSortKey(t media.Track, preferences []string) trackKey {
	key := trackKey{
		langPriority: len(preferences),
		title:        strings.ToLower(t.Title),
	}
	for i, pref := range preferences {
		if language.Equivalent(t.Language, pref) {
			key.langPriority = i
			break
		}
	}
	if t.Forced {
		key.forced = 1
	}
	if !t.Default {
		key.nonDefault = 1
	}
	for _, word := range penalizedSubtitleKeywords {
		if strings.Contains(key.title, word) {
			key.titlePenalty++
		}
	}
	return key
}

// MatchesPreferredLanguage reports whether the track's language appears in
// the preference list.
func MatchesPreferredLanguage(t media.Track, preferences []string) bool {
	for _, pref := range preferences {
		if language.Equivalent(t.Language, pref) {
			return true
		}
	}
	return false
}

func filterKind(tracks []media.Track, kind media.TrackKind) []media.Track {
	var out []media.Track
	for _, t := range tracks {
		if t.Kind == kind {
			out = append(out, t)
		}
	}
	return out
}
