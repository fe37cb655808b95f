package naming

import (
	"regexp"
	"strings"

	"golang.org/x/text/width"

	"github.com/welpo/shuku/internal/textutil"
)

const yearPattern = `\b(189[6-9]|19\d{2}|20\d{2}|21\d{2})\b`

var (
	yearRE     = regexp.MustCompile(yearPattern)
	yearOnlyRE = regexp.MustCompile(`^(189[6-9]|19\d{2}|20\d{2}|21\d{2})$`)

	// Audio format markers, optionally followed by a channel layout
	// ("DTS-HD MA 5.1", "DDP2.0", "AAC 2.0ch").
	audioTagRE = regexp.MustCompile(`(?i)\b(?:DTS(?:-HD)?|MA|DDP?(?:\+?(?:Atmos|[1-9](?:\.[1-9])?))?|AC-?3|AAC|FLAC|TrueHD|Atmos)(?:[-\s.]?(?:\d+\.?)+(?:ch)?)?\b`)

	// Video encoding markers. The x264/x265 alternative swallows the rest
	// of the name: group tags conventionally follow the codec.
	codecTagRE = regexp.MustCompile(`(?i)\b(?:[xh]\.?26[45].*|HEVC|AVC|U?HDRip|REPACK|(?:HYBRID[-\s]?)?REMUX|HYBRID)\b`)

	resolutionRE = regexp.MustCompile(`(?i)\b\d{3,5}x\d{3,4}p?\b|\b\d{3,4}p\b`)
	qualityRE    = regexp.MustCompile(`(?i)\b(?:U?HD|[248]K|[SH]DR1?0?)\b`)

	bracketedRE = regexp.MustCompile(`\([^)]*\)|\[[^\]]*\]`)
	punctRE     = regexp.MustCompile("[_\\[\\]{}<>|`~!@#.%^*()=+]")

	// Source/distribution labels, only stripped for display: they can help
	// disambiguate subtitle matching.
	sourceTagRE  = regexp.MustCompile(`(?i)\b(?:DV|Blu(?:-| )?Ray|NF|REMASTERED|HMAX|AMZN|DSNP|SESO|ATVP|HULU|WEB(?:-| )?(?:DL|RIP)?|DVDRip|BDRip)\b`)
	releaseTagRE = regexp.MustCompile(`(?i)\b(?:_-_|DoVi|E\.N\.D|DVD|PAL|CR|FUNI|U-NEXT|Dual[. ]Audio|PROPER|JPN\+?ENG|JAP|GBR|ENG|JAPANESE|JPN|SUBBED|DUAL|Remaster|MA\.5\.1)\b`)

	// Trailing "-GroupName" release group tag on the stem.
	groupSuffixRE = regexp.MustCompile(`-[A-Za-z0-9]{2,20}$`)

	trailingYearRE = regexp.MustCompile(yearPattern + `\s*$`)
)

// Clean strips release noise from a filename stem: audio/codec/resolution/
// quality markers and bracketed tags that are not years. Punctuation
// collapses to spaces. Episode and season markers are deliberately
// preserved; they are the one thing that distinguishes files in a series.
func Clean(stem string) string {
	filename := audioTagRE.ReplaceAllString(stem, "")
	sansBrackets := bracketedRE.ReplaceAllStringFunc(filename, func(group string) string {
		inner := strings.TrimSpace(group[1 : len(group)-1])
		if yearOnlyRE.MatchString(inner) {
			return group
		}
		return ""
	})
	// In case the entire name was enclosed in brackets.
	if strings.TrimSpace(sansBrackets) != "" {
		filename = sansBrackets
	}
	filename = codecTagRE.ReplaceAllString(filename, "")
	filename = resolutionRE.ReplaceAllString(filename, "")
	filename = qualityRE.ReplaceAllString(filename, "")
	filename = punctRE.ReplaceAllString(filename, " ")
	return textutil.CollapseWhitespace(filename)
}

// ForMatching produces the normalized key used to pair a subtitle file with
// a video file. The key is cleaned, width-folded (full-width characters in
// Japanese release names), lowercased, with years moved to the end so that
// word order differences around the year do not hurt similarity.
func ForMatching(stem string) string {
	cleaned := width.Fold.String(Clean(stem))
	years := yearRE.FindAllString(cleaned, -1)
	yearSet := make(map[string]struct{}, len(years))
	for _, y := range years {
		yearSet[y] = struct{}{}
	}
	words := strings.Fields(strings.ToLower(cleaned))
	kept := words[:0]
	for _, word := range words {
		if _, ok := yearSet[word]; ok {
			continue
		}
		kept = append(kept, word)
	}
	kept = append(kept, years...)
	return strings.TrimSpace(strings.Join(kept, " "))
}

// ForDisplay produces a human-facing title from a release filename stem:
// source and release tags removed, group suffix dropped, and a trailing
// year wrapped in parentheses.
func ForDisplay(stem string) string {
	stem = sourceTagRE.ReplaceAllString(stem, "")
	stem = releaseTagRE.ReplaceAllString(stem, "")
	stem = groupSuffixRE.ReplaceAllString(stem, "")
	cleaned := Clean(stem)
	cleaned = trailingYearRE.ReplaceAllString(cleaned, "($1)")
	return textutil.SanitizeFileName(cleaned)
}
