package condense

import (
	"strings"

	"github.com/welpo/shuku/internal/media"
)

// PartitionChapters splits chapters into skipped and surviving lists.
// A chapter is skipped when its title matches one of the configured titles,
// case-insensitively and ignoring surrounding whitespace.
func PartitionChapters(chapters []media.Chapter, skipTitles []string) (skipped, surviving []media.Chapter) {
	if len(chapters) == 0 {
		return nil, nil
	}
	titleSet := make(map[string]struct{}, len(skipTitles))
	for _, t := range skipTitles {
		titleSet[strings.ToLower(strings.TrimSpace(t))] = struct{}{}
	}
	for _, ch := range chapters {
		key := strings.ToLower(strings.TrimSpace(ch.Title))
		if _, ok := titleSet[key]; ok {
			skipped = append(skipped, ch)
		} else {
			surviving = append(surviving, ch)
		}
	}
	return skipped, surviving
}

// FilterChapterIntervals removes the parts of each interval that fall
// inside a skipped chapter. An interval fully inside a skipped chapter is
// dropped; one straddling a boundary keeps the non-skipped remainder.
// With no skipped chapters the input passes through unchanged.
func FilterChapterIntervals(intervals []Interval, skipped []media.Chapter) []Interval {
	if len(skipped) == 0 {
		return intervals
	}
	out := make([]Interval, 0, len(intervals))
	for _, iv := range intervals {
		remainders := []Interval{iv}
		for _, ch := range skipped {
			cut := Interval{Start: ch.Start, End: ch.End}
			next := remainders[:0:0]
			for _, r := range remainders {
				next = append(next, r.Subtract(cut)...)
			}
			remainders = next
			if len(remainders) == 0 {
				break
			}
		}
		out = append(out, remainders...)
	}
	return out
}
