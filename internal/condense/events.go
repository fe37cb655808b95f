package condense

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/welpo/shuku/internal/subtitles"
)

// CompileSkipPatterns compiles the configured line-skip expressions,
// anchoring each so it must match the entire line; "♪" skips a lyric line
// but never a line that merely contains one.
func CompileSkipPatterns(patterns []string) ([]*regexp.Regexp, error) {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, pattern := range patterns {
		re, err := regexp.Compile(`\A(?:` + pattern + `)\z`)
		if err != nil {
			return nil, fmt.Errorf("skip pattern %q: %w", pattern, err)
		}
		compiled = append(compiled, re)
	}
	return compiled, nil
}

// NormalizeEvents converts subtitle events into dialogue intervals.
// Markup is stripped before skip patterns run, zero-duration events are
// dropped, and events with end before start surface ErrInvalidTiming.
// The result is sorted by start, input order preserved for ties.
func NormalizeEvents(events []subtitles.Event, skipPatterns []*regexp.Regexp) ([]Interval, error) {
	intervals := make([]Interval, 0, len(events))
	for i, e := range events {
		if e.End < e.Start {
			return nil, Wrap(ErrInvalidTiming, "normalize",
				fmt.Sprintf("event %d runs %.3f..%.3f", i, e.Start, e.End), nil)
		}
		if e.End == e.Start {
			continue
		}
		if matchesAny(skipPatterns, subtitles.PlainText(e.Text)) {
			continue
		}
		intervals = append(intervals, Interval{Start: e.Start, End: e.End})
	}
	sort.SliceStable(intervals, func(i, j int) bool {
		return intervals[i].Start < intervals[j].Start
	})
	return intervals, nil
}

func matchesAny(patterns []*regexp.Regexp, line string) bool {
	for _, p := range patterns {
		if p.MatchString(line) {
			return true
		}
	}
	return false
}
